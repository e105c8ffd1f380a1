package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homescope/trec-report/internal/inspection"
)

func TestOffsetForStatus(t *testing.T) {
	tests := []struct {
		code   string
		offset int
		known  bool
	}{
		{"I", 0, true},
		{"NI", 1, true},
		{"NP", 2, true},
		{"D", 3, true},
		{"X", 0, false},
		{"", 0, false},
		{"i", 0, false}, // codes are case sensitive
	}

	for _, tt := range tests {
		t.Run("code_"+tt.code, func(t *testing.T) {
			offset, known := offsetForStatus(tt.code)
			assert.Equal(t, tt.known, known)
			if known {
				assert.Equal(t, tt.offset, offset)
			}
		})
	}
}

func TestCheckboxSlot(t *testing.T) {
	assert.Equal(t, "CheckBox1[0]", checkboxSlot(0, 0))
	assert.Equal(t, "CheckBox1[3]", checkboxSlot(0, 3))
	assert.Equal(t, "CheckBox1[9]", checkboxSlot(2, 1))
	assert.Equal(t, "CheckBox1[44]", checkboxSlot(11, 0))
}

func sectionWithStatus(name, status string) inspection.Section {
	return inspection.Section{
		Name:      name,
		LineItems: []inspection.LineItem{{InspectionStatus: status}},
	}
}

func TestQualifyingSections(t *testing.T) {
	sections := []inspection.Section{
		sectionWithStatus("Roof", "I"),
		{Name: "NoItems"},
		sectionWithStatus("Blank", "   "),
		{
			Name: "LaterItemsIgnored",
			LineItems: []inspection.LineItem{
				{InspectionStatus: ""},
				{InspectionStatus: "D"}, // never consulted
			},
		},
		sectionWithStatus("Plumbing", "D"),
	}

	got := qualifyingSections(sections)
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.name)
	}
	assert.Equal(t, []string{"Roof", "Plumbing"}, names)
	assert.Equal(t, "I", got[0].status)
	assert.Equal(t, "D", got[1].status)
	assert.False(t, got[0].deficient)
}

// fullGridStore exposes all 48 checkbox slots of the matrix.
func fullGridStore() *fakeStore {
	names := make([]string, 0, maxMatrixSections*statusColumns)
	for i := 0; i < maxMatrixSections*statusColumns; i++ {
		names = append(names, fmt.Sprintf("CheckBox1[%d]", i))
	}
	return newFakeStore(names...)
}

func TestFillMatrix(t *testing.T) {
	t.Run("slot_arithmetic", func(t *testing.T) {
		store := fullGridStore()
		sections := []inspection.Section{
			sectionWithStatus("S0", "I"),  // slot 0
			sectionWithStatus("S1", "NI"), // slot 5
			sectionWithStatus("S2", "NP"), // slot 10
			sectionWithStatus("S3", "D"),  // slot 15
		}
		assert.Equal(t, 4, fillMatrix(store, sections))
		assert.Equal(t, []string{"CheckBox1[0]", "CheckBox1[5]", "CheckBox1[10]", "CheckBox1[15]"}, store.checked)
	})

	t.Run("caps_at_twelve_sections", func(t *testing.T) {
		store := fullGridStore()
		var sections []inspection.Section
		for i := 0; i < 15; i++ {
			sections = append(sections, sectionWithStatus(fmt.Sprintf("S%d", i), "I"))
		}
		assert.Equal(t, 12, fillMatrix(store, sections))
		assert.Equal(t, "CheckBox1[44]", store.checked[len(store.checked)-1])
	})

	t.Run("unknown_status_writes_nothing", func(t *testing.T) {
		store := fullGridStore()
		sections := []inspection.Section{
			sectionWithStatus("S0", "MAYBE"),
			sectionWithStatus("S1", "D"),
		}
		// The unknown code still occupies grid row 0; S1 writes into row 1.
		assert.Equal(t, 1, fillMatrix(store, sections))
		assert.Equal(t, []string{"CheckBox1[7]"}, store.checked)
	})

	t.Run("missing_slot_skipped_silently", func(t *testing.T) {
		store := newFakeStore("CheckBox1[4]") // row 1 only
		sections := []inspection.Section{
			sectionWithStatus("S0", "I"), // slot 0, absent
			sectionWithStatus("S1", "I"), // slot 4, present
		}
		assert.Equal(t, 1, fillMatrix(store, sections))
		assert.Equal(t, []string{"CheckBox1[4]"}, store.checked)
	})

	t.Run("deficient_flag_does_not_change_slot", func(t *testing.T) {
		store := fullGridStore()
		sec := sectionWithStatus("S0", "I")
		sec.LineItems[0].IsDeficient = true
		assert.True(t, qualifyingSections([]inspection.Section{sec})[0].deficient)
		assert.Equal(t, 1, fillMatrix(store, []inspection.Section{sec}))
		assert.Equal(t, []string{"CheckBox1[0]"}, store.checked)
	})
}

func TestFillMatrixOnlyMarksTargetSlot(t *testing.T) {
	store := fullGridStore()
	fillMatrix(store, []inspection.Section{sectionWithStatus("S0", "NI")})
	for _, name := range store.checked {
		assert.True(t, strings.HasSuffix(name, "[1]"), "only the NI column may be marked, got %s", name)
	}
}
