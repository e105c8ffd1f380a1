package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homescope/trec-report/internal/inspection"
)

func TestRenderComment(t *testing.T) {
	assert.Equal(t, "Roof (North slope): missing shingles",
		renderComment("Roof", "North slope", "missing shingles"))
	assert.Equal(t, "Roof: missing shingles",
		renderComment("Roof", "", "missing shingles"))
}

func TestTruncateComment(t *testing.T) {
	t.Run("short_comment_untouched", func(t *testing.T) {
		assert.Equal(t, "short", truncateComment("short"))
	})

	t.Run("exact_limit_untouched", func(t *testing.T) {
		s := strings.Repeat("a", maxCommentLength)
		assert.Equal(t, s, truncateComment(s))
	})

	t.Run("long_comment_truncated", func(t *testing.T) {
		s := strings.Repeat("a", 600)
		got := truncateComment(s)
		assert.Len(t, got, 503)
		assert.Equal(t, s[:500], got[:500])
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}

func commentsSection(name string, comments ...inspection.Comment) inspection.Section {
	return inspection.Section{
		Name:      name,
		LineItems: []inspection.LineItem{{Comments: comments}},
	}
}

func TestCollectComments(t *testing.T) {
	t.Run("deficiencies_first_in_discovery_order", func(t *testing.T) {
		sections := []inspection.Section{
			commentsSection("Roof",
				inspection.Comment{Text: "G1"},
				inspection.Comment{Text: "D1", Type: "defect"},
				inspection.Comment{Text: "G2"},
			),
		}
		assert.Equal(t, []string{"Roof: D1", "Roof: G1", "Roof: G2"}, collectComments(sections))
	})

	t.Run("blank_comments_dropped", func(t *testing.T) {
		sections := []inspection.Section{
			commentsSection("Roof",
				inspection.Comment{Text: "   "},
				inspection.Comment{Text: ""},
				inspection.Comment{Text: "keep"},
			),
		}
		assert.Equal(t, []string{"Roof: keep"}, collectComments(sections))
	})

	t.Run("location_included_when_present", func(t *testing.T) {
		sections := []inspection.Section{
			commentsSection("Roof",
				inspection.Comment{Text: "missing shingles", Location: "North slope"},
			),
		}
		assert.Equal(t, []string{"Roof (North slope): missing shingles"}, collectComments(sections))
	})

	t.Run("defect_ordering_across_sections", func(t *testing.T) {
		sections := []inspection.Section{
			commentsSection("Roof", inspection.Comment{Text: "g-roof"}),
			commentsSection("Plumbing", inspection.Comment{Text: "d-plumbing", Type: "defect"}),
		}
		assert.Equal(t, []string{"Plumbing: d-plumbing", "Roof: g-roof"}, collectComments(sections))
	})
}

func TestFillNarrative(t *testing.T) {
	sections := []inspection.Section{
		commentsSection("Roof",
			inspection.Comment{Text: "one"},
			inspection.Comment{Text: "two"},
			inspection.Comment{Text: "three"},
		),
	}

	t.Run("excess_comments_dropped", func(t *testing.T) {
		store := newFakeStore("Text1", "Text2")
		store.textFields = []string{"Text1", "Text2"}
		assert.Equal(t, 2, fillNarrative(store, sections))
		assert.Equal(t, "Roof: one", store.texts["Text1"])
		assert.Equal(t, "Roof: two", store.texts["Text2"])
	})

	t.Run("excess_fields_untouched", func(t *testing.T) {
		store := newFakeStore("Text1", "Text2", "Text3", "Text4")
		store.textFields = []string{"Text1", "Text2", "Text3", "Text4"}
		assert.Equal(t, 3, fillNarrative(store, sections))
		_, filled := store.texts["Text4"]
		assert.False(t, filled)
	})

	t.Run("no_text_fields", func(t *testing.T) {
		store := newFakeStore()
		assert.Equal(t, 0, fillNarrative(store, sections))
	})

	t.Run("long_comments_truncated_on_assignment", func(t *testing.T) {
		long := strings.Repeat("x", 600)
		store := newFakeStore("Text1")
		store.textFields = []string{"Text1"}
		fillNarrative(store, []inspection.Section{
			commentsSection("Roof", inspection.Comment{Text: long}),
		})
		assert.Len(t, store.texts["Text1"], 503)
	})
}
