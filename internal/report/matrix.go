package report

import (
	"errors"
	"fmt"
	"log"

	"github.com/homescope/trec-report/internal/inspection"
)

const (
	// maxMatrixSections caps how many sections the checkbox grid holds.
	maxMatrixSections = 12

	// statusColumns is the grid stride: one column per status code.
	statusColumns = 4

	// checkboxGroup is the template's checkbox group name.
	checkboxGroup = "CheckBox1"
)

// offsetForStatus maps a status code to its column within a section's
// run of checkboxes. Unrecognized codes map to nothing and the section
// writes no checkbox.
func offsetForStatus(code string) (int, bool) {
	switch code {
	case "I":
		return 0, true
	case "NI":
		return 1, true
	case "NP":
		return 2, true
	case "D":
		return 3, true
	}
	return 0, false
}

// checkboxSlot names the checkbox for the i-th qualifying section and
// the given status column.
func checkboxSlot(section, offset int) string {
	return fmt.Sprintf("%s[%d]", checkboxGroup, section*statusColumns+offset)
}

// sectionStatus is a section admitted to the checkbox grid. The
// deficient flag is informational only; it never changes which box is
// marked.
type sectionStatus struct {
	name      string
	status    string
	deficient bool
}

// qualifyingSections selects the sections eligible for the grid: those
// whose first line item carries a non-blank status code. A section
// with no line items, or whose first item's status is blank, is
// excluded entirely.
func qualifyingSections(sections []inspection.Section) []sectionStatus {
	var out []sectionStatus
	for _, sec := range sections {
		status := sec.Status()
		if status == "" {
			continue
		}
		out = append(out, sectionStatus{
			name:      sec.Name,
			status:    status,
			deficient: sec.LineItems[0].IsDeficient,
		})
	}
	return out
}

// fillMatrix distributes section statuses into the checkbox grid and
// returns the number of checkboxes marked. A missing slot or a failed
// write affects only that section.
func fillMatrix(cat FieldStore, sections []inspection.Section) int {
	qualified := qualifyingSections(sections)
	if len(qualified) > maxMatrixSections {
		qualified = qualified[:maxMatrixSections]
	}

	marked := 0
	for i, sec := range qualified {
		offset, known := offsetForStatus(sec.status)
		if !known {
			continue
		}
		slot := checkboxSlot(i, offset)
		if err := cat.Check(slot); err != nil {
			if !errors.Is(err, ErrUnknownField) {
				log.Printf("matrix: could not mark %s for section %q: %v", slot, sec.name, err)
			}
			continue
		}
		marked++
	}
	return marked
}
