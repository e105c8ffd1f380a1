package report

import (
	"log"
	"strings"

	"github.com/homescope/trec-report/internal/inspection"
)

const (
	// maxCommentLength is the cutoff beyond which a rendered comment is
	// truncated to fit its text field.
	maxCommentLength = 500

	commentEllipsis = "..."

	// defectCommentType tags comments describing deficiencies.
	defectCommentType = "defect"
)

// renderComment formats a comment for a text field. The location
// parenthetical appears only when a location is present.
func renderComment(section, location, text string) string {
	var b strings.Builder
	b.WriteString(section)
	if location != "" {
		b.WriteString(" (")
		b.WriteString(location)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(text)
	return b.String()
}

// truncateComment caps a rendered comment at maxCommentLength
// characters plus the ellipsis marker.
func truncateComment(s string) string {
	runes := []rune(s)
	if len(runes) > maxCommentLength {
		return string(runes[:maxCommentLength]) + commentEllipsis
	}
	return s
}

// collectComments flattens every non-blank comment across all sections
// into render order: deficiency comments first, then general ones,
// each group in discovery order.
func collectComments(sections []inspection.Section) []string {
	var deficiencies, general []string

	for _, sec := range sections {
		for _, item := range sec.LineItems {
			for _, comment := range item.Comments {
				text := strings.TrimSpace(comment.Text)
				if text == "" {
					continue
				}
				rendered := renderComment(sec.Name, comment.Location, text)
				if comment.Type == defectCommentType {
					deficiencies = append(deficiencies, rendered)
				} else {
					general = append(general, rendered)
				}
			}
		}
	}

	return append(deficiencies, general...)
}

// fillNarrative assigns rendered comments 1:1 to the available text
// fields and returns how many fields were written. Excess comments are
// dropped; excess fields stay untouched.
func fillNarrative(cat FieldStore, sections []inspection.Section) int {
	comments := collectComments(sections)
	fields := cat.TextFieldNames()

	written := 0
	for i, name := range fields {
		if i >= len(comments) {
			break
		}
		if err := cat.SetText(name, truncateComment(comments[i])); err != nil {
			log.Printf("narrative: could not fill %s: %v", name, err)
			continue
		}
		written++
	}
	return written
}
