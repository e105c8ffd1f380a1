package report

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// VerifyOutput reopens a generated report with an independent reader
// and confirms its page count still matches the template's. A mismatch
// is reported to the caller; it is a warning, not a generation
// failure.
func VerifyOutput(path string, wantPages int) error {
	f, r, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("could not reopen %s: %w", path, err)
	}
	defer f.Close()

	if got := r.NumPage(); wantPages > 0 && got != wantPages {
		return fmt.Errorf("page count changed: output has %d pages, template had %d", got, wantPages)
	}
	return nil
}
