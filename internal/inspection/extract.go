package inspection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrRecordNotFound indicates the record file does not exist.
	ErrRecordNotFound = errors.New("inspection record not found")

	// ErrBadRecord indicates the record file is not valid JSON.
	ErrBadRecord = errors.New("invalid inspection record")
)

// Load reads and parses an inspection record from the given path.
// A missing file maps to ErrRecordNotFound, a parse failure to
// ErrBadRecord; both are detectable with errors.Is.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, path)
		}
		return nil, fmt.Errorf("failed to read inspection record %s: %w", path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	return &rec, nil
}
