package checks

import (
	"errors"
	"os"

	"broad-babel/core/source"
)

// SourceReport describes the local copy of the lookup database.
type SourceReport struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Checksum string `json:"checksum,omitempty"`
	Matched  bool   `json:"matched"`
	Error    string `json:"error,omitempty"`
}

// CheckSource verifies the cached database file against its known hash.
// A missing or mismatching file is reported, not returned as an error.
func CheckSource(f *source.Fetcher) (*SourceReport, error) {
	if f == nil {
		return nil, errors.New("no source configured")
	}

	report := &SourceReport{Path: f.Path()}
	if c, ok := f.Checksum(); ok {
		report.Checksum = c.String()
	}

	err := f.Verify()
	switch {
	case err == nil:
		report.Exists = true
		report.Matched = true
	case errors.Is(err, os.ErrNotExist):
		report.Error = "file not found"
	case errors.Is(err, source.ErrChecksumMismatch):
		report.Exists = true
		report.Error = err.Error()
	default:
		return nil, err
	}
	return report, nil
}
