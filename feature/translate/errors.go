package translate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCountMismatch means some requested identifiers resolved to nothing,
	// or rows came back for identifiers that were not requested.
	ErrCountMismatch = errors.New("count mismatch")
	// ErrMultipleResults means an identifier resolved to more than one value.
	ErrMultipleResults = errors.New("multiple results")
)

// CountMismatchError reports how many identifiers resolved.
type CountMismatchError struct {
	Expected int
	Got      int
	// Missing lists requested identifiers without any match.
	Missing []string
}

func (e *CountMismatchError) Error() string {
	msg := fmt.Sprintf("%s: expected %d results, got %d", ErrCountMismatch, e.Expected, e.Got)
	if len(e.Missing) > 0 {
		msg += " (missing: " + strings.Join(e.Missing, ", ") + ")"
	}
	return msg
}

// Is matches ErrCountMismatch.
func (e *CountMismatchError) Is(target error) bool {
	return target == ErrCountMismatch
}

// MultipleResultsError names the identifier that was ambiguous.
type MultipleResultsError struct {
	Identifier string
	Values     []string
}

func (e *MultipleResultsError) Error() string {
	return fmt.Sprintf("%s: %q resolved to %d values (%s)",
		ErrMultipleResults, e.Identifier, len(e.Values), strings.Join(e.Values, ", "))
}

// Is matches ErrMultipleResults.
func (e *MultipleResultsError) Is(target error) bool {
	return target == ErrMultipleResults
}
