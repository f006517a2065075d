package message

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteData is matched by every *IncompleteDataError.
var ErrIncompleteData = errors.New("submission lacks mandatory message data")

// IncompleteDataError rejects a submission whose message fails validation.
// It carries every diagnostic, not only the first.
type IncompleteDataError struct {
	SubmissionID int64
	Diagnostics  []Diagnostic
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("submission %d: %s: %s", e.SubmissionID, ErrIncompleteData, strings.Join(e.Codes(), ", "))
}

func (e *IncompleteDataError) Unwrap() error {
	return ErrIncompleteData
}

// Codes returns the diagnostic codes in order.
func (e *IncompleteDataError) Codes() []string {
	codes := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		codes[i] = d.Code
	}
	return codes
}
