// Package ojs provides a format plugin for submission snapshots exported
// from the OJS REST API.
//
// A document holds one object, or an array of objects, of the form
//
//	{"submission": {...}, "context": {...}}
//
// where submission is the OJS submission resource (with its publications
// and, optionally, submission files) and context is the journal resource
// extended with its genres.
package ojs

import (
	"bytes"

	"github.com/lepidus/oaswitchboard/format"
)

// Format implements the OJS JSON format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "ojs"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "OJS REST API submission and context JSON"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse returns true if the input looks like an OJS snapshot.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || (peek[0] != '{' && peek[0] != '[') {
		return false
	}
	return bytes.Contains(peek, []byte(`"submission"`))
}

func init() {
	format.Register(&Format{})
}
