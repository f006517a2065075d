// Package fixture provides a format plugin for hand-written YAML
// submission snapshots. A file may hold several documents separated by
// "---".
package fixture

import (
	"bytes"

	"github.com/lepidus/oaswitchboard/format"
)

// Format implements the YAML fixture format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "fixture"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "YAML submission snapshot"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"yaml", "yml"}
}

// CanParse returns true if the input looks like a YAML snapshot.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] == '{' || peek[0] == '[' || peek[0] == '<' {
		return false
	}
	return bytes.Contains(peek, []byte("publication:")) || bytes.Contains(peek, []byte("authors:"))
}

func init() {
	format.Register(&Format{})
}
