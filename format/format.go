// Package format defines the interface for submission snapshot parsers.
package format

import (
	"io"

	"github.com/lepidus/oaswitchboard/hub"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "ojs", "fixture")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can parse input into submission snapshots.
type Parser interface {
	Format

	// Parse reads input and returns one snapshot per submission found.
	Parse(r io.Reader, opts *ParseOptions) ([]*hub.Submission, error)
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// Locale is tried first when resolving localized values
	Locale string

	// StripHTML removes HTML from titles
	StripHTML bool

	// SourceName is an identifier for the source (for error messages)
	SourceName string
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{
		StripHTML: true,
	}
}

// Locales returns the locale preference for a submission: the requested
// locale, then the submission locale, then the journal primary locale.
func (o *ParseOptions) Locales(submissionLocale, primaryLocale string) []string {
	var locales []string
	if o != nil && o.Locale != "" {
		locales = append(locales, o.Locale)
	}
	return append(locales, submissionLocale, primaryLocale)
}
