// Package hub holds the read-only submission snapshot that P1-PIO messages
// are built from, plus helper functions for working with it.
//
// Localized values are already resolved to plain strings by the time they
// reach these types; parsers in the format packages do that at the
// boundary.
package hub

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// ArticleTextGenreKey is the genre key OJS gives to the article text.
const ArticleTextGenreKey = "SUBMISSION"

// Submission is a snapshot of one submission and its current publication.
type Submission struct {
	ID            int64
	ContextID     int64
	Locale        string
	Title         string
	LicenseURL    string
	DateSubmitted string // YYYY-MM-DD or empty

	Publication *Publication
	Authors     []*Author
	Galleys     []*Galley
	Journal     *Journal
}

// Publication is the current publication of a submission.
type Publication struct {
	ID               int64
	SubmissionID     int64
	DOI              string
	PrimaryContactID int64
	DatePublished    string // YYYY-MM-DD or empty
}

// Author is a contributor of the current publication.
type Author struct {
	ID          int64
	FamilyName  string
	GivenName   string
	Affiliation string
	ORCID       string
	Email       string
	Seq         int

	// Extra holds plugin-provided author data, such as the ROR id.
	Extra *structpb.Struct
}

// Journal is the context a submission belongs to.
type Journal struct {
	ID            int64
	Name          string
	OnlineISSN    string
	PrintISSN     string
	PrimaryLocale string
	Genres        []Genre
}

// Genre is a submission file classification configured by the journal.
type Genre struct {
	ID  int64
	Key string
}

// Galley is a published representation of the article.
type Galley struct {
	ID     int64
	Locale string
	Label  string

	// File is nil for remote galleys.
	File *SubmissionFile
}

// SubmissionFile is the file behind a galley.
type SubmissionFile struct {
	ID      int64
	GenreID int64
}

// NewSubmission creates a new empty Submission.
func NewSubmission() *Submission {
	return &Submission{
		Publication: &Publication{},
		Authors:     make([]*Author, 0),
		Galleys:     make([]*Galley, 0),
		Journal:     &Journal{},
	}
}
