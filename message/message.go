// Package message builds and validates P1-PIO notification messages.
//
// A Message is assembled from a hub.Submission snapshot by Format, checked
// by Validate, and owned by an Envelope once both succeed. The wire shape
// follows the Switchboard P1-PIO schema; which optional fields appear is
// selected by a mapping.Profile.
package message

// Message is a P1-PIO message.
type Message struct {
	Header Header `json:"header"`
	Data   Data   `json:"data"`
}

// Header is the message routing header.
type Header struct {
	// To is set only when the profile addresses a recipient.
	To         *Address `json:"to,omitempty"`
	Type       string   `json:"type"`
	Version    string   `json:"version"`
	Persistent bool     `json:"persistent"`
	PIO        bool     `json:"pio"`
}

// Address is a message recipient.
type Address struct {
	Address string `json:"address"`
}

// Data is the message payload.
type Data struct {
	Timing  string   `json:"timing"`
	Authors []Author `json:"authors"`
	Article Article  `json:"article"`
	Journal Journal  `json:"journal"`
}

// Author is one entry of data.authors.
type Author struct {
	LastName              string        `json:"lastName"`
	FirstName             string        `json:"firstName"`
	ORCID                 string        `json:"orcid,omitempty"`
	Email                 string        `json:"email,omitempty"`
	IsCorrespondingAuthor *bool         `json:"isCorrespondingAuthor,omitempty"`
	ListingOrder          int           `json:"listingorder,omitempty"`
	Affiliation           string        `json:"affiliation"`
	Institutions          []Institution `json:"institutions"`
}

// Institution is an author's institution.
type Institution struct {
	Name string `json:"name"`
	ROR  string `json:"ror"`
}

// Article is data.article.
type Article struct {
	Title        string      `json:"title"`
	DOI          string      `json:"doi"`
	Type         string      `json:"type"`
	VOR          VOR         `json:"vor"`
	SubmissionID string      `json:"submissionId"`
	Manuscript   *Manuscript `json:"manuscript,omitempty"`
}

// VOR is the version-of-record open access block.
type VOR struct {
	Publication string `json:"publication"`
	License     string `json:"license"`
}

// Manuscript identifies the accepted manuscript.
type Manuscript struct {
	Dates *ManuscriptDates `json:"dates,omitempty"`
	ID    string           `json:"id,omitempty"`
}

// ManuscriptDates are YYYY-MM-DD milestones of the manuscript.
type ManuscriptDates struct {
	Submission  string `json:"submission,omitempty"`
	Publication string `json:"publication,omitempty"`
}

// Journal is data.journal.
type Journal struct {
	Name  string  `json:"name"`
	ID    string  `json:"id,omitempty"`
	EISSN *string `json:"eissn,omitempty"`
	ISSN  *string `json:"issn,omitempty"`
}

// clone returns a deep copy of m.
func (m Message) clone() Message {
	c := m
	if m.Header.To != nil {
		to := *m.Header.To
		c.Header.To = &to
	}
	c.Data.Authors = cloneAuthors(m.Data.Authors)
	c.Data.Article = m.Data.Article.clone()
	c.Data.Journal = m.Data.Journal.clone()
	return c
}

func cloneAuthors(authors []Author) []Author {
	out := make([]Author, len(authors))
	for i, a := range authors {
		out[i] = a.clone()
	}
	return out
}

func (a Author) clone() Author {
	c := a
	if a.IsCorrespondingAuthor != nil {
		v := *a.IsCorrespondingAuthor
		c.IsCorrespondingAuthor = &v
	}
	if a.Institutions != nil {
		c.Institutions = append([]Institution(nil), a.Institutions...)
	}
	return c
}

func (a Article) clone() Article {
	c := a
	if a.Manuscript != nil {
		m := *a.Manuscript
		if a.Manuscript.Dates != nil {
			d := *a.Manuscript.Dates
			m.Dates = &d
		}
		c.Manuscript = &m
	}
	return c
}

func (j Journal) clone() Journal {
	c := j
	if j.EISSN != nil {
		v := *j.EISSN
		c.EISSN = &v
	}
	if j.ISSN != nil {
		v := *j.ISSN
		c.ISSN = &v
	}
	return c
}
