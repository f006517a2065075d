package fixture

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepidus/oaswitchboard/format"
	"github.com/lepidus/oaswitchboard/helpers"
	"github.com/lepidus/oaswitchboard/hub"
	"github.com/lepidus/oaswitchboard/value"
)

type document struct {
	ID            int64           `yaml:"id"`
	ContextID     int64           `yaml:"context_id"`
	Locale        string          `yaml:"locale"`
	Title         value.Localized `yaml:"title"`
	LicenseURL    string          `yaml:"license_url"`
	DateSubmitted string          `yaml:"date_submitted"`
	Publication   publication     `yaml:"publication"`
	Authors       []author        `yaml:"authors"`
	Galleys       []galley        `yaml:"galleys"`
	Journal       journal         `yaml:"journal"`
}

type publication struct {
	ID               int64  `yaml:"id"`
	DOI              string `yaml:"doi"`
	PrimaryContactID int64  `yaml:"primary_contact_id"`
	DatePublished    string `yaml:"date_published"`
}

type author struct {
	ID          int64           `yaml:"id"`
	GivenName   value.Localized `yaml:"given_name"`
	FamilyName  value.Localized `yaml:"family_name"`
	Affiliation value.Localized `yaml:"affiliation"`
	ORCID       string          `yaml:"orcid"`
	Email       string          `yaml:"email"`
	Seq         int             `yaml:"seq"`
	ROR         string          `yaml:"ror"`
	Extra       map[string]any  `yaml:"extra"`
}

type galley struct {
	ID     int64  `yaml:"id"`
	Locale string `yaml:"locale"`
	Label  string `yaml:"label"`
	File   *struct {
		ID      int64 `yaml:"id"`
		GenreID int64 `yaml:"genre_id"`
	} `yaml:"file"`
}

type journal struct {
	ID            int64           `yaml:"id"`
	Name          value.Localized `yaml:"name"`
	OnlineISSN    string          `yaml:"online_issn"`
	PrintISSN     string          `yaml:"print_issn"`
	PrimaryLocale string          `yaml:"primary_locale"`
	Genres        []struct {
		ID  int64  `yaml:"id"`
		Key string `yaml:"key"`
	} `yaml:"genres"`
}

// Parse reads YAML documents and returns submission snapshots.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Submission, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	dec := yaml.NewDecoder(r)
	var subs []*hub.Submission
	for i := 0; ; i++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", sourceName(opts), i, err)
		}
		subs = append(subs, doc.toHub(opts))
	}
	return subs, nil
}

func sourceName(opts *format.ParseOptions) string {
	if opts.SourceName != "" {
		return opts.SourceName
	}
	return "fixture"
}

func (d *document) toHub(opts *format.ParseOptions) *hub.Submission {
	locales := opts.Locales(d.Locale, d.Journal.PrimaryLocale)

	s := hub.NewSubmission()
	s.ID = d.ID
	s.ContextID = d.ContextID
	if s.ContextID == 0 {
		s.ContextID = d.Journal.ID
	}
	s.Locale = d.Locale
	s.Title = d.Title.Resolve(locales...)
	if opts.StripHTML {
		s.Title = helpers.StripHTML(s.Title)
	}
	s.LicenseURL = d.LicenseURL
	s.DateSubmitted = value.Day(d.DateSubmitted)

	s.Publication = &hub.Publication{
		ID:               d.Publication.ID,
		SubmissionID:     d.ID,
		DOI:              strings.TrimSpace(d.Publication.DOI),
		PrimaryContactID: d.Publication.PrimaryContactID,
		DatePublished:    value.Day(d.Publication.DatePublished),
	}

	for _, a := range d.Authors {
		ha := &hub.Author{
			ID:          a.ID,
			GivenName:   strings.TrimSpace(a.GivenName.Resolve(locales...)),
			FamilyName:  strings.TrimSpace(a.FamilyName.Resolve(locales...)),
			Affiliation: strings.TrimSpace(a.Affiliation.Resolve(locales...)),
			ORCID:       strings.TrimSpace(a.ORCID),
			Email:       strings.TrimSpace(a.Email),
			Seq:         a.Seq,
		}
		for k, v := range a.Extra {
			hub.SetExtra(ha, k, v)
		}
		if a.ROR != "" {
			hub.SetExtra(ha, hub.RORKey, a.ROR)
		}
		s.Authors = append(s.Authors, ha)
	}

	for _, g := range d.Galleys {
		hg := &hub.Galley{ID: g.ID, Locale: g.Locale, Label: g.Label}
		if g.File != nil {
			hg.File = &hub.SubmissionFile{ID: g.File.ID, GenreID: g.File.GenreID}
		}
		s.Galleys = append(s.Galleys, hg)
	}

	s.Journal = &hub.Journal{
		ID:            d.Journal.ID,
		Name:          d.Journal.Name.Resolve(locales...),
		OnlineISSN:    strings.TrimSpace(d.Journal.OnlineISSN),
		PrintISSN:     strings.TrimSpace(d.Journal.PrintISSN),
		PrimaryLocale: d.Journal.PrimaryLocale,
	}
	for _, g := range d.Journal.Genres {
		s.Journal.Genres = append(s.Journal.Genres, hub.Genre{ID: g.ID, Key: g.Key})
	}

	return s
}
