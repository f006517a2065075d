package ojs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lepidus/oaswitchboard/format"
	"github.com/lepidus/oaswitchboard/helpers"
	"github.com/lepidus/oaswitchboard/hub"
	"github.com/lepidus/oaswitchboard/value"
)

// document is one submission with its journal.
type document struct {
	Submission *submission `json:"submission"`
	Context    *journal    `json:"context"`
}

type submission struct {
	ID                   json.RawMessage  `json:"id"`
	ContextID            json.RawMessage  `json:"contextId"`
	Locale               string           `json:"locale"`
	DateSubmitted        string           `json:"dateSubmitted"`
	CurrentPublicationID json.RawMessage  `json:"currentPublicationId"`
	Publications         []publication    `json:"publications"`
	Files                []submissionFile `json:"files"`
}

type publication struct {
	ID               json.RawMessage   `json:"id"`
	SubmissionID     json.RawMessage   `json:"submissionId"`
	FullTitle        value.Localized   `json:"fullTitle"`
	Prefix           value.Localized   `json:"prefix"`
	Title            value.Localized   `json:"title"`
	Subtitle         value.Localized   `json:"subtitle"`
	DOI              json.RawMessage   `json:"pub-id::doi"`
	DOIObject        *doiObject        `json:"doiObject"`
	LicenseURL       string            `json:"licenseUrl"`
	PrimaryContactID json.RawMessage   `json:"primaryContactId"`
	DatePublished    string            `json:"datePublished"`
	Authors          []json.RawMessage `json:"authors"`
	Galleys          []galley          `json:"galleys"`
}

type doiObject struct {
	DOI string `json:"doi"`
}

type galley struct {
	ID               json.RawMessage `json:"id"`
	Locale           string          `json:"locale"`
	Label            value.Localized `json:"label"`
	SubmissionFileID json.RawMessage `json:"submissionFileId"`
	File             *submissionFile `json:"file"`
}

type submissionFile struct {
	ID      json.RawMessage `json:"id"`
	GenreID json.RawMessage `json:"genreId"`
}

type journal struct {
	ID            json.RawMessage `json:"id"`
	Name          value.Localized `json:"name"`
	OnlineISSN    string          `json:"onlineIssn"`
	PrintISSN     string          `json:"printIssn"`
	PrimaryLocale string          `json:"primaryLocale"`
	LicenseURL    string          `json:"licenseUrl"`
	Genres        []genre         `json:"genres"`
}

type genre struct {
	ID  json.RawMessage `json:"id"`
	Key string          `json:"key"`
}

// authorKeys are the author properties mapped onto hub.Author fields.
// Everything else lands in the author's extras.
var authorKeys = map[string]bool{
	"id": true, "givenName": true, "familyName": true, "affiliation": true,
	"orcid": true, "email": true, "seq": true,
}

// Parse reads OJS JSON and returns submission snapshots.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Submission, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading OJS JSON: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var docs []document
	if data[0] == '[' {
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parsing OJS JSON array: %w", err)
		}
	} else {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing OJS JSON: %w", err)
		}
		docs = []document{doc}
	}

	subs := make([]*hub.Submission, 0, len(docs))
	for i, doc := range docs {
		s, err := doc.toHub(opts)
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", sourceName(opts), i, err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func sourceName(opts *format.ParseOptions) string {
	if opts.SourceName != "" {
		return opts.SourceName
	}
	return "ojs"
}

func (d document) toHub(opts *format.ParseOptions) (*hub.Submission, error) {
	if d.Submission == nil {
		return nil, fmt.Errorf("missing submission object")
	}
	src := d.Submission
	jc := d.Context
	if jc == nil {
		jc = &journal{}
	}

	s := hub.NewSubmission()
	s.ID = value.ID(src.ID)
	s.ContextID = value.ID(src.ContextID)
	s.Locale = src.Locale
	s.DateSubmitted = value.Day(src.DateSubmitted)
	locales := opts.Locales(src.Locale, jc.PrimaryLocale)

	s.Journal = &hub.Journal{
		ID:            value.ID(jc.ID),
		Name:          jc.Name.Resolve(locales...),
		OnlineISSN:    strings.TrimSpace(jc.OnlineISSN),
		PrintISSN:     strings.TrimSpace(jc.PrintISSN),
		PrimaryLocale: jc.PrimaryLocale,
	}
	if s.ContextID == 0 {
		s.ContextID = s.Journal.ID
	}
	for _, g := range jc.Genres {
		s.Journal.Genres = append(s.Journal.Genres, hub.Genre{ID: value.ID(g.ID), Key: g.Key})
	}

	pub := src.currentPublication()
	if pub == nil {
		s.LicenseURL = jc.LicenseURL
		return s, nil
	}

	s.Publication = &hub.Publication{
		ID:               value.ID(pub.ID),
		SubmissionID:     value.ID(pub.SubmissionID),
		DOI:              pub.doi(),
		PrimaryContactID: value.ID(pub.PrimaryContactID),
		DatePublished:    value.Day(pub.DatePublished),
	}
	if s.Publication.SubmissionID == 0 {
		s.Publication.SubmissionID = s.ID
	}

	s.Title = pub.title(locales)
	if opts.StripHTML {
		s.Title = helpers.StripHTML(s.Title)
	}

	s.LicenseURL = pub.LicenseURL
	if s.LicenseURL == "" {
		s.LicenseURL = jc.LicenseURL
	}

	for i, raw := range pub.Authors {
		a, err := parseAuthor(raw, locales)
		if err != nil {
			return nil, fmt.Errorf("author %d: %w", i, err)
		}
		s.Authors = append(s.Authors, a)
	}

	files := make(map[int64]*hub.SubmissionFile, len(src.Files))
	for _, sf := range src.Files {
		f := sf.toHub()
		files[f.ID] = f
	}
	for _, g := range pub.Galleys {
		s.Galleys = append(s.Galleys, g.toHub(files, locales))
	}

	return s, nil
}

// currentPublication returns the publication named by
// currentPublicationId, else the last one.
func (s *submission) currentPublication() *publication {
	if len(s.Publications) == 0 {
		return nil
	}
	if id := value.ID(s.CurrentPublicationID); id != 0 {
		for i := range s.Publications {
			if value.ID(s.Publications[i].ID) == id {
				return &s.Publications[i]
			}
		}
	}
	return &s.Publications[len(s.Publications)-1]
}

func (p *publication) doi() string {
	if doi := strings.TrimSpace(value.String(p.DOI)); doi != "" {
		return doi
	}
	if p.DOIObject != nil {
		return strings.TrimSpace(p.DOIObject.DOI)
	}
	return ""
}

// title returns the full title, or one assembled from prefix, title and
// subtitle when the export has no fullTitle.
func (p *publication) title(locales []string) string {
	if full := p.FullTitle.Resolve(locales...); full != "" {
		return full
	}
	title := strings.TrimSpace(p.Title.Resolve(locales...))
	if prefix := strings.TrimSpace(p.Prefix.Resolve(locales...)); prefix != "" {
		title = prefix + " " + title
	}
	if subtitle := strings.TrimSpace(p.Subtitle.Resolve(locales...)); subtitle != "" {
		title += ": " + subtitle
	}
	return title
}

func (f submissionFile) toHub() *hub.SubmissionFile {
	return &hub.SubmissionFile{ID: value.ID(f.ID), GenreID: value.ID(f.GenreID)}
}

func (g galley) toHub(files map[int64]*hub.SubmissionFile, locales []string) *hub.Galley {
	out := &hub.Galley{
		ID:     value.ID(g.ID),
		Locale: g.Locale,
		Label:  g.Label.Resolve(locales...),
	}
	switch {
	case g.File != nil:
		out.File = g.File.toHub()
	default:
		if id := value.ID(g.SubmissionFileID); id != 0 {
			if f, ok := files[id]; ok {
				c := *f
				out.File = &c
			} else {
				out.File = &hub.SubmissionFile{ID: id}
			}
		}
	}
	return out
}

func parseAuthor(raw json.RawMessage, locales []string) (*hub.Author, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parsing author: %w", err)
	}

	localized := func(key string) (string, error) {
		var l value.Localized
		if v, ok := fields[key]; ok {
			if err := json.Unmarshal(v, &l); err != nil {
				return "", fmt.Errorf("%s: %w", key, err)
			}
		}
		return strings.TrimSpace(l.Resolve(locales...)), nil
	}

	a := &hub.Author{
		ID:    value.ID(fields["id"]),
		ORCID: strings.TrimSpace(value.String(fields["orcid"])),
		Email: strings.TrimSpace(value.String(fields["email"])),
		Seq:   int(value.ID(fields["seq"])),
	}
	var err error
	if a.GivenName, err = localized("givenName"); err != nil {
		return nil, err
	}
	if a.FamilyName, err = localized("familyName"); err != nil {
		return nil, err
	}
	if a.Affiliation, err = localized("affiliation"); err != nil {
		return nil, err
	}

	for key, v := range fields {
		if authorKeys[key] {
			continue
		}
		if x, ok := value.Any(v); ok {
			hub.SetExtra(a, key, x)
		}
	}
	return a, nil
}
