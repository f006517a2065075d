package ojs

import (
	"os"
	"strings"
	"testing"

	"github.com/lepidus/oaswitchboard/format"
	"github.com/lepidus/oaswitchboard/hub"
)

func parseFixture(t *testing.T, opts *format.ParseOptions) *hub.Submission {
	t.Helper()
	data, err := os.ReadFile("testdata/submission.json")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	subs, err := (&Format{}).Parse(strings.NewReader(string(data)), opts)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("Parse() returned %d submissions, want 1", len(subs))
	}
	return subs[0]
}

func TestParse_Submission(t *testing.T) {
	s := parseFixture(t, nil)

	if s.ID != 25 || s.ContextID != 1 || s.Locale != "en_US" {
		t.Errorf("ids/locale = %d/%d/%q", s.ID, s.ContextID, s.Locale)
	}
	if s.Title != "The International relations of Middle-Earth" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.LicenseURL != "https://creativecommons.org/licenses/by-nc-nd/4.0/" {
		t.Errorf("LicenseURL = %q", s.LicenseURL)
	}
	if s.DateSubmitted != "2021-02-01" {
		t.Errorf("DateSubmitted = %q", s.DateSubmitted)
	}

	p := s.Publication
	if p.ID != 7 || p.DOI != "00.0000/mearth.0000" || p.PrimaryContactID != 2 || p.DatePublished != "2021-04-01" {
		t.Errorf("Publication = %+v", p)
	}

	j := s.Journal
	if j.Name != "Middle Earth papers" || j.OnlineISSN != "0000-0001" || j.PrintISSN != "0000-0002" || j.PrimaryLocale != "en_US" {
		t.Errorf("Journal = %+v", j)
	}
	if genre, ok := hub.ArticleTextGenre(j); !ok || genre.ID != 1 {
		t.Errorf("article text genre = %+v, %v", genre, ok)
	}
}

func TestParse_Authors(t *testing.T) {
	s := parseFixture(t, nil)
	if len(s.Authors) != 2 {
		t.Fatalf("got %d authors", len(s.Authors))
	}

	yves := s.Authors[0]
	if yves.ID != 2 || yves.Seq != 1 || yves.FamilyName != "Amorim" || yves.ORCID != "" {
		t.Errorf("first author = %+v", yves)
	}

	iris := s.Authors[1]
	if iris.GivenName != "Iris" || iris.FamilyName != "Castanheiras" || iris.Affiliation != "Lepidus Tecnologia" {
		t.Errorf("second author = %+v", iris)
	}
	if iris.Email != "castanheirasiris@lepidus.com.br" || iris.ORCID != "https://orcid.org/0000-0000-0000-0000" {
		t.Errorf("contact fields = %q, %q", iris.Email, iris.ORCID)
	}
	if got := hub.RORID(iris); got != "https://ror.org/xxxxxxxxrecipient" {
		t.Errorf("RORID = %q", got)
	}
	if v, ok := hub.GetExtra(iris, "publicationId"); !ok || v != float64(7) {
		t.Errorf("unknown author keys should be kept as extras, got %v, %v", v, ok)
	}
	if _, ok := hub.GetExtra(iris, "familyName"); ok {
		t.Error("mapped keys must not be duplicated into extras")
	}
}

func TestParse_Galleys(t *testing.T) {
	s := parseFixture(t, nil)
	if len(s.Galleys) != 3 {
		t.Fatalf("got %d galleys", len(s.Galleys))
	}
	if g := s.Galleys[2]; g.File == nil || g.File.ID != 32 || g.File.GenreID != 2 {
		t.Errorf("galley file = %+v", g.File)
	}
	if g := hub.ManuscriptGalley(s); g == nil || g.File.ID != 31 {
		t.Errorf("ManuscriptGalley = %+v", g)
	}
}

func TestParse_Locale(t *testing.T) {
	s := parseFixture(t, &format.ParseOptions{Locale: "pt_BR", StripHTML: true})
	if s.Title != "As relações internacionais da Terra Média" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Journal.Name != "Artigos da Terra Média" {
		t.Errorf("Journal.Name = %q", s.Journal.Name)
	}
	if s.Authors[1].GivenName != "Íris" {
		t.Errorf("GivenName = %q", s.Authors[1].GivenName)
	}
}

func TestParse_KeepHTML(t *testing.T) {
	s := parseFixture(t, &format.ParseOptions{})
	if s.Title != "The International relations of <i>Middle-Earth</i>" {
		t.Errorf("Title = %q", s.Title)
	}
}

func TestParse_Variants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, s *hub.Submission)
	}{
		{
			name: "title parts and doi object",
			input: `{"submission": {"id": "3", "publications": [{
				"prefix": "The", "title": "Hobbit", "subtitle": "There and back again",
				"doiObject": {"doi": "10.1234/hobbit"}
			}]}}`,
			check: func(t *testing.T, s *hub.Submission) {
				if s.Title != "The Hobbit: There and back again" {
					t.Errorf("Title = %q", s.Title)
				}
				if s.Publication.DOI != "10.1234/hobbit" {
					t.Errorf("DOI = %q", s.Publication.DOI)
				}
				if s.ID != 3 || s.Publication.SubmissionID != 3 {
					t.Errorf("ids = %d, %d", s.ID, s.Publication.SubmissionID)
				}
			},
		},
		{
			name: "license from context",
			input: `{"submission": {"id": 4, "publications": [{"fullTitle": "Plain"}]},
				"context": {"id": 2, "licenseUrl": "https://creativecommons.org/licenses/by/4.0/"}}`,
			check: func(t *testing.T, s *hub.Submission) {
				if s.LicenseURL != "https://creativecommons.org/licenses/by/4.0/" {
					t.Errorf("LicenseURL = %q", s.LicenseURL)
				}
				if s.ContextID != 2 {
					t.Errorf("ContextID = %d", s.ContextID)
				}
			},
		},
		{
			name:  "embedded galley file",
			input: `{"submission": {"id": 5, "publications": [{"galleys": [{"id": 1, "file": {"id": 9, "genreId": 1}}]}]}}`,
			check: func(t *testing.T, s *hub.Submission) {
				if len(s.Galleys) != 1 || s.Galleys[0].File == nil || s.Galleys[0].File.ID != 9 {
					t.Errorf("Galleys = %+v", s.Galleys)
				}
			},
		},
		{
			name:  "remote galley",
			input: `{"submission": {"id": 6, "publications": [{"galleys": [{"id": 1, "label": "HTML"}]}]}}`,
			check: func(t *testing.T, s *hub.Submission) {
				if len(s.Galleys) != 1 || s.Galleys[0].File != nil {
					t.Errorf("remote galley should have no file: %+v", s.Galleys)
				}
			},
		},
		{
			name:  "no publications",
			input: `{"submission": {"id": 7}}`,
			check: func(t *testing.T, s *hub.Submission) {
				if s.Publication == nil || s.Publication.DOI != "" || len(s.Authors) != 0 {
					t.Errorf("unexpected snapshot: %+v", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, err := (&Format{}).Parse(strings.NewReader(tt.input), nil)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if len(subs) != 1 {
				t.Fatalf("got %d submissions", len(subs))
			}
			tt.check(t, subs[0])
		})
	}
}

func TestParse_Array(t *testing.T) {
	input := `[{"submission": {"id": 1}}, {"submission": {"id": 2}}]`
	subs, err := (&Format{}).Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(subs) != 2 || subs[0].ID != 1 || subs[1].ID != 2 {
		t.Errorf("Parse() = %+v", subs)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{`{"context": {}}`, `{"submission": `, `[{"submission": {"publications": [{"authors": ["x"]}]}}]`} {
		if _, err := (&Format{}).Parse(strings.NewReader(input), nil); err == nil {
			t.Errorf("Parse(%s) should fail", input)
		}
	}
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	if !f.CanParse([]byte(`  {"submission": {}}`)) {
		t.Error("should detect an OJS document")
	}
	if f.CanParse([]byte("id: 1\n")) || f.CanParse([]byte(`{"title": "x"}`)) {
		t.Error("should not detect other documents")
	}
}
