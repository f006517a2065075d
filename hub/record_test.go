package hub

import (
	"testing"
)

func newGalleySubmission() *Submission {
	s := NewSubmission()
	s.Journal = &Journal{
		PrimaryLocale: "en_US",
		Genres: []Genre{
			{ID: 1, Key: ArticleTextGenreKey},
			{ID: 2, Key: "IMAGE"},
		},
	}
	return s
}

func TestSortedAuthors(t *testing.T) {
	s := NewSubmission()
	s.Authors = []*Author{
		{ID: 3, FamilyName: "Gamgee", Seq: 2},
		{ID: 1, FamilyName: "Baggins", Seq: 0},
		nil,
		{ID: 2, FamilyName: "Took", Seq: 1},
		{ID: 4, FamilyName: "Brandybuck", Seq: 1},
	}

	got := SortedAuthors(s)
	want := []int64{1, 2, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d authors, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.ID != want[i] {
			t.Errorf("position %d: author %d, want %d", i, a.ID, want[i])
		}
	}
}

func TestChooseISSN(t *testing.T) {
	tests := []struct {
		name    string
		journal *Journal
		want    string
	}{
		{"online preferred", &Journal{OnlineISSN: "0000-0001", PrintISSN: "0000-0002"}, "0000-0001"},
		{"print fallback", &Journal{PrintISSN: "0000-0002"}, "0000-0002"},
		{"blank online", &Journal{OnlineISSN: "  ", PrintISSN: "0000-0002"}, "0000-0002"},
		{"trimmed", &Journal{OnlineISSN: " 0000-0001 "}, "0000-0001"},
		{"neither", &Journal{}, ""},
		{"nil journal", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseISSN(tt.journal); got != tt.want {
				t.Errorf("ChooseISSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCorrespondingAuthor(t *testing.T) {
	s := NewSubmission()
	s.Publication.PrimaryContactID = 7
	if !IsCorrespondingAuthor(s, &Author{ID: 7}) {
		t.Error("primary contact should be corresponding author")
	}
	if IsCorrespondingAuthor(s, &Author{ID: 8}) {
		t.Error("other author should not be corresponding author")
	}

	s.Publication.PrimaryContactID = 0
	if IsCorrespondingAuthor(s, &Author{}) {
		t.Error("unset primary contact should match nobody")
	}
}

func TestManuscriptGalley(t *testing.T) {
	tests := []struct {
		name    string
		galleys []*Galley
		wantID  int64 // 0 means no galley
	}{
		{
			name:    "no galleys",
			galleys: nil,
		},
		{
			name: "only non article text",
			galleys: []*Galley{
				{ID: 1, Locale: "en_US", File: &SubmissionFile{ID: 10, GenreID: 2}},
			},
		},
		{
			name: "remote galley has no file",
			galleys: []*Galley{
				{ID: 1, Locale: "en_US"},
			},
		},
		{
			name: "single article text in other locale",
			galleys: []*Galley{
				{ID: 1, Locale: "pt_BR", File: &SubmissionFile{ID: 11, GenreID: 1}},
			},
			wantID: 11,
		},
		{
			name: "several, one in primary locale",
			galleys: []*Galley{
				{ID: 1, Locale: "pt_BR", File: &SubmissionFile{ID: 11, GenreID: 1}},
				{ID: 2, Locale: "en_US", File: &SubmissionFile{ID: 12, GenreID: 1}},
			},
			wantID: 12,
		},
		{
			name: "several, none in primary locale",
			galleys: []*Galley{
				{ID: 1, Locale: "pt_BR", File: &SubmissionFile{ID: 11, GenreID: 1}},
				{ID: 2, Locale: "es_ES", File: &SubmissionFile{ID: 12, GenreID: 1}},
			},
		},
		{
			name: "image galley ignored when counting",
			galleys: []*Galley{
				{ID: 1, Locale: "pt_BR", File: &SubmissionFile{ID: 11, GenreID: 1}},
				{ID: 2, Locale: "en_US", File: &SubmissionFile{ID: 12, GenreID: 2}},
			},
			wantID: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newGalleySubmission()
			s.Galleys = tt.galleys
			g := ManuscriptGalley(s)
			switch {
			case tt.wantID == 0 && g != nil:
				t.Errorf("expected no galley, got file %d", g.File.ID)
			case tt.wantID != 0 && g == nil:
				t.Errorf("expected galley with file %d, got none", tt.wantID)
			case tt.wantID != 0 && g.File.ID != tt.wantID:
				t.Errorf("galley file = %d, want %d", g.File.ID, tt.wantID)
			}
		})
	}
}

func TestManuscriptGalley_NoArticleTextGenre(t *testing.T) {
	s := NewSubmission()
	s.Journal = &Journal{PrimaryLocale: "en_US"}
	s.Galleys = []*Galley{{ID: 1, Locale: "en_US", File: &SubmissionFile{ID: 10, GenreID: 1}}}
	if g := ManuscriptGalley(s); g != nil {
		t.Errorf("expected no galley without an article text genre, got %v", g)
	}
}

func TestAuthorExtras(t *testing.T) {
	a := &Author{}
	if RORID(a) != "" {
		t.Error("RORID of author without extras should be empty")
	}

	SetExtra(a, RORKey, "https://ror.org/04dkp9463")
	SetExtra(a, "affiliationCount", 2)
	if got := RORID(a); got != "https://ror.org/04dkp9463" {
		t.Errorf("RORID() = %q", got)
	}
	if got := GetExtraString(a, "affiliationCount"); got != "" {
		t.Errorf("non-string extra read as string: %q", got)
	}
	if v, ok := GetExtra(a, "affiliationCount"); !ok || v.(float64) != 2 {
		t.Errorf("affiliationCount = %v", v)
	}
}
