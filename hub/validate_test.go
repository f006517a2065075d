package hub

import (
	"strings"
	"testing"
)

func newCheckedSubmission() *Submission {
	s := newGalleySubmission()
	s.LicenseURL = "https://creativecommons.org/licenses/by/4.0/"
	s.Publication.DOI = "10.1234/mearth.0001"
	s.Journal.OnlineISSN = "0000-0001"
	s.Journal.PrintISSN = "0000-000X"
	a := &Author{ID: 1, FamilyName: "Castanheiras", ORCID: "https://orcid.org/0000-0002-1825-0097", Email: "iris@lepidus.com.br"}
	SetExtra(a, RORKey, "https://ror.org/04dkp9463")
	s.Authors = []*Author{a}
	s.Galleys = []*Galley{{ID: 1, Locale: "en_US", File: &SubmissionFile{ID: 10, GenreID: 1}}}
	return s
}

func codesByField(ws []ValidationError) map[string]string {
	m := make(map[string]string, len(ws))
	for _, w := range ws {
		m[w.Field] = w.Code
	}
	return m
}

func TestCheck_Clean(t *testing.T) {
	if ws := Check(newCheckedSubmission()); len(ws) != 0 {
		t.Errorf("expected no warnings, got %v", ws)
	}
}

func TestCheck_Findings(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
		wantCode  string
	}{
		{"prefixed doi", func(s *Submission) { s.Publication.DOI = "https://doi.org/10.1234/x" }, "publication.doi", CodePrefixed},
		{"malformed doi", func(s *Submission) { s.Publication.DOI = "00.0000/mearth.0000" }, "publication.doi", CodeInvalidFormat},
		{"malformed online issn", func(s *Submission) { s.Journal.OnlineISSN = "12345" }, "journal.onlineIssn", CodeInvalidFormat},
		{"malformed print issn", func(s *Submission) { s.Journal.PrintISSN = "ABCD-EFGH" }, "journal.printIssn", CodeInvalidFormat},
		{"unknown license", func(s *Submission) { s.LicenseURL = "https://example.org/license" }, "licenseUrl", CodeUnknownLicense},
		{"no authors", func(s *Submission) { s.Authors = nil }, "authors", CodeNoAuthors},
		{"bad orcid", func(s *Submission) { s.Authors[0].ORCID = "0000-0000" }, "authors[0].orcid", CodeInvalidFormat},
		{"bad email", func(s *Submission) { s.Authors[0].Email = "not-an-email" }, "authors[0].email", CodeInvalidFormat},
		{"bad ror", func(s *Submission) { SetExtra(s.Authors[0], RORKey, "https://ror.org/xxxxxxxx") }, "authors[0].rorId", CodeInvalidFormat},
		{"no article text", func(s *Submission) { s.Galleys = nil }, "galleys", CodeNoArticleText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newCheckedSubmission()
			tt.mutate(s)
			ws := Check(s)
			if len(ws) != 1 {
				t.Fatalf("expected exactly one warning, got %v", ws)
			}
			got := codesByField(ws)
			if got[tt.wantField] != tt.wantCode {
				t.Errorf("warnings = %v, want %s=%s", got, tt.wantField, tt.wantCode)
			}
		})
	}
}

func TestIdentifierFormats(t *testing.T) {
	if !IsORCID("0000-0002-1825-0097") || !IsORCID("https://orcid.org/0000-0002-1825-009X") {
		t.Error("valid ORCIDs rejected")
	}
	if !IsISSN("0317-8471") || !IsISSN("2049-363x") {
		t.Error("valid ISSNs rejected")
	}
	if !IsROR("https://ror.org/04dkp9463") || !IsROR("04dkp9463") {
		t.Error("valid ROR ids rejected")
	}
	if got := DOIURL("https://doi.org/", "10.1234/abc"); got != "https://doi.org/10.1234/abc" {
		t.Errorf("DOIURL() = %q", got)
	}
	if got := DOIURL("https://doi.org/", ""); got != "" {
		t.Errorf("DOIURL() with empty DOI = %q, want empty", got)
	}
}

func TestCheck_NamesAuthor(t *testing.T) {
	s := newCheckedSubmission()
	s.Authors[0].GivenName = "Iris"
	s.Authors[0].Email = "not-an-address"
	s.Authors = append(s.Authors, &Author{ID: 2, Seq: 1, ORCID: "0000"})

	ws := Check(s)
	if len(ws) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(ws), ws)
	}
	if !strings.Contains(ws[0].Message, "Iris Castanheiras") {
		t.Errorf("message %q does not name the author", ws[0].Message)
	}
	if !strings.HasPrefix(ws[1].Message, "author 2:") {
		t.Errorf("message %q, want the position for an unnamed author", ws[1].Message)
	}
}
