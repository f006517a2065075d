package hub

import (
	"fmt"
)

// ValidationError represents a data-quality finding with context.
type ValidationError struct {
	Field   string // Field path (e.g., "authors[0].orcid")
	Code    string // Finding code (e.g., "invalid_format")
	Message string // Human-readable message
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Finding codes reported by Check.
const (
	CodeInvalidFormat  = "invalid_format"
	CodePrefixed       = "prefixed"
	CodeUnknownLicense = "unknown_license"
	CodeNoAuthors      = "no_authors"
	CodeNoArticleText  = "no_article_text"
)

// Check reports non-fatal data-quality warnings for a submission: values
// that are present but malformed. Missing mandatory data is the message
// validator's concern, not this one's.
func Check(s *Submission) []ValidationError {
	var warnings []ValidationError

	if doi := GetDOI(s); doi != "" {
		switch {
		case NormalizeDOI(doi) != doi:
			warnings = append(warnings, ValidationError{
				Field:   "publication.doi",
				Code:    CodePrefixed,
				Message: fmt.Sprintf("DOI %q carries a resolver prefix; the message prepends its own", doi),
			})
		case !IsDOI(doi):
			warnings = append(warnings, ValidationError{
				Field:   "publication.doi",
				Code:    CodeInvalidFormat,
				Message: fmt.Sprintf("invalid DOI format: %s (expected 10.XXXX/...)", doi),
			})
		}
	}

	if s.Journal != nil {
		issns := []struct{ field, value string }{
			{"journal.onlineIssn", s.Journal.OnlineISSN},
			{"journal.printIssn", s.Journal.PrintISSN},
		}
		for _, issn := range issns {
			if issn.value != "" && !IsISSN(issn.value) {
				warnings = append(warnings, ValidationError{
					Field:   issn.field,
					Code:    CodeInvalidFormat,
					Message: fmt.Sprintf("invalid ISSN format: %s (expected XXXX-XXXX)", issn.value),
				})
			}
		}
	}

	if s.LicenseURL != "" && !IsOpenAccess(s.LicenseURL) {
		warnings = append(warnings, ValidationError{
			Field:   "licenseUrl",
			Code:    CodeUnknownLicense,
			Message: fmt.Sprintf("no license acronym known for %s", s.LicenseURL),
		})
	}

	authors := SortedAuthors(s)
	if len(authors) == 0 {
		warnings = append(warnings, ValidationError{
			Field:   "authors",
			Code:    CodeNoAuthors,
			Message: "submission has no authors",
		})
	}
	for i, a := range authors {
		warnings = append(warnings, checkAuthor(a, i)...)
	}

	if len(ArticleTextGalleys(s)) == 0 {
		warnings = append(warnings, ValidationError{
			Field:   "galleys",
			Code:    CodeNoArticleText,
			Message: "no galley holds the article text; the manuscript id will be omitted",
		})
	}

	return warnings
}

func checkAuthor(a *Author, index int) []ValidationError {
	var errs []ValidationError
	field := fmt.Sprintf("authors[%d]", index)
	name := DisplayName(a)
	if name == "" {
		name = fmt.Sprintf("author %d", index+1)
	}

	if a.ORCID != "" && !IsORCID(a.ORCID) {
		errs = append(errs, ValidationError{
			Field:   field + ".orcid",
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%s: invalid ORCID format: %s (expected XXXX-XXXX-XXXX-XXXX)", name, a.ORCID),
		})
	}
	if a.Email != "" && !IsEmail(a.Email) {
		errs = append(errs, ValidationError{
			Field:   field + ".email",
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%s: invalid email address: %s", name, a.Email),
		})
	}
	if ror := RORID(a); ror != "" && !IsROR(ror) {
		errs = append(errs, ValidationError{
			Field:   field + "." + RORKey,
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%s: invalid ROR identifier: %s", name, ror),
		})
	}
	return errs
}
