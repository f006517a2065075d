package message

import (
	"fmt"
	"strings"

	"github.com/lepidus/oaswitchboard/mapping"
)

// Diagnostic codes, one per missing mandatory datum.
const (
	CodeRecipient   = "recipient"
	CodeFamilyName  = "familyName"
	CodeAffiliation = "affiliation"
	CodeDOI         = "doi"
	CodeISSN        = "issn"
)

// Diagnostic reports one missing mandatory field.
type Diagnostic struct {
	Code    string // One of the Code* constants
	Field   string // Field path (e.g., "data.authors[1].lastName")
	Message string // Human-readable message
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Field, d.Message)
}

// Validate reports every missing mandatory field of msg, in check order:
// recipient, then each author's last name and affiliation, then DOI and
// ISSN. An empty result means the message may be sent.
func Validate(msg Message, p *mapping.Profile) []Diagnostic {
	if p == nil {
		p = mapping.DefaultProfile()
	}
	var diags []Diagnostic

	if p.UsesRecipient() && (msg.Header.To == nil || blank(msg.Header.To.Address)) {
		diags = append(diags, Diagnostic{
			Code:    CodeRecipient,
			Field:   "header.to.address",
			Message: "first author has no institution ROR id",
		})
	}

	for i, a := range msg.Data.Authors {
		field := fmt.Sprintf("data.authors[%d]", i)
		if blank(a.LastName) {
			diags = append(diags, Diagnostic{
				Code:    CodeFamilyName,
				Field:   field + ".lastName",
				Message: fmt.Sprintf("author %d has no family name", i+1),
			})
		}
		if blank(a.Affiliation) {
			diags = append(diags, Diagnostic{
				Code:    CodeAffiliation,
				Field:   field + ".affiliation",
				Message: fmt.Sprintf("author %d has no affiliation", i+1),
			})
		}
	}

	if blank(msg.Data.Article.DOI) {
		diags = append(diags, Diagnostic{
			Code:    CodeDOI,
			Field:   "data.article.doi",
			Message: "article has no DOI",
		})
	}

	if blank(msg.Data.Journal.ID) {
		diags = append(diags, Diagnostic{
			Code:    CodeISSN,
			Field:   "data.journal.id",
			Message: "journal has neither an online nor a print ISSN",
		})
	}

	return diags
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
