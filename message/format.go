package message

import (
	"strconv"

	"github.com/lepidus/oaswitchboard/hub"
	"github.com/lepidus/oaswitchboard/mapping"
)

// Format assembles the message for a submission. It never fails: missing
// data yields empty fields that Validate reports.
func Format(s *hub.Submission, p *mapping.Profile) Message {
	if p == nil {
		p = mapping.DefaultProfile()
	} else {
		p = p.Clone()
		p.ApplyDefaults()
	}

	authors := hub.SortedAuthors(s)
	msg := Message{
		Header: formatHeader(authors, p),
		Data: Data{
			Timing:  p.Timing,
			Authors: formatAuthors(s, authors, p),
			Article: formatArticle(s, p),
			Journal: formatJournal(s.Journal, p),
		},
	}
	return msg
}

func formatHeader(authors []*hub.Author, p *mapping.Profile) Header {
	h := Header{
		Type:       p.Header.Type,
		Version:    p.Header.Version,
		Persistent: p.IsPersistent(),
		PIO:        p.IsPIO(),
	}
	if p.UsesRecipient() {
		// No fallback: a first author without ROR yields an empty address.
		h.To = &Address{}
		if len(authors) > 0 {
			h.To.Address = hub.RORID(authors[0])
		}
	}
	return h
}

func formatAuthors(s *hub.Submission, authors []*hub.Author, p *mapping.Profile) []Author {
	out := make([]Author, 0, len(authors))
	for _, a := range authors {
		entry := Author{
			LastName:    a.FamilyName,
			FirstName:   a.GivenName,
			Affiliation: a.Affiliation,
			Institutions: []Institution{{
				Name: a.Affiliation,
				ROR:  hub.RORID(a),
			}},
		}
		if p.Authors.Extended {
			entry.ORCID = a.ORCID
			entry.Email = a.Email
			corresponding := hub.IsCorrespondingAuthor(s, a)
			entry.IsCorrespondingAuthor = &corresponding
			entry.ListingOrder = a.Seq + 1
		}
		out = append(out, entry)
	}
	return out
}

func formatArticle(s *hub.Submission, p *mapping.Profile) Article {
	article := Article{
		Title: s.Title,
		DOI:   hub.DOIURL(p.Article.DOIBaseURL, hub.GetDOI(s)),
		Type:  p.Article.Type,
		VOR: VOR{
			Publication: p.Article.PublicationPolicy,
			License:     hub.LicenseAcronym(s.LicenseURL),
		},
		SubmissionID: strconv.FormatInt(s.ID, 10),
	}

	var manuscript Manuscript
	if p.Article.ManuscriptID {
		if g := hub.ManuscriptGalley(s); g != nil {
			manuscript.ID = strconv.FormatInt(g.File.ID, 10)
		}
	}
	if p.Article.ManuscriptDates {
		dates := ManuscriptDates{Submission: s.DateSubmitted}
		if s.Publication != nil {
			dates.Publication = s.Publication.DatePublished
		}
		if dates != (ManuscriptDates{}) {
			manuscript.Dates = &dates
		}
	}
	if manuscript.ID != "" || manuscript.Dates != nil {
		article.Manuscript = &manuscript
	}
	return article
}

func formatJournal(j *hub.Journal, p *mapping.Profile) Journal {
	if j == nil {
		j = &hub.Journal{}
	}
	journal := Journal{
		Name: j.Name,
		ID:   hub.ChooseISSN(j),
	}
	if p.Journal.ISSNFields {
		eissn, issn := j.OnlineISSN, j.PrintISSN
		journal.EISSN = &eissn
		journal.ISSN = &issn
	}
	return journal
}
