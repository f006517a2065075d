package hub

import (
	"sort"
	"strings"
)

// SortedAuthors returns the authors ordered by their sequence index.
// Authors sharing an index keep their input order.
func SortedAuthors(s *Submission) []*Author {
	authors := make([]*Author, 0, len(s.Authors))
	for _, a := range s.Authors {
		if a != nil {
			authors = append(authors, a)
		}
	}
	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].Seq < authors[j].Seq
	})
	return authors
}

// GetDOI returns the raw DOI of the current publication, or "".
func GetDOI(s *Submission) string {
	if s.Publication == nil {
		return ""
	}
	return s.Publication.DOI
}

// IsCorrespondingAuthor reports whether a is the publication's primary contact.
func IsCorrespondingAuthor(s *Submission, a *Author) bool {
	if s.Publication == nil || a == nil || s.Publication.PrimaryContactID == 0 {
		return false
	}
	return s.Publication.PrimaryContactID == a.ID
}

// ChooseISSN returns the online ISSN when set, else the print ISSN, else "".
// Blank values count as unset.
func ChooseISSN(j *Journal) string {
	if j == nil {
		return ""
	}
	if issn := strings.TrimSpace(j.OnlineISSN); issn != "" {
		return issn
	}
	return strings.TrimSpace(j.PrintISSN)
}

// ArticleTextGenre returns the journal's article text genre.
func ArticleTextGenre(j *Journal) (Genre, bool) {
	if j == nil {
		return Genre{}, false
	}
	for _, g := range j.Genres {
		if g.Key == ArticleTextGenreKey {
			return g, true
		}
	}
	return Genre{}, false
}

// ArticleTextGalleys returns the galleys whose file is classified with the
// journal's article text genre.
func ArticleTextGalleys(s *Submission) []*Galley {
	genre, ok := ArticleTextGenre(s.Journal)
	if !ok {
		return nil
	}
	var result []*Galley
	for _, g := range s.Galleys {
		if g != nil && g.File != nil && g.File.GenreID == genre.ID {
			result = append(result, g)
		}
	}
	return result
}

// ManuscriptGalley picks the article text galley that identifies the
// manuscript. With several candidates only one in the journal's primary
// locale qualifies; nil means no manuscript id should be emitted.
func ManuscriptGalley(s *Submission) *Galley {
	galleys := ArticleTextGalleys(s)
	switch len(galleys) {
	case 0:
		return nil
	case 1:
		return galleys[0]
	}

	if s.Journal == nil {
		return nil
	}
	for _, g := range galleys {
		if g.Locale == s.Journal.PrimaryLocale {
			return g
		}
	}
	return nil
}
