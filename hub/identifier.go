package hub

import (
	"regexp"
	"strings"
)

var (
	doiRegex   = regexp.MustCompile(`^10\.\d{4,}/[^\s]+$`)
	orcidRegex = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	issnRegex  = regexp.MustCompile(`^\d{4}-\d{3}[\dX]$`)
	rorRegex   = regexp.MustCompile(`^0[a-z0-9]{6}\d{2}$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// DOIURL joins a resolver base URL and a raw DOI. An empty DOI yields "".
func DOIURL(baseURL, doi string) string {
	if doi == "" {
		return ""
	}
	return baseURL + doi
}

// NormalizeDOI strips resolver and "doi:" prefixes.
func NormalizeDOI(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "https://doi.org/")
	value = strings.TrimPrefix(value, "http://doi.org/")
	value = strings.TrimPrefix(value, "https://dx.doi.org/")
	value = strings.TrimPrefix(value, "doi:")
	value = strings.TrimPrefix(value, "DOI:")
	return value
}

// NormalizeORCID strips the orcid.org prefix.
func NormalizeORCID(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "https://orcid.org/")
	value = strings.TrimPrefix(value, "http://orcid.org/")
	return value
}

// NormalizeROR strips the ror.org prefix.
func NormalizeROR(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "https://ror.org/")
	value = strings.TrimPrefix(value, "http://ror.org/")
	return value
}

// IsDOI reports whether value is a bare DOI (10.XXXX/...).
func IsDOI(value string) bool {
	return doiRegex.MatchString(value)
}

// IsORCID reports whether value is an ORCID iD, with or without prefix.
func IsORCID(value string) bool {
	return orcidRegex.MatchString(NormalizeORCID(value))
}

// IsISSN reports whether value is an ISSN in XXXX-XXXX form.
func IsISSN(value string) bool {
	return issnRegex.MatchString(strings.ToUpper(strings.TrimSpace(value)))
}

// IsROR reports whether value is a ROR identifier, with or without prefix.
func IsROR(value string) bool {
	return rorRegex.MatchString(NormalizeROR(value))
}

// IsEmail reports whether value looks like a mailbox address.
func IsEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}
