package hub

import (
	"strings"
)

// licensePrefixes maps Creative Commons license URL prefixes, without
// scheme and "www.", to their acronyms.
var licensePrefixes = []struct {
	prefix  string
	acronym string
}{
	{"creativecommons.org/licenses/by-nc-nd/", "CC BY-NC-ND"},
	{"creativecommons.org/licenses/by-nc-sa/", "CC BY-NC-SA"},
	{"creativecommons.org/licenses/by-nc/", "CC BY-NC"},
	{"creativecommons.org/licenses/by-nd/", "CC BY-ND"},
	{"creativecommons.org/licenses/by-sa/", "CC BY-SA"},
	{"creativecommons.org/licenses/by/", "CC BY"},
	{"creativecommons.org/publicdomain/zero/", "CC0"},
}

// normalizeLicenseURL lowercases the URL and strips the scheme and "www.",
// always ending it with a slash so bare paths still match a prefix.
func normalizeLicenseURL(url string) string {
	u := strings.ToLower(strings.TrimSpace(url))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// LicenseAcronym returns the short code for a license URL, e.g.
// "https://creativecommons.org/licenses/by-nc-nd/4.0/" -> "CC BY-NC-ND".
// The longest matching prefix wins; unknown or empty URLs yield "".
func LicenseAcronym(url string) string {
	if strings.TrimSpace(url) == "" {
		return ""
	}
	u := normalizeLicenseURL(url)

	best, bestLen := "", 0
	for _, lp := range licensePrefixes {
		if strings.HasPrefix(u, lp.prefix) && len(lp.prefix) > bestLen {
			best, bestLen = lp.acronym, len(lp.prefix)
		}
	}
	return best
}

// IsOpenAccess returns true if the license URL is a known open license.
func IsOpenAccess(url string) bool {
	return LicenseAcronym(url) != ""
}
