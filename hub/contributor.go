package hub

import (
	"strings"
)

// DisplayName returns the name in "Given Family" format.
func DisplayName(a *Author) string {
	var parts []string
	if a.GivenName != "" {
		parts = append(parts, a.GivenName)
	}
	if a.FamilyName != "" {
		parts = append(parts, a.FamilyName)
	}
	return strings.Join(parts, " ")
}
