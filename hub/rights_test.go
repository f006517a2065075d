package hub

import "testing"

func TestLicenseAcronym(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://creativecommons.org/licenses/by-nc-nd/4.0/", "CC BY-NC-ND"},
		{"https://creativecommons.org/licenses/by-nc-sa/4.0/", "CC BY-NC-SA"},
		{"https://creativecommons.org/licenses/by-nc/4.0/", "CC BY-NC"},
		{"https://creativecommons.org/licenses/by-nd/4.0/", "CC BY-ND"},
		{"https://creativecommons.org/licenses/by-sa/4.0/", "CC BY-SA"},
		{"https://creativecommons.org/licenses/by/4.0/", "CC BY"},
		{"http://creativecommons.org/licenses/by/3.0", "CC BY"},
		{"https://www.creativecommons.org/licenses/by-nc/4.0/deed.en", "CC BY-NC"},
		{"HTTPS://CREATIVECOMMONS.ORG/LICENSES/BY-ND/4.0/", "CC BY-ND"},
		{"https://creativecommons.org/licenses/by-nc-nd", "CC BY-NC-ND"},
		{"https://creativecommons.org/publicdomain/zero/1.0/", "CC0"},
		{"https://creativecommons.org/licenses/by/4.0/?lang=pt", "CC BY"},
		{"https://example.org/license", ""},
		{"https://creativecommons.org/licenses/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := LicenseAcronym(tt.url); got != tt.want {
				t.Errorf("LicenseAcronym(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsOpenAccess(t *testing.T) {
	if !IsOpenAccess("https://creativecommons.org/licenses/by/4.0/") {
		t.Error("CC BY should be open access")
	}
	if IsOpenAccess("https://example.org/all-rights-reserved") {
		t.Error("unknown license should not be open access")
	}
}
