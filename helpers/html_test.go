package helpers

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "The International relations of Middle-Earth", "The International relations of Middle-Earth"},
		{"inline tags", "The <i>International</i> relations of Middle-Earth", "The International relations of Middle-Earth"},
		{"entities", "Frodo &amp; Sam", "Frodo & Sam"},
		{"nested", "<p>CO<sub>2</sub> in <b>Mordor</b></p>", "CO2 in Mordor"},
		{"whitespace", "  Two\n  lines  ", "Two lines"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
