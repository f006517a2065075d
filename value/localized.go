package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalizedEntry is one locale/value pair of a Localized text.
// Locale is empty for values that arrived as a plain string.
type LocalizedEntry struct {
	Locale string
	Value  string
}

// Localized is text that arrives either as a plain string or as a
// locale-keyed map such as {"en_US": "Title", "pt_BR": "Título"}.
// Entries keep the order they had in the source document.
type Localized struct {
	entries []LocalizedEntry
}

// NewLocalized returns a Localized holding a single unlocalized value.
func NewLocalized(s string) Localized {
	if s == "" {
		return Localized{}
	}
	return Localized{entries: []LocalizedEntry{{Value: s}}}
}

// NewLocalizedMap returns a Localized from explicit entries, in order.
func NewLocalizedMap(entries ...LocalizedEntry) Localized {
	l := Localized{}
	for _, e := range entries {
		l.set(e.Locale, e.Value)
	}
	return l
}

func (l *Localized) set(locale, v string) {
	for i := range l.entries {
		if l.entries[i].Locale == locale {
			l.entries[i].Value = v
			return
		}
	}
	l.entries = append(l.entries, LocalizedEntry{Locale: locale, Value: v})
}

// IsZero reports whether no non-empty value is present.
func (l Localized) IsZero() bool {
	return l.First() == ""
}

// Entries returns a copy of the entries in document order.
func (l Localized) Entries() []LocalizedEntry {
	out := make([]LocalizedEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Get returns the value for an exact locale.
func (l Localized) Get(locale string) (string, bool) {
	for _, e := range l.entries {
		if e.Locale == locale {
			return e.Value, true
		}
	}
	return "", false
}

// First returns the first non-empty value in document order.
func (l Localized) First() string {
	for _, e := range l.entries {
		if strings.TrimSpace(e.Value) != "" {
			return e.Value
		}
	}
	return ""
}

// Resolve returns the value for the first preferred locale that has a
// non-empty value, falling back to First.
func (l Localized) Resolve(preferred ...string) string {
	for _, locale := range preferred {
		if locale == "" {
			continue
		}
		if v, ok := l.Get(locale); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return l.First()
}

// UnmarshalJSON accepts a string, a locale map, an array of strings or null.
func (l *Localized) UnmarshalJSON(data []byte) error {
	l.entries = nil
	data = bytes.TrimSpace(data)
	if isNull(data) {
		return nil
	}

	switch data[0] {
	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("reading localized object: %w", err)
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("reading localized key: %w", err)
			}
			key, _ := tok.(string)
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("reading localized value for %q: %w", key, err)
			}
			l.set(key, String(raw))
		}
		return nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("reading localized array: %w", err)
		}
		for _, item := range items {
			if s := String(item); s != "" {
				l.entries = append(l.entries, LocalizedEntry{Value: s})
			}
		}
		return nil

	default:
		if s := String(data); s != "" {
			l.entries = []LocalizedEntry{{Value: s}}
		}
		return nil
	}
}

// UnmarshalYAML accepts a scalar, a locale mapping or a sequence.
func (l *Localized) UnmarshalYAML(node *yaml.Node) error {
	l.entries = nil
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		if node.Value != "" {
			l.entries = []LocalizedEntry{{Value: node.Value}}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			l.set(node.Content[i].Value, node.Content[i+1].Value)
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Value != "" {
				l.entries = append(l.entries, LocalizedEntry{Value: item.Value})
			}
		}
	default:
		return fmt.Errorf("line %d: unsupported localized value", node.Line)
	}
	return nil
}
