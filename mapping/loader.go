package mapping

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var embeddedProfiles embed.FS

// DefaultProfileName is the profile used when none is configured.
const DefaultProfileName = "server"

// ProfileRegistry holds loaded profiles.
type ProfileRegistry struct {
	profiles map[string]*Profile
}

var (
	builtinOnce     sync.Once
	builtinRegistry *ProfileRegistry
)

// NewProfileRegistry creates a new profile registry with embedded profiles loaded.
func NewProfileRegistry() (*ProfileRegistry, error) {
	r := &ProfileRegistry{
		profiles: make(map[string]*Profile),
	}

	entries, err := embeddedProfiles.ReadDir("profiles")
	if err != nil {
		return r, nil
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := embeddedProfiles.ReadFile("profiles/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded profile %s: %w", entry.Name(), err)
		}

		profile, err := parseProfile(data, strings.TrimSuffix(entry.Name(), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("embedded profile %s: %w", entry.Name(), err)
		}
		r.profiles[profile.Name] = profile
	}

	return r, nil
}

// Builtin returns a copy of an embedded profile by name.
func Builtin(name string) (*Profile, bool) {
	builtinOnce.Do(func() {
		r, err := NewProfileRegistry()
		if err != nil {
			panic(err)
		}
		builtinRegistry = r
	})
	return builtinRegistry.Get(name)
}

// DefaultProfile returns a copy of the default embedded profile.
func DefaultProfile() *Profile {
	p, ok := Builtin(DefaultProfileName)
	if !ok {
		panic("mapping: default profile " + DefaultProfileName + " is not embedded")
	}
	return p
}

// LoadProfile loads a profile from a file path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	return parseProfile(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// LoadProfileFromString loads a profile from YAML content.
func LoadProfileFromString(content string) (*Profile, error) {
	return parseProfile([]byte(content), "")
}

// parseProfile decodes YAML, names the profile after fallbackName when it
// has no name, and applies defaults.
func parseProfile(data []byte, fallbackName string) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile YAML: %w", err)
	}
	if profile.Name == "" {
		profile.Name = fallbackName
	}
	profile.ApplyDefaults()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Get retrieves a copy of a profile by name.
func (r *ProfileRegistry) Get(name string) (*Profile, bool) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Register adds a profile to the registry.
func (r *ProfileRegistry) Register(profile *Profile) {
	r.profiles[profile.Name] = profile.Clone()
}

// List returns all registered profile names, sorted.
func (r *ProfileRegistry) List() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFromDirectory loads all profiles from a directory.
func (r *ProfileRegistry) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading profile directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		profile, err := LoadProfile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		r.profiles[profile.Name] = profile
	}

	return nil
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	c := *p
	if p.Header.Persistent != nil {
		v := *p.Header.Persistent
		c.Header.Persistent = &v
	}
	if p.Header.PIO != nil {
		v := *p.Header.PIO
		c.Header.PIO = &v
	}
	return &c
}
