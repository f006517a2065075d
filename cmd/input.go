package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/lepidus/oaswitchboard/format"
	"github.com/lepidus/oaswitchboard/hub"
	"github.com/lepidus/oaswitchboard/mapping"
	"github.com/lepidus/oaswitchboard/settings"
)

// readSubmissions parses inputFile (stdin when empty) with the named
// format, detecting it from the file name or content when formatName is
// empty.
func readSubmissions(formatName, inputFile string, stripHTML bool) ([]*hub.Submission, error) {
	var data []byte
	var err error
	inputName := "stdin"
	if inputFile != "" {
		data, err = os.ReadFile(inputFile)
		inputName = inputFile
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if formatName == "" {
		f, err := format.DetectFormat(inputFile, data)
		if err != nil {
			return nil, fmt.Errorf("%w (use --format: %v)", err, format.List())
		}
		formatName = f.Name()
	}

	parser, err := format.GetParser(formatName)
	if err != nil {
		return nil, err
	}

	subs, err := parser.Parse(bytes.NewReader(data), &format.ParseOptions{
		Locale:     cfg.Locale,
		StripHTML:  stripHTML,
		SourceName: inputName,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}
	return subs, nil
}

// userProfileDir holds profiles that extend or override the embedded ones.
func userProfileDir() string {
	return filepath.Join(xdg.ConfigHome, settings.AppName, "profiles")
}

// profileRegistry returns the embedded profiles plus the user's.
func profileRegistry() (*mapping.ProfileRegistry, error) {
	registry, err := mapping.NewProfileRegistry()
	if err != nil {
		return nil, err
	}
	dir := userProfileDir()
	if _, err := os.Stat(dir); err == nil {
		if err := registry.LoadFromDirectory(dir); err != nil {
			return nil, fmt.Errorf("loading user profiles: %w", err)
		}
	}
	return registry, nil
}

// loadProfile resolves the configured profile: a profile file wins over a
// profile name.
func loadProfile() (*mapping.Profile, error) {
	if cfg.ProfileFile != "" {
		return mapping.LoadProfile(cfg.ProfileFile)
	}

	registry, err := profileRegistry()
	if err != nil {
		return nil, err
	}
	name := cfg.Profile
	if name == "" {
		name = mapping.DefaultProfileName
	}
	p, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s (available: %v)", name, registry.List())
	}
	return p, nil
}
