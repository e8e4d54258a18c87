// Package yaml loads site profiles from YAML files and provides the
// built-in profiles.
package yaml

import (
	"bytes"
	"embed"
	"errors"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/fwojciec/sitesnap"
	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var builtin embed.FS

// DefaultProfile is the profile used when none is named.
const DefaultProfile = "default"

// AutoProfile names no profile in particular: callers pick one by
// inspecting the site (see goquery.Detector).
const AutoProfile = "auto"

// BuiltinProfiles returns the names of the embedded profiles, sorted.
func BuiltinProfiles() []string {
	entries, _ := builtin.ReadDir("profiles")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// LoadBuiltinProfiles loads every embedded profile, ordered by name.
func LoadBuiltinProfiles() ([]*sitesnap.Profile, error) {
	names := BuiltinProfiles()
	profiles := make([]*sitesnap.Profile, 0, len(names))
	for _, name := range names {
		p, err := LoadProfile(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// LoadProfile returns the built-in profile called name, or parses name as
// a path to a YAML profile file. An empty name loads DefaultProfile.
//
// A profile without a boilerplate section gets sitesnap.DefaultPhraseFilter;
// an empty section disables filtering.
func LoadProfile(name string) (*sitesnap.Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	data, err := builtin.ReadFile(path.Join("profiles", name+".yaml"))
	if err != nil {
		data, err = os.ReadFile(name)
		if errors.Is(err, os.ErrNotExist) {
			return nil, sitesnap.Errorf(sitesnap.EINVALID, "unknown profile %q (built-in: %s)", name, strings.Join(BuiltinProfiles(), ", "))
		} else if err != nil {
			return nil, sitesnap.Errorf(sitesnap.EINVALID, "read profile: %v", err)
		}
	}
	return ParseProfile(bytes.NewReader(data))
}

// ParseProfile decodes and validates a YAML profile. Unknown fields are
// rejected.
func ParseProfile(r io.Reader) (*sitesnap.Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p sitesnap.Profile
	if err := dec.Decode(&p); err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid profile: %v", err)
	}
	if p.Boilerplate == nil {
		p.Boilerplate = sitesnap.DefaultPhraseFilter()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// MarshalProfile encodes p as YAML.
func MarshalProfile(p *sitesnap.Profile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
