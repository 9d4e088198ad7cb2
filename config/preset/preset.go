// Package preset provides named sets of maze generation parameters.
package preset

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth           = 41
	DefaultHeight          = 41
	DefaultCorridorWidth   = 1
	DefaultBranchingFactor = 0.5
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is one set of generation parameters. Zero fields take defaults.
type Preset struct {
	Width           int      `yaml:"width" json:"width"`
	Height          int      `yaml:"height" json:"height"`
	Seed            *int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	CorridorWidth   int      `yaml:"corridorWidth" json:"corridorWidth"`
	BranchingFactor *float64 `yaml:"branchingFactor,omitempty" json:"branchingFactor"`
}

// Branching returns the preset's branching factor or the default.
func (p Preset) Branching() float64 {
	if p.BranchingFactor == nil {
		return DefaultBranchingFactor
	}
	return *p.BranchingFactor
}

func (p Preset) withDefaults() Preset {
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	if p.CorridorWidth <= 0 {
		p.CorridorWidth = DefaultCorridorWidth
	}
	if p.BranchingFactor == nil {
		bf := DefaultBranchingFactor
		p.BranchingFactor = &bf
	}
	return p
}

// Set maps preset names to parameters.
type Set map[string]Preset

type file struct {
	Presets Set `yaml:"presets"`
}

func ptr[T any](v T) *T { return &v }

// Builtin returns the presets available without a presets file.
func Builtin() Set {
	return Set{
		"small":   {Width: 21, Height: 21, CorridorWidth: 1, BranchingFactor: ptr(0.3)},
		"default": {Width: DefaultWidth, Height: DefaultHeight, CorridorWidth: DefaultCorridorWidth, BranchingFactor: ptr(DefaultBranchingFactor)},
		"winding": {Width: 61, Height: 41, CorridorWidth: 1, BranchingFactor: ptr(0.0)},
		"caverns": {Width: 81, Height: 61, CorridorWidth: 3, BranchingFactor: ptr(1.0)},
		"halls":   {Width: 101, Height: 81, CorridorWidth: 5, BranchingFactor: ptr(0.6)},
	}
}

// Parse reads presets from YAML of the form
//
//	presets:
//	  name:
//	    width: 41
//	    height: 41
//	    corridorWidth: 1
//	    branchingFactor: 0.5
//
// Missing fields take defaults.
func Parse(b []byte) (Set, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	set := make(Set, len(f.Presets))
	for name, p := range f.Presets {
		if name == "" {
			return nil, errors.New("parsing presets: empty preset name")
		}
		set[name] = p.withDefaults()
	}
	return set, nil
}

// Load returns the builtin presets overlaid with the presets in path.
// An empty path or a missing file yields the builtins.
func Load(path string) (Set, error) {
	set := Builtin()
	if path == "" {
		return set, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return set, nil
		}
		return nil, err
	}

	custom, err := Parse(b)
	if err != nil {
		return nil, err
	}
	for name, p := range custom {
		set[name] = p
	}
	return set, nil
}

// Get returns the named preset.
func (s Set) Get(name string) (Preset, error) {
	p, ok := s[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.withDefaults(), nil
}

// Names lists the preset names in order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marshal renders the set as YAML in the format Parse reads.
func (s Set) Marshal() ([]byte, error) {
	return yaml.Marshal(file{Presets: s})
}
