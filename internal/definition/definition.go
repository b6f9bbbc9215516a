// Package definition loads experiment definition files and compiles them
// into runnable experiments. Definitions are YAML (or JSON, for the HTTP
// surface); the evaluation rule is picked from a set of built-in kinds with
// per-kind parameters.
package definition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mendelian/mendel/pkg/domain"
)

// OutcomeDef is one label/weight pair of a space definition.
type OutcomeDef struct {
	Label  string  `yaml:"label" json:"label"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// SpaceDef declares a named weighted outcome space.
type SpaceDef struct {
	Outcomes []OutcomeDef `yaml:"outcomes" json:"outcomes"`
}

// DrawDef names one sampling step: which space, how many draws, and whether
// drawn outcomes are removed from the pool within the step.
type DrawDef struct {
	Space              string `yaml:"space" json:"space"`
	Count              int    `yaml:"count" json:"count"`
	WithoutReplacement bool   `yaml:"without_replacement" json:"without_replacement"`
}

// RuleDef selects a built-in rule kind and its parameters.
type RuleDef struct {
	Kind   string         `yaml:"kind" json:"kind"`
	Params map[string]any `yaml:"params" json:"params"`
}

// File is a complete experiment definition.
type File struct {
	Name    string              `yaml:"name" json:"name"`
	Spaces  map[string]SpaceDef `yaml:"spaces" json:"spaces"`
	Draws   []DrawDef           `yaml:"draws" json:"draws"`
	Rule    RuleDef             `yaml:"rule" json:"rule"`
	Trials  uint64              `yaml:"trials" json:"trials"`
	Seed    *uint64             `yaml:"seed" json:"seed,omitempty"`
	Policy  string              `yaml:"policy" json:"policy"`
	Workers int                 `yaml:"workers" json:"workers"`
}

// Load reads a definition from disk. The extension picks the format:
// .json is JSON, everything else parses as YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return ParseJSON(data)
	}
	return Parse(data)
}

// Parse decodes a YAML definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing definition: %v", domain.ErrConfiguration, err)
	}
	return &f, nil
}

// ParseJSON decodes a JSON definition.
func ParseJSON(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing definition: %v", domain.ErrConfiguration, err)
	}
	return &f, nil
}

// Compile validates the definition and builds the experiment it describes.
func (f *File) Compile() (*domain.Experiment, error) {
	if len(f.Spaces) == 0 {
		return nil, fmt.Errorf("%w: definition declares no spaces", domain.ErrConfiguration)
	}
	if len(f.Draws) == 0 {
		return nil, fmt.Errorf("%w: definition declares no draws", domain.ErrConfiguration)
	}

	spaces := make(map[string]*domain.Space, len(f.Spaces))
	for name, def := range f.Spaces {
		outcomes := make([]domain.Outcome, len(def.Outcomes))
		for i, o := range def.Outcomes {
			outcomes[i] = domain.Outcome{Label: o.Label, Weight: o.Weight}
		}
		space, err := domain.NewSpace(outcomes...)
		if err != nil {
			return nil, fmt.Errorf("space %q: %w", name, err)
		}
		spaces[name] = space
	}

	draws := make([]domain.Draw, len(f.Draws))
	for i, d := range f.Draws {
		space, ok := spaces[d.Space]
		if !ok {
			return nil, fmt.Errorf("%w: draw %d references unknown space %q", domain.ErrConfiguration, i, d.Space)
		}
		count := d.Count
		if count == 0 {
			count = 1
		}
		draws[i] = domain.Draw{Space: space, Count: count, WithoutReplacement: d.WithoutReplacement}
	}

	rule, err := buildRule(f.Rule)
	if err != nil {
		return nil, err
	}

	return domain.NewExperiment(draws, rule)
}
