package enrich

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Profile is an optional YAML file overriding the enrichment parameters for a
// run. Zero-valued fields keep their defaults.
type Profile struct {
	DispatchType string   `yaml:"dispatch_type"`
	Locomotion   string   `yaml:"locomotion"`
	Direction    string   `yaml:"direction"`
	Value        float64  `yaml:"value"`
	Radius       float64  `yaml:"radius"`
	Categories   []string `yaml:"categories"`
}

// LoadProfile reads a profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: read profile")
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrap(err, "enrich: parse profile")
	}
	return &p, nil
}

// Apply overlays the profile's set fields onto params.
func (p *Profile) Apply(params Params) Params {
	if p.DispatchType != "" {
		params.DispatchType = p.DispatchType
	}
	if p.Locomotion != "" {
		params.Locomotion = p.Locomotion
	}
	if p.Direction != "" {
		params.Direction = p.Direction
	}
	if p.Value != 0 {
		params.Value = p.Value
	}
	if p.Radius != 0 {
		params.Radius = p.Radius
	}
	if len(p.Categories) > 0 {
		params.Categories = p.Categories
	}
	return params
}
