// Package config loads lab settings and run descriptions from YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// Settings is the tool-wide configuration file
type Settings struct {
	// RoboVersion is recorded on every reagent interface
	RoboVersion string `yaml:"robo_version"`

	// Strategy selects the nominal resolver: simple or v1
	Strategy string `yaml:"strategy"`

	// Labs holds the layout constants per lab name
	Labs map[string]LabSettings `yaml:"labs"`
}

// LabSettings configures one lab's robot and interface layout
type LabSettings struct {
	MaxReagents                    int    `yaml:"max_reagents"`
	MaxReagentChemicals            int    `yaml:"max_reagent_chemicals"`
	ReagentInterfaceAmountStartRow int    `yaml:"reagent_interface_amount_startrow"`
	ReagentAlias                   string `yaml:"reagent_alias"`
	Strategy                       string `yaml:"strategy"`
}

// LoadSettings reads the settings file at path
func LoadSettings(path string) (*Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file %s: %w", path, err)
	}
	defer file.Close()

	return ReadSettings(file)
}

// ReadSettings decodes settings YAML
func ReadSettings(r io.Reader) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if len(s.Labs) == 0 {
		return nil, fmt.Errorf("settings must define at least one lab")
	}
	for name := range s.Labs {
		if _, err := s.Lab(name); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Lab returns the validated layout for a lab
func (s *Settings) Lab(name string) (entities.LabConfig, error) {
	ls, ok := s.Labs[name]
	if !ok {
		return entities.LabConfig{}, fmt.Errorf("unknown lab %q (configured: %v)", name, s.LabNames())
	}
	cfg := entities.LabConfig{
		Name:                           name,
		MaxReagents:                    ls.MaxReagents,
		MaxReagentChemicals:            ls.MaxReagentChemicals,
		ReagentInterfaceAmountStartRow: ls.ReagentInterfaceAmountStartRow,
		ReagentAlias:                   ls.ReagentAlias,
	}
	if err := cfg.Validate(); err != nil {
		return entities.LabConfig{}, err
	}
	return cfg, nil
}

// StrategyFor returns the resolver strategy for a lab, falling back to the
// file-wide strategy
func (s *Settings) StrategyFor(lab string) string {
	if ls, ok := s.Labs[lab]; ok && ls.Strategy != "" {
		return ls.Strategy
	}
	return s.Strategy
}

// LabNames returns the configured lab names in sorted order
func (s *Settings) LabNames() []string {
	names := make([]string, 0, len(s.Labs))
	for name := range s.Labs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
