// Package scenario loads and saves VPSC problem instances (variables and
// constraints) as YAML files for the vpscdemo CLI. pkg/vpsc itself never
// imports this package: the core solver has no file-format concern of
// its own, the way a BacktestScenario config loader in a scenario runner
// sits entirely outside the engine it feeds.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/govpsc/pkg/vpsc"
)

// Variable is the YAML representation of a vpsc.Variable.
type Variable struct {
	Name            string  `yaml:"name"`
	DesiredPosition float64 `yaml:"desired_position"`
	Weight          float64 `yaml:"weight"`
}

// Constraint is the YAML representation of a vpsc.Constraint: Left and
// Right name entries in the scenario's Variables list by index.
type Constraint struct {
	Left     int     `yaml:"left"`
	Right    int     `yaml:"right"`
	Gap      float64 `yaml:"gap"`
	Equality bool    `yaml:"equality,omitempty"`
}

// Scenario is a complete VPSC problem instance: a set of variables and
// the separation constraints between them.
type Scenario struct {
	Variables   []Variable   `yaml:"variables"`
	Constraints []Constraint `yaml:"constraints"`
}

// Load reads and parses a scenario file from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	return &s, nil
}

// Save writes s to path as YAML.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("scenario: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scenario: write %s: %w", path, err)
	}
	return nil
}

// Build materializes s into vpsc.Variables and vpsc.Constraints ready to
// hand to vpsc.NewSolver or vpsc.NewIncSolver. Constraint endpoints are
// resolved by index into the returned variable slice.
func (s *Scenario) Build() ([]*vpsc.Variable, []*vpsc.Constraint, error) {
	vars := make([]*vpsc.Variable, len(s.Variables))
	for i, v := range s.Variables {
		if v.Name != "" {
			vars[i] = vpsc.NewNamedVariable(v.Name, v.DesiredPosition, v.Weight)
		} else {
			vars[i] = vpsc.NewVariable(v.DesiredPosition, v.Weight)
		}
	}
	cs := make([]*vpsc.Constraint, len(s.Constraints))
	for i, c := range s.Constraints {
		if c.Left < 0 || c.Left >= len(vars) {
			return nil, nil, fmt.Errorf("scenario: constraint %d: left index %d out of range", i, c.Left)
		}
		if c.Right < 0 || c.Right >= len(vars) {
			return nil, nil, fmt.Errorf("scenario: constraint %d: right index %d out of range", i, c.Right)
		}
		if c.Equality {
			cs[i] = vpsc.NewEqualityConstraint(vars[c.Left], vars[c.Right], c.Gap)
		} else {
			cs[i] = vpsc.NewConstraint(vars[c.Left], vars[c.Right], c.Gap)
		}
	}
	return vars, cs, nil
}
