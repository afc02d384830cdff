package sweep

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
)

// ParameterGrid is the YAML sweep specification: a base solver config
// plus per-functional parameter axes to expand into a cartesian product.
type ParameterGrid struct {
	BaseConfig  BaseConfig                      `json:"base_config"`
	Functionals map[string]map[string][]float64 `json:"functionals"`
}

type BaseConfig struct {
	RunConfig string `json:"run_config"`
}

// LoadParameterGrid reads and validates a grid specification.
func LoadParameterGrid(path string) (*ParameterGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := &ParameterGrid{}
	if err = yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if g.BaseConfig.RunConfig == "" {
		return nil, fmt.Errorf("%s: base_config.run_config is required", path)
	}
	if len(g.Functionals) == 0 {
		return nil, fmt.Errorf("%s: no functional parameter axes defined", path)
	}
	return g, nil
}

// Combination is one point of the sweep: parameter values for one
// functional of the solver config.
type Combination struct {
	Functional string
	Params     map[string]float64
}

// Combinations expands the grid into its cartesian product, in a
// deterministic order (functionals and parameter names sorted).
func (g *ParameterGrid) Combinations() []Combination {
	var out []Combination

	functionals := make([]string, 0, len(g.Functionals))
	for name := range g.Functionals {
		functionals = append(functionals, name)
	}
	sort.Strings(functionals)

	for _, fn := range functionals {
		axes := g.Functionals[fn]
		names := make([]string, 0, len(axes))
		for name := range axes {
			names = append(names, name)
		}
		sort.Strings(names)

		combos := []map[string]float64{{}}
		for _, name := range names {
			var next []map[string]float64
			for _, base := range combos {
				for _, v := range axes[name] {
					c := make(map[string]float64, len(base)+1)
					for k, bv := range base {
						c[k] = bv
					}
					c[name] = v
					next = append(next, c)
				}
			}
			combos = next
		}
		for _, c := range combos {
			out = append(out, Combination{Functional: fn, Params: c})
		}
	}
	return out
}

// JobID encodes a combination as a short filesystem-safe id, e.g.
// weight=1e3, dhat=1e-3 becomes "w1e03_d1en03".
func (c Combination) JobID() string {
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, string(name[0])+formatParamValue(c.Params[name]))
	}
	return strings.Join(parts, "_")
}

func formatParamValue(v float64) string {
	s := fmt.Sprintf("%.0e", v)
	s = strings.ReplaceAll(s, "+", "")
	s = strings.ReplaceAll(s, "-", "n")
	return s
}
