package selections

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input deck for the select command.
type Parameters struct {
	Title            string  `yaml:"Title"`
	Policy           string  `yaml:"Policy"`
	CoveragePercent  float64 `yaml:"CoveragePercent"`
	YToleranceFactor float64 `yaml:"YToleranceFactor"`
	Scale            float64 `yaml:"Scale"`
	SurfaceOutput    string  `yaml:"SurfaceOutput"`
	VolumeOutput     string  `yaml:"VolumeOutput"`
}

// DefaultParameters mirrors the conventions of the original per-dataset
// scripts: coverage policy at 50%, unscaled coordinates.
func DefaultParameters() Parameters {
	return Parameters{
		Policy:           "coverage",
		CoveragePercent:  DefaultCoveragePercent,
		YToleranceFactor: DefaultYToleranceFactor,
		Scale:            1.0,
		SurfaceOutput:    "surface_selections.txt",
		VolumeOutput:     "volume_selections.txt",
	}
}

func (p *Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, p)
}

// BuildPolicy resolves the configured policy name and its parameters.
func (p *Parameters) BuildPolicy() (Policy, error) {
	if p.Policy == "coverage" {
		return NewCoveragePercent(p.CoveragePercent, p.YToleranceFactor), nil
	}
	return ParsePolicy(p.Policy)
}

func (p *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("[%s]\t\t= Policy\n", p.Policy)
	if p.Policy == "coverage" {
		fmt.Printf("%8.5f\t\t= CoveragePercent\n", p.CoveragePercent)
		fmt.Printf("%8.5f\t\t= YToleranceFactor\n", p.YToleranceFactor)
	}
	fmt.Printf("%8.5f\t\t= Scale\n", p.Scale)
	fmt.Printf("[%s]\t= SurfaceOutput\n", p.SurfaceOutput)
	fmt.Printf("[%s]\t= VolumeOutput\n", p.VolumeOutput)
}
