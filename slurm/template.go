package slurm

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

// Params are the scheduler resources requested per job.
type Params struct {
	Walltime string
	Nodes    string
	CPUs     string
	Memory   string
}

// BuildDirs locate the external tool builds the batch script needs on
// its PATH: the FE solver plus the remeshing tools.
type BuildDirs struct {
	Solver   string
	MMG      string
	FTetWild string
}

// DefaultTemplate is the batch script used when no template file is
// given. Placeholders follow text/template syntax.
const DefaultTemplate = `#!/bin/bash
#SBATCH --job-name=fesweep_{{.JobID}}
#SBATCH --time={{.Walltime}}
#SBATCH --nodes={{.Nodes}}
#SBATCH --cpus-per-task={{.CPUs}}
#SBATCH --mem={{.Memory}}
#SBATCH --output=slurm_%j.out

export PATH="{{.SolverBuildDir}}:{{.MMGBuildDir}}:{{.FTetWildBuildDir}}:$PATH"

cd "$SLURM_SUBMIT_DIR"
polyfem --json {{.ConfigFile}} --log_level debug 2>&1 | tee polyfem.log
`

// Fill renders the batch script template for one job. Every placeholder
// must resolve; an unknown placeholder in a custom template is an error.
func Fill(templateText, jobID, configFile string, dirs BuildDirs, params Params) (string, error) {
	tmpl, err := template.New("slurm").Option("missingkey=error").Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("parsing batch template: %w", err)
	}

	fields := map[string]string{
		"JobID":            jobID,
		"ConfigFile":       configFile,
		"Walltime":         params.Walltime,
		"Nodes":            params.Nodes,
		"CPUs":             params.CPUs,
		"Memory":           params.Memory,
		"SolverBuildDir":   dirs.Solver,
		"MMGBuildDir":      dirs.MMG,
		"FTetWildBuildDir": dirs.FTetWild,
	}
	var sb strings.Builder
	if err = tmpl.Execute(&sb, fields); err != nil {
		return "", fmt.Errorf("filling batch template: %w", err)
	}
	return sb.String(), nil
}

// LoadTemplate returns the template file contents, or the default
// template when path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
