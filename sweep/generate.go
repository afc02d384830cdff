package sweep

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// JobInfo describes one generated job in the job list manifest.
type JobInfo struct {
	JobID      string                 `json:"job_id"`
	ConfigFile string                 `json:"config_file"`
	Parameters map[string]interface{} `json:"parameters"`
}

// JobList is the manifest consumed by the submit command.
type JobList struct {
	TotalJobs int       `json:"total_jobs"`
	Jobs      []JobInfo `json:"jobs"`
}

// LoadJobList reads a job list manifest.
func LoadJobList(path string) (*JobList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jl := &JobList{}
	if err = yaml.Unmarshal(data, jl); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return jl, nil
}

// Generate expands the grid into per-combination solver configs under
// outputDir plus a job_list.yaml manifest. baseDir anchors the relative
// run_config path. Returns the generated job list.
func Generate(grid *ParameterGrid, baseDir, outputDir string) (*JobList, error) {
	base, err := loadBaseConfig(filepath.Join(baseDir, grid.BaseConfig.RunConfig))
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	jl := &JobList{}
	for _, combo := range grid.Combinations() {
		cfg, err := applyCombination(base, combo)
		if err != nil {
			return nil, err
		}

		jobID := combo.JobID()
		configFile := fmt.Sprintf("run_%s.json", jobID)

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		data = append(data, '\n')
		if err = os.WriteFile(filepath.Join(outputDir, configFile), data, 0644); err != nil {
			return nil, err
		}

		params := map[string]interface{}{combo.Functional: combo.Params}
		jl.Jobs = append(jl.Jobs, JobInfo{
			JobID:      jobID,
			ConfigFile: configFile,
			Parameters: params,
		})
	}
	jl.TotalJobs = len(jl.Jobs)

	listData, err := yaml.Marshal(jl)
	if err != nil {
		return nil, err
	}
	if err = os.WriteFile(filepath.Join(outputDir, "job_list.yaml"), listData, 0644); err != nil {
		return nil, err
	}
	return jl, nil
}

func loadBaseConfig(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading base config: %w", err)
	}
	var cfg map[string]interface{}
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing base config %s: %w", path, err)
	}
	return cfg, nil
}

// applyCombination deep-copies the base config and rewrites the
// parameters of the functional the combination targets.
func applyCombination(base map[string]interface{}, combo Combination) (map[string]interface{}, error) {
	cfg := deepCopy(base).(map[string]interface{})

	raw, ok := cfg["functionals"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("base config has no functionals array")
	}
	for _, entry := range raw {
		fn, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if fn["type"] != combo.Functional {
			continue
		}
		for name, v := range combo.Params {
			fn[name] = v
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("base config has no functional of type %q", combo.Functional)
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = deepCopy(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = deepCopy(e)
		}
		return s
	default:
		return v
	}
}
