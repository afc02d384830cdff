package slurm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testParams() Params {
	return Params{Walltime: "06:00:00", Nodes: "1", CPUs: "16", Memory: "64G"}
}

func testDirs() BuildDirs {
	return BuildDirs{Solver: "/opt/polyfem/build", MMG: "/opt/mmg/build", FTetWild: "/opt/ftetwild/build"}
}

func TestFillDefaultTemplate(t *testing.T) {
	script, err := Fill(DefaultTemplate, "w1e03_d1en03", "run_w1e03_d1en03.json", testDirs(), testParams())
	require.NoError(t, err)

	assert.Contains(t, script, "--job-name=fesweep_w1e03_d1en03")
	assert.Contains(t, script, "--time=06:00:00")
	assert.Contains(t, script, "--mem=64G")
	assert.Contains(t, script, "/opt/polyfem/build:/opt/mmg/build:/opt/ftetwild/build")
	assert.Contains(t, script, "--json run_w1e03_d1en03.json")
	// No unresolved placeholders survive.
	assert.NotContains(t, script, "{{")
}

func TestFillUnknownPlaceholder(t *testing.T) {
	_, err := Fill("#!/bin/bash\n{{.NoSuchField}}\n", "j", "c.json", testDirs(), testParams())
	assert.Error(t, err)
}

func writeJobFixtures(t *testing.T, root string) (jobList, configDir, baseDir, resultsDir string) {
	t.Helper()
	configDir = filepath.Join(root, "configs")
	baseDir = filepath.Join(root, "base")
	resultsDir = filepath.Join(root, "results")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.MkdirAll(baseDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(configDir, "run_a.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "run_b.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "organ.msh"), []byte("mesh"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "surface_selections.txt"), []byte("1 0 1 2\n"), 0644))

	jobList = filepath.Join(root, "job_list.yaml")
	manifest := `total_jobs: 2
jobs:
  - job_id: a
    config_file: run_a.json
  - job_id: b
    config_file: run_b.json
`
	require.NoError(t, os.WriteFile(jobList, []byte(manifest), 0644))
	return jobList, configDir, baseDir, resultsDir
}

func TestSubmitAllDryRun(t *testing.T) {
	root := t.TempDir()
	jobList, configDir, baseDir, resultsDir := writeJobFixtures(t, root)

	s := NewSubmitter(Options{
		JobListPath: jobList,
		ConfigDir:   configDir,
		BaseDataDir: baseDir,
		ResultsDir:  resultsDir,
		Params:      testParams(),
		BuildDirs:   testDirs(),
		DryRun:      true,
	}, zap.NewNop())
	s.run = func(ctx context.Context, scriptPath string) (string, error) {
		t.Fatal("dry run must not invoke sbatch")
		return "", nil
	}

	n, err := s.SubmitAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Job directories are staged with config, base data and the script.
	for _, id := range []string{"a", "b"} {
		dir := filepath.Join(resultsDir, id)
		assert.FileExists(t, filepath.Join(dir, "run_"+id+".json"))
		assert.FileExists(t, filepath.Join(dir, "organ.msh"))
		assert.FileExists(t, filepath.Join(dir, "surface_selections.txt"))
		assert.FileExists(t, filepath.Join(dir, "job.sbatch"))
	}
}

func TestSubmitAllMaxJobs(t *testing.T) {
	root := t.TempDir()
	jobList, configDir, baseDir, resultsDir := writeJobFixtures(t, root)

	var submitted []string
	s := NewSubmitter(Options{
		JobListPath: jobList,
		ConfigDir:   configDir,
		BaseDataDir: baseDir,
		ResultsDir:  resultsDir,
		Params:      testParams(),
		BuildDirs:   testDirs(),
		MaxJobs:     1,
	}, zap.NewNop())
	s.run = func(ctx context.Context, scriptPath string) (string, error) {
		submitted = append(submitted, scriptPath)
		return "Submitted batch job 123", nil
	}

	n, err := s.SubmitAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, submitted, 1)
	assert.True(t, strings.HasSuffix(submitted[0], filepath.Join("a", "job.sbatch")))
}

func TestSubmitAllSkipExisting(t *testing.T) {
	root := t.TempDir()
	jobList, configDir, baseDir, resultsDir := writeJobFixtures(t, root)
	require.NoError(t, os.MkdirAll(filepath.Join(resultsDir, "a"), 0755))

	var submitted []string
	s := NewSubmitter(Options{
		JobListPath:  jobList,
		ConfigDir:    configDir,
		BaseDataDir:  baseDir,
		ResultsDir:   resultsDir,
		Params:       testParams(),
		BuildDirs:    testDirs(),
		SkipExisting: true,
	}, zap.NewNop())
	s.run = func(ctx context.Context, scriptPath string) (string, error) {
		submitted = append(submitted, scriptPath)
		return "Submitted batch job 124", nil
	}

	n, err := s.SubmitAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, submitted, 1)
	assert.Contains(t, submitted[0], filepath.Join("b", "job.sbatch"))
}
