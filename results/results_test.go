package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleLog = `[adjoint-polyfem] [warning] Both in-line-search SLIM and after-line-search SLIM are ON!
[polyfem] [info] Found 0 boundary loops, must be closed surface.
BBW: Computing initial weights for 24 handles
[adjoint-polyfem] [debug] Starting L-BFGS with Backtracking solve f₀=1.25e-02
[polyfem] [info] 1/2	t=0.25
[polyfem] [info] 2/2	t=0.5
[polyfem] [info]    took 12.5s
[adjoint-polyfem] [debug] [target_match] 0.001
[adjoint-polyfem] [debug] [collision_barrier] 0.0002
[adjoint-polyfem] [info] Saving iteration 0
[L-BFGS][Backtracking] iter=1 f=9.5e-03 ||g||=0.1
[polyfem] [info] 1/2	t=0.25
[polyfem] [info] 2/2	t=0.5
[polyfem] [info]    took 8.25s
[adjoint-polyfem] [debug] [smooth_layer_thickness] 0.003
[adjoint-polyfem] [info] Saving iteration 1
[adjoint-polyfem] [warning] Both in-line-search SLIM and after-line-search SLIM are ON!
[adjoint-polyfem] [trace] Using a characteristic length of 1
[adjoint-polyfem] [debug] Starting L-BFGS with Backtracking solve f₀=5.0e-03
[polyfem] [info] 1/4	t=0.25
[polyfem] [info] 2/4	t=0.5
`

func TestParserTwoLevels(t *testing.T) {
	report, err := Parse(GrammarV1(), strings.NewReader(sampleLog))
	require.NoError(t, err)

	assert.Equal(t, 24, report.MaxControlPoints)

	require.Len(t, report.Records, 3)

	r0 := report.Records[0]
	assert.Equal(t, 0, r0.Level)
	assert.Equal(t, 24, r0.ControlPoints)
	assert.Equal(t, 0, r0.Iteration)
	assert.Equal(t, 0, r0.IndexInIteration)
	assert.Equal(t, StatusCompleted, r0.Status)
	assert.Equal(t, 12.5, r0.SimTime)
	require.NotNil(t, r0.TargetMatch)
	assert.Equal(t, 0.001, *r0.TargetMatch)
	require.NotNil(t, r0.CollisionBarrier)
	assert.Equal(t, 0.0002, *r0.CollisionBarrier)
	assert.Nil(t, r0.SmoothLayerThickness)

	r1 := report.Records[1]
	assert.Equal(t, 0, r1.Level)
	assert.Equal(t, 1, r1.Iteration)
	assert.Equal(t, 8.25, r1.SimTime)
	require.NotNil(t, r1.SmoothLayerThickness)
	assert.Equal(t, 0.003, *r1.SmoothLayerThickness)

	// The trailing simulation of the full-vertex level never finished.
	r2 := report.Records[2]
	assert.Equal(t, 1, r2.Level)
	assert.Equal(t, FullVertices, r2.ControlPoints)
	assert.Equal(t, 0, r2.Iteration)
	assert.Equal(t, StatusIncomplete, r2.Status)

	require.Len(t, report.Objectives, 3)
	assert.Equal(t, ObjectivePoint{Iteration: 0, Objective: 1.25e-02}, report.Objectives[0])
	assert.Equal(t, ObjectivePoint{Iteration: 1, Objective: 9.5e-03}, report.Objectives[1])
	assert.Equal(t, ObjectivePoint{Iteration: 0, Objective: 5.0e-03}, report.Objectives[2])
}

func TestParserPreOptSimulation(t *testing.T) {
	// A simulation before any L-BFGS start belongs to pre_opt.
	log := `[adjoint-polyfem] [warning] Both in-line-search SLIM and after-line-search SLIM are ON!
[polyfem] [info] Found 0 boundary loops, must be closed surface.
BBW: Computing initial weights for 8 handles
[polyfem] [info] 1/2	t=0.5
[polyfem] [info] 2/2	t=1
[polyfem] [info]    took 3.5s
`
	report, err := Parse(GrammarV1(), strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, PreOpt, report.Records[0].Iteration)
	assert.Equal(t, StatusCompleted, report.Records[0].Status)
}

func TestParserEmptyLog(t *testing.T) {
	report, err := Parse(GrammarV1(), strings.NewReader("nothing to see\n"))
	require.NoError(t, err)
	assert.Empty(t, report.Records)
	assert.Empty(t, report.Objectives)
}

func TestWriteDetailCSV(t *testing.T) {
	report, err := Parse(GrammarV1(), strings.NewReader(sampleLog))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteDetailCSV(&sb, report.Records))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 4) // header + 3 records
	assert.Equal(t,
		"level,control_points,iteration,simulation_in_iteration,simulation_time,status,target_match,collision_barrier,smooth_layer_thickness,boundary_smoothing",
		lines[0])
	assert.Equal(t, "0,24,0,0,12.5,completed,0.001,0.0002,,", lines[1])
	assert.Equal(t, "1,full,0,0,,incomplete,,,,", lines[3])
}

func TestFindJobLog(t *testing.T) {
	dir := t.TempDir()
	_, err := FindJobLog(dir)
	assert.Error(t, err)

	// Empty files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "polyfem.log"), nil, 0644))
	_, err = FindJobLog(dir)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "slurm_123.out"), []byte("x"), 0644))
	path, err := FindJobLog(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slurm_123.out"), path)

	// A non-empty canonical name takes precedence over globs.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "polyfem.log"), []byte(sampleLog), 0644))
	path, err = FindJobLog(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "polyfem.log"), path)
}

func TestExtractAll(t *testing.T) {
	root := t.TempDir()
	resultsDir := filepath.Join(root, "results")
	outDir := filepath.Join(root, "analysis")
	jobDir := filepath.Join(resultsDir, "w1e03_d1en03")
	require.NoError(t, os.MkdirAll(jobDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(jobDir, "polyfem.log"), []byte(sampleLog), 0644))

	// A job without a log is skipped, not fatal.
	require.NoError(t, os.MkdirAll(filepath.Join(resultsDir, "empty_job"), 0755))

	require.NoError(t, ExtractAll(GrammarV1(), resultsDir, outDir, zap.NewNop()))

	data, err := os.ReadFile(filepath.Join(outDir, "optimization_summary.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "w1e03_d1en03,24,3,20.75,0.005", lines[1])

	assert.FileExists(t, filepath.Join(outDir, "objective_progression.csv"))
	assert.FileExists(t, filepath.Join(outDir, "w1e03_d1en03_detail.csv"))
}

func TestExtractAllNoData(t *testing.T) {
	root := t.TempDir()
	resultsDir := filepath.Join(root, "results")
	require.NoError(t, os.MkdirAll(filepath.Join(resultsDir, "job"), 0755))
	err := ExtractAll(GrammarV1(), resultsDir, filepath.Join(root, "out"), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid optimization data")
}

func TestSnapshotIteration(t *testing.T) {
	cases := []struct {
		name string
		iter int
		ok   bool
	}{
		{"opt_0_10_24.vtu", 10, true},
		{"opt_2_3_512_surf.vtm", 3, true},
		{"opt_1_7_8.vtm", 7, true},
		{"random.vtu", 0, false},
		{"opt_0_10_24.txt", 0, false},
	}
	for _, c := range cases {
		it, ok := SnapshotIteration(c.name)
		assert.Equal(t, c.ok, ok, c.name)
		if ok {
			assert.Equal(t, c.iter, it, c.name)
		}
	}
}

func TestCleanJob(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"opt_0_10_24.vtu",
		"opt_0_3_24.vtu",
		"opt_1_10_512_surf.vtm",
		"opt_1_4_512_surf.vtm",
		"random.vtu",
		"notes.txt",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
	}

	// Dry run deletes nothing.
	deleted, kept, err := CleanJob(dir, 10, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, 2, kept)
	assert.FileExists(t, filepath.Join(dir, "opt_0_3_24.vtu"))

	deleted, kept, err = CleanJob(dir, 10, false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, 2, kept)
	assert.NoFileExists(t, filepath.Join(dir, "opt_0_3_24.vtu"))
	assert.NoFileExists(t, filepath.Join(dir, "opt_1_4_512_surf.vtm"))
	assert.FileExists(t, filepath.Join(dir, "opt_0_10_24.vtu"))
	assert.FileExists(t, filepath.Join(dir, "random.vtu"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}
