package slurm

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tissuemech/fesweep/sweep"
)

// DefaultStagePatterns are the base-data files copied into each job
// directory: solver state, meshes, selection files and helper scripts.
var DefaultStagePatterns = []string{
	"*.json", "*.obj", "*.stl", "*.msh", "*.txt",
}

// Options control a submission run.
type Options struct {
	JobListPath  string
	ConfigDir    string // directory holding the generated run configs
	BaseDataDir  string // files staged into every job directory
	ResultsDir   string
	TemplatePath string // empty selects DefaultTemplate
	Params       Params
	BuildDirs    BuildDirs

	DryRun       bool
	SkipExisting bool
	MaxJobs      int // 0 means no limit
}

// Submitter stages job directories and hands batch scripts to sbatch.
type Submitter struct {
	opts Options
	log  *zap.Logger

	// run allows tests to intercept the sbatch invocation.
	run func(ctx context.Context, scriptPath string) (string, error)
}

func NewSubmitter(opts Options, log *zap.Logger) *Submitter {
	s := &Submitter{opts: opts, log: log}
	s.run = s.sbatch
	return s
}

func (s *Submitter) sbatch(ctx context.Context, scriptPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "sbatch", scriptPath)
	cmd.Dir = filepath.Dir(scriptPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("sbatch %s: %v: %s", scriptPath, err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// SubmitAll stages and submits every job in the manifest, honoring the
// dry-run, skip-existing and max-jobs options. It returns the number of
// jobs submitted (or staged, under dry-run).
func (s *Submitter) SubmitAll(ctx context.Context) (int, error) {
	jl, err := sweep.LoadJobList(s.opts.JobListPath)
	if err != nil {
		return 0, err
	}
	tmplText, err := LoadTemplate(s.opts.TemplatePath)
	if err != nil {
		return 0, err
	}

	submitted := 0
	for _, job := range jl.Jobs {
		if s.opts.MaxJobs > 0 && submitted >= s.opts.MaxJobs {
			s.log.Info("reached max jobs", zap.Int("max", s.opts.MaxJobs))
			break
		}

		jobDir := filepath.Join(s.opts.ResultsDir, job.JobID)
		if s.opts.SkipExisting {
			if _, err := os.Stat(jobDir); err == nil {
				s.log.Info("skipping existing job", zap.String("job", job.JobID))
				continue
			}
		}

		if err := s.stageJob(job, jobDir); err != nil {
			return submitted, fmt.Errorf("staging %s: %w", job.JobID, err)
		}

		script, err := Fill(tmplText, job.JobID, job.ConfigFile, s.opts.BuildDirs, s.opts.Params)
		if err != nil {
			return submitted, err
		}
		scriptPath := filepath.Join(jobDir, "job.sbatch")
		if err = os.WriteFile(scriptPath, []byte(script), 0755); err != nil {
			return submitted, err
		}

		if s.opts.DryRun {
			s.log.Info("dry run, would submit", zap.String("job", job.JobID), zap.String("script", scriptPath))
			submitted++
			continue
		}

		out, err := s.run(ctx, scriptPath)
		if err != nil {
			return submitted, err
		}
		s.log.Info("submitted", zap.String("job", job.JobID), zap.String("sbatch", out))
		submitted++
	}
	return submitted, nil
}

// stageJob creates the job directory and copies the generated config
// plus the base data files into it.
func (s *Submitter) stageJob(job sweep.JobInfo, jobDir string) error {
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return err
	}

	src := filepath.Join(s.opts.ConfigDir, job.ConfigFile)
	if err := copyFile(src, filepath.Join(jobDir, job.ConfigFile)); err != nil {
		return err
	}

	if s.opts.BaseDataDir == "" {
		return nil
	}
	for _, pattern := range DefaultStagePatterns {
		matches, err := filepath.Glob(filepath.Join(s.opts.BaseDataDir, pattern))
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err = copyFile(m, filepath.Join(jobDir, filepath.Base(m))); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
