package results

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// logCandidates are checked in order inside a job directory; the first
// non-empty match wins. Glob patterns are allowed.
var logCandidates = []string{
	"polyfem.log",
	"optimization.log",
	"log",
	"slurm_*.out",
	"*.log",
}

// FindJobLog locates the solver log in a job directory, or returns an
// error naming the directory when none exists.
func FindJobLog(jobDir string) (string, error) {
	for _, cand := range logCandidates {
		matches, err := filepath.Glob(filepath.Join(jobDir, cand))
		if err != nil {
			return "", err
		}
		sort.Strings(matches)
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() && fi.Size() > 0 {
				return m, nil
			}
		}
	}
	return "", fmt.Errorf("no solver log found in %s", jobDir)
}

// JobAnalysis bundles everything extracted from one job directory.
type JobAnalysis struct {
	Summary     JobSummary
	Progression []ProgressionRow
	Records     []SimulationRecord
}

// AnalyzeJob parses the job's log and derives its summary and objective
// progression.
func AnalyzeJob(g Grammar, jobDir string) (*JobAnalysis, error) {
	logPath, err := FindJobLog(jobDir)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(logPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	report, err := Parse(g, f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", logPath, err)
	}
	if len(report.Objectives) == 0 && len(report.Records) == 0 {
		return nil, fmt.Errorf("no optimization data in %s", logPath)
	}

	jobID := filepath.Base(jobDir)
	var totalTime float64
	simTimes := make([]float64, 0, len(report.Records))
	for _, r := range report.Records {
		if r.Status == StatusCompleted {
			totalTime += r.SimTime
			simTimes = append(simTimes, r.SimTime)
		}
	}

	a := &JobAnalysis{
		Summary: JobSummary{
			JobID:               jobID,
			MaxControlPoints:    report.MaxControlPoints,
			TotalIterations:     len(report.Objectives),
			TotalForwardSimTime: totalTime,
		},
		Records: report.Records,
	}
	if n := len(report.Objectives); n > 0 {
		a.Summary.FinalObjective = report.Objectives[n-1].Objective
		a.Summary.HasObjective = true
	}
	for i, obj := range report.Objectives {
		row := ProgressionRow{
			JobID:            jobID,
			MaxControlPoints: report.MaxControlPoints,
			Iteration:        obj.Iteration,
			Objective:        obj.Objective,
		}
		if i < len(simTimes) {
			t := simTimes[i]
			row.SimTime = &t
		}
		a.Progression = append(a.Progression, row)
	}
	return a, nil
}

// ExtractAll analyzes every job directory under resultsDir and writes
// the aggregate summary and progression CSVs plus a per-job detail CSV
// into outputDir. Jobs without usable logs are logged and skipped.
func ExtractAll(g Grammar, resultsDir, outputDir string, log *zap.Logger) error {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var jobDirs []string
	for _, e := range entries {
		if e.IsDir() && e.Name()[0] != '.' {
			jobDirs = append(jobDirs, e.Name())
		}
	}
	sort.Strings(jobDirs)
	log.Info("analyzing jobs", zap.Int("count", len(jobDirs)))

	var (
		summaries   []JobSummary
		progression []ProgressionRow
	)
	for _, name := range jobDirs {
		a, err := AnalyzeJob(g, filepath.Join(resultsDir, name))
		if err != nil {
			log.Warn("skipping job", zap.String("job", name), zap.Error(err))
			continue
		}
		summaries = append(summaries, a.Summary)
		progression = append(progression, a.Progression...)

		detailPath := filepath.Join(outputDir, name+"_detail.csv")
		df, err := os.Create(detailPath)
		if err != nil {
			return err
		}
		if err = WriteDetailCSV(df, a.Records); err != nil {
			df.Close()
			return fmt.Errorf("writing %s: %w", detailPath, err)
		}
		df.Close()
		log.Info("analyzed", zap.String("job", name),
			zap.Int("simulations", len(a.Records)),
			zap.Int("objective_samples", len(a.Progression)))
	}
	if len(summaries) == 0 {
		return fmt.Errorf("no valid optimization data found under %s", resultsDir)
	}

	sf, err := os.Create(filepath.Join(outputDir, "optimization_summary.csv"))
	if err != nil {
		return err
	}
	defer sf.Close()
	if err = WriteSummaryCSV(sf, summaries); err != nil {
		return err
	}

	pf, err := os.Create(filepath.Join(outputDir, "objective_progression.csv"))
	if err != nil {
		return err
	}
	defer pf.Close()
	if err = WriteProgressionCSV(pf, progression); err != nil {
		return err
	}

	log.Info("extraction complete",
		zap.Int("jobs", len(summaries)),
		zap.Int("progression_rows", len(progression)))
	return nil
}
