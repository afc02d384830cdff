package results

import (
	"encoding/csv"
	"io"
	"strconv"
)

func formatControlPoints(cp int) string {
	if cp == FullVertices {
		return "full"
	}
	return strconv.Itoa(cp)
}

func formatIteration(it int) string {
	if it == PreOpt {
		return "pre_opt"
	}
	return strconv.Itoa(it)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// WriteDetailCSV writes the per-simulation breakdown of one job's log.
func WriteDetailCSV(w io.Writer, records []SimulationRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"level", "control_points", "iteration", "simulation_in_iteration",
		"simulation_time", "status", "target_match", "collision_barrier",
		"smooth_layer_thickness", "boundary_smoothing",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		simTime := ""
		if r.Status == StatusCompleted {
			simTime = strconv.FormatFloat(r.SimTime, 'g', -1, 64)
		}
		row := []string{
			strconv.Itoa(r.Level),
			formatControlPoints(r.ControlPoints),
			formatIteration(r.Iteration),
			strconv.Itoa(r.IndexInIteration),
			simTime,
			r.Status,
			formatOptional(r.TargetMatch),
			formatOptional(r.CollisionBarrier),
			formatOptional(r.SmoothLayerThickness),
			formatOptional(r.BoundarySmoothing),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JobSummary is one row of the cross-job summary CSV.
type JobSummary struct {
	JobID               string
	MaxControlPoints    int
	TotalIterations     int
	TotalForwardSimTime float64
	FinalObjective      float64
	HasObjective        bool
}

// WriteSummaryCSV writes one row per analyzed job.
func WriteSummaryCSV(w io.Writer, summaries []JobSummary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"job_id", "max_control_points", "total_iterations",
		"total_forward_sim_time", "final_objective_value",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		final := ""
		if s.HasObjective {
			final = strconv.FormatFloat(s.FinalObjective, 'g', -1, 64)
		}
		row := []string{
			s.JobID,
			strconv.Itoa(s.MaxControlPoints),
			strconv.Itoa(s.TotalIterations),
			strconv.FormatFloat(s.TotalForwardSimTime, 'g', -1, 64),
			final,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ProgressionRow is one objective sample of one job, paired with the
// matching forward simulation time when one exists.
type ProgressionRow struct {
	JobID            string
	MaxControlPoints int
	Iteration        int
	Objective        float64
	SimTime          *float64
}

// WriteProgressionCSV writes the objective progression across jobs.
func WriteProgressionCSV(w io.Writer, rows []ProgressionRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"job_id", "max_control_points", "iteration",
		"objective_value", "forward_sim_time_seconds",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.JobID,
			strconv.Itoa(r.MaxControlPoints),
			strconv.Itoa(r.Iteration),
			strconv.FormatFloat(r.Objective, 'g', -1, 64),
			formatOptional(r.SimTime),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
