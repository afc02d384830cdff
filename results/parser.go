package results

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Simulation statuses.
const (
	StatusCompleted  = "completed"
	StatusIncomplete = "incomplete"
)

// FullVertices marks a level that optimizes all vertices rather than
// BBW control points.
const FullVertices = -1

// PreOpt marks simulations run before the first saved iteration of a
// level.
const PreOpt = -1

// SimulationRecord is one forward simulation observed in the log.
type SimulationRecord struct {
	Level            int
	ControlPoints    int // FullVertices for a full-vertex level
	Iteration        int // PreOpt before the first save
	IndexInIteration int
	SimTime          float64
	Status           string

	TargetMatch          *float64
	CollisionBarrier     *float64
	SmoothLayerThickness *float64
	BoundarySmoothing    *float64
}

// ObjectivePoint is one L-BFGS objective sample.
type ObjectivePoint struct {
	Iteration int
	Objective float64
}

// Report is the outcome of parsing one log.
type Report struct {
	Records          []SimulationRecord
	Objectives       []ObjectivePoint
	MaxControlPoints int
}

// Parser is an incremental scanner over solver log lines. Feed lines in
// order with Line, then call Finish exactly once.
type Parser struct {
	g Grammar

	level              int
	controlPoints      int
	iteration          int
	haveIteration      bool
	levelCounter       int
	haveLevel          bool
	expectingLevelType bool

	pending  []SimulationRecord // completed sims awaiting their saved iteration
	inFlight *inFlightSim
	report   Report
}

type inFlightSim struct {
	level         int
	controlPoints int
	iteration     int
	completed     bool
	totalSteps    int
}

func NewParser(g Grammar) *Parser {
	return &Parser{g: g}
}

// Parse consumes a whole log.
func Parse(g Grammar, r io.Reader) (*Report, error) {
	p := NewParser(g)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.Line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.Finish(), nil
}

// Line advances the parser by one log line.
func (p *Parser) Line(raw string) {
	line := strings.TrimSpace(raw)

	if p.g.SlimWarning.MatchString(line) {
		p.expectingLevelType = true
		return
	}

	if p.expectingLevelType {
		switch {
		case p.g.FullVertexIndicator.MatchString(line):
			p.flushPending()
			p.startLevel(FullVertices)
			p.expectingLevelType = false
		case p.g.ControlPointIndicator.MatchString(line):
			// Control-point level: the BBW handle count follows shortly.
			p.expectingLevelType = false
		}
		return
	}

	if m := p.g.BBWHandles.FindStringSubmatch(line); m != nil {
		p.flushPending()
		cp, _ := strconv.Atoi(m[1])
		p.startLevel(cp)
		if cp > p.report.MaxControlPoints {
			p.report.MaxControlPoints = cp
		}
	} else if p.g.LBFGSStart.MatchString(line) {
		p.iteration = 0
		p.haveIteration = true
	}

	if m := p.g.LBFGSStartObjective.FindStringSubmatch(line); m != nil {
		f, _ := strconv.ParseFloat(m[1], 64)
		p.report.Objectives = append(p.report.Objectives, ObjectivePoint{Iteration: 0, Objective: f})
	} else if m := p.g.LBFGSIteration.FindStringSubmatch(line); m != nil {
		iter, _ := strconv.Atoi(m[1])
		f, _ := strconv.ParseFloat(m[2], 64)
		p.report.Objectives = append(p.report.Objectives, ObjectivePoint{Iteration: iter, Objective: f})
	}

	if m := p.g.SimStep.FindStringSubmatch(line); m != nil {
		step, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		p.simStep(step, total)
	} else if p.inFlight != nil && p.inFlight.completed {
		if m := p.g.SimTook.FindStringSubmatch(line); m != nil {
			t, _ := strconv.ParseFloat(m[1], 64)
			p.pending = append(p.pending, SimulationRecord{
				Level:            p.inFlight.level,
				ControlPoints:    p.inFlight.controlPoints,
				Iteration:        p.inFlight.iteration,
				IndexInIteration: -1,
				SimTime:          t,
				Status:           StatusCompleted,
			})
			p.inFlight = nil
		}
	}

	if len(p.pending) > 0 {
		if m := p.g.EnergyTerm.FindStringSubmatch(line); m != nil {
			v, _ := strconv.ParseFloat(m[2], 64)
			last := &p.pending[len(p.pending)-1]
			switch m[1] {
			case "target_match":
				last.TargetMatch = &v
			case "collision_barrier":
				last.CollisionBarrier = &v
			case "smooth_layer_thickness":
				last.SmoothLayerThickness = &v
			case "boundary_smoothing":
				last.BoundarySmoothing = &v
			}
		}
	}

	if m := p.g.IterationSave.FindStringSubmatch(line); m != nil {
		saved, _ := strconv.Atoi(m[1])
		for i := range p.pending {
			p.pending[i].Iteration = saved
			p.pending[i].IndexInIteration = i
			p.report.Records = append(p.report.Records, p.pending[i])
		}
		p.pending = p.pending[:0]
		p.iteration = saved + 1
		p.haveIteration = true
	}
}

func (p *Parser) startLevel(controlPoints int) {
	p.level = p.levelCounter
	p.levelCounter++
	p.haveLevel = true
	p.controlPoints = controlPoints
	p.haveIteration = false
}

func (p *Parser) currentIteration() int {
	if !p.haveIteration {
		return PreOpt
	}
	return p.iteration
}

func (p *Parser) simStep(step, total int) {
	if step == 1 {
		// A new simulation starting before the previous one finished
		// means the previous one died mid-run.
		if p.inFlight != nil && !p.inFlight.completed {
			p.pending = append(p.pending, SimulationRecord{
				Level:            p.inFlight.level,
				ControlPoints:    p.inFlight.controlPoints,
				Iteration:        p.currentIteration(),
				IndexInIteration: -1,
				Status:           StatusIncomplete,
			})
		}
		p.inFlight = &inFlightSim{
			level:         p.level,
			controlPoints: p.controlPoints,
			iteration:     p.currentIteration(),
			totalSteps:    total,
		}
		return
	}
	if step == total && p.inFlight != nil {
		p.inFlight.completed = true
	}
}

// flushPending moves simulations of a finished level into the report;
// they keep the iteration they were created under.
func (p *Parser) flushPending() {
	if !p.haveLevel {
		return
	}
	for i := range p.pending {
		p.pending[i].IndexInIteration = i
		p.report.Records = append(p.report.Records, p.pending[i])
	}
	p.pending = p.pending[:0]
}

// Finish flushes trailing state and returns the report.
func (p *Parser) Finish() *Report {
	for i := range p.pending {
		p.pending[i].IndexInIteration = i
		p.report.Records = append(p.report.Records, p.pending[i])
	}
	n := len(p.pending)
	p.pending = nil

	if p.inFlight != nil && !p.inFlight.completed {
		p.report.Records = append(p.report.Records, SimulationRecord{
			Level:            p.inFlight.level,
			ControlPoints:    p.inFlight.controlPoints,
			Iteration:        p.currentIteration(),
			IndexInIteration: n,
			Status:           StatusIncomplete,
		})
		p.inFlight = nil
	}
	return &p.report
}
