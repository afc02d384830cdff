package results

import "regexp"

// Grammar is the versioned line grammar of the solver's optimization
// log. The historical extraction scripts each hard-coded a slightly
// different rule set; any future format drift becomes a new Grammar
// value instead of another copy of the scanner.
type Grammar struct {
	Version string

	// Level detection
	BBWHandles            *regexp.Regexp // new control-point level, captures handle count
	SlimWarning           *regexp.Regexp // precedes a level-type indicator
	FullVertexIndicator   *regexp.Regexp // level optimizes all vertices
	ControlPointIndicator *regexp.Regexp // level optimizes BBW handles

	// Optimization progress
	LBFGSStart          *regexp.Regexp
	LBFGSStartObjective *regexp.Regexp // captures f0
	LBFGSIteration      *regexp.Regexp // captures iter, f
	IterationSave       *regexp.Regexp // captures saved iteration

	// Forward simulations
	SimStep *regexp.Regexp // captures step, total
	SimTook *regexp.Regexp // captures elapsed seconds

	// Energy terms, captures term name and value
	EnergyTerm *regexp.Regexp
}

const floatPattern = `([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)`

// GrammarV1 matches the log format of the adjoint solver builds this
// harness targets, with [polyfem] and [adjoint-polyfem] tag prefixes.
func GrammarV1() Grammar {
	return Grammar{
		Version: "v1",

		BBWHandles:            regexp.MustCompile(`BBW: Computing initial weights for (\d+) handles`),
		SlimWarning:           regexp.MustCompile(`Both in-line-search SLIM and after-line-search SLIM are ON!`),
		FullVertexIndicator:   regexp.MustCompile(`\[trace\] Using a characteristic length of 1`),
		ControlPointIndicator: regexp.MustCompile(`\[polyfem\] \[info\] Found 0 boundary loops, must be closed surface\.`),

		LBFGSStart:          regexp.MustCompile(`\[adjoint-polyfem\] \[debug\] Starting L-BFGS`),
		LBFGSStartObjective: regexp.MustCompile(`Starting L-BFGS with Backtracking solve f₀=` + floatPattern),
		LBFGSIteration:      regexp.MustCompile(`\[L-BFGS\]\[Backtracking\].*?iter=(\d+).*?f=` + floatPattern),
		IterationSave:       regexp.MustCompile(`\[adjoint-polyfem\] \[info\] Saving iteration (\d+)`),

		SimStep: regexp.MustCompile(`\[polyfem\] \[info\] (\d+)/(\d+)\s+t=[\d.]+$`),
		SimTook: regexp.MustCompile(`\[polyfem\] \[info\]\s+took\s+([\d.]+)s`),

		EnergyTerm: regexp.MustCompile(`\[adjoint-polyfem\] \[debug\] \[(target_match|collision_barrier|smooth_layer_thickness|boundary_smoothing)\] ` + floatPattern),
	}
}
