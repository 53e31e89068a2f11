package vpsc

import charmlog "github.com/charmbracelet/log"

// SolverOption configures a Solver constructed via NewSolver. The
// zero-value configuration matches the literal tolerances documented in
// the package: ZeroUpperBound, LagrangianTolerance, and a 100-iteration
// refine cap. Options are plain functions over the unexported config
// struct so new tuning knobs can be added without breaking callers who
// only pass the ones they care about.
type SolverOption func(*solverConfig)

// IncSolverOption configures an IncSolver constructed via NewIncSolver.
type IncSolverOption func(*solverConfig)

type solverConfig struct {
	zeroUpperBound       float64
	lagrangianTolerance  float64
	convergenceThreshold float64
	maxRefineIterations  int
	logger               *charmlog.Logger
	metrics              *Metrics
}

func defaultConfig() *solverConfig {
	return &solverConfig{
		zeroUpperBound:       ZeroUpperBound,
		lagrangianTolerance:  LagrangianTolerance,
		convergenceThreshold: 1e-4,
		maxRefineIterations:  100,
	}
}

// WithZeroUpperBound overrides the slack tolerance below which an
// inactive constraint is treated as violated. Defaults to
// ZeroUpperBound.
func WithZeroUpperBound(v float64) SolverOption {
	return func(c *solverConfig) { c.zeroUpperBound = v }
}

// WithLagrangianTolerance overrides the multiplier cutoff below which an
// active edge is split during refine. Defaults to LagrangianTolerance.
func WithLagrangianTolerance(v float64) SolverOption {
	return func(c *solverConfig) { c.lagrangianTolerance = v }
}

// WithMaxRefineIterations overrides the refine loop's iteration cap, a
// safety net against pathological oscillation. Defaults to 100.
func WithMaxRefineIterations(n int) SolverOption {
	return func(c *solverConfig) { c.maxRefineIterations = n }
}

// WithLogger attaches a debug-level trace logger to the solver. When
// unset, no tracing occurs and the solver incurs no logging cost:
// library callers who never construct a logger must not pay for one.
func WithLogger(l *charmlog.Logger) SolverOption {
	return func(c *solverConfig) { c.logger = l }
}

// IncWithZeroUpperBound is the IncSolver equivalent of WithZeroUpperBound.
func IncWithZeroUpperBound(v float64) IncSolverOption {
	return func(c *solverConfig) { c.zeroUpperBound = v }
}

// IncWithLagrangianTolerance is the IncSolver equivalent of WithLagrangianTolerance.
func IncWithLagrangianTolerance(v float64) IncSolverOption {
	return func(c *solverConfig) { c.lagrangianTolerance = v }
}

// IncWithConvergenceThreshold overrides the cost-delta threshold IncSolver.Solve
// uses to decide it has converged. Defaults to 1e-4.
func IncWithConvergenceThreshold(v float64) IncSolverOption {
	return func(c *solverConfig) { c.convergenceThreshold = v }
}

// IncWithLogger is the IncSolver equivalent of WithLogger.
func IncWithLogger(l *charmlog.Logger) IncSolverOption {
	return func(c *solverConfig) { c.logger = l }
}

// WithMetrics attaches Prometheus collectors recording solve/refine/
// merge/split activity. When unset, no metrics are recorded.
func WithMetrics(m *Metrics) SolverOption {
	return func(c *solverConfig) { c.metrics = m }
}

// IncWithMetrics is the IncSolver equivalent of WithMetrics.
func IncWithMetrics(m *Metrics) IncSolverOption {
	return func(c *solverConfig) { c.metrics = m }
}

func (c *solverConfig) debug(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
