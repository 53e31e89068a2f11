package vpsc

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects Prometheus counters/histograms for solver activity.
// A Metrics value is safe for concurrent use across distinct Solver/
// IncSolver instances running in parallel over disjoint input, because
// prometheus collectors themselves are concurrency-safe; it must not be
// shared between goroutines driving the *same* solver instance, since
// the solver itself is not.
//
// Metrics is entirely optional: a Solver/IncSolver built without
// WithMetrics records nothing and pays no collector overhead, matching
// the "no logging unless a logger was supplied" stance in options.go.
type Metrics struct {
	solves           prometheus.Counter
	refineIterations prometheus.Counter
	merges           prometheus.Counter
	splits           prometheus.Counter
	unsatisfiable    prometheus.Counter
	solveCost        prometheus.Histogram
}

// NewMetrics creates a Metrics value with collectors registered under
// the given namespace/subsystem. Register the returned value's
// collectors with a prometheus.Registerer (e.g.
// prometheus.DefaultRegisterer) if you want them scraped; NewMetrics
// itself does not register anything.
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		solves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "solves_total",
			Help: "Total number of Solver/IncSolver Satisfy passes run (IncSolver.Solve runs several per call).",
		}),
		refineIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "refine_iterations_total",
			Help: "Total number of refine-loop passes executed across all solves.",
		}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "block_merges_total",
			Help: "Total number of block merges performed.",
		}),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "block_splits_total",
			Help: "Total number of block splits performed.",
		}),
		unsatisfiable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "constraints_unsatisfiable_total",
			Help: "Total number of constraints marked unsatisfiable by the incremental solver.",
		}),
		solveCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "solve_cost",
			Help:    "Weighted sum of squared deviations from desired position at the end of each solve.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
	}
}

// Collectors returns every collector owned by m, for bulk registration:
// registry.MustRegister(m.Collectors()...).
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.solves, m.refineIterations, m.merges, m.splits, m.unsatisfiable, m.solveCost,
	}
}
