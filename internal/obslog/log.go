// Package obslog wires a github.com/charmbracelet/log logger through
// context.Context for cmd/vpscdemo and tracks solve-phase timing for
// the CLI's debug output. pkg/vpsc never imports this package; it only
// accepts an already-constructed *log.Logger via vpsc.WithLogger.
package obslog

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w at the given level, with the
// HH:MM:SS.ms timestamp format used across the CLI.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a context carrying l, retrievable via FromContext.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger attached by WithLogger, or
// log.Default() if none was attached.
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// SolveTrace logs the satisfy/refine phase boundaries of a single
// solve: Begin logs at debug level, End at info level with the phase
// name, the live block count at that point, and how long the phase ran.
// A solve can report several phases against the same trace (refine.go
// steps satisfy and refine separately); each phase
// name tracks its own start time so phases may be interleaved or
// repeated without clobbering each other.
type SolveTrace struct {
	logger *log.Logger
	start  map[string]time.Time
}

// NewSolveTrace attaches phase tracking to l.
func NewSolveTrace(l *log.Logger) *SolveTrace {
	return &SolveTrace{logger: l, start: make(map[string]time.Time)}
}

// Begin marks the start of phase.
func (t *SolveTrace) Begin(phase string) {
	t.start[phase] = time.Now()
	t.logger.Debugf("%s: starting", phase)
}

// End logs phase's completion along with the number of live blocks
// remaining and the elapsed time since the matching Begin call.
func (t *SolveTrace) End(phase string, blocks int) {
	elapsed := time.Since(t.start[phase]).Round(time.Millisecond)
	t.logger.Info(phase+" complete", "blocks", blocks, "elapsed", elapsed)
}
