package vpsc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// UnsatisfiedConstraintError is returned by Satisfy/Refine/Solve when
// feasibility verification finds a constraint whose slack is still below
// ZeroUpperBound and which was not marked Unsatisfiable by the
// incremental solver's cycle/split-failure handling. It carries every
// such constraint found during the verification pass as a typed error
// value callers can inspect, rather than a bare string.
type UnsatisfiedConstraintError struct {
	Constraints []*Constraint
}

func (e *UnsatisfiedConstraintError) Error() string {
	if len(e.Constraints) == 0 {
		return "vpsc: unsatisfied constraint"
	}
	parts := make([]string, len(e.Constraints))
	for i, c := range e.Constraints {
		parts[i] = fmt.Sprintf("%v (slack=%g)", c, c.Slack())
	}
	return "vpsc: unsatisfied constraint(s): " + strings.Join(parts, ", ")
}

// PreconditionError reports a violated precondition on solver input:
// empty input, a nil Variable/Constraint reference, or a Constraint
// naming a Variable outside the set the solver was constructed with.
// These are programming-contract violations and are not
// recoverable by retrying; library callers who have already validated
// their own input may prefer MustSolver/MustIncSolver, which panic
// instead of returning this error.
type PreconditionError struct {
	cause error
}

func (e *PreconditionError) Error() string { return e.cause.Error() }
func (e *PreconditionError) Unwrap() error { return e.cause }

func newPreconditionError(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{cause: errors.Errorf(format, args...)}
}

// validateInput checks the preconditions shared by Solver and
// IncSolver construction: non-empty input, no nil references, and every
// constraint naming variables that are actually present in vs.
func validateInput(vs []*Variable, cs []*Constraint) error {
	if len(vs) == 0 {
		return newPreconditionError("vpsc: no variables supplied")
	}
	known := make(map[*Variable]struct{}, len(vs))
	for i, v := range vs {
		if v == nil {
			return newPreconditionError("vpsc: variable at index %d is nil", i)
		}
		if v.Weight <= 0 {
			return newPreconditionError("vpsc: variable at index %d has non-positive weight %g", i, v.Weight)
		}
		known[v] = struct{}{}
	}
	for i, c := range cs {
		if c == nil {
			return newPreconditionError("vpsc: constraint at index %d is nil", i)
		}
		if c.Left == nil || c.Right == nil {
			return newPreconditionError("vpsc: constraint at index %d has a nil endpoint", i)
		}
		if c.Left == c.Right {
			return newPreconditionError("vpsc: constraint at index %d has identical left and right variables", i)
		}
		if _, ok := known[c.Left]; !ok {
			return newPreconditionError("vpsc: constraint at index %d references a left variable not in the supplied variable set", i)
		}
		if _, ok := known[c.Right]; !ok {
			return newPreconditionError("vpsc: constraint at index %d references a right variable not in the supplied variable set", i)
		}
	}
	return nil
}
