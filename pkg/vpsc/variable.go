package vpsc

import "fmt"

// Variable is a one-dimensional point with a desired position and a
// weight expressing how strongly it resists being moved away from that
// desired position. Variables are supplied by the caller and outlive any
// Solver or IncSolver constructed over them; the solver never frees a
// Variable, only updates its block membership and final position.
type Variable struct {
	// DesiredPosition is the position this variable would occupy with no
	// constraints applied.
	DesiredPosition float64
	// Weight must be > 0. Larger weights resist displacement more
	// strongly relative to other variables in the same block.
	Weight float64
	// FinalPosition holds the solved position. It is only valid after a
	// call to Solver.Solve/Satisfy or IncSolver.Solve/Satisfy has
	// returned.
	FinalPosition float64

	// Offset is this variable's position within its block's local
	// frame: Position() == block.posn + Offset. Maintained by merge and
	// split; callers should not set it directly.
	Offset float64

	block *Block

	// in holds constraints where this variable is the right endpoint;
	// out holds constraints where this variable is the left endpoint.
	// Both are rebuilt from scratch whenever a Solver/IncSolver is
	// constructed over this variable.
	in  []*Constraint
	out []*Constraint

	// name is used only for debug/trace output and error messages.
	name string
}

// NewVariable creates a variable with the given desired position and
// weight. weight must be strictly positive.
func NewVariable(desiredPosition, weight float64) *Variable {
	return &Variable{DesiredPosition: desiredPosition, Weight: weight}
}

// NewNamedVariable is like NewVariable but attaches a name used in debug
// traces and error messages.
func NewNamedVariable(name string, desiredPosition, weight float64) *Variable {
	return &Variable{name: name, DesiredPosition: desiredPosition, Weight: weight}
}

// Position returns the variable's current position: its block's position
// plus its local offset within that block.
func (v *Variable) Position() float64 {
	return v.block.posn + v.Offset
}

// Block returns the Block this variable currently belongs to. Valid only
// while a Solver/IncSolver built over this variable is alive.
func (v *Variable) Block() *Block {
	return v.block
}

// String renders the variable for debug/trace output.
func (v *Variable) String() string {
	name := v.name
	if name == "" {
		name = fmt.Sprintf("var@%p", v)
	}
	if v.block == nil {
		return fmt.Sprintf("%s[d=%g w=%g unbound]", name, v.DesiredPosition, v.Weight)
	}
	return fmt.Sprintf("%s[d=%g w=%g pos=%g]", name, v.DesiredPosition, v.Weight, v.Position())
}
