// Package vpsc solves the Variable Placement with Separation Constraints
// problem: given one-dimensional variables, each with a desired position
// and a positive weight, and directed separation constraints of the form
// right - left >= gap (or right - left == gap for the equality flavor),
// find positions that minimize the weighted sum of squared deviations
// from the desired positions subject to every constraint holding.
//
// The package implements the active-set block-merge/Lagrangian-split
// algorithm: variables are partitioned into Blocks, connected components
// under the constraints currently held as tight equalities. Solver
// produces a feasible, locally-optimal solution from scratch; IncSolver
// warm-starts from an existing block partition after the caller updates
// variables' desired positions, which is the shape an outer
// stress-majorization or constraint-based layout loop needs.
//
// This package has no knowledge of geometry, rectangles, or 2D layout.
// Callers translate their own overlap/alignment requirements into
// Variables and Constraints; vpsc only solves the resulting 1D QP.
package vpsc
