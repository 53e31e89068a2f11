// Package govpsc is a module providing a Variable Placement with
// Separation Constraints (VPSC) solver. The module root carries no code
// of its own; it exists only to document the module's layout.
//
// The solver itself lives in pkg/vpsc and has no dependency on anything
// else in this module: given a set of Variables and separation
// Constraints, it computes the positions minimizing the weighted sum of
// squared deviation from each variable's desired position subject to
// those constraints. It is a pure 1D quadratic program; it knows
// nothing about 2D geometry, rectangles, or graph layout, and is meant
// to be driven by an outer loop (stress majorization, gradient
// projection, or similar) supplied by the caller.
//
// cmd/vpscdemo is a small CLI exercising pkg/vpsc end-to-end: it loads
// a scenario (variables and constraints) from a YAML file via
// internal/scenario, solves it, and prints or serves the result.
package govpsc
