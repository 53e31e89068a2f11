package vpsc

import "math"

// IncSolver is a warm-start VPSC solver for the common outer-loop usage
// pattern: construct once, then repeatedly mutate variables'
// DesiredPosition and call Solve again, reusing the existing block
// partition rather than rebuilding one block per variable from scratch.
// It is the solver a stress-majorization or gradient-projection layout
// loop drives once per iteration.
type IncSolver struct {
	vs       []*Variable
	cs       []*Constraint
	bs       *BlockSet
	inactive []*Constraint
	cfg      *solverConfig
}

// NewIncSolver constructs an IncSolver over vs and cs. All constraints
// start inactive and are tracked in a separate list seeded from cs; the
// first Solve call satisfies them the same way Solver.Satisfy would.
func NewIncSolver(vs []*Variable, cs []*Constraint, opts ...IncSolverOption) (*IncSolver, error) {
	if err := validateInput(vs, cs); err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	s := &IncSolver{vs: vs, cs: cs, cfg: cfg}
	s.reindex()
	s.bs = newBlockSet(vs)
	s.inactive = append([]*Constraint(nil), cs...)
	for _, c := range cs {
		c.Active = false
	}
	return s, nil
}

// MustIncSolver is like NewIncSolver but panics instead of returning an
// error.
func MustIncSolver(vs []*Variable, cs []*Constraint, opts ...IncSolverOption) *IncSolver {
	s, err := NewIncSolver(vs, cs, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *IncSolver) reindex() {
	for _, v := range s.vs {
		v.in = nil
		v.out = nil
	}
	for _, c := range s.cs {
		c.Left.out = append(c.Left.out, c)
		c.Right.in = append(c.Right.in, c)
	}
}

// Blocks returns the solver's current live blocks.
func (s *IncSolver) Blocks() []*Block { return s.bs.Blocks() }

func (s *IncSolver) copyResult() {
	for _, v := range s.vs {
		v.FinalPosition = v.Position()
	}
}

// moveBlocks shifts every live block rigidly to the cost-minimizing
// position for its current internal layout, given each member's
// (possibly just-updated) DesiredPosition.
func (s *IncSolver) moveBlocks() {
	for _, b := range s.bs.Blocks() {
		b.updateWeightedPosition()
	}
}

// splitBlocks moves blocks to their new cost-minimizing positions, then
// splits any block whose minimum non-equality Lagrange multiplier falls
// below LagrangianTolerance, pushing the newly-inactive constraint back
// onto the inactive list for mostViolated to reconsider.
func (s *IncSolver) splitBlocks() {
	s.moveBlocks()
	for _, b := range s.bs.Blocks() {
		c, ok := b.findMinLM()
		if !ok || c.LM() >= s.cfg.lagrangianTolerance {
			continue
		}
		s.cfg.debug("splitting %v, lm=%g", c, c.LM())
		left, right := b.split(c)
		left.updateWeightedPosition()
		right.updateWeightedPosition()
		s.bs.insert(left)
		s.bs.insert(right)
		s.inactive = append(s.inactive, c)
		if s.cfg.metrics != nil {
			s.cfg.metrics.splits.Inc()
		}
	}
	s.bs.cleanup()
}

// mostViolated scans l for the constraint with the smallest slack,
// short-circuiting on the first equality constraint found. If the
// returned constraint is an equality, or has slack below
// ZeroUpperBound and is not active, it is removed from l via
// swap-remove. Returns (nil, false) only if l is empty; otherwise it
// returns the picked constraint and true even when that constraint is
// not violated, and the caller checks its slack to tell "nothing left to
// fix" apart from "found a violation".
func (s *IncSolver) mostViolated() (*Constraint, bool) {
	minSlack := float64(0)
	var picked *Constraint
	pickedIdx := -1
	for i, c := range s.inactive {
		slack := c.Slack()
		if c.Equality || picked == nil || slack < minSlack {
			minSlack = slack
			picked = c
			pickedIdx = i
			if c.Equality {
				break
			}
		}
	}
	if picked == nil {
		return nil, false
	}
	if picked.Equality || (minSlack < s.cfg.zeroUpperBound && !picked.Active) {
		last := len(s.inactive) - 1
		s.inactive[pickedIdx] = s.inactive[last]
		s.inactive = s.inactive[:last]
	}
	return picked, true
}

// Satisfy moves and splits blocks as needed, then repeatedly merges (or,
// for violations within a single block, splits and re-merges) across the
// most violated constraint until none remain, writing FinalPosition on
// success.
func (s *IncSolver) Satisfy() (bool, error) {
	s.splitBlocks()
	for {
		v, ok := s.mostViolated()
		if !ok {
			break
		}
		if !(v.Equality || (v.Slack() < s.cfg.zeroUpperBound && !v.Active)) {
			break
		}
		lb, rb := v.Left.block, v.Right.block
		if lb != rb {
			lb.merge(rb, v)
			if s.cfg.metrics != nil {
				s.cfg.metrics.merges.Inc()
			}
			s.cfg.debug("merged block across %v", v)
		} else {
			if lb.isActiveDirectedPathBetween(v.Right, v.Left) {
				v.Unsatisfiable = true
				if s.cfg.metrics != nil {
					s.cfg.metrics.unsatisfiable.Inc()
				}
				s.cfg.debug("cycle detected for %v, marking unsatisfiable", v)
				s.bs.cleanup()
				continue
			}
			splitConstraint, ok := lb.splitBetween(v.Left, v.Right)
			if !ok {
				v.Unsatisfiable = true
				if s.cfg.metrics != nil {
					s.cfg.metrics.unsatisfiable.Inc()
				}
				s.cfg.debug("split failed for %v, marking unsatisfiable", v)
				s.bs.cleanup()
				continue
			}
			s.inactive = append(s.inactive, splitConstraint)
			if s.cfg.metrics != nil {
				s.cfg.metrics.splits.Inc()
			}
			newLeft, newRight := v.Left.block, v.Right.block
			if v.Slack() >= 0 {
				s.inactive = append(s.inactive, v)
				s.bs.insert(newLeft)
				s.bs.insert(newRight)
			} else {
				s.bs.insert(newLeft.merge(newRight, v))
				if s.cfg.metrics != nil {
					s.cfg.metrics.merges.Inc()
				}
			}
		}
		s.bs.cleanup()
	}
	s.bs.cleanup()

	active := false
	var bad []*Constraint
	for _, c := range s.cs {
		if c.Active {
			active = true
		}
		if c.Unsatisfiable {
			continue
		}
		if c.Slack() < s.cfg.zeroUpperBound {
			bad = append(bad, c)
		}
	}
	if s.cfg.metrics != nil {
		s.cfg.metrics.solves.Inc()
	}
	if len(bad) > 0 {
		return active, &UnsatisfiedConstraintError{Constraints: bad}
	}
	s.copyResult()
	return active, nil
}

// Solve calls Satisfy, then repeatedly calls it again while the total
// block-set cost keeps changing by more than the configured convergence
// threshold (default 1e-4), and finally writes FinalPosition. Intended
// to be called once per outer-loop iteration after the caller has
// updated some variables' DesiredPosition.
func (s *IncSolver) Solve() (bool, error) {
	active, err := s.Satisfy()
	if err != nil {
		return active, err
	}
	lastCost := math.MaxFloat64
	cost := s.bs.cost()
	for math.Abs(lastCost-cost) > s.cfg.convergenceThreshold {
		active, err = s.Satisfy()
		if err != nil {
			return active, err
		}
		lastCost = cost
		cost = s.bs.cost()
	}
	s.copyResult()
	if s.cfg.metrics != nil {
		s.cfg.metrics.solveCost.Observe(cost)
	}
	return active, nil
}
