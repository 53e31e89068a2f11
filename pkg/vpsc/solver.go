package vpsc

// Solver computes a feasible, then locally-optimal, assignment of
// positions to a fixed set of Variables subject to a fixed set of
// Constraints. It is single-threaded and synchronous: no operation
// blocks on I/O and concurrent calls on one Solver are undefined.
// Distinct Solver instances may run in parallel provided their inputs
// are disjoint.
type Solver struct {
	vs []*Variable
	cs []*Constraint
	bs *BlockSet
	cfg *solverConfig
}

// NewSolver constructs a Solver over vs and cs, rebuilding each
// variable's in/out constraint index from cs (overwriting any prior
// content) and creating one block per variable. Returns a
// *PreconditionError if vs is empty, any reference is nil, or a
// constraint names a variable outside vs.
func NewSolver(vs []*Variable, cs []*Constraint, opts ...SolverOption) (*Solver, error) {
	if err := validateInput(vs, cs); err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	s := &Solver{vs: vs, cs: cs, cfg: cfg}
	s.reindex()
	s.bs = newBlockSet(vs)
	return s, nil
}

// MustSolver is like NewSolver but panics instead of returning an error.
// Intended for callers who have already validated their input and want
// construction to be a plain statement rather than an error check.
func MustSolver(vs []*Variable, cs []*Constraint, opts ...SolverOption) *Solver {
	s, err := NewSolver(vs, cs, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Solver) reindex() {
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
func (s *Solver) Blocks() []*Block { return s.bs.Blocks() }

// copyResult writes each variable's current position into FinalPosition.
func (s *Solver) copyResult() {
	for _, v := range s.vs {
		v.FinalPosition = v.Position()
	}
}

// Satisfy produces a feasible, though not necessarily optimal, solution:
// it walks variables in an order consistent with the directed constraint
// graph and repeatedly merges blocks across the most-violated
// constraint, fixing offsets so every constraint internal to a block
// holds exactly. A violated constraint whose endpoints already share a
// block (as arises from a cyclic constraint set) is not merged across;
// it stays violated and is reported by the feasibility check below.
// Returns true iff any constraint ended up active. Returns
// *UnsatisfiedConstraintError if feasibility verification still fails
// for a constraint not marked Unsatisfiable.
func (s *Solver) Satisfy() (bool, error) {
	order := s.bs.totalOrder(s.vs)
	for _, v := range order {
		if !v.block.deleted {
			s.mergeLeftWithCycleCheck(v.block)
		}
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

// mergeLeftWithCycleCheck is bs.mergeLeft with metrics and tracing, plus
// a branch that marks a violated constraint Unsatisfiable when its
// endpoints share block and the active tree has a directed path from its
// Right to its Left endpoint. mostViolatedIn only yields constraints
// whose Left endpoint lies in another block, so that branch is not
// reached from Satisfy's sweep: a violated constraint inside one block is
// neither merged nor marked here, and Satisfy reports it as an
// UnsatisfiedConstraintError.
func (s *Solver) mergeLeftWithCycleCheck(block *Block) {
	for {
		block.setUpInConstraints()
		c := block.mostViolatedIn()
		if c == nil || (!c.Equality && c.Slack() >= 0) {
			return
		}
		leftBlock := c.Left.block
		if leftBlock == block {
			if block.isActiveDirectedPathBetween(c.Right, c.Left) {
				c.Unsatisfiable = true
				s.cfg.debug("cycle detected merging %v, marking unsatisfiable", c)
				continue
			}
			return
		}
		block.merge(leftBlock, c)
		if s.cfg.metrics != nil {
			s.cfg.metrics.merges.Inc()
		}
		s.cfg.debug("merged block across %v", c)
	}
}

// Refine examines each live block for an active, non-equality edge whose
// Lagrange multiplier falls below LagrangianTolerance and splits it,
// repeating until a complete pass finds nothing left to split or the
// configured iteration cap is reached (default 100; reaching the cap
// returns the best solution found rather than raising — a known,
// documented limitation). Returns *UnsatisfiedConstraintError if
// feasibility no longer holds afterward.
func (s *Solver) Refine() error {
	tries := s.cfg.maxRefineIterations
	solved := false
	for !solved && tries > 0 {
		solved = true
		tries--
		for _, b := range s.bs.Blocks() {
			b.setUpInConstraints()
			b.setUpOutConstraints()
		}
		if s.cfg.metrics != nil {
			s.cfg.metrics.refineIterations.Inc()
		}
		for _, b := range s.bs.Blocks() {
			c, ok := b.findMinLM()
			if ok && c.LM() < s.cfg.lagrangianTolerance {
				s.cfg.debug("splitting %v, lm=%g", c, c.LM())
				left, right := b.split(c)
				s.bs.insert(left)
				s.bs.insert(right)
				s.bs.cleanup()
				if s.cfg.metrics != nil {
					s.cfg.metrics.splits.Inc()
				}
				solved = false
				break
			}
		}
	}
	var bad []*Constraint
	for _, c := range s.cs {
		if !c.Unsatisfiable && c.Slack() < s.cfg.zeroUpperBound {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		return &UnsatisfiedConstraintError{Constraints: bad}
	}
	return nil
}

// Solve runs Satisfy then Refine and writes FinalPosition on every
// variable. Returns true iff fewer live blocks remain than variables
// were supplied, i.e. some variables ended up coupled by an active
// constraint.
func (s *Solver) Solve() (bool, error) {
	if _, err := s.Satisfy(); err != nil {
		return false, err
	}
	if err := s.Refine(); err != nil {
		return false, err
	}
	s.copyResult()
	if s.cfg.metrics != nil {
		s.cfg.metrics.solveCost.Observe(s.bs.cost())
	}
	return s.bs.Size() != len(s.vs), nil
}
