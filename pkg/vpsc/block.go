package vpsc

import "math"

// ZeroUpperBound is the tolerance below which an inactive constraint's
// slack is treated as a violation. Constraint.Slack() readings between
// this value and zero are accepted as numerically feasible.
const ZeroUpperBound = -1e-10

// LagrangianTolerance is the cutoff below which an active tree edge's
// Lagrange multiplier marks it as beneficial to split. Multipliers at or
// above this value are treated as nonnegative for optimality purposes.
const LagrangianTolerance = -1e-4

// mergeOrderKey is the priority used by the boundary in/out heaps:
// equality constraints always sort ahead of inequality constraints,
// since an inactive equality is never satisfied regardless of its
// numeric slack's sign, and among equalities or among inequalities the
// usual smallest-slack-first order applies.
func mergeOrderKey(c *Constraint) float64 {
	if c.Equality {
		return -math.MaxFloat64
	}
	return c.Slack()
}

// Block is a connected component of Variables joined by constraints
// currently held as tight equalities (its active tree). A block moves
// rigidly: every member's position is block.posn plus that member's
// fixed Offset.
type Block struct {
	vars    []*Variable
	posn    float64
	wposn   float64
	weight  float64
	tree    []*Constraint // active constraints forming the block's spanning tree
	deleted bool

	inHeap  *constraintHeap
	outHeap *constraintHeap
}

// newBlock creates a single-variable block: offset 0, no internal
// constraints, positioned at the variable's desired position.
func newBlock(v *Variable) *Block {
	b := &Block{
		vars:   []*Variable{v},
		posn:   v.DesiredPosition,
		wposn:  v.Weight * v.DesiredPosition,
		weight: v.Weight,
	}
	v.Offset = 0
	v.block = b
	return b
}

// Vars returns the block's member variables. The returned slice must not
// be mutated by the caller.
func (b *Block) Vars() []*Variable { return b.vars }

// Deleted reports whether this block has been superseded by a merge or
// split and should be skipped by any iteration still holding a reference
// to it.
func (b *Block) Deleted() bool { return b.deleted }

// Posn returns the block's current rigid-translation position.
func (b *Block) Posn() float64 { return b.posn }

// updateWeightedPosition recomputes wposn from each member's current
// desired position and offset, then moves the block to the resulting
// cost-minimizing position given its current internal layout.
func (b *Block) updateWeightedPosition() {
	b.wposn = 0
	b.weight = 0
	for _, v := range b.vars {
		b.wposn += v.Weight * (v.DesiredPosition - v.Offset)
		b.weight += v.Weight
	}
	b.posn = b.wposn / b.weight
}

// cost returns the weighted sum of squared deviations from desired
// position over the block's members at their current positions.
func (b *Block) cost() float64 {
	var c float64
	for _, v := range b.vars {
		d := v.Position() - v.DesiredPosition
		c += v.Weight * d * d
	}
	return c
}

// merge absorbs other into b across the violated constraint c, which
// must cross the boundary between b and other (one of c.Left/c.Right in
// b, the other in other). Returns b, the surviving block; other is
// marked deleted and must not be used again.
func (b *Block) merge(other *Block, c *Constraint) *Block {
	d := c.Left.Offset + c.Gap - c.Right.Offset
	if c.Right.block == other {
		shiftBlockOffsets(other, d)
	} else {
		shiftBlockOffsets(other, -d)
	}
	for _, v := range other.vars {
		v.block = b
	}
	b.vars = append(b.vars, other.vars...)
	b.tree = append(b.tree, other.tree...)
	b.tree = append(b.tree, c)
	c.Active = true
	other.deleted = true
	b.updateWeightedPosition()
	return b
}

func shiftBlockOffsets(b *Block, delta float64) {
	for _, v := range b.vars {
		v.Offset += delta
	}
}

// split removes the active tree edge c, producing two new blocks: one
// containing every variable reachable from c.Left over the remaining
// tree edges, the other containing everything reachable from c.Right.
// Offsets are preserved unchanged (they stay internally consistent
// because c was the only path between the two halves); each side's
// posn/wposn/weight are recomputed from its own members. b is marked
// deleted.
func (b *Block) split(c *Constraint) (left, right *Block) {
	c.Active = false
	remaining := make([]*Constraint, 0, len(b.tree)-1)
	for _, e := range b.tree {
		if e != c {
			remaining = append(remaining, e)
		}
	}

	leftVars := reachable(b.vars, remaining, c.Left)
	leftSet := make(map[*Variable]struct{}, len(leftVars))
	for _, v := range leftVars {
		leftSet[v] = struct{}{}
	}
	var rightVars []*Variable
	for _, v := range b.vars {
		if _, ok := leftSet[v]; !ok {
			rightVars = append(rightVars, v)
		}
	}

	left = newSplitBlock(leftVars, remaining)
	right = newSplitBlock(rightVars, remaining)
	b.deleted = true
	return left, right
}

// newSplitBlock builds a block from an existing set of variables
// (offsets already consistent with each other) and the subset of tree
// edges that connect them.
func newSplitBlock(vars []*Variable, candidateEdges []*Constraint) *Block {
	b := &Block{vars: vars}
	set := make(map[*Variable]struct{}, len(vars))
	for _, v := range vars {
		set[v] = struct{}{}
	}
	for _, e := range candidateEdges {
		_, l := set[e.Left]
		_, r := set[e.Right]
		if l && r {
			b.tree = append(b.tree, e)
		}
	}
	for _, v := range vars {
		v.block = b
	}
	b.updateWeightedPosition()
	return b
}

// reachable returns every variable reachable from start over edges,
// restricted to the candidate variable universe (used so split doesn't
// need a fresh adjacency index rebuilt from the whole solver).
func reachable(universe []*Variable, edges []*Constraint, start *Variable) []*Variable {
	adj := buildAdjacency(edges)
	seen := map[*Variable]struct{}{start: {}}
	queue := []*Variable{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, n := range adj[v] {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				queue = append(queue, n)
			}
		}
	}
	out := make([]*Variable, 0, len(seen))
	for _, v := range universe {
		if _, ok := seen[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func buildAdjacency(edges []*Constraint) map[*Variable][]*Variable {
	adj := make(map[*Variable][]*Variable, len(edges)*2)
	for _, e := range edges {
		adj[e.Left] = append(adj[e.Left], e.Right)
		adj[e.Right] = append(adj[e.Right], e.Left)
	}
	return adj
}

// splitBetween locates the tree path between l and r (both must be
// members of b) and splits on the path edge with the most negative
// Lagrange multiplier, provided that multiplier is strictly below
// LagrangianTolerance and the edge is not an equality constraint.
// Returns the constraint split on (now inactive) and true, or (nil,
// false) if no path edge qualifies — the caller should then mark the
// triggering constraint Unsatisfiable.
func (b *Block) splitBetween(l, r *Variable) (*Constraint, bool) {
	path := treePath(b.tree, l, r)
	if len(path) == 0 {
		return nil, false
	}
	lms := b.computeLagrangians()
	var best *Constraint
	bestLM := math.Inf(1)
	for _, e := range path {
		if e.Equality {
			continue
		}
		if lm, ok := lms[e]; ok && lm < bestLM {
			bestLM = lm
			best = e
		}
	}
	if best == nil || bestLM >= LagrangianTolerance {
		return nil, false
	}
	left, right := b.split(best)
	_ = left
	_ = right
	return best, true
}

// treePath returns the tree edges on the path between from and to,
// in traversal order, or nil if either endpoint is not in the tree.
func treePath(edges []*Constraint, from, to *Variable) []*Constraint {
	type step struct {
		v    *Variable
		via  *Constraint
		prev *step
	}
	adjEdges := make(map[*Variable][]*Constraint, len(edges)*2)
	for _, e := range edges {
		adjEdges[e.Left] = append(adjEdges[e.Left], e)
		adjEdges[e.Right] = append(adjEdges[e.Right], e)
	}
	start := &step{v: from}
	seen := map[*Variable]bool{from: true}
	queue := []*step{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.v == to {
			var path []*Constraint
			for s := cur; s.via != nil; s = s.prev {
				path = append([]*Constraint{s.via}, path...)
			}
			return path
		}
		for _, e := range adjEdges[cur.v] {
			var next *Variable
			if e.Left == cur.v {
				next = e.Right
			} else {
				next = e.Left
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, &step{v: next, via: e, prev: cur})
			}
		}
	}
	return nil
}

// findMinLM returns the active non-equality tree edge with the smallest
// Lagrange multiplier, or (nil, false) if the block has no such edge.
func (b *Block) findMinLM() (*Constraint, bool) {
	lms := b.computeLagrangians()
	var best *Constraint
	bestLM := math.Inf(1)
	for _, e := range b.tree {
		if e.Equality {
			continue
		}
		if lm := lms[e]; lm < bestLM {
			bestLM = lm
			best = e
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// computeLagrangians computes, for every edge in the block's active
// tree, the multiplier satisfying the block-local QP's KKT stationarity
// conditions. Rooting the tree at an arbitrary member and walking it in
// post-order, each edge e's multiplier is the weighted residual
// (position - desired) summed over the subtree hanging off e's Right
// endpoint, negated when that subtree instead hangs off e's Left
// endpoint: by construction the whole block's weighted residual sums to
// zero (that is exactly what updateWeightedPosition's posn choice
// guarantees), so the complementary side's sum is just the negation and
// does not need a second pass.
func (b *Block) computeLagrangians() map[*Constraint]float64 {
	lms := make(map[*Constraint]float64, len(b.tree))
	if len(b.vars) == 0 {
		return lms
	}
	adj := make(map[*Variable][]*Constraint, len(b.tree)*2)
	for _, e := range b.tree {
		adj[e.Left] = append(adj[e.Left], e)
		adj[e.Right] = append(adj[e.Right], e)
	}
	visited := make(map[*Variable]bool, len(b.vars))
	var walk func(v *Variable, via *Constraint) float64
	walk = func(v *Variable, via *Constraint) float64 {
		visited[v] = true
		sum := v.Weight * (v.Position() - v.DesiredPosition)
		for _, e := range adj[v] {
			if e == via {
				continue
			}
			var child *Variable
			if e.Left == v {
				child = e.Right
			} else {
				child = e.Left
			}
			if visited[child] {
				continue
			}
			childSum := walk(child, e)
			if e.Right == child {
				lms[e] = childSum
			} else {
				lms[e] = -childSum
			}
			e.lm = lms[e]
			sum += childSum
		}
		return sum
	}
	walk(b.vars[0], nil)
	return lms
}

// isActiveDirectedPathBetween reports whether the active tree, followed
// only in the Left->Right direction of each edge, contains a path from u
// to v.
func (b *Block) isActiveDirectedPathBetween(u, v *Variable) bool {
	if u == v {
		return true
	}
	out := make(map[*Variable][]*Variable, len(b.tree))
	for _, e := range b.tree {
		out[e.Left] = append(out[e.Left], e.Right)
	}
	seen := map[*Variable]bool{u: true}
	queue := []*Variable{u}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range out[cur] {
			if n == v {
				return true
			}
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// setUpInConstraints rebuilds the min-by-slack heap of constraints
// entering the block from outside (constraints where a member is the
// right endpoint and the left endpoint belongs to a different block).
// Equality constraints always sort ahead of every inequality: an
// equality not yet active is never actually satisfied regardless of
// its numeric slack sign, so it must surface first for merging.
func (b *Block) setUpInConstraints() {
	b.inHeap = newConstraintHeap(mergeOrderKey)
	for _, v := range b.vars {
		for _, c := range v.in {
			if c.Left.block != b {
				b.inHeap.insert(c)
			}
		}
	}
}

// setUpOutConstraints rebuilds the min-by-slack heap of constraints
// leaving the block (constraints where a member is the left endpoint and
// the right endpoint belongs to a different block).
func (b *Block) setUpOutConstraints() {
	b.outHeap = newConstraintHeap(mergeOrderKey)
	for _, v := range b.vars {
		for _, c := range v.out {
			if c.Right.block != b {
				b.outHeap.insert(c)
			}
		}
	}
}

// mostViolatedIn returns the minimum of the incoming boundary heap (an
// equality if there is one, else the smallest slack) whether or not it is
// violated, or nil if setUpInConstraints hasn't been called or the block
// has no incoming boundary constraints.
func (b *Block) mostViolatedIn() *Constraint {
	if b.inHeap == nil {
		return nil
	}
	return b.inHeap.peekMin()
}
