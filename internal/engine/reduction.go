package engine

// ReductionPolicy decides how many plies to search a candidate with.
// rank is the candidate's position in the ordering (0 for the first move
// examined) and depth is the remaining depth at the node.
type ReductionPolicy interface {
	ChildDepth(depth, rank int) int
}

// NoReduction searches every candidate to depth-1.
type NoReduction struct{}

func (NoReduction) ChildDepth(depth, rank int) int {
	return depth - 1
}

// LateMoveReduction searches candidates ranked After or later with Amount
// fewer plies, at nodes with at least MinDepth remaining. The child depth
// never drops below zero.
type LateMoveReduction struct {
	After    int
	Amount   int
	MinDepth int
}

func (r LateMoveReduction) ChildDepth(depth, rank int) int {
	d := depth - 1
	if depth >= r.MinDepth && rank >= r.After {
		d -= r.Amount
	}
	if d < 0 {
		d = 0
	}
	return d
}
