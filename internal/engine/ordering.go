package engine

import (
	"container/heap"

	"github.com/hailam/chesscore/internal/board"
)

// candidate is a move applied once for ordering, kept with its child
// position so the search does not apply it again.
type candidate struct {
	move  board.Move
	next  board.Position
	eff   board.Effect
	delta int
	index int // generation order, breaks ties
}

// moveQueue is a priority queue of candidates. When maximizing the largest
// delta comes out first, otherwise the smallest.
type moveQueue struct {
	items    []*candidate
	maximize bool
}

func (q *moveQueue) Len() int { return len(q.items) }

func (q *moveQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.delta != b.delta {
		if q.maximize {
			return a.delta > b.delta
		}
		return a.delta < b.delta
	}
	return a.index < b.index
}

func (q *moveQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *moveQueue) Push(x any) { q.items = append(q.items, x.(*candidate)) }

func (q *moveQueue) Pop() any {
	old := q.items
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return c
}

// orderMoves applies every move in ml to pos and returns the candidates in
// a queue keyed by their one-ply score delta.
func orderMoves(eval *Evaluator, pos *board.Position, ml *board.MoveList, maximize bool) *moveQueue {
	q := &moveQueue{
		items:    make([]*candidate, 0, ml.Len()),
		maximize: maximize,
	}
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		next, eff := pos.Apply(m)
		q.items = append(q.items, &candidate{
			move:  m,
			next:  next,
			eff:   eff,
			delta: eval.ScoreDelta(&next, eff, m),
			index: i,
		})
	}
	heap.Init(q)
	return q
}

// next pops the most promising candidate, or nil when the queue is empty.
func (q *moveQueue) next() *candidate {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(*candidate)
}
