package search

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"

	"searchviz/internal/model"
)

// entry is one frontier item: a node, the path that reached it and the
// accumulated cost of that path.
type entry struct {
	node model.Node
	path []model.Node
	cost int
	seq  int // push order, breaks cost ties in the priority frontier
}

// frontier is the open list of a walker.
type frontier interface {
	push(e entry)
	pop() (entry, bool)
}

type fifoFrontier struct {
	q *linkedlistqueue.Queue
}

func newFIFO() *fifoFrontier {
	return &fifoFrontier{q: linkedlistqueue.New()}
}

func (f *fifoFrontier) push(e entry) { f.q.Enqueue(e) }

func (f *fifoFrontier) pop() (entry, bool) {
	v, ok := f.q.Dequeue()
	if !ok {
		return entry{}, false
	}
	return v.(entry), true
}

type lifoFrontier struct {
	s *arraystack.Stack
}

func newLIFO() *lifoFrontier {
	return &lifoFrontier{s: arraystack.New()}
}

func (f *lifoFrontier) push(e entry) { f.s.Push(e) }

func (f *lifoFrontier) pop() (entry, bool) {
	v, ok := f.s.Pop()
	if !ok {
		return entry{}, false
	}
	return v.(entry), true
}

type costFrontier struct {
	q *priorityqueue.Queue
}

func newCostFrontier() *costFrontier {
	return &costFrontier{q: priorityqueue.NewWith(byCostThenSeq)}
}

func (f *costFrontier) push(e entry) { f.q.Enqueue(e) }

func (f *costFrontier) pop() (entry, bool) {
	v, ok := f.q.Dequeue()
	if !ok {
		return entry{}, false
	}
	return v.(entry), true
}

// byCostThenSeq orders entries by accumulated cost, then by push order, which
// gives the same pop order as a stable sort of the whole frontier.
func byCostThenSeq(a, b interface{}) int {
	x, y := a.(entry), b.(entry)
	if c := utils.IntComparator(x.cost, y.cost); c != 0 {
		return c
	}
	return utils.IntComparator(x.seq, y.seq)
}
