package git

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// walkNode is one commit of the graph being ordered.
type walkNode struct {
	id      CommitID
	when    time.Time
	seq     int // discovery order from the tip
	parents []CommitID
}

// chronoWalk yields a commit and its ancestors oldest first by committer
// time, never emitting a commit before one of its ancestors.
// The graph is read on the first call to Next.
type chronoWalk struct {
	ctx   context.Context
	repo  *Repository
	start plumbing.Hash

	order []CommitID
	pos   int
	err   error
	ready bool
}

func newChronoWalk(ctx context.Context, repo *Repository, start plumbing.Hash) *chronoWalk {
	return &chronoWalk{ctx: ctx, repo: repo, start: start}
}

// Next returns the next commit id, or io.EOF when the walk is exhausted.
func (w *chronoWalk) Next() (CommitID, error) {
	if !w.ready {
		w.ready = true
		w.order, w.err = w.build()
	}
	if w.err != nil {
		return "", w.err
	}
	if err := w.ctx.Err(); err != nil {
		return "", err
	}
	if w.pos >= len(w.order) {
		return "", io.EOF
	}
	id := w.order[w.pos]
	w.pos++
	return id, nil
}

// Close discards the remaining walk.
func (w *chronoWalk) Close() {
	w.order = nil
	w.pos = 0
}

func (w *chronoWalk) build() ([]CommitID, error) {
	nodes, err := w.collect()
	if err != nil {
		return nil, err
	}
	return orderOldestFirst(nodes), nil
}

// collect reads every commit reachable from the start. Nothing is emitted
// until it returns, so large histories need a longer startup grace.
func (w *chronoWalk) collect() ([]*walkNode, error) {
	w.repo.mu.Lock()
	defer w.repo.mu.Unlock()

	iter, err := w.repo.repo.Log(&git.LogOptions{From: w.start})
	if err != nil {
		return nil, fmt.Errorf("walk from %s: %w", w.start, err)
	}
	defer iter.Close()

	var nodes []*walkNode
	err = iter.ForEach(func(c *object.Commit) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		parents := make([]CommitID, len(c.ParentHashes))
		for i, p := range c.ParentHashes {
			parents[i] = CommitID(p.String())
		}
		nodes = append(nodes, &walkNode{
			id:      CommitID(c.Hash.String()),
			when:    c.Committer.When,
			seq:     len(nodes),
			parents: parents,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk from %s: %w", w.start, err)
	}
	return nodes, nil
}

// orderOldestFirst sorts the graph topologically, parents before children,
// picking the oldest ready commit at each step. Equal times prefer the
// commit discovered further from the tip.
func orderOldestFirst(nodes []*walkNode) []CommitID {
	byID := make(map[CommitID]*walkNode, len(nodes))
	for _, n := range nodes {
		byID[n.id] = n
	}

	pending := make(map[CommitID]int, len(nodes))
	children := make(map[CommitID][]*walkNode, len(nodes))
	for _, n := range nodes {
		for _, p := range n.parents {
			// Parents outside the walked set (shallow clones) impose no order.
			if _, ok := byID[p]; !ok {
				continue
			}
			pending[n.id]++
			children[p] = append(children[p], n)
		}
	}

	heap := binaryheap.NewWith(func(a, b interface{}) int {
		x, y := a.(*walkNode), b.(*walkNode)
		switch {
		case x.when.Before(y.when):
			return -1
		case y.when.Before(x.when):
			return 1
		case x.seq > y.seq:
			return -1
		case x.seq < y.seq:
			return 1
		default:
			return 0
		}
	})

	for _, n := range nodes {
		if pending[n.id] == 0 {
			heap.Push(n)
		}
	}

	order := make([]CommitID, 0, len(nodes))
	emitted := make(map[CommitID]struct{}, len(nodes))
	for heap.Size() > 0 {
		v, _ := heap.Pop()
		n := v.(*walkNode)
		if _, dup := emitted[n.id]; dup {
			continue
		}
		emitted[n.id] = struct{}{}
		order = append(order, n.id)
		for _, child := range children[n.id] {
			pending[child.id]--
			if pending[child.id] == 0 {
				heap.Push(child)
			}
		}
	}
	return order
}
