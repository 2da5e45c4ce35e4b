// Package cursor provides a foreground position into a growing history.
package cursor

import "github.com/masmgr/histview/internal/git"

// Sequence is the read side of a history buffer.
type Sequence interface {
	Len() int
	Get(i int) (git.CommitID, error)
}

// StepFunc observes every single-step move, including the steps of a jump.
type StepFunc func(from, to int)

// Cursor is an index into a Sequence that only the foreground moves.
// The sequence length is re-read on every call, so growth is picked up
// immediately and the index is never left outside [0, Len()).
type Cursor struct {
	seq    Sequence
	idx    int
	onStep StepFunc
}

// New creates a cursor at position 0.
func New(seq Sequence) *Cursor {
	return &Cursor{seq: seq}
}

// OnStep registers fn to be called after each single-step move.
func (c *Cursor) OnStep(fn StepFunc) {
	c.onStep = fn
}

// Index returns the current position.
func (c *Cursor) Index() int {
	return c.idx
}

// Len returns the current length of the underlying sequence.
func (c *Cursor) Len() int {
	return c.seq.Len()
}

// Empty reports whether no commit is loaded yet.
func (c *Cursor) Empty() bool {
	return c.seq.Len() == 0
}

// Advance moves one commit newer. At the newest loaded commit it does nothing,
// since more may load later.
func (c *Cursor) Advance() bool {
	n := c.seq.Len()
	if n == 0 || c.idx >= n-1 {
		return false
	}
	c.step(c.idx + 1)
	return true
}

// Retreat moves one commit older. At the oldest commit it does nothing.
func (c *Cursor) Retreat() bool {
	if c.seq.Len() == 0 || c.idx == 0 {
		return false
	}
	c.step(c.idx - 1)
	return true
}

// JumpTo moves to target, clamped into the loaded range, one step at a time
// through Advance and Retreat. It returns the number of steps taken.
func (c *Cursor) JumpTo(target int) int {
	steps := 0
	for c.idx < target && c.Advance() {
		steps++
	}
	for c.idx > target && c.Retreat() {
		steps++
	}
	return steps
}

// First moves to the oldest commit.
func (c *Cursor) First() int {
	return c.JumpTo(0)
}

// Last moves to the newest commit loaded so far.
func (c *Cursor) Last() int {
	return c.JumpTo(c.seq.Len() - 1)
}

// Current returns the commit under the cursor, or false when nothing is loaded.
func (c *Cursor) Current() (git.CommitID, bool) {
	if c.seq.Len() == 0 {
		return "", false
	}
	id, err := c.seq.Get(c.idx)
	if err != nil {
		return "", false
	}
	return id, true
}

// CanAdvance reports whether Advance would move.
func (c *Cursor) CanAdvance() bool {
	n := c.seq.Len()
	return n > 0 && c.idx < n-1
}

// CanRetreat reports whether Retreat would move.
func (c *Cursor) CanRetreat() bool {
	return c.seq.Len() > 0 && c.idx > 0
}

func (c *Cursor) step(to int) {
	from := c.idx
	c.idx = to
	if c.onStep != nil {
		c.onStep(from, to)
	}
}
