package cursor

import (
	"fmt"
	"testing"

	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/history"
)

func loaded(t *testing.T, n int) *history.Buffer {
	t.Helper()
	b := history.NewBuffer()
	for i := 0; i < n; i++ {
		if err := b.Append(git.CommitID(fmt.Sprintf("c%d", i+1))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return b
}

func TestCursor_Empty(t *testing.T) {
	c := New(history.NewBuffer())

	if c.Advance() {
		t.Error("Advance() moved on an empty history")
	}
	if c.Retreat() {
		t.Error("Retreat() moved on an empty history")
	}
	if steps := c.JumpTo(5); steps != 0 || c.Index() != 0 {
		t.Errorf("JumpTo(5) = %d steps, idx %d; want 0, 0", steps, c.Index())
	}
	if _, ok := c.Current(); ok {
		t.Error("Current() returned a commit on an empty history")
	}
	if !c.Empty() || c.CanAdvance() || c.CanRetreat() {
		t.Error("empty cursor reports movement")
	}
}

func TestCursor_Bounds(t *testing.T) {
	c := New(loaded(t, 3))

	c.Retreat()
	if c.Index() != 0 {
		t.Fatalf("Retreat() at 0 moved to %d", c.Index())
	}

	c.Advance()
	c.Advance()
	c.Advance()
	if c.Index() != 2 {
		t.Fatalf("after three Advance() idx = %d, want 2", c.Index())
	}

	id, ok := c.Current()
	if !ok || id != "c3" {
		t.Fatalf("Current() = %s, %v; want c3", id, ok)
	}

	c.Retreat()
	if id, _ := c.Current(); id != "c2" {
		t.Fatalf("Current() after Retreat = %s, want c2", id)
	}
}

func TestCursor_GrowthTolerance(t *testing.T) {
	b := loaded(t, 1)
	c := New(b)

	if c.Advance() {
		t.Fatal("Advance() moved past the only commit")
	}
	if err := b.Append("c2"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !c.Advance() {
		t.Fatal("Advance() did not pick up the new commit")
	}
	if c.Index() != 1 {
		t.Fatalf("idx = %d, want 1", c.Index())
	}
	if id, _ := c.Current(); id != "c2" {
		t.Fatalf("Current() = %s, want c2", id)
	}
}

func TestCursor_JumpTo(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		target    int
		wantIdx   int
		wantSteps int
	}{
		{name: "Clamp high", start: 0, target: 100, wantIdx: 2, wantSteps: 2},
		{name: "Clamp low", start: 2, target: -7, wantIdx: 0, wantSteps: 2},
		{name: "Exact forward", start: 0, target: 1, wantIdx: 1, wantSteps: 1},
		{name: "Exact backward", start: 2, target: 1, wantIdx: 1, wantSteps: 1},
		{name: "Same position", start: 1, target: 1, wantIdx: 1, wantSteps: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(loaded(t, 3))
			c.JumpTo(tt.start)

			steps := c.JumpTo(tt.target)
			if c.Index() != tt.wantIdx {
				t.Errorf("idx = %d, want %d", c.Index(), tt.wantIdx)
			}
			if steps != tt.wantSteps {
				t.Errorf("steps = %d, want %d", steps, tt.wantSteps)
			}
		})
	}
}

func TestCursor_JumpStepsThroughSingleMoves(t *testing.T) {
	c := New(loaded(t, 5))

	var moves [][2]int
	c.OnStep(func(from, to int) {
		moves = append(moves, [2]int{from, to})
	})

	c.JumpTo(3)
	c.JumpTo(1)

	want := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 2}, {2, 1}}
	if len(moves) != len(want) {
		t.Fatalf("moves = %v, want %v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("moves = %v, want %v", moves, want)
		}
	}
}

func TestCursor_FirstLast(t *testing.T) {
	b := loaded(t, 4)
	c := New(b)

	c.Last()
	if c.Index() != 3 {
		t.Fatalf("Last() idx = %d, want 3", c.Index())
	}
	if c.CanAdvance() {
		t.Fatal("CanAdvance() at newest commit")
	}
	if !c.CanRetreat() {
		t.Fatal("CanRetreat() false at newest commit")
	}

	_ = b.Append("c5")
	if !c.CanAdvance() {
		t.Fatal("CanAdvance() false after growth")
	}

	c.First()
	if c.Index() != 0 || c.CanRetreat() {
		t.Fatalf("First() idx = %d, CanRetreat = %v", c.Index(), c.CanRetreat())
	}
}
