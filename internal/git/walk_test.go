package git

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func node(id string, when time.Time, seq int, parents ...string) *walkNode {
	ps := make([]CommitID, len(parents))
	for i, p := range parents {
		ps[i] = CommitID(p)
	}
	return &walkNode{id: CommitID(id), when: when, seq: seq, parents: ps}
}

func TestOrderOldestFirst(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		nodes []*walkNode
		want  []CommitID
	}{
		{
			name:  "empty",
			nodes: nil,
			want:  []CommitID{},
		},
		{
			name: "linear",
			nodes: []*walkNode{
				node("c3", t0.Add(2*time.Hour), 0, "c2"),
				node("c2", t0.Add(time.Hour), 1, "c1"),
				node("c1", t0, 2),
			},
			want: []CommitID{"c1", "c2", "c3"},
		},
		{
			name: "child dated before parent",
			nodes: []*walkNode{
				node("c2", t0, 0, "c1"),
				node("c1", t0.Add(time.Hour), 1),
			},
			want: []CommitID{"c1", "c2"},
		},
		{
			name: "merge interleaves by time",
			nodes: []*walkNode{
				node("m", t0.Add(4*time.Hour), 0, "a2", "b1"),
				node("a2", t0.Add(3*time.Hour), 1, "a1"),
				node("a1", t0.Add(time.Hour), 2, "root"),
				node("b1", t0.Add(2*time.Hour), 3, "root"),
				node("root", t0, 4),
			},
			want: []CommitID{"root", "a1", "b1", "a2", "m"},
		},
		{
			name: "equal times prefer deeper discovery",
			nodes: []*walkNode{
				node("tip", t0, 0, "mid"),
				node("mid", t0, 1, "root"),
				node("root", t0, 2),
			},
			want: []CommitID{"root", "mid", "tip"},
		},
		{
			name: "missing parent from shallow history",
			nodes: []*walkNode{
				node("c2", t0.Add(time.Hour), 0, "c1"),
				node("c1", t0, 1, "gone"),
			},
			want: []CommitID{"c1", "c2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderOldestFirst(tt.nodes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("orderOldestFirst() = %v, want %v", got, tt.want)
			}
		})
	}
}

func genGraph() *rapid.Generator[[]*walkNode] {
	return rapid.Custom(func(t *rapid.T) []*walkNode {
		count := rapid.IntRange(1, 40).Draw(t, "count")
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		nodes := make([]*walkNode, count)
		for i := 0; i < count; i++ {
			var parents []CommitID
			if i > 0 {
				np := rapid.IntRange(1, 2).Draw(t, fmt.Sprintf("parents%d", i))
				for j := 0; j < np; j++ {
					p := rapid.IntRange(0, i-1).Draw(t, fmt.Sprintf("parent%d_%d", i, j))
					parents = append(parents, CommitID(fmt.Sprintf("c%d", p)))
				}
			}
			offset := rapid.IntRange(-48, 48).Draw(t, fmt.Sprintf("hours%d", i))
			nodes[i] = &walkNode{
				id:      CommitID(fmt.Sprintf("c%d", i)),
				when:    base.Add(time.Duration(offset) * time.Hour),
				seq:     count - 1 - i,
				parents: parents,
			}
		}
		return nodes
	})
}

func TestRapidOrderOldestFirst_Topological(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nodes := genGraph().Draw(t, "graph")
		order := orderOldestFirst(nodes)

		if len(order) != len(nodes) {
			t.Fatalf("ordered %d commits, want %d", len(order), len(nodes))
		}
		pos := make(map[CommitID]int, len(order))
		for i, id := range order {
			if _, dup := pos[id]; dup {
				t.Fatalf("commit %s emitted twice", id)
			}
			pos[id] = i
		}
		for _, n := range nodes {
			for _, p := range n.parents {
				if pos[p] > pos[n.id] {
					t.Fatalf("parent %s emitted after child %s", p, n.id)
				}
			}
		}
	})
}
