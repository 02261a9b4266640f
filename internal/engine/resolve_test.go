package engine

import (
	"math/rand/v2"
	"testing"
)

func TestResolveLineLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		events   int
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4, 1},
		{"merge from gap", []int{0, 2, 2, 0}, []int{4, 0, 0, 0}, 4, 1},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4, 2},
		{"double merge", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8, 2},
		{"no re-merge of fresh tile", []int{2, 0, 2, 4}, []int{4, 4, 0, 0}, 4, 2},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0, 0},
		{"slide with gaps", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4, 1},
		{"already settled", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0, 0},
		{"empty line", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0, 0},
		{"single tile slides", []int{0, 0, 4, 0}, []int{4, 0, 0, 0}, 0, 1},
		{"single tile at front", []int{4, 0, 0, 0}, []int{4, 0, 0, 0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, [][]int{
				tt.input,
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			})

			res := Resolve(b, Left)
			got := res.Board.Rows()[0]
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Fatalf("Resolve(%v, left) = %v, want %v", tt.input, got, tt.expected)
				}
			}
			if res.ScoreDelta != tt.score {
				t.Errorf("ScoreDelta = %d, want %d", res.ScoreDelta, tt.score)
			}
			if len(res.Events) != tt.events {
				t.Errorf("len(Events) = %d, want %d (%+v)", len(res.Events), tt.events, res.Events)
			}
			if res.Changed != (tt.events > 0) {
				t.Errorf("Changed = %v with %d events", res.Changed, len(res.Events))
			}
		})
	}
}

func TestResolveDirections(t *testing.T) {
	board := [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir      Direction
		expected [][]int
		score    int
	}{
		{
			dir: Left,
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			dir: Right,
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			score: 4 + 8 + 4 + 4,
		},
		{
			dir: Up,
			expected: [][]int{
				{2, 4, 4, 4},
				{4, 0, 2, 0},
				{2, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 4 + 4,
		},
		{
			dir: Down,
			expected: [][]int{
				{0, 0, 0, 0},
				{2, 0, 0, 0},
				{4, 0, 4, 0},
				{2, 4, 2, 4},
			},
			score: 4 + 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			b := mustBoard(t, board)
			res := Resolve(b, tt.dir)
			want := mustBoard(t, tt.expected)

			if !res.Board.Equal(want) {
				t.Errorf("Resolve(%s):\n%s\nwant\n%s", tt.dir, res.Board, want)
			}
			if res.ScoreDelta != tt.score {
				t.Errorf("ScoreDelta = %d, want %d", res.ScoreDelta, tt.score)
			}
			if !res.Changed {
				t.Error("Changed should be true")
			}
		})
	}
}

func TestResolveDoesNotModifyInput(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
	})
	before := b.Clone()

	Resolve(b, Left)
	Resolve(b, Down)

	if !b.Equal(before) {
		t.Errorf("Resolve modified its input:\n%s", b)
	}
}

func TestResolveMergeEvent(t *testing.T) {
	b := mustBoard(t, [][]int{
		{0, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Resolve(b, Left)
	if len(res.Events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(res.Events))
	}

	ev := res.Events[0]
	want := Event{Kind: EventMerge, From: Coord{0, 1}, From2: Coord{0, 2}, To: Coord{0, 0}, Value: 4}
	if ev != want {
		t.Errorf("event = %+v, want %+v", ev, want)
	}
}

func TestResolveEventOrder(t *testing.T) {
	// Line order first (rows 0..n-1), then sweep order from the right edge.
	b := mustBoard(t, [][]int{
		{2, 0, 4, 4},
		{0, 0, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Resolve(b, Right)
	want := []Event{
		{Kind: EventMerge, From: Coord{0, 3}, From2: Coord{0, 2}, To: Coord{0, 3}, Value: 8},
		{Kind: EventMove, From: Coord{0, 0}, To: Coord{0, 2}, Value: 2},
		{Kind: EventMove, From: Coord{2, 0}, To: Coord{2, 3}, Value: 8},
	}

	if len(res.Events) != len(want) {
		t.Fatalf("Events = %+v, want %+v", res.Events, want)
	}
	for i := range want {
		if res.Events[i] != want[i] {
			t.Errorf("Events[%d] = %+v, want %+v", i, res.Events[i], want[i])
		}
	}
}

func TestResolveColumnSweep(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0, 0},
		{2, 0, 0},
		{2, 0, 0},
	})

	res := Resolve(b, Down)
	want := mustBoard(t, [][]int{
		{0, 0, 0},
		{2, 0, 0},
		{4, 0, 0},
	})
	if !res.Board.Equal(want) {
		t.Errorf("Resolve(down):\n%s\nwant\n%s", res.Board, want)
	}

	merge := res.Events[0]
	if merge.Kind != EventMerge || merge.From != (Coord{2, 0}) || merge.From2 != (Coord{1, 0}) || merge.To != (Coord{2, 0}) {
		t.Errorf("first event = %+v, want merge of (2,0)+(1,0) into (2,0)", merge)
	}
}

func TestResolveInvalidDirection(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 2},
		{0, 0},
	})

	res := Resolve(b, Direction(42))
	if res.Changed || len(res.Events) != 0 {
		t.Errorf("invalid direction should not change the board: %+v", res)
	}
	if !res.Board.Equal(b) {
		t.Error("invalid direction should return an equal board")
	}
}

func TestResolveProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	values := []int{0, 0, 0, 2, 2, 4, 4, 8, 16}

	for trial := range 200 {
		dim := 2 + trial%5
		b := NewBoard(dim)
		for i := range b.cells {
			b.cells[i] = values[rng.IntN(len(values))]
		}

		for _, dir := range Directions {
			first := Resolve(b, dir)

			// A compacted board only changes again by merging.
			second := Resolve(first.Board, dir)
			if second.Changed && mergeCount(second.Events) == 0 {
				t.Fatalf("trial %d: second %s move slid tiles without merging\n%s", trial, dir, first.Board)
			}

			// Repeating the move reaches a fixed point within dim applications.
			cur := first
			for i := 0; cur.Changed; i++ {
				if i == dim {
					t.Fatalf("trial %d: %s still changing after %d repeats\n%s", trial, dir, dim, b)
				}
				cur = Resolve(cur.Board, dir)
			}

			// Merging conserves the total value.
			if sum(first.Board) != sum(b) {
				t.Fatalf("trial %d: %s sum %d, want %d", trial, dir, sum(first.Board), sum(b))
			}

			// Score delta equals the values created by merges.
			created := 0
			for _, ev := range first.Events {
				if ev.Kind == EventMerge {
					created += ev.Value
				}
			}
			if created != first.ScoreDelta {
				t.Fatalf("trial %d: %s ScoreDelta %d, merges created %d", trial, dir, first.ScoreDelta, created)
			}

			// Changed iff the board differs.
			if first.Changed == first.Board.Equal(b) {
				t.Fatalf("trial %d: %s Changed = %v but boards equal = %v", trial, dir, first.Changed, first.Board.Equal(b))
			}

			// Identical input yields identical output.
			again := Resolve(b, dir)
			if !again.Board.Equal(first.Board) || len(again.Events) != len(first.Events) {
				t.Fatalf("trial %d: %s is not deterministic", trial, dir)
			}
		}
	}
}

func TestResolveRepeatedMoveMergesAgain(t *testing.T) {
	b := mustBoard(t, [][]int{
		{2, 0, 2, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	steps := [][]int{
		{4, 4, 0, 0},
		{8, 0, 0, 0},
		{8, 0, 0, 0},
	}
	changed := []bool{true, true, false}

	for i, want := range steps {
		res := Resolve(b, Left)
		got := res.Board.Rows()[0]
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("left #%d = %v, want %v", i+1, got, want)
			}
		}
		if res.Changed != changed[i] {
			t.Errorf("left #%d Changed = %v, want %v", i+1, res.Changed, changed[i])
		}
		b = res.Board
	}
}

func mergeCount(events []Event) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == EventMerge {
			n++
		}
	}
	return n
}

func TestCanMove(t *testing.T) {
	stuck := mustBoard(t, [][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})
	if CanMove(stuck) {
		t.Error("CanMove() = true for a stuck board")
	}

	mergeable := mustBoard(t, [][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 4096},
	})
	if !CanMove(mergeable) {
		t.Error("CanMove() = false with a vertical merge available")
	}
}

func sum(b *Board) int {
	total := 0
	for _, v := range b.cells {
		total += v
	}
	return total
}
