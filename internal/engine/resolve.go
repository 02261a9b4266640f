package engine

// Direction is the edge tiles slide toward.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a fixed order.
var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

func (d Direction) valid() bool {
	return d >= Up && d <= Right
}

// EventKind distinguishes a single-tile relocation from a merge.
type EventKind int

const (
	EventMove EventKind = iota
	EventMerge
)

// Event describes one tile transformation of a resolved move.
// For merges From is the tile nearer the front edge, From2 the one that joined it,
// and Value is the merged (doubled) value.
type Event struct {
	Kind  EventKind
	From  Coord
	From2 Coord
	To    Coord
	Value int
}

// Resolution is the outcome of resolving one direction against a board.
type Resolution struct {
	Board      *Board
	Changed    bool
	Events     []Event
	ScoreDelta int
}

// lineEntry is a compacted tile during a sweep.
type lineEntry struct {
	value  int
	src    Coord
	src2   Coord
	merged bool
}

// Resolve slides and merges every line of b toward dir. b is not modified.
//
// Lines are processed in index order; within a line the sweep starts at the front
// edge. A tile merges with the previous compacted tile when both hold the same
// value and that tile has not already merged during this sweep.
func Resolve(b *Board, dir Direction) Resolution {
	out := NewBoard(b.dim)
	if !dir.valid() {
		copy(out.cells, b.cells)
		return Resolution{Board: out}
	}

	res := Resolution{Board: out}
	entries := make([]lineEntry, 0, b.dim)

	for line := range b.dim {
		entries = entries[:0]

		for k := range b.dim {
			src := lineCell(dir, b.dim, line, k)
			v := b.at(src)
			if v == 0 {
				continue
			}

			if last := len(entries) - 1; last >= 0 && !entries[last].merged && entries[last].value == v {
				entries[last].value *= 2
				entries[last].merged = true
				entries[last].src2 = src
				continue
			}
			entries = append(entries, lineEntry{value: v, src: src})
		}

		for k, e := range entries {
			dst := lineCell(dir, b.dim, line, k)
			out.put(dst, e.value)

			switch {
			case e.merged:
				res.Events = append(res.Events, Event{
					Kind:  EventMerge,
					From:  e.src,
					From2: e.src2,
					To:    dst,
					Value: e.value,
				})
				res.ScoreDelta += e.value
			case e.src != dst:
				res.Events = append(res.Events, Event{
					Kind:  EventMove,
					From:  e.src,
					To:    dst,
					Value: e.value,
				})
			}
		}
	}

	res.Changed = len(res.Events) > 0
	return res
}

// lineCell maps the k-th cell from the front edge of a line to board coordinates.
func lineCell(dir Direction, dim, line, k int) Coord {
	switch dir {
	case Left:
		return Coord{Row: line, Col: k}
	case Right:
		return Coord{Row: line, Col: dim - 1 - k}
	case Up:
		return Coord{Row: k, Col: line}
	default:
		return Coord{Row: dim - 1 - k, Col: line}
	}
}

// CanMove reports whether b has an empty cell or some direction would change it.
func CanMove(b *Board) bool {
	if !b.IsFull() {
		return true
	}
	for _, dir := range Directions {
		if Resolve(b, dir).Changed {
			return true
		}
	}
	return false
}
