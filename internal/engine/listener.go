package engine

import "math/rand/v2"

// Listener receives the events of a Model. Implementations are presentation
// code; the Model holds a reference but never controls their lifetime.
//
// Methods are called with the Model's board lock held and must not call back
// into the Model.
type Listener interface {
	ScoreChanged(score int)
	MoveOneTile(from, to Coord, value int)
	MoveTwoTiles(from [2]Coord, to Coord, value int)
	InsertTile(at Coord, value int)
}

// NopListener discards every event.
type NopListener struct{}

func (NopListener) ScoreChanged(int) {}
func (NopListener) MoveOneTile(Coord, Coord, int) {}
func (NopListener) MoveTwoTiles([2]Coord, Coord, int) {}
func (NopListener) InsertTile(Coord, int) {}

// IndexSource picks a uniform index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type IndexSource interface {
	IntN(n int) int
}

// NewSource returns a deterministic IndexSource for the given seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
