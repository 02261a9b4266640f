package t2048

import (
	"sync"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// TileAnimation represents an animated tile.
type TileAnimation struct {
	Value    int     // Tile value
	FromX    int     // Start column
	FromY    int     // Start row
	ToX      int     // End column
	ToY      int     // End row
	Progress float64 // 0.0 → 1.0
	Merged   bool    // Part of a merge (for visual effect)
	IsNew    bool    // New tile (for pop effect)
}

// TileMove represents a tile movement from one cell to another.
type TileMove struct {
	FromX  int
	FromY  int
	ToX    int
	ToY    int
	Value  int  // Original value (before merge)
	Merged bool // Whether this tile merged with another
}

// PendingTile stores a tile inserted by the engine, popped in after the slide.
type PendingTile struct {
	X, Y  int
	Value int
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// eventSink receives engine events and buffers them until the next drain.
// The engine calls it with its board lock held, so it only records.
type eventSink struct {
	mu       sync.Mutex
	moves    []TileMove
	inserted *PendingTile
	score    int
}

func (s *eventSink) ScoreChanged(score int) {
	s.mu.Lock()
	s.score = score
	s.mu.Unlock()
}

func (s *eventSink) MoveOneTile(from, to engine.Coord, value int) {
	s.mu.Lock()
	s.moves = append(s.moves, TileMove{
		FromX: from.Col,
		FromY: from.Row,
		ToX:   to.Col,
		ToY:   to.Row,
		Value: value,
	})
	s.mu.Unlock()
}

func (s *eventSink) MoveTwoTiles(from [2]engine.Coord, to engine.Coord, value int) {
	s.mu.Lock()
	for _, f := range from {
		s.moves = append(s.moves, TileMove{
			FromX:  f.Col,
			FromY:  f.Row,
			ToX:    to.Col,
			ToY:    to.Row,
			Value:  value / 2,
			Merged: true,
		})
	}
	s.mu.Unlock()
}

func (s *eventSink) InsertTile(at engine.Coord, value int) {
	s.mu.Lock()
	s.inserted = &PendingTile{X: at.Col, Y: at.Row, Value: value}
	s.mu.Unlock()
}

// drain returns and forgets the buffered moves and the last inserted tile.
func (s *eventSink) drain() ([]TileMove, *PendingTile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves, inserted := s.moves, s.inserted
	s.moves = nil
	s.inserted = nil
	return moves, inserted
}

// lastScore returns the most recent score reported by the engine.
func (s *eventSink) lastScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// startSlideAnimation initializes slide animations from move tracking.
func (g *Game) startSlideAnimation(moves []TileMove, newTile *PendingTile) {
	g.animations = g.animations[:0]
	g.merged = g.merged[:0]
	for _, m := range moves {
		g.animations = append(g.animations, TileAnimation{
			Value:  m.Value,
			FromX:  m.FromX,
			FromY:  m.FromY,
			ToX:    m.ToX,
			ToY:    m.ToY,
			Merged: m.Merged,
		})
		if m.Merged {
			g.merged = append(g.merged, engine.Coord{Row: m.ToY, Col: m.ToX})
		}
	}
	g.pendingNewTile = newTile
	g.animating = true
	g.animationPhase = PhaseSlide
	g.animationTicks = 0
}

// startPopAnimation initializes pop animation for a new tile.
func (g *Game) startPopAnimation(x, y, value int) {
	g.animations = []TileAnimation{
		{
			Value: value,
			FromX: x,
			FromY: y,
			ToX:   x,
			ToY:   y,
			IsNew: true,
		},
	}
	g.animating = true
	g.animationPhase = PhasePop
	g.animationTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	var duration int
	switch g.animationPhase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	default:
		g.clearAnimation()
		return false
	}

	progress := float64(g.animationTicks) / float64(duration)
	if progress > 1.0 {
		progress = 1.0
	}
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	if g.animationTicks >= duration {
		g.finishAnimation()
		return false
	}
	return true
}

// finishAnimation completes the current animation phase.
func (g *Game) finishAnimation() {
	if g.animationPhase == PhaseSlide && g.pendingNewTile != nil {
		p := g.pendingNewTile
		g.pendingNewTile = nil
		g.startPopAnimation(p.X, p.Y, p.Value)
		return
	}
	g.clearAnimation()
}

// clearAnimation drops any animation in flight.
func (g *Game) clearAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animationTicks = 0
	g.animations = nil
	g.pendingNewTile = nil
	g.merged = nil
}

// isMerged reports whether a merge landed on (row, col) in the current animation.
func (g *Game) isMerged(row, col int) bool {
	for _, c := range g.merged {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current cell position during animation.
func (a *TileAnimation) interpolatePosition() (x, y float64) {
	t := easeOutQuad(a.Progress)
	x = float64(a.FromX) + (float64(a.ToX)-float64(a.FromX))*t
	y = float64(a.FromY) + (float64(a.ToY)-float64(a.FromY))*t
	return x, y
}
