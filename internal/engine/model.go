package engine

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// MinDimension is the smallest board dimension; smaller values are raised to it.
	MinDimension = 2
	// MinThreshold is the smallest winning tile value; smaller values are raised to it.
	MinThreshold = 8
)

// moveCommand is one queued directional input.
type moveCommand struct {
	dir  Direction
	done func(changed bool)
}

// Model owns a board, its score and the move queue.
//
// Moves are resolved one at a time in the order QueueMove accepted them. The
// goroutine that finds the queue idle resolves every pending move before it
// returns; callers arriving meanwhile only enqueue. Completion callbacks run
// without any engine lock held and may call back into the Model.
type Model struct {
	// qmu guards queue and processing.
	qmu        sync.Mutex
	queue      []moveCommand
	processing bool

	// mu guards everything below and serializes listener delivery.
	mu        sync.Mutex
	board     *Board
	score     int
	threshold int
	src       IndexSource
	listener  Listener
	logger    *log.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithSource sets the random source used by InsertTileAtRandomLocation.
func WithSource(src IndexSource) Option {
	return func(m *Model) {
		if src != nil {
			m.src = src
		}
	}
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBoard starts the model from a copy of b instead of an empty board.
// The dimension argument of New is then ignored.
func WithBoard(b *Board) Option {
	return func(m *Model) {
		if b != nil {
			m.board = b.Clone()
		}
	}
}

// New creates a model with an empty board, unless WithBoard supplies one.
//
// A dimension below MinDimension or a threshold below MinThreshold is silently
// raised to the minimum; the adjustment is logged at warn level. A nil listener
// discards events.
func New(dimension, threshold int, listener Listener, opts ...Option) *Model {
	if listener == nil {
		listener = NopListener{}
	}

	m := &Model{
		listener: listener,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.src == nil {
		m.src = NewSource(time.Now().UnixNano())
	}

	if m.board == nil {
		if dimension < MinDimension {
			m.logger.Warn("dimension below minimum, clamped", "requested", dimension, "used", MinDimension)
			dimension = MinDimension
		}
		m.board = NewBoard(dimension)
	}
	m.threshold = m.clampThreshold(threshold)

	return m
}

func (m *Model) clampThreshold(threshold int) int {
	if threshold < MinThreshold {
		m.logger.Warn("threshold below minimum, clamped", "requested", threshold, "used", MinThreshold)
		return MinThreshold
	}
	return threshold
}

// Dimension returns the board dimension.
func (m *Model) Dimension() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.dim
}

// Threshold returns the winning tile value.
func (m *Model) Threshold() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threshold
}

// SetThreshold changes the winning tile value, clamped like New.
func (m *Model) SetThreshold(threshold int) {
	threshold = m.clampThreshold(threshold)

	m.mu.Lock()
	m.threshold = threshold
	m.mu.Unlock()
}

// Score returns the current score.
func (m *Model) Score() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

// Board returns a snapshot of the board.
func (m *Model) Board() *Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Clone()
}

// Pending returns the number of accepted moves not yet resolved.
func (m *Model) Pending() int {
	m.qmu.Lock()
	defer m.qmu.Unlock()
	return len(m.queue)
}

// QueueMove accepts a move. If no move is being resolved it is resolved
// immediately on the calling goroutine, followed by any moves queued meanwhile;
// otherwise it waits in FIFO order behind the current one. done, if not nil,
// receives whether the board changed.
func (m *Model) QueueMove(dir Direction, done func(changed bool)) {
	m.qmu.Lock()
	m.queue = append(m.queue, moveCommand{dir: dir, done: done})
	if m.processing {
		m.qmu.Unlock()
		return
	}
	m.processing = true
	m.qmu.Unlock()

	m.drain()
}

// drain resolves queued moves until the queue is empty.
func (m *Model) drain() {
	for {
		m.qmu.Lock()
		if len(m.queue) == 0 {
			m.processing = false
			m.qmu.Unlock()
			return
		}
		cmd := m.queue[0]
		m.queue[0] = moveCommand{}
		m.queue = m.queue[1:]
		m.qmu.Unlock()

		changed := m.perform(cmd.dir)
		if cmd.done != nil {
			cmd.done(changed)
		}
	}
}

// perform resolves dir against the board, commits the result and emits events.
func (m *Model) perform(dir Direction) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := Resolve(m.board, dir)
	m.logger.Debug("move resolved",
		"direction", dir,
		"changed", res.Changed,
		"events", len(res.Events),
		"score_delta", res.ScoreDelta,
	)
	if !res.Changed {
		return false
	}

	m.board = res.Board
	m.score += res.ScoreDelta

	for _, ev := range res.Events {
		switch ev.Kind {
		case EventMove:
			m.listener.MoveOneTile(ev.From, ev.To, ev.Value)
		case EventMerge:
			m.listener.MoveTwoTiles([2]Coord{ev.From, ev.From2}, ev.To, ev.Value)
		}
	}
	if res.ScoreDelta != 0 {
		m.listener.ScoreChanged(m.score)
	}

	return true
}

// InsertTileAtRandomLocation places value on a uniformly chosen empty cell and
// returns it. It does nothing and returns false when the board is full or value
// is not a power of two >= 2.
func (m *Model) InsertTileAtRandomLocation(value int) (Coord, bool) {
	if !ValidTileValue(value) {
		m.logger.Warn("insert rejected", "value", value)
		return Coord{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	empty := m.board.EmptyCells()
	if len(empty) == 0 {
		return Coord{}, false
	}

	at := empty[m.src.IntN(len(empty))]
	m.board.put(at, value)
	m.listener.InsertTile(at, value)

	return at, true
}

// Reset clears the board and score and discards queued moves without running them.
// A move already being resolved completes normally.
func (m *Model) Reset() {
	m.qmu.Lock()
	discarded := len(m.queue)
	m.queue = nil
	m.qmu.Unlock()

	if discarded > 0 {
		m.logger.Warn("queued moves discarded", "count", discarded)
	}

	m.mu.Lock()
	m.board.Clear()
	m.score = 0
	m.mu.Unlock()
}

// UserHasWon reports whether any tile reached the threshold, with the first
// such cell in row-major order.
func (m *Model) UserHasWon() (bool, Coord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, v := range m.board.cells {
		if v >= m.threshold {
			return true, Coord{Row: i / m.board.dim, Col: i % m.board.dim}
		}
	}
	return false, Coord{}
}

// UserHasLost reports whether the board is full and no direction changes it.
func (m *Model) UserHasLost() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return !CanMove(m.board)
}
