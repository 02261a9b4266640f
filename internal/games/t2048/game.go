package t2048

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Variant describes one registered flavour of the puzzle.
// Zero Dimension or Threshold means "use the configured value".
type Variant struct {
	ID        string
	Title     string
	Mode      Mode
	Dimension int
	Threshold int
}

// Variants lists every flavour registered with the game registry.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Mode: ModeCampaign},
	{ID: "2048_endless", Title: "2048 (Endless)", Mode: ModeEndless},
	{ID: "2048_mini", Title: "2048 Mini (3x3)", Mode: ModeEndless, Dimension: 3, Threshold: 256},
	{ID: "2048_large", Title: "2048 Large (5x5)", Mode: ModeEndless, Dimension: 5, Threshold: 4096},
}

// levelClearDelay is how long the level-cleared banner stays up, in ticks.
const levelClearDelay = 120

// Game implements the 2048 puzzle on top of an engine.Model.
type Game struct {
	variant    Variant
	cfg        config.T2048Config
	baseLogger *log.Logger // Set by SetLogger, nil means the default logger
	logger     *log.Logger

	model      *engine.Model
	board      *engine.Board // Snapshot taken after every accepted move
	sink       *eventSink
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	tick  uint64
	moves int

	levels     []Level
	levelIndex int // Current level (0-indexed)
	spawn4Prob float64
	startLevel int // Requested start level (1-based), consumed by the next Reset

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool // Campaign complete
	reached         bool // Endless threshold announced
	paused          bool
	tooSmall        bool
	levelClearTicks int

	// Animation state
	animations     []TileAnimation
	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	pendingNewTile *PendingTile
	merged         []engine.Coord
}

// NewVariant creates a game for the given variant.
func NewVariant(v Variant) *Game {
	return &Game{variant: v}
}

// New creates a new campaign mode 2048 game.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless() *Game {
	return NewVariant(Variants[1])
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.variant.Mode
}

// SetStartLevel selects the campaign level (1-based) used by the next Reset.
// 0 starts from the first level.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// SetLogger replaces the logger used from the next Reset on.
func (g *Game) SetLogger(logger *log.Logger) {
	g.baseLogger = logger
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	base := g.baseLogger
	if base == nil {
		base = log.Default()
	}
	g.logger = base.WithPrefix(g.variant.ID)

	cfg, err := config.LoadT2048(rc.ConfigPath)
	if err != nil {
		g.logger.Warn("using default configuration", "err", err)
	}
	if preset, ok := config.ParsePreset(rc.Difficulty); ok {
		config.ApplyT2048Preset(&cfg, preset)
	} else {
		g.logger.Warn("unknown difficulty preset, using normal", "preset", rc.Difficulty)
		config.ApplyT2048Preset(&cfg, config.DifficultyNormal)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.levels = CampaignLevels(cfg)

	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = engine.NewSource(seed)

	dim := g.variant.Dimension
	if dim == 0 {
		dim = cfg.Board.Dimension
	}
	threshold := g.variant.Threshold
	if threshold == 0 {
		threshold = cfg.Board.Threshold
	}

	g.sink = &eventSink{}
	g.model = engine.New(dim, threshold, g.sink,
		engine.WithSource(g.rng),
		engine.WithLogger(g.logger),
	)

	g.tick = 0
	g.moves = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.reached = false
	g.paused = false
	g.levelClearTicks = 0
	g.clearAnimation()

	// Apply selected start level (campaign only)
	g.levelIndex = 0
	if g.variant.Mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= len(g.levels) {
		g.levelIndex = g.startLevel - 1
	}
	g.startLevel = 0

	g.loadLevel()

	for range cfg.Spawn.InitialTiles {
		g.model.InsertTileAtRandomLocation(cfg.Spawn.InitialValue)
	}
	g.sink.drain()
	g.board = g.model.Board()

	g.checkScreenSize()

	g.logger.Debug("game started",
		"mode", g.variant.Mode,
		"dimension", dim,
		"threshold", g.model.Threshold(),
		"seed", seed,
	)
}

// loadLevel applies the current level's target and spawn rate.
func (g *Game) loadLevel() {
	if g.variant.Mode == ModeEndless || len(g.levels) == 0 {
		g.spawn4Prob = g.cfg.Spawn.FourProbability
		return
	}

	level := g.levels[min(g.levelIndex, len(g.levels)-1)]
	g.model.SetThreshold(level.Target)
	g.spawn4Prob = level.Spawn4
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardSize(g.board.Dimension())
	minW := boardW + 2
	minH := boardH + hudHeight + 3 // gap line plus controls
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen size and re-checks the minimum.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.updateAnimation()

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	switch in.First(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight) {
	case core.ActionUp:
		g.processMove(engine.Up)
	case core.ActionDown:
		g.processMove(engine.Down)
	case core.ActionLeft:
		g.processMove(engine.Left)
	case core.ActionRight:
		g.processMove(engine.Right)
	}

	return core.StepResult{State: g.State()}
}

// processMove queues a move and animates whatever it produced.
func (g *Game) processMove(dir engine.Direction) {
	if g.animating {
		g.clearAnimation()
	}

	g.model.QueueMove(dir, g.followUp)

	moves, inserted := g.sink.drain()
	if len(moves) > 0 {
		g.startSlideAnimation(moves, inserted)
	}
	g.board = g.model.Board()
}

// followUp runs after the engine resolved a move: win check, new tile, loss check.
func (g *Game) followUp(changed bool) {
	if !changed {
		return
	}
	g.moves++

	if won, at := g.model.UserHasWon(); won {
		switch g.variant.Mode {
		case ModeCampaign:
			g.logger.Info("level cleared", "level", g.levelIndex+1, "target", g.model.Threshold(), "at", at)
			g.levelCleared = true
			g.levelClearTicks = 0
			return
		case ModeEndless:
			if !g.reached {
				g.logger.Info("threshold reached", "target", g.model.Threshold(), "at", at)
				g.reached = true
			}
		}
	}

	g.model.InsertTileAtRandomLocation(g.nextTileValue())

	if g.model.UserHasLost() {
		g.logger.Info("no moves left", "score", g.model.Score(), "moves", g.moves)
		g.gameOver = true
	}
}

// nextTileValue picks 4 with the current spawn-four probability, else 2.
func (g *Game) nextTileValue() int {
	p := g.spawn4Prob
	if g.difficulty.IsEnabled() {
		p = g.difficulty.Spawn4(p, g.model.Score(), g.moves)
	}
	if g.rng.Float64() < p {
		return 4
	}
	return 2
}

// advanceLevel moves to the next level, keeping board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= len(g.levels)-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()

	// A kept tile may already meet the new target; clear that level in turn.
	if won, at := g.model.UserHasWon(); won {
		g.logger.Info("level cleared", "level", g.levelIndex+1, "target", g.model.Threshold(), "at", at)
		g.levelCleared = true
		return
	}

	// The board that cleared the previous level still needs its follow-up tile.
	g.model.InsertTileAtRandomLocation(g.nextTileValue())
	_, inserted := g.sink.drain()
	if inserted != nil {
		g.startPopAnimation(inserted.X, inserted.Y, inserted.Value)
	}
	g.board = g.model.Board()

	if g.model.UserHasLost() {
		g.gameOver = true
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.model.Score(),
		GameOver: g.gameOver || g.won,
		Won:      g.won || g.reached,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Board returns the current board snapshot.
func (g *Game) Board() *engine.Board {
	return g.board.Clone()
}

// Level returns the current campaign level, or nil in endless mode.
func (g *Game) Level() *Level {
	if g.variant.Mode != ModeCampaign || g.levelIndex >= len(g.levels) {
		return nil
	}
	return &g.levels[g.levelIndex]
}

// Levels returns the campaign levels loaded by the last Reset.
func (g *Game) Levels() []Level {
	return g.levels
}
