package simulation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

var (
	// ErrNoPopulation is returned when neural bots are requested without a population.
	ErrNoPopulation = errors.New("neural bots need a population")
	// ErrNoGenomes is returned when the population has no genome to seat a bot with.
	ErrNoGenomes = errors.New("population has no genomes")
)

// Option customises a Game at construction.
type Option func(*Game)

// WithInput sets the pointer source steering the player.
func WithInput(in PointerInput) Option {
	return func(g *Game) { g.input = in }
}

// WithAudio sets the sound cue sink.
func WithAudio(a Audio) Option {
	return func(g *Game) { g.audio = a }
}

// WithPopulation supplies the genomes for neural bots.
func WithPopulation(p Population) Option {
	return func(g *Game) { g.population = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithAutopilot steers the player with the heuristic bot brain instead of the pointer.
func WithAutopilot() Option {
	return func(g *Game) { g.autopilot = true }
}

// Game owns every entity and advances them in a fixed order, one tick per Step.
type Game struct {
	cfg        *Config
	rng        *rand.Rand
	logger     log.Logger
	input      PointerInput
	audio      Audio
	population Population
	autopilot  bool

	player   *Serpent
	bots     []*Serpent
	orbs     []*Orb
	pending  []*Orb // dropped this tick, joins orbs before the orb pass
	boundary Boundary
	bodies   *segmentGrid

	time       float64
	ticks      uint64
	over       bool
	generation int
	diedAt     map[*Serpent]float64
}

// NewGame validates cfg and lays out a fresh match.
func NewGame(cfg *Config, opts ...Option) (*Game, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := &Game{
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:   log.DiscardLogger,
		input:    idleInput{},
		audio:    silentAudio{},
		boundary: Boundary{Radius: cfg.BoundaryRadius()},
		bodies:   newSegmentGrid(cfg.BotRepelDistance),
	}
	for _, opt := range opts {
		opt(g)
	}
	if cfg.BotController == ControllerNeural && g.population == nil {
		return nil, fmt.Errorf("%w: botController is %q", ErrNoPopulation, ControllerNeural)
	}
	if err := g.populate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset starts a new match with the same collaborators. A neural population keeps its generation.
func (g *Game) Reset() error {
	return g.populate()
}

func (g *Game) populate() error {
	g.time = 0
	g.ticks = 0
	g.over = false
	g.pending = nil
	g.diedAt = make(map[*Serpent]float64)

	g.orbs = make([]*Orb, g.cfg.OrbCount)
	for i := range g.orbs {
		g.orbs[i] = newOrb(g.cfg, g.rng)
	}

	var steering Steering = &PlayerSteering{Input: g.input}
	if g.autopilot {
		steering = NewHeuristicSteering(g.cfg, g.rng)
	}
	g.player = g.spawn(steering)
	g.player.player = true

	if err := g.seatBots(); err != nil {
		return err
	}
	playSfx(g.audio, g.logger, SfxStart)
	return nil
}

// seatBots builds the bot roster: one per genome in neural mode, BotCount otherwise.
func (g *Game) seatBots() error {
	if g.cfg.BotController != ControllerNeural {
		g.bots = make([]*Serpent, g.cfg.BotCount)
		for i := range g.bots {
			g.bots[i] = g.spawn(NewHeuristicSteering(g.cfg, g.rng))
		}
		return nil
	}

	genomes := g.population.Genomes()
	if len(genomes) == 0 {
		return ErrNoGenomes
	}
	g.generation = g.population.Generation()
	g.bots = make([]*Serpent, len(genomes))
	for i, genome := range genomes {
		g.bots[i] = g.spawn(NewNeuralSteering(g.cfg, genome, g.logger))
	}
	return nil
}

// spawn places a new serpent around the centre.
func (g *Game) spawn(steering Steering) *Serpent {
	wr := g.cfg.WorldRadius
	start := geometry.Vector2D{
		X: geometry.Clamp(geometry.SignedGauss(g.rng, 0, wr), -wr, wr),
		Y: geometry.Clamp(geometry.SignedGauss(g.rng, 0, wr), -wr, wr),
	}
	primary, _ := randomColors(g.rng)
	return NewSerpent(g.cfg, start, primary, steering)
}

// Step advances the world by dt seconds of wall-clock time. It does nothing once the
// match is over unless the config asks to keep running.
func (g *Game) Step(dt float64) {
	if g.over && !g.cfg.ContinueAfterGameOver {
		return
	}
	dt *= g.cfg.SimSpeed
	g.time += dt
	g.ticks++

	v := g.view(dt)

	g.player.Step(dt, v)
	g.player.collides(g.bots)

	opponents := []*Serpent{g.player}
	if g.cfg.BotBodyCollisions {
		opponents = v.serpents()
	}
	for _, b := range g.bots {
		b.Step(dt, v)
		b.collides(opponents)
	}

	for _, b := range g.bots {
		g.boundary.Check(b)
	}
	g.boundary.Check(g.player)

	g.bury()

	g.orbs = append(g.orbs, g.pending...)
	g.pending = g.pending[:0]
	g.stepOrbs(dt)
	g.compactOrbs()

	if g.cfg.BotController == ControllerNeural {
		g.nextGeneration()
	} else {
		g.respawnBots()
	}
}

// view captures the read-only world for this tick's steering decisions.
func (g *Game) view(dt float64) *View {
	v := &View{
		Player:   g.player,
		Bots:     g.bots,
		Orbs:     g.orbs,
		Boundary: g.boundary,
		Time:     g.time,
		bodies:   g.bodies,
	}
	all := v.serpents()
	for _, s := range all {
		if !s.Dead && s.Radius() > v.bodyRadius {
			v.bodyRadius = s.Radius()
		}
	}
	g.bodies.rebuild(all, g.cfg.BoostSpeed*dt)
	return v
}

// bury handles serpents that died this tick: body orbs, logs, and the end of the match.
func (g *Game) bury() {
	for _, s := range g.roster() {
		if !s.Dead {
			continue
		}
		if _, done := g.diedAt[s]; done {
			continue
		}
		g.diedAt[s] = g.time

		if g.cfg.DropOrbsOnDeath {
			for _, seg := range s.Segments {
				g.pending = append(g.pending, newTempOrb(g.cfg, g.rng, seg))
			}
		}
		if s.player {
			g.over = true
			g.logger.Infof("player died at length %d after %.1fs", s.Len(), g.time)
			playSfx(g.audio, g.logger, SfxDeath)
		} else {
			g.logger.Debugf("bot %s died at length %d", s.ID, s.Len())
		}
	}
}

// stepOrbs lets bots then the player interact with every orb.
func (g *Game) stepOrbs(dt float64) {
	eaters := append(g.livingBots(), g.player)
	for _, o := range g.orbs {
		o.attracted = false
		o.wobble(g.cfg, g.time)
		for _, s := range eaters {
			if s.Dead {
				continue
			}
			if !o.feed(s, g.cfg, dt) {
				continue
			}
			if s.player {
				playSfx(g.audio, g.logger, SfxEat)
			}
			o.regen(g.cfg, g.rng)
			break
		}
	}
}

// compactOrbs drops the orbs staged for removal, keeping the order of the rest.
func (g *Game) compactOrbs() {
	kept := g.orbs[:0]
	for _, o := range g.orbs {
		if !o.removed {
			kept = append(kept, o)
		}
	}
	clear(g.orbs[len(kept):])
	g.orbs = kept
}

// nextGeneration evolves the population once every neural bot is dead.
func (g *Game) nextGeneration() {
	for _, b := range g.bots {
		if !b.Dead {
			return
		}
	}

	if err := evolve(g.population); err != nil {
		g.logger.Warnf("generation %d: evolve failed, replaying it: %v", g.generation, err)
	}
	old := g.bots
	if err := g.seatBots(); err != nil {
		g.logger.Warnf("generation %d: %v", g.generation, err)
		g.bots = old
		return
	}
	for _, b := range old {
		delete(g.diedAt, b)
	}
	g.logger.Infof("generation %d seated %d bots", g.generation, len(g.bots))
}

// Cull kills every living bot. In neural mode the next Step starts a new generation.
func (g *Game) Cull() {
	for _, b := range g.bots {
		b.Kill()
	}
}

// respawnBots replaces heuristic bots that have been dead for BotRespawnDelay seconds.
func (g *Game) respawnBots() {
	if g.cfg.BotRespawnDelay <= 0 {
		return
	}
	for i, b := range g.bots {
		if !b.Dead {
			continue
		}
		if g.time-g.diedAt[b] < g.cfg.BotRespawnDelay {
			continue
		}
		delete(g.diedAt, b)
		g.bots[i] = g.spawn(NewHeuristicSteering(g.cfg, g.rng))
	}
}

func (g *Game) roster() []*Serpent {
	return append([]*Serpent{g.player}, g.bots...)
}

func (g *Game) livingBots() []*Serpent {
	alive := make([]*Serpent, 0, len(g.bots))
	for _, b := range g.bots {
		if !b.Dead {
			alive = append(alive, b)
		}
	}
	return alive
}

// Config is the tuning the game was built with.
func (g *Game) Config() *Config { return g.cfg }

// Player is the player's serpent.
func (g *Game) Player() *Serpent { return g.player }

// Bots lists every bot, dead or alive, in stepping order.
func (g *Game) Bots() []*Serpent { return g.bots }

// Orbs lists the orbs currently in the world.
func (g *Game) Orbs() []*Orb { return g.orbs }

// BoundaryRadius is the radius of the lethal wall.
func (g *Game) BoundaryRadius() float64 { return g.boundary.Radius }

// Time is the simulated time since the match started, in seconds.
func (g *Game) Time() float64 { return g.time }

// Ticks counts the steps taken since the match started.
func (g *Game) Ticks() uint64 { return g.ticks }

// GameOver reports whether the player has died.
func (g *Game) GameOver() bool { return g.over }

// Generation is the population generation the current bots belong to.
func (g *Game) Generation() int { return g.generation }

// AliveBots counts living bots.
func (g *Game) AliveBots() int {
	n := 0
	for _, b := range g.bots {
		if !b.Dead {
			n++
		}
	}
	return n
}
