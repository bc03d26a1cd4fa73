package simulation

import (
	"errors"
	"testing"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// layOut places a serpent's head at head with its body trailing along dir, spacing apart.
func layOut(s *Serpent, head, dir geometry.Vector2D) {
	step := dir.NormalizeTo(s.cfg.Spacing)
	for i := range s.Segments {
		s.Segments[i] = head.Add(step.Mul(float64(i)))
	}
}

func newTestGame(t *testing.T, cfg *Config, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(cfg, opts...)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return g
}

func TestNewGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	audio := &recordingAudio{}
	g := newTestGame(t, cfg, WithAudio(audio))

	if len(g.Bots()) != cfg.BotCount {
		t.Errorf("bots = %d; want %d", len(g.Bots()), cfg.BotCount)
	}
	if len(g.Orbs()) != cfg.OrbCount {
		t.Errorf("orbs = %d; want %d", len(g.Orbs()), cfg.OrbCount)
	}
	if !g.Player().IsPlayer() {
		t.Error("player serpent is not flagged as the player")
	}
	for _, b := range g.Bots() {
		if b.IsPlayer() {
			t.Fatal("a bot is flagged as the player")
		}
		if h := b.Head(); h.X < -cfg.WorldRadius || h.X > cfg.WorldRadius || h.Y < -cfg.WorldRadius || h.Y > cfg.WorldRadius {
			t.Fatalf("bot spawned outside the world box: %v", h)
		}
	}
	for _, o := range g.Orbs() {
		if o.Pos.Len() > cfg.FoodSpawnRadius()+geometry.Epsilon {
			t.Fatalf("orb spawned outside the food radius: %v", o.Pos)
		}
		if o.Radius < float64(cfg.OrbSizeMin) || o.Radius > float64(cfg.OrbSizeMax) {
			t.Fatalf("orb radius %v outside [%d, %d]", o.Radius, cfg.OrbSizeMin, cfg.OrbSizeMax)
		}
	}
	if audio.count(SfxStart) != 1 {
		t.Errorf("start cue played %d times; want 1", audio.count(SfxStart))
	}
}

func TestNewGame_Errors(t *testing.T) {
	t.Run("Invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.WorldRadius = 0
		if _, err := NewGame(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v; want ErrInvalidConfig", err)
		}
	})
	t.Run("Neural without population", func(t *testing.T) {
		cfg := testConfig()
		cfg.BotController = ControllerNeural
		if _, err := NewGame(cfg); !errors.Is(err, ErrNoPopulation) {
			t.Errorf("error = %v; want ErrNoPopulation", err)
		}
	})
	t.Run("Empty population", func(t *testing.T) {
		cfg := testConfig()
		cfg.BotController = ControllerNeural
		if _, err := NewGame(cfg, WithPopulation(newFakePopulation(0))); !errors.Is(err, ErrNoGenomes) {
			t.Errorf("error = %v; want ErrNoGenomes", err)
		}
	})
}

func TestGame_OrbConsumption(t *testing.T) {
	const dt = 1.0 / 128 // speed*dt is exact in binary

	for _, temp := range []bool{false, true} {
		name := "Regular orb"
		if temp {
			name = "Temp orb"
		}
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			audio := &recordingAudio{}
			g := newTestGame(t, cfg, WithAudio(audio))

			p := g.Player()
			layOut(p, geometry.Vector2D{}, geometry.Vector2D{X: -1})
			p.Heading = 0
			p.Digesting = 5

			// After this tick's move the head sits at (speed*dt, 0); put the orb at a gap of exactly 0.
			head := geometry.Vector2D{X: cfg.Speed * dt}
			orbPos := head.Add(geometry.Vector2D{X: 10 + p.Radius()})
			orb := &Orb{Pos: orbPos, Radius: 10, Temp: temp}
			g.orbs = []*Orb{orb}

			g.Step(dt)

			if !p.Head().Eq(head) {
				t.Fatalf("player head = %v; want %v", p.Head(), head)
			}
			if p.Len() != cfg.InitialLength+1 || p.Digesting != 25 {
				t.Errorf("after eating: len %d digesting %v; want %d and 25", p.Len(), p.Digesting, cfg.InitialLength+1)
			}
			if p.LastOrbTime != 0 {
				t.Errorf("LastOrbTime = %v; want 0 after a meal", p.LastOrbTime)
			}
			if temp {
				if len(g.Orbs()) != 0 {
					t.Errorf("temp orb still present: %d orbs", len(g.Orbs()))
				}
			} else {
				if len(g.Orbs()) != 1 || g.Orbs()[0] != orb {
					t.Fatalf("regular orb should stay in the world")
				}
				if orb.Pos == orbPos {
					t.Errorf("orb was not moved after being eaten")
				}
				if orb.Pos.Len() > cfg.FoodSpawnRadius()+geometry.Epsilon {
					t.Errorf("orb respawned outside the food radius: %v", orb.Pos)
				}
			}
			if audio.count(SfxEat) != 1 {
				t.Errorf("eat cue played %d times; want 1", audio.count(SfxEat))
			}
		})
	}
}

func TestGame_OrbAttraction(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	p := g.Player()
	layOut(p, geometry.Vector2D{}, geometry.Vector2D{X: -1})

	orb := &Orb{Pos: geometry.Vector2D{X: 0, Y: 80}, Radius: 10}
	far := &Orb{Pos: geometry.Vector2D{X: 0, Y: -1000}, Radius: 10}
	g.orbs = []*Orb{orb, far}

	const dt = 1.0 / 64
	g.Step(dt)

	pulled := 80 - orb.Pos.DistanceTo(p.Head())
	if pulled <= 0 {
		t.Errorf("orb within eat distance was not pulled (moved %v)", pulled)
	}
	if far.Pos != (geometry.Vector2D{X: 0, Y: -1000}) {
		t.Errorf("orb out of reach moved to %v", far.Pos)
	}
}

func TestGame_BotsEatBeforePlayer(t *testing.T) {
	cfg := testConfig()
	cfg.BotCount = 1
	g := newTestGame(t, cfg)

	p, b := g.Player(), g.Bots()[0]
	layOut(p, geometry.Vector2D{X: -16}, geometry.Vector2D{X: -1})
	layOut(b, geometry.Vector2D{X: 16}, geometry.Vector2D{X: 1})
	g.orbs = []*Orb{{Pos: geometry.Vector2D{}, Radius: 20}}

	g.Step(0) // nothing moves; both heads overlap the orb

	if p.Dead || b.Dead {
		t.Fatalf("nobody should die: player %v bot %v", p.Dead, b.Dead)
	}
	if b.Digesting != cfg.Stomach-20 {
		t.Errorf("bot digesting = %v; the bot should win the contested orb", b.Digesting)
	}
	if p.Digesting != cfg.Stomach {
		t.Errorf("player digesting = %v; the player should not have eaten", p.Digesting)
	}
}

func TestGame_DeathDropsOrbs(t *testing.T) {
	for _, drop := range []bool{true, false} {
		cfg := testConfig()
		cfg.BotCount = 1
		cfg.DropOrbsOnDeath = drop
		g := newTestGame(t, cfg)
		layOut(g.Player(), geometry.Vector2D{X: -3000}, geometry.Vector2D{Y: 1})
		b := g.Bots()[0]
		layOut(b, geometry.Vector2D{X: 500}, geometry.Vector2D{X: 1})

		b.Kill()
		g.Step(0)

		want := 0
		if drop {
			want = b.Len()
		}
		if len(g.Orbs()) != want {
			t.Fatalf("dropOrbsOnDeath=%v: %d orbs; want %d", drop, len(g.Orbs()), want)
		}
		for i, o := range g.Orbs() {
			if !o.Temp {
				t.Fatalf("dropped orb %d is not temporary", i)
			}
			if !o.Pos.Eq(b.Segments[i]) {
				t.Errorf("dropped orb %d at %v; want %v", i, o.Pos, b.Segments[i])
			}
		}

		g.Step(0)
		if len(g.Orbs()) != want {
			t.Errorf("a corpse dropped orbs twice: %d", len(g.Orbs()))
		}
	}
}

func TestGame_PlayerDeathEndsMatch(t *testing.T) {
	cfg := testConfig()
	audio := &recordingAudio{}
	g := newTestGame(t, cfg, WithAudio(audio))

	g.Player().Kill()
	g.Step(0.1)
	if !g.GameOver() {
		t.Fatal("GameOver() = false after the player died")
	}
	if audio.count(SfxDeath) != 1 {
		t.Errorf("death cue played %d times; want 1", audio.count(SfxDeath))
	}

	ticks := g.Ticks()
	g.Step(0.1)
	if g.Ticks() != ticks {
		t.Error("the world kept running after game over")
	}

	if err := g.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if g.GameOver() || g.Player().Dead || g.Time() != 0 {
		t.Error("Reset() did not start a fresh match")
	}
}

func TestGame_ContinueAfterGameOver(t *testing.T) {
	cfg := testConfig()
	cfg.ContinueAfterGameOver = true
	g := newTestGame(t, cfg)
	g.Player().Kill()
	g.Step(0.1)
	g.Step(0.1)
	if g.Ticks() != 2 {
		t.Errorf("Ticks() = %d; want 2", g.Ticks())
	}
}

func TestGame_BotBodyCollisionPolicy(t *testing.T) {
	for _, policy := range []bool{false, true} {
		cfg := testConfig()
		cfg.BotCount = 2
		cfg.BotBodyCollisions = policy
		g := newTestGame(t, cfg)
		layOut(g.Player(), geometry.Vector2D{X: -3000}, geometry.Vector2D{Y: 1})

		runner, wall := g.Bots()[0], g.Bots()[1]
		layOut(wall, geometry.Vector2D{X: 100}, geometry.Vector2D{X: -1})
		// The runner's head rests on the fifth segment of the other bot.
		layOut(runner, geometry.Vector2D{X: 50}, geometry.Vector2D{Y: 1})

		g.Step(0.001)

		if runner.Dead != policy {
			t.Errorf("botBodyCollisions=%v: runner dead = %v", policy, runner.Dead)
		}
		if wall.Dead {
			t.Errorf("botBodyCollisions=%v: the bot that was run into died", policy)
		}
	}
}

func TestGame_BoundaryKillsInStep(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	p := g.Player()
	edge := cfg.BoundaryRadius() - p.Radius()
	layOut(p, geometry.Vector2D{X: edge - 0.5}, geometry.Vector2D{X: -1})
	p.Heading = 0

	g.Step(1.0 / 60)
	if !p.Dead || !g.GameOver() {
		t.Error("player crossing the wall should die")
	}
}

func TestGame_RespawnHeuristicBots(t *testing.T) {
	cfg := testConfig()
	cfg.BotCount = 1
	cfg.BotRespawnDelay = 1
	g := newTestGame(t, cfg)
	layOut(g.Player(), geometry.Vector2D{X: -3000}, geometry.Vector2D{Y: 1})

	first := g.Bots()[0]
	first.Kill()

	g.Step(0.5) // death noticed at t=0.5
	g.Step(0.5)
	if g.Bots()[0] != first {
		t.Fatal("bot respawned before the delay elapsed")
	}
	g.Step(0.5)
	if g.Bots()[0] == first || g.Bots()[0].Dead {
		t.Error("bot was not respawned after the delay")
	}
}

func TestGame_GenerationBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.BotController = ControllerNeural
	cfg.DropOrbsOnDeath = false
	pop := newFakePopulation(3)
	g := newTestGame(t, cfg, WithPopulation(pop))

	if len(g.Bots()) != 3 {
		t.Fatalf("bots = %d; want one per genome", len(g.Bots()))
	}
	old := pop.Genomes()
	layOut(g.Player(), geometry.Vector2D{X: -3000}, geometry.Vector2D{Y: 1})

	g.Bots()[0].Kill()
	g.Step(0.01)
	if pop.evolved != 0 {
		t.Fatal("evolved while bots were still alive")
	}

	for _, b := range g.Bots() {
		b.Kill()
	}
	g.Step(0.01)

	if pop.evolved != 1 {
		t.Fatalf("Evolve called %d times; want 1", pop.evolved)
	}
	if g.Generation() != 1 {
		t.Errorf("Generation() = %d; want 1", g.Generation())
	}
	for i, genome := range old {
		if genome.Fitness() != float64(cfg.InitialLength) {
			t.Errorf("genome %d fitness = %v; want final length %d", i, genome.Fitness(), cfg.InitialLength)
		}
	}
	if g.AliveBots() != 3 {
		t.Errorf("AliveBots() = %d; want a fresh cohort of 3", g.AliveBots())
	}
	for i, b := range g.Bots() {
		if b.Steering().(*NeuralSteering).Genome() != pop.Genomes()[i] {
			t.Errorf("bot %d is not driven by the new genome", i)
		}
	}
}

func TestGame_Cull(t *testing.T) {
	t.Run("Neural bots start a new generation", func(t *testing.T) {
		cfg := testConfig()
		cfg.BotController = ControllerNeural
		pop := newFakePopulation(2)
		g := newTestGame(t, cfg, WithPopulation(pop))
		layOut(g.Player(), geometry.Vector2D{X: -3000}, geometry.Vector2D{Y: 1})

		g.Cull()
		if g.AliveBots() != 0 {
			t.Fatalf("AliveBots() = %d after a cull; want 0", g.AliveBots())
		}
		g.Step(0.01)
		if pop.evolved != 1 || g.AliveBots() != 2 {
			t.Errorf("evolved %d times with %d bots alive; want 1 and 2", pop.evolved, g.AliveBots())
		}
	})

	t.Run("Heuristic bots stay dead", func(t *testing.T) {
		cfg := testConfig()
		cfg.BotCount = 3
		g := newTestGame(t, cfg)
		g.Cull()
		g.Step(0.01)
		if g.AliveBots() != 0 || g.Player().Dead {
			t.Errorf("AliveBots() = %d, player dead = %v; want 0 and false", g.AliveBots(), g.Player().Dead)
		}
	})
}

func TestGame_CollaboratorFailuresAreIsolated(t *testing.T) {
	cfg := testConfig()
	cfg.BotController = ControllerNeural
	pop := newFakePopulation(1)
	pop.genomes[0] = &panickyGenome{}

	g := newTestGame(t, cfg, WithAudio(brokenAudio{}), WithPopulation(pop))
	layOut(g.Player(), geometry.Vector2D{X: -3000}, geometry.Vector2D{Y: 1})
	layOut(g.Bots()[0], geometry.Vector2D{X: 500}, geometry.Vector2D{X: 1})

	g.Step(0.01)
	g.Player().Kill()
	g.Step(0.01)

	if g.Bots()[0].Dead {
		t.Error("a panicking genome should not kill its bot")
	}
}

func TestGame_Snapshot(t *testing.T) {
	cfg := testConfig()
	cfg.BotCount = 2
	cfg.OrbCount = 5
	g := newTestGame(t, cfg)
	g.Bots()[1].Kill()

	snap := g.Snapshot()
	if len(snap.Bots) != 1 || len(snap.Orbs) != 5 {
		t.Fatalf("snapshot has %d bots and %d orbs; want 1 and 5", len(snap.Bots), len(snap.Orbs))
	}
	snap.Player.Segments[0] = geometry.Vector2D{X: 1e6}
	snap.Orbs[0].Radius = 999
	if g.Player().Head().X == 1e6 || g.Orbs()[0].Radius == 999 {
		t.Error("snapshot shares memory with the game")
	}
	if snap.BoundaryRadius != cfg.BoundaryRadius() {
		t.Errorf("BoundaryRadius = %v", snap.BoundaryRadius)
	}
	if snap.Player.Radius() != g.Player().Radius() {
		t.Error("snapshot serpents should still report their radius")
	}
}

func TestGame_SnapshotSensors(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	if g.Snapshot().Sensors != nil {
		t.Error("heuristic bots should not publish sensor readings")
	}

	cfg = testConfig()
	cfg.BotController = ControllerNeural
	g = newTestGame(t, cfg, WithPopulation(newFakePopulation(2)))
	layOut(g.Player(), geometry.Vector2D{X: -3000}, geometry.Vector2D{Y: 1})
	g.Step(0.01)

	snap := g.Snapshot()
	if len(snap.Sensors) != 2 {
		t.Fatalf("snapshot has sensors for %d bots; want 2", len(snap.Sensors))
	}
	for _, b := range snap.Bots {
		hits := snap.Sensors[b.ID]
		if len(hits) != cfg.Rays {
			t.Errorf("bot %s has %d readings; want %d", b.ID, len(hits), cfg.Rays)
		}
	}
	id := snap.Bots[0].ID
	snap.Sensors[id][0].Distance = -1
	if g.Bots()[0].Steering().(*NeuralSteering).Sensors()[0].Distance == -1 {
		t.Error("snapshot sensors share memory with the game")
	}
}

func TestGame_DeterministicWithSeed(t *testing.T) {
	run := func() *Game {
		cfg := DefaultConfig()
		cfg.Seed = 99
		cfg.BotCount = 10
		cfg.OrbCount = 100
		g := newTestGame(t, cfg)
		for i := 0; i < 120; i++ {
			g.Step(1.0 / 60)
		}
		return g
	}
	a, b := run(), run()
	for i := range a.Bots() {
		if a.Bots()[i].Head() != b.Bots()[i].Head() {
			t.Fatalf("bot %d diverged: %v vs %v", i, a.Bots()[i].Head(), b.Bots()[i].Head())
		}
	}
}
