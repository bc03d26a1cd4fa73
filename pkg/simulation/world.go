package simulation

import (
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Control commands understood by WorldActor, sent as wrapperspb.StringValue.
const (
	CommandRestart = "restart"
	CommandPause   = "pause"
	CommandResume  = "resume"
	CommandCull    = "cull"
)

// WorldActor hosts a Game. Messages are handled one at a time, so every tick runs to
// completion before anything else can observe the world.
//
//   - *durationpb.Duration: advance by that much time, then publish a snapshot
//   - *emptypb.Empty: reply with Game.Stats
//   - *wrapperspb.StringValue: restart, pause, resume or cull
type WorldActor struct {
	cfg        *Config
	opts       []Option
	game       *Game
	snapshotCh chan<- *WorldSnapshot
	paused     bool
	// --- Benchmark Stats ---
	tickCount   int
	lastLogTime time.Time
}

// NewWorldActor creates the world. snapshotCh may be nil when nobody renders.
func NewWorldActor(snapshotCh chan<- *WorldSnapshot, cfg *Config, opts ...Option) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		opts:        opts,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	opts := append([]Option{WithLogger(ctx.ActorSystem().Logger())}, w.opts...)
	game, err := NewGame(w.cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	w.game = game
	ctx.ActorSystem().Logger().Infof("World is populated: %d bots, %d orbs", len(game.Bots()), len(game.Orbs()))
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started (%s bots)", w.cfg.BotController)
		w.pushSnapshot()

	case *durationpb.Duration:
		if !w.paused {
			w.game.Step(msg.AsDuration().Seconds())
			w.tickCount++
		}
		w.logBenchmarks(ctx)
		w.pushSnapshot()

	case *emptypb.Empty:
		ctx.Response(w.game.Stats())

	case *wrapperspb.StringValue:
		w.control(ctx, msg.GetValue())

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) control(ctx *actor.ReceiveContext, command string) {
	switch command {
	case CommandRestart:
		if err := w.game.Reset(); err != nil {
			ctx.Logger().Errorf("restart failed: %v", err)
			return
		}
		w.paused = false
		ctx.Logger().Info("World restarted")
	case CommandPause:
		w.paused = true
	case CommandResume:
		w.paused = false
	case CommandCull:
		w.game.Cull()
		ctx.Logger().Infof("culled generation %d", w.game.Generation())
	default:
		ctx.Logger().Warnf("unknown world command %q", command)
		return
	}
	w.pushSnapshot()
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Bots alive: %d | Orbs: %d | Generation: %d",
			w.tickCount, w.game.AliveBots(), len(w.game.Orbs()), w.game.Generation())
		w.tickCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	snap := w.game.Snapshot()
	snap.Paused = w.paused
	select {
	case w.snapshotCh <- snap:
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}
