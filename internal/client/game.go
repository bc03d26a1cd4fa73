package client

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-slither/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	maxFrameTime = 0.1 // seconds; longer frames are clamped so a stall cannot teleport serpents
	zoomStep     = 1.1
)

// Game is the ebiten front-end. It owns the clock: every frame it sends the elapsed time
// to the world actor and draws the latest snapshot it received.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *simulation.WorldSnapshot
	lastState  *simulation.WorldSnapshot

	pointer  *Pointer
	sound    *Sound
	render   *renderer
	lastTick time.Time

	// UI Controls
	panel         *ui.Panel
	widgetPause   *ui.Toggle
	widgetSensors *ui.Toggle
	widgetMinimap *ui.Toggle

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame spawns the world actor on system. sound may be nil for a silent game; extra
// options are passed through to the simulation.
func NewGame(ctx context.Context, system actor.ActorSystem, cfg *simulation.Config, width, height int, sound *Sound, opts ...simulation.Option) (*Game, error) {
	snapshotCh := make(chan *simulation.WorldSnapshot, 10) // Buffer to avoid blocking
	pointer := &Pointer{}
	if sound == nil {
		sound = NewSound(nil)
	}

	opts = append([]simulation.Option{simulation.WithInput(pointer), simulation.WithAudio(sound)}, opts...)
	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, cfg, opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		pointer:    pointer,
		sound:      sound,
		render:     &renderer{cam: NewCamera(float64(width), float64(height)), showMinimap: true},
	}

	g.panel = ui.NewPanel(10, 10, 180, "Slither")
	g.widgetPause = g.panel.AddToggle("Pause", ebiten.KeyP, false)
	g.panel.AddButton("Restart", ebiten.KeyR, func() {
		g.widgetPause.Value = false // restarting also resumes
		g.command(simulation.CommandRestart)
	})
	g.widgetPause.OnChange = func(paused bool) {
		if paused {
			g.command(simulation.CommandPause)
		} else {
			g.command(simulation.CommandResume)
		}
	}
	g.widgetSensors = g.panel.AddToggle("Sensors", ebiten.KeyS, false)
	g.widgetMinimap = g.panel.AddToggle("Minimap", ebiten.KeyM, true)
	return g, nil
}

func (g *Game) command(cmd string) {
	if err := actor.Tell(g.ctx, g.worldPID, wrapperspb.String(cmd)); err != nil {
		g.System.Logger().Warnf("command %q failed: %v", cmd, err)
	}
}

// frameTime returns the seconds since the previous frame, clamped to maxFrameTime.
func (g *Game) frameTime(now time.Time) float64 {
	if g.lastTick.IsZero() {
		g.lastTick = now
		return 0
	}
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	return min(dt, maxFrameTime)
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	g.render.showSensors = g.widgetSensors.Value
	g.render.showMinimap = g.widgetMinimap.Value

	if _, dy := ebiten.Wheel(); dy > 0 {
		g.render.cam.ZoomBy(zoomStep)
	} else if dy < 0 {
		g.render.cam.ZoomBy(1 / zoomStep)
	}

	// Keep only the freshest snapshot.
	for drained := false; !drained; {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			drained = true
		}
	}

	mx, my := ebiten.CursorPosition()
	boost := ebiten.IsKeyPressed(ebiten.KeySpace) ||
		(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.panel.Hovered())
	g.pointer.Set(g.render.cam.ToWorldOffset(float64(mx), float64(my)), boost)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := g.frameTime(start)
	g.render.clock += dt
	// ONLY send a Tick if the game is NOT over.
	// This effectively "freezes" the simulation in the final state.
	if g.lastState == nil || !g.lastState.IsGameOver {
		if err := actor.Tell(g.ctx, g.worldPID, durationpb.New(time.Duration(dt*float64(time.Second)))); err != nil {
			return fmt.Errorf("failed to tick world: %w", err)
		}
	}

	g.sound.Flush()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	g.render.draw(screen, g.lastState)
	g.panel.Draw(screen)
	g.render.drawHUD(screen, g.lastState, g.updateAvg, g.drawAvg)
}

// Layout follows the window so the camera always fills it.
func (g *Game) Layout(w, h int) (int, int) {
	g.render.cam.Width, g.render.cam.Height = float64(w), float64(h)
	return w, h
}
