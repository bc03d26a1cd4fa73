package client

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
)

const (
	eyeSize     = 0.45
	pupilSize   = 0.2
	eyeDistance = 0.5
	eyeForward  = 0.4

	boostFlashSpeed = 10.0 // radians of flash phase per second
	gridSpacing     = 100.0
	smoothSteps     = 2
	minimapRadius   = 60.0
	leaderboardSize = 5
)

var (
	backgroundColor = color.RGBA{R: 16, G: 20, B: 28, A: 255}
	gridColor       = color.RGBA{R: 30, G: 36, B: 48, A: 255}
	wallColor       = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	eyeWhite        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pupilColor      = color.RGBA{A: 255}
	minimapBG       = color.RGBA{R: 0, G: 0, B: 0, A: 120}
	rayColors       = map[simulation.HitKind]color.RGBA{
		simulation.HitNone: {R: 90, G: 90, B: 90, A: 90},
		simulation.HitWall: {R: 220, G: 50, B: 47, A: 160},
		simulation.HitFood: {R: 133, G: 153, B: 0, A: 160},
		simulation.HitBody: {R: 203, G: 75, B: 22, A: 160},
	}
)

// eyes returns the world positions of both eyes and the offset of their pupils.
// The head faces away from the next segment and the pupils look along lastTarget.
func eyes(head, next, lastTarget geometry.Vector2D, radius float64) (left, right, pupil geometry.Vector2D) {
	dir := head.Sub(next).Normalize()
	side := geometry.Vector2D{X: -dir.Y, Y: dir.X}
	forward := dir.Mul(radius * eyeForward)
	left = head.Add(side.Mul(radius * eyeDistance)).Add(forward)
	right = head.Sub(side.Mul(radius * eyeDistance)).Add(forward)
	pupil = lastTarget.NormalizeTo(radius * pupilSize)
	return left, right, pupil
}

// bodyColor flashes between primary and accent while boosting.
func bodyColor(s *simulation.Serpent, t float64) color.RGBA {
	if !s.Boost {
		return s.Accent
	}
	return simulation.LerpColor(s.Primary, s.Accent, (math.Sin(t*boostFlashSpeed)+1)/2)
}

// minimapPoint scales a world position into a minimap of radius r centred on (cx, cy).
func minimapPoint(p geometry.Vector2D, boundary, cx, cy, r float64) (float32, float32) {
	m := p.Mul(r / boundary).ClampToCircle(r)
	return float32(cx + m.X), float32(cy + m.Y)
}

type ranked struct {
	name   string
	length int
}

// leaderboard lists the longest living serpents, longest first.
func leaderboard(snap *simulation.WorldSnapshot, n int) []ranked {
	all := make([]ranked, 0, len(snap.Bots)+1)
	if snap.Player != nil && !snap.Player.Dead {
		all = append(all, ranked{"you", snap.Player.Len()})
	}
	for _, b := range snap.Bots {
		all = append(all, ranked{b.ID[:8], b.Len()})
	}
	slices.SortStableFunc(all, func(a, b ranked) int { return b.length - a.length })
	return all[:min(n, len(all))]
}

// renderer draws snapshots through a camera.
type renderer struct {
	cam         *Camera
	showSensors bool
	showMinimap bool
	clock       float64 // seconds, drives the boost flash
}

func (r *renderer) draw(screen *ebiten.Image, snap *simulation.WorldSnapshot) {
	screen.Fill(backgroundColor)
	if snap == nil || snap.Player == nil {
		return
	}
	if !snap.Player.Dead {
		r.cam.Center = snap.Player.Head()
	}

	r.drawGrid(screen)
	for _, o := range snap.Orbs {
		r.drawOrb(screen, o)
	}
	if r.showSensors {
		for _, b := range snap.Bots {
			r.drawSensors(screen, b, snap.Sensors[b.ID])
		}
	}
	for _, b := range snap.Bots {
		r.drawSerpent(screen, b)
	}
	r.drawSerpent(screen, snap.Player)
	r.drawWall(screen, snap.BoundaryRadius)
	if r.showMinimap {
		r.drawMinimap(screen, snap)
	}
}

func (r *renderer) drawGrid(screen *ebiten.Image) {
	halfW, halfH := r.cam.Width/2/r.cam.Zoom, r.cam.Height/2/r.cam.Zoom
	c := r.cam.Center
	for x := math.Floor((c.X-halfW)/gridSpacing) * gridSpacing; x <= c.X+halfW; x += gridSpacing {
		x0, y0 := r.cam.ToScreen(geometry.Vector2D{X: x, Y: c.Y - halfH})
		x1, y1 := r.cam.ToScreen(geometry.Vector2D{X: x, Y: c.Y + halfH})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, gridColor, false)
	}
	for y := math.Floor((c.Y-halfH)/gridSpacing) * gridSpacing; y <= c.Y+halfH; y += gridSpacing {
		x0, y0 := r.cam.ToScreen(geometry.Vector2D{X: c.X - halfW, Y: y})
		x1, y1 := r.cam.ToScreen(geometry.Vector2D{X: c.X + halfW, Y: y})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, gridColor, false)
	}
}

func (r *renderer) drawOrb(screen *ebiten.Image, o *simulation.Orb) {
	p := o.Pos.Add(o.Shake)
	if !r.cam.Visible(p, o.Radius) {
		return
	}
	x, y := r.cam.ToScreen(p)
	vector.FillCircle(screen, x, y, r.cam.Scale(o.Radius), o.Accent, true)
	vector.FillCircle(screen, x, y, r.cam.Scale(o.Radius*0.6), o.Primary, true)
}

func (r *renderer) drawSerpent(screen *ebiten.Image, s *simulation.Serpent) {
	if s == nil || s.Dead {
		return
	}
	radius := s.Radius()
	clr := bodyColor(s, r.clock)
	path := geometry.SmoothPath(s.Segments, smoothSteps)
	for i := len(path) - 1; i >= 0; i-- {
		if !r.cam.Visible(path[i], radius) {
			continue
		}
		x, y := r.cam.ToScreen(path[i])
		vector.FillCircle(screen, x, y, r.cam.Scale(radius), clr, true)
	}

	next := s.Head()
	if s.Len() > 1 {
		next = s.Segments[1]
	}
	left, right, pupil := eyes(s.Head(), next, s.LastTarget, radius)
	for _, eye := range []geometry.Vector2D{left, right} {
		x, y := r.cam.ToScreen(eye)
		vector.FillCircle(screen, x, y, r.cam.Scale(radius*eyeSize), eyeWhite, true)
		px, py := r.cam.ToScreen(eye.Add(pupil))
		vector.FillCircle(screen, px, py, r.cam.Scale(radius*pupilSize), pupilColor, true)
	}
}

func (r *renderer) drawSensors(screen *ebiten.Image, s *simulation.Serpent, hits []simulation.SensorHit) {
	hx, hy := r.cam.ToScreen(s.Head())
	for _, h := range hits {
		end := s.Head().Add(geometry.FromAngle(s.Heading + h.Angle).Mul(h.Distance))
		ex, ey := r.cam.ToScreen(end)
		vector.StrokeLine(screen, hx, hy, ex, ey, 1, rayColors[h.Kind], true)
	}
}

func (r *renderer) drawWall(screen *ebiten.Image, radius float64) {
	x, y := r.cam.ToScreen(geometry.Zero)
	vector.StrokeCircle(screen, x, y, r.cam.Scale(radius), 4, wallColor, true)
}

func (r *renderer) drawMinimap(screen *ebiten.Image, snap *simulation.WorldSnapshot) {
	cx := r.cam.Width - minimapRadius - 15
	cy := r.cam.Height - minimapRadius - 15
	vector.FillCircle(screen, float32(cx), float32(cy), minimapRadius, minimapBG, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), minimapRadius, 1, wallColor, true)
	for _, b := range snap.Bots {
		x, y := minimapPoint(b.Head(), snap.BoundaryRadius, cx, cy, minimapRadius)
		vector.FillRect(screen, x-1, y-1, 2, 2, b.Primary, false)
	}
	if !snap.Player.Dead {
		x, y := minimapPoint(snap.Player.Head(), snap.BoundaryRadius, cx, cy, minimapRadius)
		vector.FillCircle(screen, x, y, 3, eyeWhite, true)
	}
}

// drawHUD prints the match status, the leaderboard and the overlays.
func (r *renderer) drawHUD(screen *ebiten.Image, snap *simulation.WorldSnapshot, updateAvg, drawAvg float64) {
	if snap == nil || snap.Player == nil {
		return
	}
	status := fmt.Sprintf("Length: %d\nBots: %d\nOrbs: %d\nTime: %.0fs",
		snap.Player.Len(), len(snap.Bots), len(snap.Orbs), snap.Time)
	if snap.Sensors != nil {
		status += fmt.Sprintf("\nGeneration: %d", snap.Generation)
	}
	ebitenutil.DebugPrintAt(screen, status, 10, int(r.cam.Height)-90)

	var board strings.Builder
	board.WriteString("Leaderboard\n")
	for i, e := range leaderboard(snap, leaderboardSize) {
		fmt.Fprintf(&board, "%d. %-8s %d\n", i+1, e.name, e.length)
	}
	ebitenutil.DebugPrintAt(screen, board.String(), int(r.cam.Width)-170, 100)

	perf := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		updateAvg,
		drawAvg,
		updateAvg+drawAvg)
	ebitenutil.DebugPrintAt(screen, perf, int(r.cam.Width)-150, 10)

	cx, cy := int(r.cam.Width/2), int(r.cam.Height/2)
	switch {
	case snap.IsGameOver:
		msg := fmt.Sprintf("GAME OVER\nfinal length %d\npress R to restart", snap.Player.Len())
		ebitenutil.DebugPrintAt(screen, msg, cx-60, cy-20)
	case snap.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", cx-20, cy-40)
	}
}
