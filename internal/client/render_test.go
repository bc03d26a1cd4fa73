package client

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
)

func vecEquals(a, b geometry.Vector2D) bool {
	return floatEquals(a.X, b.X) && floatEquals(a.Y, b.Y)
}

func TestEyes(t *testing.T) {
	// Heading +X with a radius of 10.
	left, right, pupil := eyes(geometry.Vector2D{}, geometry.Vector2D{X: -10}, geometry.Vector2D{Y: 5}, 10)

	if want := (geometry.Vector2D{X: 4, Y: 5}); !vecEquals(left, want) {
		t.Errorf("left = %v; want %v", left, want)
	}
	if want := (geometry.Vector2D{X: 4, Y: -5}); !vecEquals(right, want) {
		t.Errorf("right = %v; want %v", right, want)
	}
	if want := (geometry.Vector2D{Y: 2}); !vecEquals(pupil, want) {
		t.Errorf("pupil = %v; want %v", pupil, want)
	}

	t.Run("Single segment", func(t *testing.T) {
		left, right, pupil := eyes(geometry.Vector2D{X: 3}, geometry.Vector2D{X: 3}, geometry.Vector2D{}, 10)
		if !vecEquals(left, right) || !vecEquals(pupil, geometry.Zero) {
			t.Errorf("eyes of a degenerate head = %v, %v, %v", left, right, pupil)
		}
	})
}

func TestBodyColor(t *testing.T) {
	cfg := simulation.DefaultConfig()
	s := simulation.NewSerpent(cfg, geometry.Vector2D{}, simulation.Palette[0], nil)

	if got := bodyColor(s, 1.23); got != s.Accent {
		t.Errorf("resting color = %v; want accent %v", got, s.Accent)
	}

	s.Boost = true
	tests := []struct {
		name  string
		clock float64
		want  float64
	}{
		{"Mid flash", 0, 0.5},
		{"Full accent", math.Pi / 2 / boostFlashSpeed, 1},
		{"Full primary", 3 * math.Pi / 2 / boostFlashSpeed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := simulation.LerpColor(s.Primary, s.Accent, tt.want)
			if got := bodyColor(s, tt.clock); got != want {
				t.Errorf("bodyColor = %v; want %v", got, want)
			}
		})
	}
}

func TestMinimapPoint(t *testing.T) {
	tests := []struct {
		name string
		p    geometry.Vector2D
		x, y float32
	}{
		{"Centre", geometry.Vector2D{}, 100, 100},
		{"Half way", geometry.Vector2D{X: 500}, 130, 100},
		{"On the wall", geometry.Vector2D{Y: -1000}, 100, 40},
		{"Outside is clamped", geometry.Vector2D{X: 5000}, 160, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := minimapPoint(tt.p, 1000, 100, 100, 60)
			if math.Abs(float64(x-tt.x)) > 1e-4 || math.Abs(float64(y-tt.y)) > 1e-4 {
				t.Errorf("minimapPoint(%v) = (%v, %v); want (%v, %v)", tt.p, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	cfg := simulation.DefaultConfig()
	serpent := func(extra int) *simulation.Serpent {
		s := simulation.NewSerpent(cfg, geometry.Vector2D{}, simulation.Palette[1], nil)
		for i := 0; i < extra; i++ {
			s.Segments = append(s.Segments, s.Segments[len(s.Segments)-1])
		}
		return s
	}
	player := serpent(5)
	snap := &simulation.WorldSnapshot{
		Player: player,
		Bots:   []*simulation.Serpent{serpent(0), serpent(10), serpent(2)},
	}

	board := leaderboard(snap, 3)
	if len(board) != 3 {
		t.Fatalf("len = %d; want 3", len(board))
	}
	wantLengths := []int{cfg.InitialLength + 10, cfg.InitialLength + 5, cfg.InitialLength + 2}
	for i, e := range board {
		if e.length != wantLengths[i] {
			t.Errorf("rank %d length = %d; want %d", i+1, e.length, wantLengths[i])
		}
	}
	if board[1].name != "you" {
		t.Errorf("rank 2 = %q; want the player", board[1].name)
	}

	player.Dead = true
	if got := leaderboard(snap, 10); len(got) != 3 {
		t.Errorf("a dead player should leave %d entries; got %d", 3, len(got))
	}
}
