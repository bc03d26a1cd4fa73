package simulation

import (
	"image/color"
	"math"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// Target is what a steering strategy wants this tick: a direction (any length) and a boost flag.
type Target struct {
	Direction geometry.Vector2D
	Boost     bool
}

// Steering computes a serpent's desired direction from its own state and a read-only view.
type Steering interface {
	Target(s *Serpent, v *View, dt float64) Target
}

// starver is implemented by strategies that can kill their serpent for not eating.
type starver interface {
	Starved(s *Serpent) bool
}

// mortal is implemented by strategies that want to know when their serpent dies.
type mortal interface {
	Died(s *Serpent)
}

// Serpent is a growing chain of segments. Segments[0] is always the head.
type Serpent struct {
	ID          string
	Segments    []geometry.Vector2D
	Heading     float64
	Digesting   float64
	Boost       bool
	BoostTime   float64
	Dead        bool
	Primary     color.RGBA
	Accent      color.RGBA
	LastTarget  geometry.Vector2D // normalized steering direction of the last step
	LastOrbTime float64           // seconds since the last meal

	player   bool
	steering Steering
	cfg      *Config
}

// NewSerpent lays out InitialLength segments from start along the diagonal.
func NewSerpent(cfg *Config, start geometry.Vector2D, primary color.RGBA, steering Steering) *Serpent {
	s := &Serpent{
		ID:        uuid.NewString(),
		Segments:  make([]geometry.Vector2D, cfg.InitialLength),
		Digesting: cfg.Stomach,
		Primary:   primary,
		Accent:    Accent(primary),
		steering:  steering,
		cfg:       cfg,
	}
	for i := range s.Segments {
		offset := float64(i) * cfg.Spacing
		s.Segments[i] = geometry.Vector2D{X: start.X + offset, Y: start.Y + offset}
	}
	return s
}

// IsPlayer reports whether this serpent is the player's.
func (s *Serpent) IsPlayer() bool { return s.player }

// Steering returns the strategy driving this serpent.
func (s *Serpent) Steering() Steering { return s.steering }

// Head is the first segment.
func (s *Serpent) Head() geometry.Vector2D { return s.Segments[0] }

// Len is the number of segments.
func (s *Serpent) Len() int { return len(s.Segments) }

// Radius grows with length.
func (s *Serpent) Radius() float64 { return s.cfg.SerpentRadius(len(s.Segments)) }

// Grow feeds the serpent. Each full stomach appends one segment at the tail.
func (s *Serpent) Grow(points float64) {
	s.Digesting -= points
	for s.Digesting <= 0 {
		s.Digesting += s.cfg.Stomach
		s.Segments = append(s.Segments, s.Segments[len(s.Segments)-1])
	}
}

// Step advances the serpent by dt seconds. Dead serpents do not move.
func (s *Serpent) Step(dt float64, v *View) {
	if s.Dead {
		return
	}
	s.LastOrbTime += dt
	if st, ok := s.steering.(starver); ok && st.Starved(s) {
		s.Kill()
		return
	}

	t := s.steering.Target(s, v, dt)
	s.move(dt, t)
}

// move integrates the head along the filtered heading and drags the chain behind it.
func (s *Serpent) move(dt float64, t Target) {
	s.Boost = t.Boost
	dir := t.Direction.Normalize()

	var speed float64
	if s.Boost {
		speed = s.cfg.BoostSpeed * dt
		s.BoostTime += dt
		if s.BoostTime >= s.cfg.BoostLossFreq {
			s.BoostTime -= s.cfg.BoostLossFreq
			if len(s.Segments) > s.cfg.InitialLength {
				s.Segments = s.Segments[:len(s.Segments)-1]
			}
		}
	} else {
		speed = s.cfg.Speed * dt
		s.BoostTime = 0
	}

	s.LastTarget = dir
	s.Heading = geometry.LerpAngle(s.Heading, math.Atan2(dir.Y, dir.X), s.cfg.TurnSpeed*dt)
	s.Segments[0] = s.Segments[0].Add(geometry.FromAngle(s.Heading).Mul(speed))

	for i := 1; i < len(s.Segments); i++ {
		toLeader := s.Segments[i-1].Sub(s.Segments[i])
		gap := toLeader.Len()
		if gap <= s.cfg.Spacing {
			continue
		}
		s.Segments[i] = s.Segments[i].Add(toLeader.NormalizeTo(math.Min(speed, gap-s.cfg.Spacing)))
	}
}

// Kill marks the serpent dead. It is a one-way transition.
func (s *Serpent) Kill() {
	if s.Dead {
		return
	}
	s.Dead = true
	if m, ok := s.steering.(mortal); ok {
		m.Died(s)
	}
}

// collides checks s against each opponent, killing whoever loses.
// A head-to-head contact kills the player of the pair, or s when neither is the player.
// A head touching a body segment kills s.
func (s *Serpent) collides(opponents []*Serpent) {
	if s.Dead {
		return
	}
	head := s.Head()
	radius := s.Radius()

	for _, o := range opponents {
		if o == s || o.Dead {
			continue
		}
		if head.DistanceTo(o.Head()) < radius+o.Radius() {
			switch {
			case s.player:
				s.Kill()
			case o.player:
				o.Kill()
			default:
				s.Kill()
			}
			return
		}
		for _, seg := range o.Segments[1:] {
			if head.DistanceTo(seg) < radius {
				s.Kill()
				return
			}
		}
	}
}

// clone deep-copies the serpent's observable state. Steering is not shared.
func (s *Serpent) clone() *Serpent {
	c := *s
	c.Segments = append([]geometry.Vector2D(nil), s.Segments...)
	c.steering = nil
	return &c
}
