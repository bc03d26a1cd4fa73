package simulation

import "google.golang.org/protobuf/types/known/structpb"

// WorldSnapshot is a deep copy of everything a renderer needs. It shares nothing with the Game,
// so it can cross goroutines.
type WorldSnapshot struct {
	Player         *Serpent
	Bots           []*Serpent // living bots only
	Orbs           []*Orb
	BoundaryRadius float64
	Time           float64
	Ticks          uint64
	Generation     int
	IsGameOver     bool
	Paused         bool
	Sensors        map[string][]SensorHit // last ray readings of neural bots, by serpent ID
}

// Snapshot copies the current state.
func (g *Game) Snapshot() *WorldSnapshot {
	snap := &WorldSnapshot{
		Player:         g.player.clone(),
		Bots:           make([]*Serpent, 0, len(g.bots)),
		Orbs:           make([]*Orb, 0, len(g.orbs)),
		BoundaryRadius: g.boundary.Radius,
		Time:           g.time,
		Ticks:          g.ticks,
		Generation:     g.generation,
		IsGameOver:     g.over,
	}
	for _, b := range g.bots {
		if b.Dead {
			continue
		}
		snap.Bots = append(snap.Bots, b.clone())
		if n, ok := b.steering.(*NeuralSteering); ok {
			if snap.Sensors == nil {
				snap.Sensors = make(map[string][]SensorHit)
			}
			snap.Sensors[b.ID] = append([]SensorHit(nil), n.Sensors()...)
		}
	}
	for _, o := range g.orbs {
		snap.Orbs = append(snap.Orbs, o.clone())
	}
	return snap
}

// Stats summarises the match as a protobuf struct, the reply to a stats request.
func (g *Game) Stats() *structpb.Struct {
	longest := 0
	for _, b := range g.bots {
		if !b.Dead && b.Len() > longest {
			longest = b.Len()
		}
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"time":          structpb.NewNumberValue(g.time),
		"ticks":         structpb.NewNumberValue(float64(g.ticks)),
		"generation":    structpb.NewNumberValue(float64(g.generation)),
		"aliveBots":     structpb.NewNumberValue(float64(g.AliveBots())),
		"orbs":          structpb.NewNumberValue(float64(len(g.orbs))),
		"playerLength":  structpb.NewNumberValue(float64(g.player.Len())),
		"longestBot":    structpb.NewNumberValue(float64(longest)),
		"gameOver":      structpb.NewBoolValue(g.over),
		"botController": structpb.NewStringValue(g.cfg.BotController),
	}}
}
