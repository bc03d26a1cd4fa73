package simulation

import (
	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

// NeuralSteering drives a bot from a fan of ray sensors through an evolvable genome.
//
// Inputs are one signal per ray, the previous steering output and the body length in
// units of InitialLength. Output 0 turns the bot relative to its heading, output 1
// boosts when positive. The genome's fitness is the body length at death.
type NeuralSteering struct {
	cfg    *Config
	genome Genome
	logger log.Logger
	angles []float64
	hits   []SensorHit
	inputs []float64
	steer  float64 // output 0 of the previous tick
}

// NewNeuralSteering wires a genome to a fresh sensor fan.
func NewNeuralSteering(cfg *Config, genome Genome, logger log.Logger) *NeuralSteering {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &NeuralSteering{
		cfg:    cfg,
		genome: genome,
		logger: logger,
		angles: geometry.GenerateAngles(cfg.Rays),
		hits:   make([]SensorHit, cfg.Rays),
		inputs: make([]float64, cfg.NeuralInputs()),
	}
}

// Genome is the genome driving this bot.
func (n *NeuralSteering) Genome() Genome { return n.genome }

// Sensors returns the ray readings of the last tick.
func (n *NeuralSteering) Sensors() []SensorHit { return n.hits }

// Inputs returns the input vector fed to the genome on the last tick.
func (n *NeuralSteering) Inputs() []float64 { return n.inputs }

func (n *NeuralSteering) Target(s *Serpent, v *View, _ float64) Target {
	castRays(s, v, n.angles, n.cfg.SightDistance, n.hits)

	for i, h := range n.hits {
		n.inputs[i] = h.Signal(n.cfg.SightDistance)
	}
	n.inputs[len(n.hits)] = n.steer
	n.inputs[len(n.hits)+1] = float64(s.Len()) / float64(n.cfg.InitialLength)

	out := propagate(n.genome, n.logger, n.inputs, n.cfg.NeuralOutputs())
	n.steer = out[0]

	turn := geometry.Clamp(out[0]*n.cfg.TurnSpeed, -n.cfg.MaxSteer, n.cfg.MaxSteer)
	return Target{
		Direction: geometry.FromAngle(s.Heading + turn),
		Boost:     out[1] > 0,
	}
}

// Starved reports whether the bot went too long without eating.
func (n *NeuralSteering) Starved(s *Serpent) bool {
	return s.LastOrbTime > n.cfg.MaxNoOrbTime
}

// Died records the final length as the genome's fitness.
func (n *NeuralSteering) Died(s *Serpent) {
	n.genome.SetFitness(float64(s.Len()))
}
