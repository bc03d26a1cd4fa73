package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Bot controller names accepted by Config.BotController.
const (
	ControllerHeuristic = "heuristic"
	ControllerNeural    = "neural"
)

// ErrInvalidConfig is wrapped by every semantic validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the immutable tuning of a world. It is built once and shared by pointer.
type Config struct {
	// World
	WorldRadius     float64 `json:"worldRadius"`
	BoundaryFactor  float64 `json:"boundaryFactor"`  // wall radius = WorldRadius * BoundaryFactor
	FoodSpawnFactor float64 `json:"foodSpawnFactor"` // orbs spawn inside WorldRadius * FoodSpawnFactor
	SimSpeed        float64 `json:"simSpeed"`        // multiplies every dt
	Seed            uint64  `json:"seed"`            // 0 picks a random seed

	// ContinueAfterGameOver keeps bots running once the player is dead, for training.
	ContinueAfterGameOver bool `json:"continueAfterGameOver"`

	// Serpents
	Speed         float64 `json:"speed"`
	BoostSpeed    float64 `json:"boostSpeed"`
	Spacing       float64 `json:"spacing"`
	InitialLength int     `json:"initialLength"`
	Stomach       float64 `json:"stomach"`
	TurnSpeed     float64 `json:"turnSpeed"`
	BoostLossFreq float64 `json:"boostLossFreq"` // seconds of boost per lost segment
	RadiusBase    float64 `json:"radiusBase"`
	RadiusDivisor float64 `json:"radiusDivisor"`

	// Orbs
	OrbCount      int     `json:"orbCount"`
	EatDistance   float64 `json:"eatDistance"`
	OrbSizeMin    int     `json:"orbSizeMin"`
	OrbSizeMax    int     `json:"orbSizeMax"`
	OrbPullFactor float64 `json:"orbPullFactor"` // pull speed = BoostSpeed * OrbPullFactor
	ShakeSize     float64 `json:"shakeSize"`
	ShakeSpeed    float64 `json:"shakeSpeed"`

	// Death policy
	DropOrbsOnDeath   bool `json:"dropOrbsOnDeath"`
	BotBodyCollisions bool `json:"botBodyCollisions"`

	// Bots
	BotCount         int     `json:"botCount"`
	BotController    string  `json:"botController"`
	BotRespawnDelay  float64 `json:"botRespawnDelay"` // seconds, heuristic bots only; 0 never respawns
	BotTurnSpeed     float64 `json:"botTurnSpeed"`
	BotOrbAttract    float64 `json:"botOrbAttract"`
	BotOrbAttractFar float64 `json:"botOrbAttractFar"`
	BotThreatLimit   float64 `json:"botThreatLimit"`
	BotRepelDistance float64 `json:"botRepelDistance"`
	BotRepelWeight   float64 `json:"botRepelWeight"`
	BotRepelExponent float64 `json:"botRepelExponent"`
	BotSegmentSkip   int     `json:"botSegmentSkip"`
	BotNoiseSway     float64 `json:"botNoiseSway"`
	BotNoiseScale    float64 `json:"botNoiseScale"`
	BotEdgeFactor    float64 `json:"botEdgeFactor"` // edge buffer = WorldRadius * BotEdgeFactor
	BotEdgeForce     float64 `json:"botEdgeForce"`
	BotAggression    float64 `json:"botAggression"`

	// Neural bots
	Rays           int     `json:"rays"`
	SightDistance  float64 `json:"sightDistance"`
	MaxNoOrbTime   float64 `json:"maxNoOrbTime"`
	MaxSteer       float64 `json:"maxSteer"` // cap on |output0 * TurnSpeed|, radians
	HiddenLayers   []int   `json:"hiddenLayers"`
	MutationRate   float64 `json:"mutationRate"`
	MutationStdDev float64 `json:"mutationStdDev"`
	EliteCount     int     `json:"eliteCount"`
	TournamentSize int     `json:"tournamentSize"`
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() *Config {
	return &Config{
		WorldRadius:     2000,
		BoundaryFactor:  2.5,
		FoodSpawnFactor: 2.3,
		SimSpeed:        1,

		Speed:         250,
		BoostSpeed:    550,
		Spacing:       10,
		InitialLength: 20,
		Stomach:       30,
		TurnSpeed:     5,
		BoostLossFreq: 1,
		RadiusBase:    9,
		RadiusDivisor: 4,

		OrbCount:      700,
		EatDistance:   100,
		OrbSizeMin:    5,
		OrbSizeMax:    20,
		OrbPullFactor: 1.3,
		ShakeSize:     20,
		ShakeSpeed:    2,

		DropOrbsOnDeath:   true,
		BotBodyCollisions: false,

		BotCount:         99,
		BotController:    ControllerHeuristic,
		BotRespawnDelay:  0,
		BotTurnSpeed:     4.2,
		BotOrbAttract:    0.32,
		BotOrbAttractFar: 0.08,
		BotThreatLimit:   0.1,
		BotRepelDistance: 190,
		BotRepelWeight:   6.5,
		BotRepelExponent: 2.8,
		BotSegmentSkip:   2,
		BotNoiseSway:     0.16,
		BotNoiseScale:    0.09,
		BotEdgeFactor:    2.3,
		BotEdgeForce:     1.4,
		BotAggression:    1.25,

		Rays:           9,
		SightDistance:  600,
		MaxNoOrbTime:   15,
		MaxSteer:       1.5,
		HiddenLayers:   []int{12},
		MutationRate:   0.1,
		MutationStdDev: 0.3,
		EliteCount:     4,
		TournamentSize: 3,
	}
}

// BoundaryRadius is the radius of the lethal circular wall.
func (c *Config) BoundaryRadius() float64 {
	return c.WorldRadius * c.BoundaryFactor
}

// FoodSpawnRadius bounds where orbs may appear.
func (c *Config) FoodSpawnRadius() float64 {
	return c.WorldRadius * c.FoodSpawnFactor
}

// BotEdgeBuffer is the distance from the centre past which bots steer home.
func (c *Config) BotEdgeBuffer() float64 {
	return c.WorldRadius * c.BotEdgeFactor
}

// SerpentRadius is the body radius of a serpent of the given length.
func (c *Config) SerpentRadius(length int) float64 {
	return c.RadiusBase + float64(length)/c.RadiusDivisor
}

// NeuralInputs is the input arity of a neural bot genome.
func (c *Config) NeuralInputs() int {
	return c.Rays + 2
}

// NeuralOutputs is the output arity of a neural bot genome.
func (c *Config) NeuralOutputs() int {
	return 2
}

// Validate rejects tunings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.WorldRadius <= 0:
		return fmt.Errorf("%w: worldRadius must be positive, got %v", ErrInvalidConfig, c.WorldRadius)
	case c.BoundaryFactor <= 0 || c.FoodSpawnFactor <= 0:
		return fmt.Errorf("%w: boundary and food spawn factors must be positive", ErrInvalidConfig)
	case c.Spacing <= 0:
		return fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidConfig, c.Spacing)
	case c.InitialLength < 1:
		return fmt.Errorf("%w: initialLength must be at least 1, got %d", ErrInvalidConfig, c.InitialLength)
	case c.Stomach <= 0:
		return fmt.Errorf("%w: stomach must be positive, got %v", ErrInvalidConfig, c.Stomach)
	case c.RadiusDivisor == 0:
		return fmt.Errorf("%w: radiusDivisor cannot be zero", ErrInvalidConfig)
	case c.BoostLossFreq <= 0:
		return fmt.Errorf("%w: boostLossFreq must be positive, got %v", ErrInvalidConfig, c.BoostLossFreq)
	case c.OrbSizeMin > c.OrbSizeMax:
		return fmt.Errorf("%w: orbSizeMin %d exceeds orbSizeMax %d", ErrInvalidConfig, c.OrbSizeMin, c.OrbSizeMax)
	case c.BotCount < 0 || c.OrbCount < 0:
		return fmt.Errorf("%w: counts cannot be negative", ErrInvalidConfig)
	case c.BotSegmentSkip < 1:
		return fmt.Errorf("%w: botSegmentSkip must be at least 1, got %d", ErrInvalidConfig, c.BotSegmentSkip)
	}
	switch c.BotController {
	case ControllerHeuristic:
	case ControllerNeural:
		if c.Rays < 1 {
			return fmt.Errorf("%w: neural bots need at least one ray", ErrInvalidConfig)
		}
		if c.SightDistance <= 0 {
			return fmt.Errorf("%w: sightDistance must be positive, got %v", ErrInvalidConfig, c.SightDistance)
		}
	default:
		return fmt.Errorf("%w: unknown botController %q", ErrInvalidConfig, c.BotController)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
// Keys missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
