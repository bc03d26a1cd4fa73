package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/lao-tseu-is-alive/go-slither/pkg/evolution"
	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func main() {
	configFile := flag.String("config", "configs/training.json", "world configuration")
	schemaFile := flag.String("schema", "configs/slither.schema.json", "JSON schema of the configuration")
	genomes := flag.String("genomes", "genomes.gob", "population checkpoint, loaded if present and saved on exit")
	generations := flag.Int("generations", 50, "stop after this many generations")
	step := flag.Duration("dt", time.Second/60, "simulated time per tick")
	batch := flag.Int("batch", 600, "ticks sent between progress checks")
	maxGenTime := flag.Duration("max-generation-time", 3*time.Minute, "simulated time after which a generation is culled")
	saveEvery := flag.Int("save-every", 10, "checkpoint every n generations, 0 only on exit")
	verbose := flag.Bool("verbose", false, "log from the actor system")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configFile, *schemaFile)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if cfg.BotController != simulation.ControllerNeural {
		log.Fatalf("%s sets botController %q; training needs %q", *configFile, cfg.BotController, simulation.ControllerNeural)
	}

	pop, err := evolution.LoadOrCreate(*genomes, evolution.OptionsFromConfig(cfg))
	if err != nil {
		log.Fatalf("error loading genomes: %v", err)
	}
	log.Printf("training %d genomes from generation %d", len(pop.Genomes()), pop.Generation())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var logger golog.Logger = golog.DiscardLogger
	if *verbose {
		logger = golog.DefaultLogger
	}
	system, err := actor.NewActorSystem("SlitherTraining",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatalf("error creating actor system: %v", err)
	}
	if err := system.Start(context.Background()); err != nil {
		log.Fatalf("error starting actor system: %v", err)
	}
	defer system.Stop(context.Background())

	world := simulation.NewWorldActor(nil, cfg, simulation.WithPopulation(pop), simulation.WithAutopilot())
	pid, err := system.Spawn(context.Background(), "world", world)
	if err != nil {
		log.Fatalf("error spawning world: %v", err)
	}

	t := &trainer{
		pid:        pid,
		pop:        pop,
		dt:         *step,
		batch:      *batch,
		maxGenTime: maxGenTime.Seconds(),
		logged:     len(pop.History()),
		generation: pop.Generation(),
	}
	target := pop.Generation() + *generations
	lastSaved := pop.Generation()
	for pop.Generation() < target && ctx.Err() == nil {
		if err := t.advance(context.Background()); err != nil {
			log.Printf("training stopped: %v", err)
			break
		}
		if *saveEvery > 0 && pop.Generation()-lastSaved >= *saveEvery {
			save(pop, *genomes)
			lastSaved = pop.Generation()
		}
	}
	save(pop, *genomes)
}

// trainer drives the world. The population is only read between a stats reply and the
// next tick, while the world actor is idle.
type trainer struct {
	pid        *actor.PID
	pop        *evolution.Population
	dt         time.Duration
	batch      int
	maxGenTime float64

	logged     int
	generation int
	genStart   float64
}

func (t *trainer) advance(ctx context.Context) error {
	tick := durationpb.New(t.dt)
	for i := 0; i < t.batch; i++ {
		if err := actor.Tell(ctx, t.pid, tick); err != nil {
			return err
		}
	}
	stats, err := t.stats(ctx)
	if err != nil {
		return err
	}

	for _, s := range t.pop.History()[t.logged:] {
		log.Println(s)
		t.logged++
	}

	now := stats.Fields["time"].GetNumberValue()
	if gen := int(stats.Fields["generation"].GetNumberValue()); gen != t.generation {
		t.generation, t.genStart = gen, now
	}
	if now-t.genStart > t.maxGenTime {
		log.Printf("generation %d still has %.0f bots after %.0fs, culling",
			t.generation, stats.Fields["aliveBots"].GetNumberValue(), now-t.genStart)
		t.genStart = now
		if err := actor.Tell(ctx, t.pid, wrapperspb.String(simulation.CommandCull)); err != nil {
			return err
		}
		_, err = t.stats(ctx) // wait for the cull before touching the population again
		return err
	}
	return nil
}

func (t *trainer) stats(ctx context.Context) (*structpb.Struct, error) {
	reply, err := actor.Ask(ctx, t.pid, &emptypb.Empty{}, 30*time.Second)
	if err != nil {
		return nil, err
	}
	stats, ok := reply.(*structpb.Struct)
	if !ok {
		return nil, fmt.Errorf("unexpected stats reply %T", reply)
	}
	return stats, nil
}

func save(pop *evolution.Population, path string) {
	if path == "" {
		return
	}
	if err := pop.SaveFile(path); err != nil {
		log.Printf("error saving genomes: %v", err)
		return
	}
	log.Printf("saved generation %d to %s", pop.Generation(), path)
}
