package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/lao-tseu-is-alive/go-slither/internal/client"
	"github.com/lao-tseu-is-alive/go-slither/pkg/evolution"
	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "configs/slither.json", "world configuration")
	schemaFile := flag.String("schema", "configs/slither.schema.json", "JSON schema of the configuration")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 800, "window height")
	autopilot := flag.Bool("autopilot", false, "let the bot brain steer the player")
	genomes := flag.String("genomes", "", "population checkpoint for neural bots")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configFile, *schemaFile)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("SlitherWorld",
		actor.WithLogger(golog.DefaultLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatalf("error creating actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("error starting actor system: %v", err)
	}
	defer system.Stop(ctx)

	var opts []simulation.Option
	if *autopilot {
		opts = append(opts, simulation.WithAutopilot())
	}
	if cfg.BotController == simulation.ControllerNeural {
		pop, err := evolution.LoadOrCreate(*genomes, evolution.OptionsFromConfig(cfg))
		if err != nil {
			log.Fatalf("error loading genomes: %v", err)
		}
		log.Printf("neural bots from generation %d", pop.Generation())
		opts = append(opts, simulation.WithPopulation(pop))
	}

	var sound *client.Sound
	if !*mute {
		sound = client.NewSound(audio.NewContext(client.SampleRate))
	}

	game, err := client.NewGame(ctx, system, cfg, *width, *height, sound, opts...)
	if err != nil {
		log.Fatalf("error creating game: %v", err)
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Slither")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
