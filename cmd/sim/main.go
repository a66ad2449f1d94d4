// cmd/sim/main.go

// Headless simulation runner. Steps a world without a display, logging
// game events as they happen. Useful for soak runs and for profiling
// the simulation in isolation.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/render"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	duration := flag.Duration("duration", 60*time.Second, "Simulated time to run")
	seed := flag.Uint64("seed", 0, "Random seed (overrides config and environment)")
	realtime := flag.Bool("realtime", false, "Pace the simulation to the target frame rate")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := context.Background()

	var gameConfig *config.GameConfig
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		gameConfig = config.DefaultConfig()
	} else {
		var err error
		gameConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load environment configuration: %v", err)
	}
	envConfig.ApplyEnvironmentOverrides(gameConfig)
	if *seed != 0 {
		gameConfig.Seed = *seed
	}

	eventBus := event.NewEventBus()
	subscribeEventLogging(eventBus, logger)

	world, err := engine.New(gameConfig, logger, eventBus)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	renderer := render.NewNullRenderer(logger)
	targetMS := float64(gameConfig.TargetFrameMS)
	totalMS := float64(duration.Milliseconds())

	var clock *engine.FrameClock
	if *realtime {
		clock = engine.NewFrameClock(gameConfig.TargetFrameMS)
	}

	logger.Info(ctx, "simulation started",
		"duration", duration.String(),
		"realtime", *realtime,
		"seed", gameConfig.Seed)

	ticks := 0
	start := time.Now()
loop:
	for float64(world.SimMS()) < totalMS {
		select {
		case sig := <-sigChan:
			logger.Info(ctx, "simulation interrupted", "signal", sig.String())
			break loop
		default:
		}

		dt := float32(1)
		if clock != nil {
			dt = clock.Tick()
		}
		world.Update(dt)
		if err := render.DrawSnapshot(renderer, world.Snapshot(), gameConfig.ArenaSize); err != nil {
			logger.Error(ctx, "snapshot draw failed", err)
		}
		ticks++
	}

	elapsed := time.Since(start)
	logger.Info(ctx, "simulation finished",
		"ticks", ticks,
		"sim_ms", world.SimMS(),
		"wall_ms", elapsed.Milliseconds(),
		"ticks_per_second", float64(ticks)/elapsed.Seconds(),
		"score", world.Score,
		"top_score", world.TopScore,
		"asteroids", world.Asteroids.CountSpawned(),
		"target_frame_ms", targetMS)
}

// subscribeEventLogging logs the gameplay events a headless run can
// still observe.
func subscribeEventLogging(bus *event.Bus, logger *logging.Logger) {
	ctx := context.Background()

	bus.Subscribe(event.AsteroidSpawned, func(e event.Event) {
		if ae, ok := e.(*event.AsteroidEvent); ok {
			logger.Debug(ctx, "asteroid spawned", "slot", ae.Slot, "mass", ae.Mass)
		}
	})
	bus.Subscribe(event.AsteroidDestroyed, func(e event.Event) {
		if ae, ok := e.(*event.AsteroidEvent); ok {
			logger.Info(ctx, "asteroid destroyed", "slot", ae.Slot, "award", ae.Award)
		}
	})
	bus.Subscribe(event.ScoreChanged, func(e event.Event) {
		if se, ok := e.(*event.ScoreEvent); ok {
			logger.Info(ctx, "score changed", "score", se.Score, "top_score", se.TopScore)
		}
	})
	bus.Subscribe(event.PlayerDestroyed, func(e event.Event) {
		logger.Info(ctx, "player destroyed")
	})
	bus.Subscribe(event.GameReset, func(e event.Event) {
		if ge, ok := e.(*event.GameEvent); ok {
			logger.Info(ctx, "game reset", "top_score", ge.TopScore)
		}
	})
}
