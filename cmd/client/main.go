// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/model"
	"github.com/opd-ai/go-asteroids/pkg/render"
	glrender "github.com/opd-ai/go-asteroids/pkg/render/gl"
)

const statusInterval = 500 * time.Millisecond

func init() {
	// GLFW and the GL context are bound to the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := context.Background()

	// Load configuration
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

	// Create event bus and world
	eventBus := event.NewEventBus()
	world, err := engine.New(gameConfig, logger, eventBus)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}

	eventBus.Subscribe(event.PlayerDestroyed, func(e event.Event) {
		logger.Info(ctx, "player destroyed")
	})
	eventBus.Subscribe(event.GameReset, func(e event.Event) {
		if ge, ok := e.(*event.GameEvent); ok {
			logger.Info(ctx, "game reset", "top_score", ge.TopScore)
		}
	})

	// Create window and GL context
	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	window, err := glfw.CreateWindow(*width, *height, "Asteroids 3D", nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()
	if envConfig.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	renderer, err := glrender.New(fbWidth, fbHeight)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		renderer.Resize(w, h)
	})

	// Load and upload models
	models, err := model.LoadModels(rebaseModels(gameConfig.Models, envConfig.ModelDir))
	if err != nil {
		log.Fatalf("Failed to load models: %v", err)
	}
	models = append(models, model.BoundsCube(render.ModelBounds))
	if _, err := model.Pack(models, renderer); err != nil {
		log.Fatalf("Failed to upload models: %v", err)
	}
	renderer.SetModels(models)

	bindInput(window, world)

	logger.Info(ctx, "client started",
		"width", *width, "height", *height,
		"vsync", envConfig.VSync, "model_dir", envConfig.ModelDir)

	// Main loop
	clock := engine.NewFrameClock(gameConfig.TargetFrameMS)
	lastStatus := time.Now()
	frames := 0

	for !window.ShouldClose() {
		glfw.PollEvents()

		dt := clock.Tick()
		world.Update(dt)

		if err := render.DrawSnapshot(renderer, world.Snapshot(), gameConfig.ArenaSize); err != nil {
			logger.Error(ctx, "frame failed", err)
		}
		window.SwapBuffers()
		frames++

		if elapsed := time.Since(lastStatus); elapsed >= statusInterval {
			fps := float64(frames) / elapsed.Seconds()
			window.SetTitle(fmt.Sprintf(
				"Asteroids 3D - Score: %d - Top Score: %d --- Relative velocity: %.2f m/s --- %.2f FPS",
				world.Score, world.TopScore, world.RelativeSpeed(), fps))
			lastStatus = time.Now()
			frames = 0
		}
	}

	logger.Info(ctx, "client stopped", "top_score", world.TopScore)
}

// rebaseModels points the configured model prefixes into the deployment
// model directory.
func rebaseModels(models []config.ModelConfig, dir string) []config.ModelConfig {
	rebased := make([]config.ModelConfig, len(models))
	for i, mc := range models {
		rebased[i] = config.ModelConfig{
			Name:   mc.Name,
			Prefix: filepath.Join(dir, filepath.Base(mc.Prefix)),
		}
	}
	return rebased
}

// bindInput wires keyboard and mouse state to the camera controls. Flags
// track key state, so holding a key thrusts continuously.
func bindInput(window *glfw.Window, world *engine.World) {
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		pressed := action == glfw.Press
		controls := &world.Camera.Controls
		switch key {
		case glfw.KeyW:
			controls.Forward = pressed
		case glfw.KeyS:
			controls.Backward = pressed
		case glfw.KeyA:
			controls.Left = pressed
		case glfw.KeyD:
			controls.Right = pressed
		case glfw.KeyLeftShift:
			controls.Up = pressed
		case glfw.KeyLeftControl:
			controls.Down = pressed
		case glfw.KeyQ:
			controls.RollCCW = pressed
		case glfw.KeyE:
			controls.RollCW = pressed
		case glfw.KeyEscape:
			if pressed {
				w.SetShouldClose(true)
			}
		}
	})

	var lastX, lastY float64
	firstMove := true
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if firstMove {
			lastX, lastY = x, y
			firstMove = false
			return
		}
		world.Camera.Look(&world.Player, float32(x-lastX), float32(y-lastY))
		lastX, lastY = x, y
	})

	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			world.Camera.Controls.Fire = action == glfw.Press
		}
	})
}
