// Package game implements the main loop: draining the ingestion
// stream, stepping physics and rendering the visible chunks.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"skyroam/internal/config"
	"skyroam/internal/engine/camera"
	"skyroam/internal/engine/input"
	"skyroam/internal/engine/renderer"
	"skyroam/internal/engine/window"
	"skyroam/internal/ingest"
	"skyroam/internal/logger"
	"skyroam/internal/physics"
	"skyroam/internal/world"
)

// Game is the main client instance.
type Game struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	cam      *camera.Camera

	world  *world.World
	player *physics.Player

	// messages is nil once the loader stream is fully drained.
	messages <-chan world.LoaderMessage
	loading  bool
	status   string
	progress float32

	captured bool
	running  bool
}

// New creates the game, opens the window and starts the map loader in
// the background.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		cfg:     cfg,
		loading: true,
		status:  "Loading...",
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the OpenGL context the window created.
	g.renderer, err = renderer.New(cfg.Render)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	width, height := g.window.GetSize()
	g.renderer.Resize(width, height)

	g.input = input.New()

	g.cam = camera.New(cfg.Render.FOVDegrees, float32(width)/float32(height))
	g.cam.Near = cfg.Render.ZNear
	g.cam.Far = cfg.Render.ZFar

	g.world = world.NewWorld(world.Layout{
		Size:          cfg.World.Size,
		ChunksPerAxis: cfg.World.ChunksPerAxis,
		CellSize:      cfg.World.GridCellSize,
	})
	g.player = physics.NewPlayer(cfg.Physics, mgl64.Vec3{0, cfg.Physics.EyeHeight, 0})

	loader := ingest.NewLoader(cfg)
	g.messages = loader.Messages()
	go loader.Run()

	logger.Info("game initialized")
	return g, nil
}

// Run drives the main loop until quit.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		g.input.Update()
		if g.input.ShouldQuit() {
			g.running = false
			break
		}
		// Escape first releases the mouse, then quits; a click
		// recaptures.
		if g.input.EscapePressed() {
			if g.captured {
				g.setCaptured(false)
			} else {
				g.running = false
				break
			}
		}
		if g.input.Clicked() && !g.captured && !g.loading {
			g.setCaptured(true)
		}
		if width, height, ok := g.input.Resized(); ok {
			g.renderer.Resize(width, height)
			g.cam.SetAspect(width, height)
		}

		g.drainLoader()

		if g.loading {
			g.renderer.Begin()
			g.renderer.DrawLoadingScreen(g.progress)
		} else {
			g.update(dt)
			g.render()
		}

		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			// The title shows loader status until the world is ready.
			if !g.loading {
				g.window.SetTitle(fmt.Sprintf("%s - %d fps", g.cfg.Graphics.Title, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.world != nil {
		g.world.Each(func(_ world.ChunkCoord, c *world.Chunk) {
			if c.Geometry != nil {
				c.Geometry.Release()
			}
		})
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// drainLoader processes every currently buffered loader message
// without ever blocking the frame.
func (g *Game) drainLoader() {
	for g.messages != nil {
		select {
		case msg, ok := <-g.messages:
			if !ok {
				g.messages = nil
				return
			}
			g.handleMessage(msg)
		default:
			return
		}
	}
}

func (g *Game) handleMessage(msg world.LoaderMessage) {
	switch m := msg.(type) {
	case world.StatusMessage:
		g.status = m.Text
		g.window.SetTitle(g.cfg.Graphics.Title + " - " + m.Text)
		logger.Info("loader status", zap.String("status", m.Text))

	case world.ProgressMessage:
		g.progress = m.Fraction

	case world.BatchMessage:
		for _, chunk := range m.Chunks {
			mesh := renderer.NewChunkMesh(chunk.Vertices, chunk.Indices)
			if mesh == nil {
				continue
			}
			g.world.Insert(chunk, mesh)
		}

	case world.DoneMessage:
		g.loading = false
		g.setCaptured(true)
		logger.Info("world ready", zap.Int("chunks", g.world.Len()))
	}
}

func (g *Game) setCaptured(captured bool) {
	g.captured = captured
	g.window.CaptureMouse(captured)
}

// update advances simulation by one frame.
func (g *Game) update(dt float64) {
	if g.captured {
		dx, dy := g.input.MouseDelta()
		g.cam.HandleMouse(dx, dy)
	}

	in := physics.Input{
		Forward: g.input.IsDown(sdl.SCANCODE_W),
		Back:    g.input.IsDown(sdl.SCANCODE_S),
		Left:    g.input.IsDown(sdl.SCANCODE_A),
		Right:   g.input.IsDown(sdl.SCANCODE_D),
		Jump:    g.input.IsDown(sdl.SCANCODE_SPACE),
		Yaw:     g.cam.Yaw,
	}
	g.player.Step(dt, in, g.world)

	g.cam.Position = g.player.Position
}

// render draws every resident chunk that survives the distance and
// frustum culls.
func (g *Game) render() {
	viewProj := g.cam.ViewProjection()
	frustum := camera.NewFrustum(viewProj)

	eye := mgl32.Vec3{
		float32(g.cam.Position.X()),
		float32(g.cam.Position.Y()),
		float32(g.cam.Position.Z()),
	}

	// Pad by the chunk radius so a chunk whose center is just out of
	// range but whose corner is visible does not pop.
	maxDist := g.cfg.Render.DrawDistance + g.cfg.World.ChunkRadius()
	maxDistSq := maxDist * maxDist

	g.renderer.Begin()
	g.renderer.BeginScene(viewProj, eye)

	g.world.Each(func(_ world.ChunkCoord, c *world.Chunk) {
		cx := (c.Min.X() + c.Max.X()) * 0.5
		cz := (c.Min.Y() + c.Max.Y()) * 0.5
		dx := cx - eye.X()
		dz := cz - eye.Z()
		if dx*dx+dz*dz > maxDistSq {
			return
		}

		min := mgl32.Vec3{c.Min.X(), g.cfg.Render.ChunkMinY, c.Min.Y()}
		max := mgl32.Vec3{c.Max.X(), g.cfg.Render.ChunkMaxY, c.Max.Y()}
		if !frustum.IntersectsAABB(min, max) {
			return
		}

		if mesh, ok := c.Geometry.(*renderer.ChunkMesh); ok && mesh != nil {
			mesh.Draw()
		}
	})

	width, height := g.window.GetSize()
	g.renderer.DrawCrosshair(width, height)
}
