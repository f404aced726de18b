package game

import (
	"log"
	"time"

	"classroom/internal/graphics"
	"classroom/internal/input"
	"classroom/internal/profiling"
	"classroom/internal/render"
	"classroom/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type AppState int

const (
	StateRunning AppState = iota
	StateShuttingDown
)

// App ties the window, input, camera, scene and renderer into the frame
// loop. The scene itself is static; only the camera and the shading mode
// change between frames.
type App struct {
	window       *glfw.Window
	inputManager *input.Manager
	camera       *graphics.Camera
	scene        *scene.Scene
	renderer     *render.Renderer

	state    AppState
	lastTime time.Time
}

func NewApp(window *glfw.Window, im *input.Manager, cam *graphics.Camera, s *scene.Scene, r *render.Renderer) *App {
	return &App{
		window:       window,
		inputManager: im,
		camera:       cam,
		scene:        s,
		renderer:     r,
		state:        StateRunning,
		lastTime:     time.Now(),
	}
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
	a.Shutdown()
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	if a.inputManager.JustPressed(input.ActionExit) {
		a.window.SetShouldClose(true)
	}
	if a.inputManager.JustPressed(input.ActionToggleShading) {
		mode := a.renderer.ToggleShadingModel()
		log.Printf("Shading model: %s", mode)
	}

	a.camera.Update(a.window, a.inputManager, dt)

	width, height := a.window.GetFramebufferSize()
	a.renderer.Render(a.scene, a.camera, width, height)

	a.window.SwapBuffers()

	// Check if frame took too long (> 16ms)
	processingDuration := time.Since(startTick)
	if processingDuration > 16*time.Millisecond {
		log.Printf("Slow frame: %v. Top tasks: %s", processingDuration, profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
}

// Shutdown releases GPU resources exactly once: the renderer's passes,
// every batch's buffers, then the shared texture cache.
func (a *App) Shutdown() {
	if a.state == StateShuttingDown {
		return
	}
	a.state = StateShuttingDown

	a.renderer.Dispose()
	a.scene.Dispose()
	graphics.DisposeTextures()
}
