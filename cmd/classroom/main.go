package main

import (
	"log"
	"runtime"

	"classroom/internal/game"
	"classroom/internal/graphics"
	"classroom/internal/input"
	"classroom/internal/render"
	"classroom/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow()
	if err != nil {
		log.Fatalf("Failed to set up window: %v", err)
	}

	im := input.NewManager()
	im.SetKeyCallback(window)

	width, height := window.GetFramebufferSize()
	camera := graphics.NewCamera(width, height)
	window.SetScrollCallback(func(w *glfw.Window, xoffset, yoffset float64) {
		camera.HandleScroll(yoffset)
	})

	s, err := scene.LoadClassroom()
	if err != nil {
		log.Fatalf("Failed to load classroom: %v", err)
	}

	r, err := render.NewRenderer(s)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	app := game.NewApp(window, im, camera, s, r)
	app.Run()
}
