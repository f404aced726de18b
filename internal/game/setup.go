package game

import (
	"fmt"

	"classroom/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindow creates the main window with a 4.1 core context and
// initializes the GL bindings on the calling thread.
func SetupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(config.WindowWidth, config.WindowHeight, config.WindowTitle, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}

	// V-Sync paces the frame loop; the scene is static so there is
	// nothing to simulate between refreshes
	glfw.SwapInterval(1)

	// Mouse look wants a captured cursor from the first frame
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}
