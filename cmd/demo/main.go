// Command demo is a minimal render-backend seam for the engine package: a
// window, a flying camera driven by WASD, and a print of how many chunk
// meshes the engine handed back each second. It does not upload or draw
// chunk geometry; a real client would take the vertex words DrainMeshUpdates
// returns and feed them to its own GPU buffers, keyed by Coord.
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/engine"
	"voxelcore/internal/engineconfig"
)

const (
	windowWidth  = 800
	windowHeight = 600
	moveSpeed    = 10.0 // world units per second
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "voxelcore demo", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		panic(err)
	}
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)

	cfg := engineconfig.Default(42)
	cfg.LoadRadius = 6
	eng := engine.New(cfg)
	defer eng.Close()

	pos := mgl32.Vec3{0, 70, 0}
	eng.OnPlayerMoved(pos)

	meshUpdates := 0
	last := time.Now()
	statsTicker := time.NewTicker(time.Second)
	defer statsTicker.Stop()

	for !window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		gl.Clear(gl.COLOR_BUFFER_BIT)

		pos = applyMovement(window, pos, dt)
		eng.OnPlayerMoved(pos)
		eng.Tick()

		meshUpdates += len(eng.DrainMeshUpdates())
		eng.DrainMeshRemovals()

		select {
		case <-statsTicker.C:
			fmt.Printf("mesh updates/sec: %d  pos: %.1f,%.1f,%.1f\n", meshUpdates, pos.X(), pos.Y(), pos.Z())
			meshUpdates = 0
		default:
		}

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func applyMovement(window *glfw.Window, pos mgl32.Vec3, dt float32) mgl32.Vec3 {
	step := moveSpeed * dt
	if window.GetKey(glfw.KeyW) == glfw.Press {
		pos = pos.Add(mgl32.Vec3{0, 0, -step})
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		pos = pos.Add(mgl32.Vec3{0, 0, step})
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		pos = pos.Add(mgl32.Vec3{-step, 0, 0})
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		pos = pos.Add(mgl32.Vec3{step, 0, 0})
	}
	if window.GetKey(glfw.KeySpace) == glfw.Press {
		pos = pos.Add(mgl32.Vec3{0, step, 0})
	}
	return pos
}
