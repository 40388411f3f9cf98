// Command driftscene renders the scroll-driven particle scene: three point
// formations morphed by a virtual page scroll, a camera gliding between
// waypoints, a fading crystal model, and an overlay model composited over
// the header region. The scroll wheel moves through the page; the pointer
// pushes nearby particles aside.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"driftscene/internal/config"
	"driftscene/internal/gltf"
	"driftscene/internal/preview"
	"driftscene/internal/render"
	"driftscene/internal/scene"
)

func main() {
	runtime.LockOSThread()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})

	cfg, err := config.Load(config.Path())
	if err != nil {
		logger.Fatal("load configuration", "err", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("driftscene", "err", err)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	rnd := rand.New(rand.NewSource(cfg.Particles.Seed))
	initial := scene.SphereFormation(cfg.Particles.Count, 3, rnd)
	belt := scene.BeltFormation(cfg.Particles.Count, 2.2, 4.2, 0.35, 0.45, rnd)
	sphere2 := scene.SphereFormation(cfg.Particles.Count, 1.8, rnd)

	if cfg.Preview.Path != "" {
		logger.Info("writing particle field preview", "path", cfg.Preview.Path)
		return preview.WriteFile(cfg.Preview.Path, initial, preview.Options{})
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	fbW, fbH := window.GetFramebufferSize()

	// Asset loading happens once, before the loop; a failed load logs and
	// leaves that feature inactive rather than aborting the scene.
	var envMap uint32
	if tex, err := render.LoadEnvMap(cfg.Assets.EnvMap); err != nil {
		logger.Warn("environment map unavailable", "err", err)
	} else {
		envMap = tex
		logger.Info("environment map loaded", "path", cfg.Assets.EnvMap)
	}

	crystalMesh := loadMesh(cfg.Assets.Crystal, envMap, logger)
	overlayModel, overlayMesh := loadOverlay(cfg.Assets.Overlay, logger)

	in := scene.NewInput(cfg.Scroll.PageHeight, cfg.Scroll.WheelSpeed)
	in.SetViewport(float64(cfg.Window.Width), float64(cfg.Window.Height))

	rig := scene.NewRig(
		scene.DefaultWaypoints(),
		mgl32.DegToRad(float32(cfg.Camera.FOVDegrees)),
		float32(fbW)/float32(fbH),
		float32(cfg.Camera.Near),
		float32(cfg.Camera.Far),
	)
	crystal := scene.NewCrystal(float32(cfg.Crystal.FadeEnd), cfg.Crystal.SpinSpeed)
	field := scene.NewField(initial, belt, sphere2, cfg.Particles.SmoothingRate)

	overlay := scene.NewOverlay(
		float32(cfg.Overlay.ShowAt),
		float32(cfg.Overlay.FullAt),
		cfg.Overlay.FadeRate,
		logger,
	)
	if overlayModel != nil {
		overlay.SetModel(scene.Bounds{Min: overlayModel.Min, Max: overlayModel.Max})
	}
	overlay.SetEnvMap(envMap)
	overlay.SetSpinSpeed(cfg.Overlay.SpinSpeed)
	overlay.Attach(headerRect(cfg.Overlay, window), scene.Layout{
		Fit:       scene.FitMode(cfg.Overlay.Fit),
		FitAmount: float32(cfg.Overlay.FitAmount),
		OffsetX:   float32(cfg.Overlay.OffsetX),
		OffsetY:   float32(cfg.Overlay.OffsetY),
		ZOrder:    cfg.Overlay.ZOrder,
		EnvMap:    envMap,
	})

	s := scene.New(in, rig, field, crystal, overlay,
		float32(cfg.Particles.RepelRadius), float32(cfg.Particles.RepelStrength))

	renderer, err := render.New(cfg.Particles.Count, fbW, fbH, crystalMesh, overlayMesh)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.Scroll(-yoff)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.SetPointer(x, y)
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if err := renderer.Resize(w, h); err != nil {
			logger.Warn("resize", "err", err)
		}
		if h > 0 {
			rig.SetAspect(float32(w) / float32(h))
		}
	})
	window.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		in.SetViewport(float64(w), float64(h))
	})

	lastFrameTime := glfw.GetTime()
	lastFpsTime := glfw.GetTime()
	frameCount := 0

	for !window.ShouldClose() {
		currentTime := glfw.GetTime()
		dt := currentTime - lastFrameTime
		lastFrameTime = currentTime
		if dt > 0.25 {
			dt = 0.25 // a stalled frame should not teleport the easing
		}

		frameCount++
		if currentTime-lastFpsTime >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Window.Title, frameCount))
			frameCount = 0
			lastFpsTime = currentTime
		}

		s.Tick(dt)
		renderer.Frame(s)

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// headerRect derives the header rectangle from the window size and the
// configured fractions, in framebuffer pixels. It is queried every frame so
// the overlay follows resizes.
func headerRect(cfg config.Overlay, window *glfw.Window) scene.HeaderRectFunc {
	return func() scene.Rect {
		w, h := window.GetFramebufferSize()
		return scene.Rect{
			X: float32(cfg.HeaderX * float64(w)),
			Y: float32(cfg.HeaderY * float64(h)),
			W: float32(cfg.HeaderW * float64(w)),
			H: float32(cfg.HeaderH * float64(h)),
		}
	}
}

func loadMesh(path string, envMap uint32, logger *log.Logger) *render.Mesh {
	model, err := gltf.LoadFile(path)
	if err != nil {
		logger.Warn("crystal model unavailable", "err", err)
		return nil
	}
	mesh, err := render.NewMesh(model)
	if err != nil {
		logger.Warn("crystal model unusable", "err", err)
		return nil
	}
	mesh.SetEnvMap(envMap)
	logger.Info("crystal model loaded", "path", path, "vertices", len(model.TrianglePositions()))
	return mesh
}

func loadOverlay(path string, logger *log.Logger) (*gltf.Model, *render.Mesh) {
	model, err := gltf.LoadFile(path)
	if err != nil {
		logger.Warn("overlay model unavailable", "err", err)
		return nil, nil
	}
	mesh, err := render.NewMesh(model)
	if err != nil {
		logger.Warn("overlay model unusable", "err", err)
		return nil, nil
	}
	logger.Info("overlay model loaded", "path", path, "vertices", len(model.TrianglePositions()))
	return model, mesh
}
