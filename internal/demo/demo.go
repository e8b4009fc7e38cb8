// Package demo is a small application exercising the runtime: a shaded
// triangle, a toggleable overlay with a text HUD, and optional looping music.
//
// Keys: Escape closes, Tab toggles the overlay, Space restarts the triangle
// scene.
package demo

import (
	_ "embed"
	"image"
	"image/color"
	"os"

	"github.com/younwookim/lumen/internal/application/app"
	"github.com/younwookim/lumen/internal/application/scene"
	"github.com/younwookim/lumen/internal/domain/resource"
	"github.com/younwookim/lumen/internal/infrastructure/config"
)

//go:embed shaders/tint.kage
var tintShader []byte

// Resource and scene names.
const (
	TriangleMesh   = "triangle"
	TintShader     = "tint"
	UIFont         = "ui"
	CheckerTexture = "checker"
	Music          = "music"

	TriangleScene = "triangle"
	OverlayScene  = "overlay"
)

// Config selects optional demo features.
type Config struct {
	Title      string
	FontFamily string // system font family for the HUD; empty uses Go Regular
	MusicPath  string // wav, ogg or mp3; empty disables music
}

// App is the demo application.
type App struct {
	cfg   Config
	music *os.File
}

// New creates the demo application
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// ConfigureWindow sets the title and keeps the rest of w.
func (a *App) ConfigureWindow(w *config.Window) bool {
	if a.cfg.Title != "" {
		w.Title = a.cfg.Title
	}
	return w.Width > 0 && w.Height > 0
}

// InitResources loads every resource, registers the scenes and selects the
// triangle scene with the overlay on top.
func (a *App) InitResources(ctx *app.Context) bool {
	logger := ctx.Logger()
	res := ctx.Resources

	radius := float32(min(ctx.Window.Width, ctx.Window.Height)) / 3
	if _, err := res.AssignPolygon(TriangleMesh, 3, radius); err != nil {
		logger.Error("triangle mesh", "error", err)
		return false
	}
	if _, err := res.AssignShader(TintShader, tintShader); err != nil {
		logger.Error("tint shader", "error", err)
		return false
	}
	if _, err := res.AssignTextureImage(CheckerTexture, checker(8, 4)); err != nil {
		logger.Error("checker texture", "error", err)
		return false
	}
	if !a.loadFont(ctx) {
		return false
	}
	if a.cfg.MusicPath != "" && !a.loadMusic(ctx) {
		return false
	}

	if _, err := ctx.Scenes.Create(TriangleScene, func() (scene.Scene, error) {
		return newTriangle(ctx)
	}); err != nil {
		logger.Error("triangle scene", "error", err)
		return false
	}
	if _, err := ctx.Scenes.Create(OverlayScene, func() (scene.Scene, error) {
		return newOverlay(ctx)
	}); err != nil {
		logger.Error("overlay scene", "error", err)
		return false
	}

	if err := ctx.Scenes.Select(TriangleScene); err != nil {
		logger.Error("select", "error", err)
		return false
	}
	if err := ctx.Scenes.Activate(OverlayScene); err != nil {
		logger.Error("activate", "error", err)
		return false
	}
	return true
}

// Close releases the music file, if one was opened. Call it after the run.
func (a *App) Close() error {
	if a.music == nil {
		return nil
	}
	err := a.music.Close()
	a.music = nil
	return err
}

func (a *App) loadFont(ctx *app.Context) bool {
	if a.cfg.FontFamily != "" {
		_, err := ctx.Resources.AssignSystemFont(UIFont, a.cfg.FontFamily)
		if err == nil {
			return true
		}
		ctx.Logger().Warn("system font unavailable, using default", "family", a.cfg.FontFamily, "error", err)
	}
	if _, err := ctx.Resources.AssignDefaultFont(UIFont); err != nil {
		ctx.Logger().Error("default font", "error", err)
		return false
	}
	return true
}

func (a *App) loadMusic(ctx *app.Context) bool {
	format, err := resource.FormatFromPath(a.cfg.MusicPath)
	if err != nil {
		ctx.Logger().Error("music", "error", err)
		return false
	}
	f, err := os.Open(a.cfg.MusicPath)
	if err != nil {
		ctx.Logger().Error("music", "error", err)
		return false
	}
	if _, err := ctx.Resources.AssignAudioStream(Music, ctx.Audio(), f, format, true); err != nil {
		_ = f.Close()
		ctx.Logger().Error("music", "error", err)
		return false
	}
	a.music = f
	return true
}

// checker builds a two-tone checkerboard of n x n cells, each size pixels.
func checker(n, size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, n*size, n*size))
	dark := color.RGBA{26, 26, 46, 255}
	light := color.RGBA{40, 40, 70, 255}
	for y := 0; y < n*size; y++ {
		for x := 0; x < n*size; x++ {
			c := dark
			if (x/size+y/size)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
