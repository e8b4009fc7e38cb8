package demo

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lumen/internal/application/app"
	"github.com/younwookim/lumen/internal/application/render"
	"github.com/younwookim/lumen/internal/application/scene"
	"github.com/younwookim/lumen/internal/domain/event"
	"github.com/younwookim/lumen/internal/domain/resource"
)

// triangle draws the tinted triangle over a checkerboard and handles the
// global keys.
type triangle struct {
	scene.Base
	ctx       *app.Context
	mesh      *resource.VertexBuffer
	shader    *ebiten.Shader
	checker   *ebiten.Image
	gfx       *render.Graphics2D
	music     *resource.AudioStream
	elapsed   float64
	paused    bool
	antialias bool
}

func newTriangle(ctx *app.Context) (*triangle, error) {
	mesh, err := ctx.Resources.VertexBuffer(TriangleMesh)
	if err != nil {
		return nil, err
	}
	shader, err := ctx.Resources.Shader(TintShader)
	if err != nil {
		return nil, err
	}
	checker, err := ctx.Resources.Texture(CheckerTexture)
	if err != nil {
		return nil, err
	}
	gfx, err := render.NewGraphics2D(ctx.Resources)
	if err != nil {
		return nil, err
	}
	gfx.SetAntiAlias(ctx.Window.Multisampling > 0)
	if err := gfx.SetOvalGood(24); err != nil {
		return nil, err
	}
	t := &triangle{
		ctx:       ctx,
		gfx:       gfx,
		mesh:      mesh,
		shader:    shader,
		checker:   checker,
		antialias: ctx.Window.Multisampling > 0,
	}
	if music, err := ctx.Resources.AudioStream(Music); err == nil {
		t.music = music
	}
	return t, nil
}

func (t *triangle) OnEnter() {
	t.elapsed = 0
	t.paused = false
	if t.music != nil {
		t.music.Play()
	}
}

func (t *triangle) OnExit() {
	if t.music != nil {
		if err := t.music.Stop(); err != nil {
			t.ctx.Logger().Warn("music stop", "error", err)
		}
	}
}

func (t *triangle) Update(dt float64) error {
	if !t.paused {
		t.elapsed += dt
	}
	return nil
}

func (t *triangle) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	tile := t.checker.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += tile.Dy() {
		for x := b.Min.X; x < b.Max.X; x += tile.Dx() {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(t.checker, op)
		}
	}

	cx := float32(b.Min.X+b.Max.X) / 2
	cy := float32(b.Min.Y+b.Max.Y) / 2
	t.mesh.DrawShaderTo(screen, t.shader, cx, cy, map[string]any{
		"Time": float32(t.elapsed),
	})
	t.drawOrbit(screen, cx, cy)
}

// drawOrbit draws a textured moon circling the triangle, tethered to its
// center.
func (t *triangle) drawOrbit(screen *ebiten.Image, cx, cy float32) {
	radius := float32(min(screen.Bounds().Dx(), screen.Bounds().Dy())) * 0.4
	angle := t.elapsed * 0.8
	mx := cx + radius*float32(math.Cos(angle))
	my := cy + radius*float32(math.Sin(angle))

	g := t.gfx
	g.ClearTexture()
	g.SetRotation(0)
	g.SetColor(0x8888AA, 0.6)
	g.SetLineWidth(2)
	g.DrawLine(screen, cx, cy, mx, my)

	if err := g.SetTexture(CheckerTexture); err != nil {
		return
	}
	g.SetColor(0xFFD700, 1)
	g.SetRotation(angle * 2)
	g.DrawOval(screen, mx, my, 36, 28)
}

func (t *triangle) OnEvent(e event.Event) {
	switch e := e.(type) {
	case event.KeyEvent:
		if e.Pressed {
			t.handleKey(e.Key)
		}
	case event.WindowFocusEvent:
		t.paused = !e.Focused
	}
}

func (t *triangle) handleKey(k ebiten.Key) {
	scenes := t.ctx.Scenes
	switch k {
	case ebiten.KeyEscape:
		t.ctx.CloseApplication()
	case ebiten.KeyTab:
		if scenes.IsActive(OverlayScene) {
			_ = scenes.Deactivate(OverlayScene)
		} else {
			_ = scenes.Activate(OverlayScene)
		}
	case ebiten.KeySpace:
		overlay := scenes.IsActive(OverlayScene)
		if err := scenes.Select(TriangleScene); err != nil {
			t.ctx.Logger().Warn("restart", "error", err)
			return
		}
		if overlay {
			_ = scenes.Activate(OverlayScene)
		}
	}
}
