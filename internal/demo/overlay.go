package demo

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/lumen/internal/application/app"
	"github.com/younwookim/lumen/internal/application/scene"
	"github.com/younwookim/lumen/internal/domain/event"
)

var (
	colorPanel = color.RGBA{0, 0, 0, 160}
	colorTitle = color.RGBA{255, 215, 0, 255}
)

// overlay is the HUD: title, frame counters, cursor and last key.
type overlay struct {
	scene.Base
	ctx     *app.Context
	face    *text.GoTextFace
	cursor  image.Point
	lastKey string
	events  int
}

func newOverlay(ctx *app.Context) (*overlay, error) {
	src, err := ctx.Resources.Font(UIFont)
	if err != nil {
		return nil, err
	}
	return &overlay{
		ctx:  ctx,
		face: &text.GoTextFace{Source: src, Size: 16},
	}, nil
}

func (o *overlay) OnEnter() {
	o.lastKey = "-"
}

func (o *overlay) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 8, 8, 280, 84, colorPanel, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(16, 12)
	op.ColorScale.ScaleWithColor(colorTitle)
	text.Draw(screen, o.ctx.Window.Title, o.face, op)

	st := o.ctx.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.1f  FPS %.1f  frame %d", ebiten.ActualTPS(), ebiten.ActualFPS(), st.Frames), 16, 36)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("cursor %d,%d  key %s  events %d", o.cursor.X, o.cursor.Y, o.lastKey, o.events), 16, 52)
	ebitenutil.DebugPrintAt(screen, "Esc quit  Tab overlay  Space restart", 16, 68)
}

func (o *overlay) OnEvent(e event.Event) {
	o.events++
	switch e := e.(type) {
	case event.MouseMovedEvent:
		o.cursor = e.Position
	case event.KeyEvent:
		if e.Pressed {
			o.lastKey = e.Key.String()
		}
	}
}
