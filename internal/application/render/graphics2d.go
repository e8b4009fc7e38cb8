// Package render provides Graphics2D, an immediate-mode helper that draws
// rectangles, ovals, lines and text onto an *ebiten.Image.
//
// Shapes are unit meshes kept in the resource registry: a square and one
// regular polygon per oval resolution. Textures and fonts are selected by
// registry name. Shapes are centered on the position passed to Draw*, sized
// by width and height, and rotated by the current rotation around their
// center. The camera maps world to screen as (p - position) * zoom.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/domain/resource"
)

// Registry names of the shared unit meshes.
const (
	SquareMesh = "render.square"
	ovalPrefix = "render.oval."
)

// DefaultOvalResolution is the number of rim vertices a fresh Graphics2D
// uses for ovals.
const DefaultOvalResolution = 50

// Align is the horizontal text alignment relative to the DrawText position.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Graphics2D holds drawing state for one scene. It is not safe for
// concurrent use; scenes draw under the frame lock.
type Graphics2D struct {
	res       *resource.Registry
	white     *ebiten.Image
	square    *resource.VertexBuffer
	oval      *resource.VertexBuffer
	ovalRes   int
	texture   *ebiten.Image
	face      *text.GoTextFace
	align     Align
	clr       [4]float32
	rotation  float64
	lineWidth float32
	camX      float32
	camY      float32
	zoomX     float32
	zoomY     float32
	antialias bool
}

// NewGraphics2D creates a helper drawing with meshes, textures and fonts
// from res. The unit square and the default oval are assigned on first use
// and shared by every Graphics2D on the same registry.
func NewGraphics2D(res *resource.Registry) (*Graphics2D, error) {
	square, err := shared(res, SquareMesh, func() (*resource.VertexBuffer, error) {
		vs, is := unitSquare()
		return res.AssignVertexBuffer(SquareMesh, vs, is)
	})
	if err != nil {
		return nil, err
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	g := &Graphics2D{
		res:       res,
		white:     white.SubImage(white.Bounds().Inset(1)).(*ebiten.Image),
		square:    square,
		clr:       [4]float32{1, 1, 1, 1},
		lineWidth: 1,
		zoomX:     1,
		zoomY:     1,
	}
	if err := g.SetOvalGood(DefaultOvalResolution); err != nil {
		return nil, err
	}
	return g, nil
}

// SetColor sets the fill color from a 0xRRGGBB value and an opacity in
// [0, 1]. With a texture set, the color tints it.
func (g *Graphics2D) SetColor(hex uint32, opacity float32) {
	g.clr = [4]float32{
		float32(uint8(hex>>16)) / 255,
		float32(uint8(hex>>8)) / 255,
		float32(uint8(hex)) / 255,
		min(max(opacity, 0), 1),
	}
}

// SetTexture fills subsequent shapes with the texture assigned under name.
// An unknown name returns NotFound and keeps the current texture.
func (g *Graphics2D) SetTexture(name string) error {
	tex, err := g.res.Texture(name)
	if err != nil {
		return err
	}
	g.texture = tex
	return nil
}

// ClearTexture returns to flat color fills.
func (g *Graphics2D) ClearTexture() { g.texture = nil }

// SetRotation sets the rotation, in radians, applied to rects, ovals and
// text.
func (g *Graphics2D) SetRotation(radians float64) { g.rotation = radians }

// SetOvalGood sets how many rim vertices ovals are drawn with. A resolution
// below 3 or above resource.MaxPolygonResolution returns InvalidArgument and
// keeps the current one.
func (g *Graphics2D) SetOvalGood(resolution int) error {
	if resolution < 3 {
		return errs.InvalidArgument("render.SetOvalGood", "", "oval resolution %d < 3", resolution)
	}
	name := fmt.Sprintf("%s%d", ovalPrefix, resolution)
	vb, err := shared(g.res, name, func() (*resource.VertexBuffer, error) {
		return g.res.AssignPolygon(name, resolution, 0.5)
	})
	if err != nil {
		return err
	}
	g.oval = vb
	g.ovalRes = resolution
	return nil
}

// OvalGood returns the current oval resolution.
func (g *Graphics2D) OvalGood() int { return g.ovalRes }

// SetLineWidth sets the stroke width used by DrawLine, in world units.
func (g *Graphics2D) SetLineWidth(w float32) { g.lineWidth = w }

// SetFont selects the font assigned under name at the given pixel size.
// An unknown name returns NotFound and keeps the current font.
func (g *Graphics2D) SetFont(name string, size float64) error {
	src, err := g.res.Font(name)
	if err != nil {
		return err
	}
	g.face = &text.GoTextFace{Source: src, Size: size}
	return nil
}

// SetTextAlignment sets the alignment used by DrawText.
func (g *Graphics2D) SetTextAlignment(a Align) { g.align = a }

// SetCameraPosition sets the world point drawn at the screen origin.
func (g *Graphics2D) SetCameraPosition(x, y float32) { g.camX, g.camY = x, y }

// SetCameraZoom sets the world to screen scale.
func (g *Graphics2D) SetCameraZoom(x, y float32) { g.zoomX, g.zoomY = x, y }

// SetAntiAlias enables anti-aliased edges.
func (g *Graphics2D) SetAntiAlias(on bool) { g.antialias = on }

// DrawRect draws a w x h rectangle centered on (x, y).
func (g *Graphics2D) DrawRect(dst *ebiten.Image, x, y, w, h float32) {
	g.fill(dst, g.square, x, y, w, h)
}

// DrawOval draws an ellipse with diameters w and h centered on (x, y).
func (g *Graphics2D) DrawOval(dst *ebiten.Image, x, y, w, h float32) {
	g.fill(dst, g.oval, x, y, w, h)
}

// DrawLine draws a segment from (x1, y1) to (x2, y2) in the current color.
// A zero-length segment draws nothing.
func (g *Graphics2D) DrawLine(dst *ebiten.Image, x1, y1, x2, y2 float32) {
	if x1 == x2 && y1 == y2 {
		return
	}
	sx1, sy1 := g.toScreen(x1, y1)
	sx2, sy2 := g.toScreen(x2, y2)
	width := g.lineWidth * float32(math.Sqrt(float64(g.zoomX*g.zoomY)))
	vector.StrokeLine(dst, sx1, sy1, sx2, sy2, width, g.nrgba(), g.antialias)
}

// DrawText draws s with its vertical center at (x, y), aligned
// horizontally per SetTextAlignment. Without a font set it draws nothing.
func (g *Graphics2D) DrawText(dst *ebiten.Image, s string, x, y float32) {
	if g.face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	switch g.align {
	case AlignCenter:
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
	case AlignRight:
		op.LayoutOptions.PrimaryAlign = text.AlignEnd
	default:
		op.LayoutOptions.PrimaryAlign = text.AlignStart
	}
	op.GeoM.Rotate(g.rotation)
	op.GeoM.Scale(float64(g.zoomX), float64(g.zoomY))
	sx, sy := g.toScreen(x, y)
	op.GeoM.Translate(float64(sx), float64(sy))
	op.ColorScale.ScaleWithColor(g.nrgba())
	text.Draw(dst, s, g.face, op)
}

func (g *Graphics2D) fill(dst *ebiten.Image, mesh *resource.VertexBuffer, x, y, w, h float32) {
	src := g.white
	if g.texture != nil {
		src = g.texture
	}
	dst.DrawTriangles(g.place(mesh, src, x, y, w, h), mesh.Indices, src, &ebiten.DrawTrianglesOptions{AntiAlias: g.antialias})
}

// place maps the unit mesh onto the screen: scale by (w, h), rotate, move
// to (x, y), then apply the camera. Source coordinates span src's bounds.
func (g *Graphics2D) place(mesh *resource.VertexBuffer, src *ebiten.Image, x, y, w, h float32) []ebiten.Vertex {
	b := src.Bounds()
	sin, cos := math.Sincos(g.rotation)
	s, c := float32(sin), float32(cos)

	out := make([]ebiten.Vertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		lx, ly := v.DstX*w, v.DstY*h
		px, py := g.toScreen(x+lx*c-ly*s, y+lx*s+ly*c)
		out[i] = ebiten.Vertex{
			DstX:   px,
			DstY:   py,
			SrcX:   float32(b.Min.X) + (v.DstX+0.5)*float32(b.Dx()),
			SrcY:   float32(b.Min.Y) + (v.DstY+0.5)*float32(b.Dy()),
			ColorR: g.clr[0],
			ColorG: g.clr[1],
			ColorB: g.clr[2],
			ColorA: g.clr[3],
		}
	}
	return out
}

func (g *Graphics2D) toScreen(x, y float32) (float32, float32) {
	return (x - g.camX) * g.zoomX, (y - g.camY) * g.zoomY
}

func (g *Graphics2D) nrgba() color.Color {
	return color.NRGBA{
		R: uint8(g.clr[0]*255 + 0.5),
		G: uint8(g.clr[1]*255 + 0.5),
		B: uint8(g.clr[2]*255 + 0.5),
		A: uint8(g.clr[3]*255 + 0.5),
	}
}

// shared returns the vertex buffer under name, assigning it with create when
// absent. Losing a race to another Graphics2D is not an error.
func shared(res *resource.Registry, name string, create func() (*resource.VertexBuffer, error)) (*resource.VertexBuffer, error) {
	if vb, err := res.VertexBuffer(name); err == nil {
		return vb, nil
	}
	vb, err := create()
	if errs.IsDuplicateName(err) {
		return res.VertexBuffer(name)
	}
	return vb, err
}

// unitSquare is a 1 x 1 square centered on the origin.
func unitSquare() ([]ebiten.Vertex, []uint16) {
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	vs := make([]ebiten.Vertex, len(corners))
	for i, p := range corners {
		vs[i] = ebiten.Vertex{DstX: p[0], DstY: p[1], ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	}
	return vs, []uint16{0, 1, 2, 0, 2, 3}
}
