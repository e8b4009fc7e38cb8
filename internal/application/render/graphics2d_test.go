package render

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/domain/resource"
)

func newGraphics(t *testing.T) (*Graphics2D, *resource.Registry) {
	t.Helper()
	res := resource.New()
	g, err := NewGraphics2D(res)
	require.NoError(t, err)
	return g, res
}

func points(vs []ebiten.Vertex) [][2]float32 {
	out := make([][2]float32, len(vs))
	for i, v := range vs {
		out[i] = [2]float32{v.DstX, v.DstY}
	}
	return out
}

func assertPoints(t *testing.T, expected, actual [][2]float32) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i][0], actual[i][0], 1e-4, "x of %d", i)
		assert.InDelta(t, expected[i][1], actual[i][1], 1e-4, "y of %d", i)
	}
}

func TestNewGraphics2D_AssignsSharedMeshes(t *testing.T) {
	g, res := newGraphics(t)

	assert.True(t, res.Has(resource.KindVertexBuffer, SquareMesh))
	assert.True(t, res.Has(resource.KindVertexBuffer, "render.oval.50"))
	assert.Equal(t, DefaultOvalResolution, g.OvalGood())

	_, err := NewGraphics2D(res)
	require.NoError(t, err, "a second helper reuses the meshes")
	assert.Equal(t, 2, res.Len(resource.KindVertexBuffer))
}

func TestGraphics2D_SetOvalGood(t *testing.T) {
	g, res := newGraphics(t)

	for _, n := range []int{-1, 0, 2} {
		err := g.SetOvalGood(n)
		assert.True(t, errs.IsInvalidArgument(err), "resolution %d", n)
	}
	assert.Equal(t, DefaultOvalResolution, g.OvalGood(), "rejected resolution keeps the current one")

	require.NoError(t, g.SetOvalGood(8))
	assert.Equal(t, 8, g.OvalGood())
	assert.True(t, res.Has(resource.KindVertexBuffer, "render.oval.8"))
	assert.Len(t, g.oval.Vertices, 9)

	require.NoError(t, g.SetOvalGood(8), "switching back to a known resolution")
	assert.True(t, errs.IsInvalidArgument(g.SetOvalGood(resource.MaxPolygonResolution+1)))
}

func TestGraphics2D_SetTextureByName(t *testing.T) {
	g, res := newGraphics(t)

	err := g.SetTexture("missing")
	assert.True(t, errs.IsNotFound(err))
	assert.Nil(t, g.texture)

	tex, err := res.AssignTextureImage("tiles", ebiten.NewImage(16, 8))
	require.NoError(t, err)
	require.NoError(t, g.SetTexture("tiles"))
	assert.Same(t, tex, g.texture)

	vs := g.place(g.square, g.texture, 0, 0, 1, 1)
	assert.Equal(t, float32(0), vs[0].SrcX)
	assert.Equal(t, float32(0), vs[0].SrcY)
	assert.Equal(t, float32(16), vs[2].SrcX)
	assert.Equal(t, float32(8), vs[2].SrcY)

	g.ClearTexture()
	assert.Nil(t, g.texture)
}

func TestGraphics2D_PlaceRect(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(g *Graphics2D)
		expected [][2]float32
	}{
		{
			name:     "centered on position",
			setup:    func(g *Graphics2D) {},
			expected: [][2]float32{{8, 19}, {12, 19}, {12, 21}, {8, 21}},
		},
		{
			name:     "quarter turn about the center",
			setup:    func(g *Graphics2D) { g.SetRotation(math.Pi / 2) },
			expected: [][2]float32{{11, 18}, {11, 22}, {9, 22}, {9, 18}},
		},
		{
			name: "camera offset and zoom",
			setup: func(g *Graphics2D) {
				g.SetCameraPosition(10, 20)
				g.SetCameraZoom(2, 3)
			},
			expected: [][2]float32{{-4, -3}, {4, -3}, {4, 3}, {-4, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newGraphics(t)
			tt.setup(g)

			vs := g.place(g.square, g.white, 10, 20, 4, 2)

			assertPoints(t, tt.expected, points(vs))
		})
	}
}

func TestGraphics2D_PlaceOvalSpansDiameters(t *testing.T) {
	g, _ := newGraphics(t)
	require.NoError(t, g.SetOvalGood(4))

	vs := g.place(g.oval, g.white, 0, 0, 10, 6)

	// Center, then the rim starting on the positive x axis.
	assertPoints(t, [][2]float32{{0, 0}, {5, 0}, {0, 3}, {-5, 0}, {0, -3}}, points(vs))
}

func TestGraphics2D_SetColor(t *testing.T) {
	g, _ := newGraphics(t)

	g.SetColor(0xFF8000, 0.5)
	vs := g.place(g.square, g.white, 0, 0, 1, 1)

	for _, v := range vs {
		assert.InDelta(t, 1.0, v.ColorR, 1e-6)
		assert.InDelta(t, 128.0/255, v.ColorG, 1e-6)
		assert.InDelta(t, 0.0, v.ColorB, 1e-6)
		assert.InDelta(t, 0.5, v.ColorA, 1e-6)
	}

	g.SetColor(0x000000, 3)
	assert.Equal(t, float32(1), g.clr[3], "opacity is clamped")
}

func TestGraphics2D_SetFont(t *testing.T) {
	g, res := newGraphics(t)

	assert.True(t, errs.IsNotFound(g.SetFont("ui", 12)))
	assert.Nil(t, g.face)

	_, err := res.AssignDefaultFont("ui")
	require.NoError(t, err)
	require.NoError(t, g.SetFont("ui", 12))
	assert.Equal(t, 12.0, g.face.Size)
}

func TestGraphics2D_DrawCalls(t *testing.T) {
	g, res := newGraphics(t)
	dst := ebiten.NewImage(32, 32)
	_, err := res.AssignDefaultFont("ui")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		g.DrawRect(dst, 16, 16, 8, 8)
		g.DrawOval(dst, 16, 16, 8, 4)
		g.DrawLine(dst, 1, 1, 1, 1)
		g.DrawLine(dst, 0, 0, 31, 31)
		g.DrawText(dst, "no font yet", 0, 0)
		require.NoError(t, g.SetFont("ui", 10))
		g.SetTextAlignment(AlignCenter)
		g.DrawText(dst, "hud", 16, 16)
	})
}
