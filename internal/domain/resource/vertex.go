package resource

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/lumen/internal/domain/errs"
)

// Limits imposed by 16-bit indices.
const (
	MaxVertices          = math.MaxUint16 + 1
	MaxPolygonResolution = MaxVertices - 1 // plus the center vertex
)

// VertexBuffer is an indexed triangle list ready for DrawTriangles.
//
// Vertex positions are in the buffer's local space; callers translate them
// with DrawTo. The slices are owned by the registry and must not be mutated.
type VertexBuffer struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// DrawTo draws the buffer onto dst offset by (x, y), filled from src
// (a 1x1 white image gives flat vertex colors).
func (vb *VertexBuffer) DrawTo(dst, src *ebiten.Image, x, y float32, antialias bool) {
	dst.DrawTriangles(vb.translated(x, y), vb.Indices, src, &ebiten.DrawTrianglesOptions{AntiAlias: antialias})
}

// DrawShaderTo draws the buffer onto dst offset by (x, y) using shader.
func (vb *VertexBuffer) DrawShaderTo(dst *ebiten.Image, shader *ebiten.Shader, x, y float32, uniforms map[string]any) {
	dst.DrawTrianglesShader(vb.translated(x, y), vb.Indices, shader, &ebiten.DrawTrianglesShaderOptions{Uniforms: uniforms})
}

func (vb *VertexBuffer) translated(x, y float32) []ebiten.Vertex {
	vs := make([]ebiten.Vertex, len(vb.Vertices))
	for i, v := range vb.Vertices {
		v.DstX += x
		v.DstY += y
		vs[i] = v
	}
	return vs
}

// AssignVertexBuffer stores a copy of vertices and indices under name.
// Every index must reference an existing vertex, and at most MaxVertices
// vertices can be addressed.
func (r *Registry) AssignVertexBuffer(name string, vertices []ebiten.Vertex, indices []uint16) (*VertexBuffer, error) {
	const op = "resource.AssignVertexBuffer"
	return assign(r, r.vertices, op, name, func() (*VertexBuffer, error) {
		if len(vertices) > MaxVertices {
			return nil, errs.InvalidArgument(op, name, "%d vertices exceed the %d addressable", len(vertices), MaxVertices)
		}
		if len(indices)%3 != 0 {
			return nil, errs.InvalidArgument(op, name, "index count %d is not a multiple of 3", len(indices))
		}
		for _, idx := range indices {
			if int(idx) >= len(vertices) {
				return nil, errs.InvalidArgument(op, name, "index %d out of range for %d vertices", idx, len(vertices))
			}
		}
		vb := &VertexBuffer{
			Vertices: append([]ebiten.Vertex(nil), vertices...),
			Indices:  append([]uint16(nil), indices...),
		}
		return vb, nil
	})
}

// AssignPolygon stores a regular polygon of the given resolution, centered
// on the origin, as a triangle fan with opaque white vertices.
// A resolution below 3 or above MaxPolygonResolution is rejected with
// InvalidArgument.
func (r *Registry) AssignPolygon(name string, resolution int, radius float32) (*VertexBuffer, error) {
	const op = "resource.AssignPolygon"
	if resolution < 3 || resolution > MaxPolygonResolution {
		err := errs.InvalidArgument(op, name, "resolution %d outside [3, %d]", resolution, MaxPolygonResolution)
		r.logger.Warn("polygon rejected", "name", name, "resolution", resolution)
		return nil, err
	}
	vertices, indices := polygon(resolution, radius)
	return r.AssignVertexBuffer(name, vertices, indices)
}

// VertexBuffer returns the vertex buffer assigned under name.
func (r *Registry) VertexBuffer(name string) (*VertexBuffer, error) {
	return lookup(r, r.vertices, "resource.VertexBuffer", name)
}

// polygon builds a fan around a center vertex at index 0.
func polygon(resolution int, radius float32) ([]ebiten.Vertex, []uint16) {
	vertices := make([]ebiten.Vertex, 0, resolution+1)
	vertices = append(vertices, whiteVertex(0, 0))
	for i := 0; i < resolution; i++ {
		theta := 2 * math.Pi * float64(i) / float64(resolution)
		x := radius * float32(math.Cos(theta))
		y := radius * float32(math.Sin(theta))
		vertices = append(vertices, whiteVertex(x, y))
	}

	indices := make([]uint16, 0, resolution*3)
	for i := 1; i <= resolution; i++ {
		next := i%resolution + 1
		indices = append(indices, 0, uint16(i), uint16(next))
	}
	return vertices, indices
}

func whiteVertex(x, y float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   0,
		SrcY:   0,
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}
