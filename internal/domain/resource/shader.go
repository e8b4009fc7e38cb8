package resource

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// AssignShader compiles Kage source and stores the program under name.
// A compile error is returned as InvalidArgument and nothing is stored.
func (r *Registry) AssignShader(name string, src []byte) (*ebiten.Shader, error) {
	return assign(r, r.shaders, "resource.AssignShader", name, func() (*ebiten.Shader, error) {
		return ebiten.NewShader(src)
	})
}

// Shader returns the shader program assigned under name.
func (r *Registry) Shader(name string) (*ebiten.Shader, error) {
	return lookup(r, r.shaders, "resource.Shader", name)
}

func releaseShader(s *ebiten.Shader) error {
	s.Deallocate()
	return nil
}
