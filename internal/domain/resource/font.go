package resource

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// AssignFont parses a TrueType/OpenType font from src and stores the face
// source under name. Faces of any size are created from it with
// &text.GoTextFace{Source: src, Size: ...}.
func (r *Registry) AssignFont(name string, src io.Reader) (*text.GoTextFaceSource, error) {
	return assign(r, r.fonts, "resource.AssignFont", name, func() (*text.GoTextFaceSource, error) {
		return text.NewGoTextFaceSource(src)
	})
}

// AssignSystemFont locates an installed font by file or family name
// (e.g. "DejaVuSans.ttf" or "arial") and stores it under name.
func (r *Registry) AssignSystemFont(name, family string) (*text.GoTextFaceSource, error) {
	return assign(r, r.fonts, "resource.AssignSystemFont", name, func() (*text.GoTextFaceSource, error) {
		path, err := findfont.Find(family)
		if err != nil {
			return nil, fmt.Errorf("failed to find font %q: %w", family, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		return text.NewGoTextFaceSource(bytes.NewReader(data))
	})
}

// AssignDefaultFont stores the bundled Go Regular font under name.
func (r *Registry) AssignDefaultFont(name string) (*text.GoTextFaceSource, error) {
	return r.AssignFont(name, bytes.NewReader(goregular.TTF))
}

// Font returns the font assigned under name.
func (r *Registry) Font(name string) (*text.GoTextFaceSource, error) {
	return lookup(r, r.fonts, "resource.Font", name)
}
