package resource

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// AssignTexture decodes the image at path in fsys and uploads it under name.
func (r *Registry) AssignTexture(name string, fsys fs.FS, path string) (*ebiten.Image, error) {
	return assign(r, r.textures, "resource.AssignTexture", name, func() (*ebiten.Image, error) {
		f, err := fsys.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return ebiten.NewImageFromImage(img), nil
	})
}

// AssignTextureImage uploads an already decoded image under name.
func (r *Registry) AssignTextureImage(name string, img image.Image) (*ebiten.Image, error) {
	return assign(r, r.textures, "resource.AssignTextureImage", name, func() (*ebiten.Image, error) {
		if img == nil || img.Bounds().Empty() {
			return nil, fmt.Errorf("empty image")
		}
		return ebiten.NewImageFromImage(img), nil
	})
}

// Texture returns the texture assigned under name.
func (r *Registry) Texture(name string) (*ebiten.Image, error) {
	return lookup(r, r.textures, "resource.Texture", name)
}

func releaseTexture(img *ebiten.Image) error {
	img.Deallocate()
	return nil
}
