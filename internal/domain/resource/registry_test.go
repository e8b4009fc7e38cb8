package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lumen/internal/domain/errs"
)

// releaseLog records release notifications in order.
type releaseLog struct {
	entries []string
	counts  map[string]int
}

func newReleaseLog() *releaseLog {
	return &releaseLog{counts: make(map[string]int)}
}

func (l *releaseLog) observe(kind Kind, name string) {
	key := kind.String() + "/" + name
	l.entries = append(l.entries, key)
	l.counts[key]++
}

func triangle() ([]ebiten.Vertex, []uint16) {
	return []ebiten.Vertex{whiteVertex(0, 0), whiteVertex(1, 0), whiteVertex(0, 1)}, []uint16{0, 1, 2}
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 100, 50, 255})
		}
	}
	return img
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindShader, "Shader"},
		{KindVertexBuffer, "VertexBuffer"},
		{KindTexture, "Texture"},
		{KindFont, "Font"},
		{KindAudioStream, "AudioStream"},
		{Kind(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestRegistry_GetAfterAssignReturnsSameObject(t *testing.T) {
	r := New()
	vs, is := triangle()

	vb, err := r.AssignVertexBuffer("tri", vs, is)
	require.NoError(t, err)

	got, err := r.VertexBuffer("tri")
	require.NoError(t, err)
	assert.Same(t, vb, got)
	assert.True(t, r.Has(KindVertexBuffer, "tri"))
}

func TestRegistry_GetUnknownNameIsNotFound(t *testing.T) {
	r := New()

	_, err := r.VertexBuffer("missing")
	assert.True(t, errs.IsNotFound(err))
	_, err = r.Texture("missing")
	assert.True(t, errs.IsNotFound(err))
	_, err = r.Shader("missing")
	assert.True(t, errs.IsNotFound(err))
	_, err = r.Font("missing")
	assert.True(t, errs.IsNotFound(err))
	_, err = r.AudioStream("missing")
	assert.True(t, errs.IsNotFound(err))
}

func TestRegistry_NamespacesAreIndependentPerKind(t *testing.T) {
	r := New()
	vs, is := triangle()

	_, err := r.AssignVertexBuffer("shared", vs, is)
	require.NoError(t, err)
	_, err = r.AssignTextureImage("shared", solidImage(2, 2))
	require.NoError(t, err)

	assert.Equal(t, 1, r.Len(KindVertexBuffer))
	assert.Equal(t, 1, r.Len(KindTexture))
}

func TestRegistry_DuplicateNameIsRejectedEveryTime(t *testing.T) {
	r := New()
	vs, is := triangle()

	first, err := r.AssignVertexBuffer("tri", vs, is)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := r.AssignPolygon("tri", 6, 10)
		require.Error(t, err)
		assert.True(t, errs.IsDuplicateName(err))
	}

	got, err := r.VertexBuffer("tri")
	require.NoError(t, err)
	assert.Same(t, first, got, "original entry must be untouched")
	assert.Equal(t, []string{"tri"}, r.Names(KindVertexBuffer))
}

func TestRegistry_EmptyNameIsInvalid(t *testing.T) {
	r := New()
	vs, is := triangle()

	_, err := r.AssignVertexBuffer("", vs, is)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Equal(t, 0, r.Len(KindVertexBuffer))
}

func TestRegistry_FailedConstructionInsertsNothing(t *testing.T) {
	r := New()

	_, err := r.AssignVertexBuffer("bad", []ebiten.Vertex{whiteVertex(0, 0)}, []uint16{0, 1, 2})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.False(t, r.Has(KindVertexBuffer, "bad"))

	_, err = r.AssignTextureImage("empty", image.NewRGBA(image.Rect(0, 0, 0, 0)))
	require.Error(t, err)
	assert.False(t, r.Has(KindTexture, "empty"))

	_, err = r.AssignShader("broken", []byte("this is not kage"))
	require.Error(t, err)
	assert.False(t, r.Has(KindShader, "broken"))

	// The failed name is still free.
	vs, is := triangle()
	_, err = r.AssignVertexBuffer("bad", vs, is)
	assert.NoError(t, err)
}

func TestRegistry_AssignTextureFromFS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(4, 3)))
	fsys := fstest.MapFS{
		"sprites/box.png": &fstest.MapFile{Data: buf.Bytes()},
		"sprites/bad.png": &fstest.MapFile{Data: []byte("not a png")},
	}
	r := New()

	img, err := r.AssignTexture("box", fsys, "sprites/box.png")
	require.NoError(t, err)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	_, err = r.AssignTexture("bad", fsys, "sprites/bad.png")
	assert.Error(t, err)
	_, err = r.AssignTexture("gone", fsys, "sprites/gone.png")
	assert.Error(t, err)
	assert.Equal(t, []string{"box"}, r.Names(KindTexture))
}

func TestRegistry_AssignDefaultFont(t *testing.T) {
	r := New()

	src, err := r.AssignDefaultFont("ui")
	require.NoError(t, err)

	got, err := r.Font("ui")
	require.NoError(t, err)
	assert.Same(t, src, got)
}

func TestRegistry_AssignAudioStreamWithoutContext(t *testing.T) {
	r := New()

	_, err := r.AssignAudioStream("music", nil, bytes.NewReader(nil), FormatWAV, true)
	assert.Error(t, err)
	assert.Equal(t, 0, r.Len(KindAudioStream))
}

func TestRegistry_CloseReleasesEachEntryExactlyOnce(t *testing.T) {
	log := newReleaseLog()
	r := New(WithReleaseObserver(log.observe))
	vs, is := triangle()

	_, err := r.AssignVertexBuffer("a", vs, is)
	require.NoError(t, err)
	_, err = r.AssignPolygon("b", 5, 8)
	require.NoError(t, err)
	_, err = r.AssignTextureImage("t", solidImage(1, 1))
	require.NoError(t, err)
	_, err = r.AssignDefaultFont("f")
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "second Close is a no-op")

	assert.Equal(t, []string{"Font/f", "Texture/t", "VertexBuffer/b", "VertexBuffer/a"}, log.entries)
	for key, n := range log.counts {
		assert.Equal(t, 1, n, "released more than once: %s", key)
	}
	assert.Equal(t, 0, r.Len(KindVertexBuffer))
}

func TestRegistry_AssignAfterCloseFails(t *testing.T) {
	r := New()
	require.NoError(t, r.Close())

	vs, is := triangle()
	_, err := r.AssignVertexBuffer("late", vs, is)
	assert.ErrorIs(t, err, errs.ErrClosed)
}

func TestRegistry_LookupsProceedDuringConstruction(t *testing.T) {
	r := New()
	vs, is := triangle()
	_, err := r.AssignVertexBuffer("ready", vs, is)
	require.NoError(t, err)

	got, err := assign(r, r.vertices, "test", "slow", func() (*VertexBuffer, error) {
		assert.True(t, r.Has(KindVertexBuffer, "ready"))
		_, err := r.VertexBuffer("ready")
		assert.NoError(t, err)
		return &VertexBuffer{}, nil
	})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.True(t, r.Has(KindVertexBuffer, "slow"))
}

func TestRegistry_NameTakenDuringConstructionReleasesLoser(t *testing.T) {
	r := New()
	released := 0
	s := newStore(KindVertexBuffer, func(*VertexBuffer) error {
		released++
		return nil
	})
	winner := &VertexBuffer{}

	_, err := assign(r, s, "test", "mesh", func() (*VertexBuffer, error) {
		_, err := assign(r, s, "test", "mesh", func() (*VertexBuffer, error) { return winner, nil })
		require.NoError(t, err)
		return &VertexBuffer{}, nil
	})

	assert.True(t, errs.IsDuplicateName(err))
	assert.Equal(t, 1, released, "the losing build is released")
	got, ok := s.get("mesh")
	require.True(t, ok)
	assert.Same(t, winner, got)
}

func TestRegistry_CloseDuringConstructionReleasesResult(t *testing.T) {
	r := New()
	released := 0
	s := newStore(KindVertexBuffer, func(*VertexBuffer) error {
		released++
		return nil
	})

	_, err := assign(r, s, "test", "mesh", func() (*VertexBuffer, error) {
		require.NoError(t, r.Close())
		return &VertexBuffer{}, nil
	})

	assert.ErrorIs(t, err, errs.ErrClosed)
	assert.Equal(t, 1, released)
	assert.False(t, s.has("mesh"))
}
