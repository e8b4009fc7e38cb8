package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"code only", &Error{Code: CodeClosed}, "CLOSED"},
		{"op and name", NotFound("scene.Select", "missing"), `scene.Select: NOT_FOUND "missing"`},
		{"message", InvalidArgument("resource.AssignPolygon", "hex", "resolution %d < 3", 2), `resource.AssignPolygon: INVALID_ARGUMENT "hex": resolution 2 < 3`},
		{"cause", BackendInit("platform.Open", errors.New("no display")), "platform.Open: BACKEND_INIT_FAILURE: no display"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_IsMatchesCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading scene: %w", NotFound("scene.Get", "title"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsDuplicateName(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("compile failed")
	err := Wrap(CodeInvalidArgument, "resource.AssignShader", "blur", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsInvalidArgument(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.False(t, IsBackendInit(nil))
}
