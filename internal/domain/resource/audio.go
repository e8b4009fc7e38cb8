package resource

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Format is an encoded audio format.
type Format int

const (
	FormatWAV Format = iota
	FormatVorbis
	FormatMP3
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatVorbis:
		return "ogg"
	case FormatMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(path.Ext(p)) {
	case ".wav":
		return FormatWAV, nil
	case ".ogg", ".oga":
		return FormatVorbis, nil
	case ".mp3":
		return FormatMP3, nil
	default:
		return 0, fmt.Errorf("unsupported audio file %q", p)
	}
}

// AudioStream is a decoded, playable sound.
type AudioStream struct {
	player *audio.Player
	format Format
	loop   bool
}

// Play starts playback from the current position.
func (s *AudioStream) Play() {
	s.player.Play()
}

// Stop pauses playback and rewinds to the start.
func (s *AudioStream) Stop() error {
	s.player.Pause()
	return s.player.Rewind()
}

// SetVolume sets the volume in [0, 1].
func (s *AudioStream) SetVolume(v float64) {
	s.player.SetVolume(v)
}

// Volume returns the current volume.
func (s *AudioStream) Volume() float64 {
	return s.player.Volume()
}

// IsPlaying reports whether the stream is playing.
func (s *AudioStream) IsPlaying() bool {
	return s.player.IsPlaying()
}

// Position returns the playback position.
func (s *AudioStream) Position() time.Duration {
	return s.player.Position()
}

// Looping reports whether the stream restarts at its end.
func (s *AudioStream) Looping() bool {
	return s.loop
}

// Format returns the encoding the stream was decoded from.
func (s *AudioStream) Format() Format {
	return s.format
}

// AssignAudioStream decodes src and creates a player on ctx under name.
// With loop set, playback restarts at the end of the stream.
func (r *Registry) AssignAudioStream(name string, ctx *audio.Context, src io.ReadSeeker, format Format, loop bool) (*AudioStream, error) {
	return assign(r, r.streams, "resource.AssignAudioStream", name, func() (*AudioStream, error) {
		if ctx == nil {
			return nil, fmt.Errorf("no audio context")
		}
		stream, length, err := decode(src, format)
		if err != nil {
			return nil, err
		}

		var in io.Reader = stream
		if loop {
			in = audio.NewInfiniteLoopF32(stream, length)
		}
		player, err := ctx.NewPlayerF32(in)
		if err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		return &AudioStream{player: player, format: format, loop: loop}, nil
	})
}

// AudioStream returns the audio stream assigned under name.
func (r *Registry) AudioStream(name string) (*AudioStream, error) {
	return lookup(r, r.streams, "resource.AudioStream", name)
}

func decode(src io.ReadSeeker, format Format) (io.ReadSeeker, int64, error) {
	switch format {
	case FormatWAV:
		s, err := wav.DecodeF32(src)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode wav: %w", err)
		}
		return s, s.Length(), nil
	case FormatVorbis:
		s, err := vorbis.DecodeF32(src)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode ogg: %w", err)
		}
		return s, s.Length(), nil
	case FormatMP3:
		s, err := mp3.DecodeF32(src)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode mp3: %w", err)
		}
		return s, s.Length(), nil
	default:
		return nil, 0, fmt.Errorf("unsupported format %v", format)
	}
}

func releaseAudioStream(s *AudioStream) error {
	s.player.Pause()
	return s.player.Close()
}
