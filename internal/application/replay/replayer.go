package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/younwookim/lumen/internal/domain/event"
)

// Replayer handles event playback from recorded data
//
// Each PollEvents call stands for one frame: it delivers the events recorded
// on that frame and advances. A Replayer is owned by one goroutine.
type Replayer struct {
	data  Data
	frame int64
	next  int // index into data.Events
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// Load decodes replay data from r.
func Load(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}
	for i, rec := range data.Events {
		if _, err := rec.Event(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if i > 0 && rec.F < data.Events[i-1].F {
			return nil, fmt.Errorf("event %d: frame %d out of order", i, rec.F)
		}
	}
	return &data, nil
}

// LoadFile loads replay data from a file
func LoadFile(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Load(file)
}

// PollEvents delivers the events recorded for the current frame and
// advances to the next frame.
func (r *Replayer) PollEvents(dispatch event.Func) {
	for r.next < len(r.data.Events) && r.data.Events[r.next].F <= r.frame {
		rec := r.data.Events[r.next]
		r.next++
		if rec.F < r.frame {
			continue
		}
		e, err := rec.Event()
		if err != nil {
			continue
		}
		dispatch(e)
	}
	r.frame++
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int64 {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int64 {
	return r.data.Frames
}

// Done reports whether every recorded frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= r.data.Frames && r.next >= len(r.data.Events)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}
