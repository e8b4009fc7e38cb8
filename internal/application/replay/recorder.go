package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/lumen/internal/domain/event"
)

// RecorderOption configures a Recorder.
type RecorderOption func(*Data)

// WithSession sets the session id instead of generating one.
func WithSession(id uuid.UUID) RecorderOption {
	return func(d *Data) { d.Session = id }
}

// WithStartTime sets the recorded start time instead of now.
func WithStartTime(t time.Time) RecorderOption {
	return func(d *Data) { d.StartTime = t.UTC().Format(time.RFC3339) }
}

// Recorder handles event recording
//
// Thread-safety: all methods are safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	data      Data
	recording bool
	dropped   int
}

// NewRecorder creates a new recorder
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		data: Data{
			Version:   Version,
			Session:   uuid.Must(uuid.NewV7()),
			StartTime: time.Now().UTC().Format(time.RFC3339),
			Events:    make([]Record, 0, 256),
		},
		recording: true,
	}
	for _, opt := range opts {
		opt(&r.data)
	}
	return r
}

// Record appends e as delivered on frame f. Its signature matches
// frame.WithEventTap.
func (r *Recorder) Record(f int64, e event.Event) {
	rec, err := Encode(f, e)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return
	}
	if err != nil {
		r.dropped++
		return
	}
	r.data.Events = append(r.data.Events, rec)
}

// Dropped returns the number of events that could not be encoded.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// ObserveFrames stores the number of polls the session ran for, which is
// the length a replay must run to deliver every event on its tick.
func (r *Recorder) ObserveFrames(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.data.Frames = n
	}
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Data returns a copy of the recording so far.
func (r *Recorder) Data() Data {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.data
	d.Events = append([]Record(nil), r.data.Events...)
	return d
}

// WriteTo encodes the recording as indented JSON.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	encoder := json.NewEncoder(cw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.Data()); err != nil {
		return cw.n, fmt.Errorf("failed to encode replay: %w", err)
	}
	return cw.n, nil
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := r.WriteTo(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
