package config

import (
	"errors"
	"fmt"
)

const (
	// Vsync paces frames to the display refresh.
	Vsync = 0
	// UnlimitedFPS runs frames as fast as possible.
	UnlimitedFPS = -1
)

// Window is the window and frame-loop configuration, filled in by the
// application before the backend opens.
type Window struct {
	Width           int    `json:"width" yaml:"width"`
	Height          int    `json:"height" yaml:"height"`
	Title           string `json:"title" yaml:"title"`
	Fullscreen      bool   `json:"fullscreen" yaml:"fullscreen"`
	Monitor         int    `json:"monitor" yaml:"monitor"`             // index for fullscreen, -1 for the current one
	FPS             int    `json:"fps" yaml:"fps"`                     // >0 target, 0 vsync, <0 unlimited
	Multisampling   int    `json:"multisampling" yaml:"multisampling"` // samples per pixel, 0 off
	Resizable       bool   `json:"resizable" yaml:"resizable"`
	Decorated       bool   `json:"decorated" yaml:"decorated"`
	AlwaysOnTop     bool   `json:"alwaysOnTop" yaml:"alwaysOnTop"`
	Maximized       bool   `json:"maximized" yaml:"maximized"`
	Threaded        bool   `json:"threaded" yaml:"threaded"`               // run updates on a worker goroutine
	AudioSampleRate int    `json:"audioSampleRate" yaml:"audioSampleRate"` // Hz
}

// Log configures the process logger.
type Log struct {
	Level string `json:"level" yaml:"level"`
	JSON  bool   `json:"json" yaml:"json"`
}

// File is the root of a configuration file.
type File struct {
	Window Window `json:"window" yaml:"window"`
	Log    Log    `json:"log" yaml:"log"`
}

// DefaultWindow returns the configuration used when nothing overrides it.
func DefaultWindow() Window {
	return Window{
		Width:           1280,
		Height:          720,
		Title:           "lumen",
		Monitor:         -1,
		FPS:             UnlimitedFPS,
		Resizable:       true,
		Decorated:       true,
		AudioSampleRate: 48000,
	}
}

// Default returns the default configuration file contents.
func Default() File {
	return File{
		Window: DefaultWindow(),
		Log:    Log{Level: "info"},
	}
}

// Validate reports every problem with w.
func (w Window) Validate() error {
	var errs []error
	if w.Width <= 0 || w.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", w.Width, w.Height))
	}
	if w.Multisampling < 0 {
		errs = append(errs, fmt.Errorf("multisampling %d must not be negative", w.Multisampling))
	}
	if w.Monitor < -1 {
		errs = append(errs, fmt.Errorf("monitor %d must be -1 or an index", w.Monitor))
	}
	if w.AudioSampleRate < 0 {
		errs = append(errs, fmt.Errorf("audio sample rate %d must not be negative", w.AudioSampleRate))
	}
	return errors.Join(errs...)
}

// Vsync reports whether frames follow the display refresh.
func (w Window) Vsync() bool { return w.FPS == Vsync }

// Unlimited reports whether frames run without pacing.
func (w Window) Unlimited() bool { return w.FPS < 0 }
