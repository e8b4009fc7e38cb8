package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Monitor describes one connected display. Sizes are in device-independent
// pixels.
type Monitor struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"` // device scale factor
}

// Monitors lists the connected displays in the order config.Window.Monitor
// indexes them.
func Monitors() []Monitor {
	var out []Monitor
	for i, m := range ebiten.AppendMonitors(nil) {
		w, h := m.Size()
		out = append(out, Monitor{Index: i, Name: m.Name(), Width: w, Height: h, Scale: m.DeviceScaleFactor()})
	}
	return out
}
