package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelWidth      = 300
	panelMaxEntries = 40
	panelLineHeight = 14
)

// categoryColors tints the marker next to each event.
var categoryColors = map[string]color.RGBA{
	"damage":    {R: 220, G: 70, B: 70, A: 255},
	"contact":   {R: 230, G: 150, B: 60, A: 255},
	"coin":      {R: 240, G: 200, B: 40, A: 255},
	"star":      {R: 255, G: 240, B: 120, A: 255},
	"encounter": {R: 90, G: 160, B: 230, A: 255},
	"state":     {R: 200, G: 200, B: 200, A: 255},
}

// EventPanel is a ring buffer of recent flight events rendered in the
// debug overlay.
type EventPanel struct {
	entries []FlightLogEntry
	head    int
	count   int
}

// NewEventPanel creates a panel with a fixed capacity.
func NewEventPanel() *EventPanel {
	return &EventPanel{entries: make([]FlightLogEntry, panelMaxEntries)}
}

// Add appends an entry, dropping the oldest when full.
func (ep *EventPanel) Add(e FlightLogEntry) {
	ep.entries[ep.head] = e
	ep.head = (ep.head + 1) % panelMaxEntries
	if ep.count < panelMaxEntries {
		ep.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (ep *EventPanel) Recent() []FlightLogEntry {
	result := make([]FlightLogEntry, ep.count)
	for i := 0; i < ep.count; i++ {
		idx := (ep.head - ep.count + i + panelMaxEntries) % panelMaxEntries
		result[i] = ep.entries[idx]
	}
	return result
}

// Reset empties the panel.
func (ep *EventPanel) Reset() {
	ep.head, ep.count = 0, 0
}

// Draw renders the panel along the right edge of the screen.
func (ep *EventPanel) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, panelWidth, float32(panelH), color.RGBA{R: 10, G: 14, B: 24, A: 210}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 80, B: 120, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, panelWidth, 16, color.RGBA{R: 20, G: 30, B: 50, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "FLIGHT EVENTS", panelX+8, 0)

	entries := ep.Recent()
	maxVisible := (panelH - 24) / panelLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 30, G: 40, B: 60, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 120, G: 120, B: 120, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s %s", e.Tick, e.Key, e.Value), panelX+12, y-1)
		y += panelLineHeight
	}
}
