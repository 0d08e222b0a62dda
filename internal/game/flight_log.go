package game

import (
	"fmt"
	"strings"
)

// FlightLogEntry is one recorded gameplay event.
type FlightLogEntry struct {
	Tick     int
	Category string  // contact, damage, encounter, star, coin, flap, state, camera
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] damage    hit             enemy bat health=2
func (e FlightLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-9s %-15s %s", e.Tick, e.Category, e.Key, e.Value)
}

// FlightLog collects structured events during a flight. Unlike EventPanel
// (UI ring-buffer), FlightLog is unbounded and machine-readable.
type FlightLog struct {
	entries []FlightLogEntry
	verbose bool
}

// NewFlightLog creates a FlightLog. If verbose is true, per-tick position
// entries are also recorded.
func NewFlightLog(verbose bool) *FlightLog {
	return &FlightLog{verbose: verbose}
}

// Add records a new entry.
func (fl *FlightLog) Add(tick int, category, key, value string, numVal float64) {
	fl.entries = append(fl.entries, FlightLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (fl *FlightLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !fl.verbose {
		return
	}
	fl.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (fl *FlightLog) Entries() []FlightLogEntry {
	return fl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (fl *FlightLog) Filter(category, key string) []FlightLogEntry {
	var out []FlightLogEntry
	for _, e := range fl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (fl *FlightLog) CountCategory(category, key string) int {
	return len(fl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (fl *FlightLog) LastOf(category, key string) (FlightLogEntry, bool) {
	entries := fl.Filter(category, key)
	if len(entries) == 0 {
		return FlightLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HitsBy counts the damage taken from source ("ground", "bat", "blade",
// "madfly").
func (fl *FlightLog) HitsBy(source string) int {
	n := 0
	for _, e := range fl.Filter("damage", "hit") {
		if strings.HasPrefix(e.Value, source+" ") {
			n++
		}
	}
	return n
}

// Tail formats the entries recorded in the last ticks ticks of the log, the
// run-up to whatever happened most recently.
func (fl *FlightLog) Tail(ticks int) string {
	if len(fl.entries) == 0 {
		return ""
	}
	from := fl.entries[len(fl.entries)-1].Tick - ticks
	start := len(fl.entries)
	for start > 0 && fl.entries[start-1].Tick >= from {
		start--
	}
	var sb strings.Builder
	for _, e := range fl.entries[start:] {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the flight so far.
func (fl *FlightLog) Summary(s *Scene) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", s.Ticks())
	fmt.Fprintf(&sb, "Distance: %dm  Coins: %d  Health: %d/%d\n",
		s.DistanceMeters(), s.Coins(), s.Player.Health, s.Player.MaxHealth)
	fmt.Fprintf(&sb, "Encounters: %d  Stars: %d  Hits: %d\n",
		fl.CountCategory("encounter", "placed"),
		fl.CountCategory("star", "collected"),
		fl.CountCategory("damage", "hit"))
	if e, ok := fl.LastOf("state", "game_over"); ok {
		fmt.Fprintf(&sb, "Game over at T=%04d: %s\n", e.Tick, e.Value)
	}
	return sb.String()
}
