package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// HallOfFame keeps the best finished games, highest score first.
type HallOfFame struct {
	entries []SessionSummary
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize games.
func NewHallOfFame(maxSize int) *HallOfFame {
	return &HallOfFame{
		entries: make([]SessionSummary, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers a finished game to the hall.
// Returns true if the game was added.
func (hof *HallOfFame) Consider(s SessionSummary) bool {
	if hof.maxSize <= 0 {
		return false
	}

	// Ties keep the earlier game ahead.
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Score < s.Score
	})
	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, SessionSummary{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = s

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns a copy of the ranked games.
func (hof *HallOfFame) Entries() []SessionSummary {
	return append([]SessionSummary(nil), hof.entries...)
}

// Size returns the number of games in the hall.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopScore returns the best score, or 0 if the hall is empty.
func (hof *HallOfFame) TopScore() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Score
}

type hallOfFameJSON struct {
	MaxSize int              `json:"max_size"`
	Entries []SessionSummary `json:"entries"`
}

// MarshalJSON serializes the hall of fame to indented JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hallOfFameJSON{
		MaxSize: hof.maxSize,
		Entries: hof.entries,
	}, "", "  ")
}

// LoadHallOfFameFromFile reads a hall written by OutputManager.WriteHallOfFame.
// Entries are re-ranked on load.
func LoadHallOfFameFromFile(path string) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw hallOfFameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	maxSize := max(raw.MaxSize, len(raw.Entries))
	hof := NewHallOfFame(maxSize)
	for _, e := range raw.Entries {
		hof.Consider(e)
	}
	return hof, nil
}
