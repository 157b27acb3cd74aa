package telemetry

import (
	"fmt"
	"log/slog"
)

// HighlightType identifies the type of highlight.
type HighlightType string

const (
	HighlightFeedingFrenzy HighlightType = "feeding_frenzy"
	HighlightCloseCall     HighlightType = "close_call"
	HighlightCleanRun      HighlightType = "clean_run"
)

// Thresholds for highlight detection.
const (
	frenzyMultiplier = 2.0
	frenzyMinEaten   = 5
	closeCallAnger   = 0.8
	cleanRunWindows  = 5
	minFrenzyHistory = 3
	minHighlightRing = cleanRunWindows
)

// Highlight is an automatically detected notable moment.
type Highlight struct {
	Type        HighlightType `csv:"type"`
	Tick        int32         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogHighlight logs the highlight using slog.
func (h Highlight) LogHighlight() {
	slog.Info("highlight",
		"type", string(h.Type),
		"tick", h.Tick,
		"description", h.Description,
	)
}

// HighlightDetector watches window stats for notable moments.
type HighlightDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	prevAngerPeak float64
	cleanWindows  int
}

// NewHighlightDetector creates a detector with the given history size.
func NewHighlightDetector(historySize int) *HighlightDetector {
	if historySize < minHighlightRing {
		historySize = minHighlightRing
	}
	return &HighlightDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered highlights.
func (hd *HighlightDetector) Check(stats WindowStats) []Highlight {
	var out []Highlight

	if h := hd.checkFeedingFrenzy(stats); h != nil {
		out = append(out, *h)
	}
	if h := hd.checkCloseCall(stats); h != nil {
		out = append(out, *h)
	}
	if h := hd.checkCleanRun(stats); h != nil {
		out = append(out, *h)
	}

	hd.addToHistory(stats)
	hd.prevAngerPeak = stats.AngerPeak
	return out
}

func (hd *HighlightDetector) addToHistory(stats WindowStats) {
	hd.history[hd.historyIdx] = stats
	hd.historyIdx = (hd.historyIdx + 1) % hd.historySize
	if hd.historyIdx == 0 {
		hd.historyFull = true
	}
}

func (hd *HighlightDetector) getHistory() []WindowStats {
	if hd.historyFull {
		return hd.history
	}
	return hd.history[:hd.historyIdx]
}

// Feeding frenzy: eaten count above twice the rolling mean.
func (hd *HighlightDetector) checkFeedingFrenzy(stats WindowStats) *Highlight {
	history := hd.getHistory()
	if len(history) < minFrenzyHistory || stats.Eaten < frenzyMinEaten {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Eaten
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(stats.Eaten) <= avg*frenzyMultiplier {
		return nil
	}

	return &Highlight{
		Type:        HighlightFeedingFrenzy,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Ate %d foods, %.1fx the average (%.1f)", stats.Eaten, float64(stats.Eaten)/avg, avg),
	}
}

// Close call: anger reached the danger zone, then a level-up reset it.
func (hd *HighlightDetector) checkCloseCall(stats WindowStats) *Highlight {
	if stats.LevelUps == 0 || stats.GameOvers > 0 {
		return nil
	}
	peak := max(stats.AngerPeak, hd.prevAngerPeak)
	if peak < closeCallAnger {
		return nil
	}
	return &Highlight{
		Type:        HighlightCloseCall,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Leveled up to %d with anger at %.0f%%", stats.Level, peak*100),
	}
}

// Clean run: several consecutive windows of eating without a single miss.
func (hd *HighlightDetector) checkCleanRun(stats WindowStats) *Highlight {
	if stats.Missed > 0 || stats.Eaten == 0 {
		hd.cleanWindows = 0
		return nil
	}
	hd.cleanWindows++
	if hd.cleanWindows != cleanRunWindows { // trigger exactly once per streak
		return nil
	}
	return &Highlight{
		Type:        HighlightCleanRun,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No misses over %d windows at level %d", cleanRunWindows, stats.Level),
	}
}
