package ui

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/systems"
)

const (
	feedCapacity    = 6
	feedLifetime    = 3.0
	notReadyFlash   = 0.5
	levelBannerTime = 1.5
)

// FeedEntry is one line of the event feed.
type FeedEntry struct {
	Text string
	Age  float64
}

// Presenter collects notifications for the drawing code. It owns no game
// state; everything it shows arrives through the hook methods.
type Presenter struct {
	systems.NopHooks

	feed     []FeedEntry
	notReady [components.PowerUpKindCount]float64
	banner   float64
	level    int

	foodSpeed  float64
	spawnScale float64
	tempo      float64

	revealRank  int
	revealPitch float64
}

// NewPresenter returns a presenter with neutral multipliers.
func NewPresenter() *Presenter {
	return &Presenter{foodSpeed: 1, spawnScale: 1, tempo: 1, level: 1}
}

// Advance ages the feed and decays flashes by real seconds.
func (p *Presenter) Advance(dt float64) {
	kept := p.feed[:0]
	for _, e := range p.feed {
		e.Age += dt
		if e.Age < feedLifetime {
			kept = append(kept, e)
		}
	}
	p.feed = kept

	for i := range p.notReady {
		p.notReady[i] = max(0, p.notReady[i]-dt)
	}
	p.banner = max(0, p.banner-dt)
}

func (p *Presenter) push(format string, args ...any) {
	if len(p.feed) == feedCapacity {
		copy(p.feed, p.feed[1:])
		p.feed = p.feed[:feedCapacity-1]
	}
	p.feed = append(p.feed, FeedEntry{Text: fmt.Sprintf(format, args...)})
}

// Feed returns the live entries, oldest first.
func (p *Presenter) Feed() []FeedEntry { return p.feed }

// NotReadyFlash returns the remaining flash fraction for a refused activation.
func (p *Presenter) NotReadyFlash(kind components.PowerUpKind) float64 {
	if kind >= components.PowerUpKindCount {
		return 0
	}
	return p.notReady[kind] / notReadyFlash
}

// LevelBanner returns the remaining banner fraction and the level it announces.
func (p *Presenter) LevelBanner() (float64, int) {
	return p.banner / levelBannerTime, p.level
}

// Multipliers returns the last food speed, spawn speed and tempo values.
func (p *Presenter) Multipliers() (foodSpeed, spawnScale, tempo float64) {
	return p.foodSpeed, p.spawnScale, p.tempo
}

// Reveal returns the last revealed rank and its pitch.
func (p *Presenter) Reveal() (rank int, pitch float64) {
	return p.revealRank, p.revealPitch
}

func (p *Presenter) OnLevelChanged(level int) {
	if level > p.level {
		p.banner = levelBannerTime
		p.push("level %d", level)
	}
	p.level = level
}

func (p *Presenter) OnPowerUpStateChanged(kind components.PowerUpKind, state systems.PowerUpState) {
	p.push("%s %s", kind, state)
}

func (p *Presenter) OnPowerUpNotReady(kind components.PowerUpKind) {
	if kind < components.PowerUpKindCount {
		p.notReady[kind] = notReadyFlash
	}
}

func (p *Presenter) OnFoodRemoved(_ ecs.Entity, reason systems.RemovalReason) {
	if reason == systems.RemovedMissed {
		p.push("missed")
	}
}

func (p *Presenter) OnGameOver(finalScore, rankTier int) {
	p.push("game over: %d pts, rank %d", finalScore, rankTier)
}

func (p *Presenter) OnRankRevealed(rank int, pitch float64) {
	p.revealRank = rank
	p.revealPitch = pitch
}

func (p *Presenter) OnSoundCue(cue systems.SoundCue) {
	p.push("cue %s", cue)
}

func (p *Presenter) OnRestart() {
	p.feed = p.feed[:0]
	p.notReady = [components.PowerUpKindCount]float64{}
	p.banner = 0
	p.level = 1
	p.revealRank = 0
	p.revealPitch = 0
}

func (p *Presenter) SetGlobalFoodSpeedMultiplier(m float64) { p.foodSpeed = m }
func (p *Presenter) SetPerLevelSpawnSpeedScale(s float64)   { p.spawnScale = s }
func (p *Presenter) SetMusicTempo(t float64)                { p.tempo = t }
