package components

import (
	"fmt"
	"strings"
)

var patternNames = []string{"straight", "bounce", "wave"}

var powerUpNames = []string{"none", "speed", "slow", "magnet", "rotten"}

// String returns the config name for a Pattern.
func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return "unknown"
}

// String returns the config name for a PowerUpKind.
func (k PowerUpKind) String() string {
	if int(k) < len(powerUpNames) {
		return powerUpNames[k]
	}
	return "unknown"
}

// Storable reports whether the kind is held as a pending charge.
// Rotten applies immediately and None grants nothing.
func (k PowerUpKind) Storable() bool {
	return k == PowerUpSpeed || k == PowerUpSlow || k == PowerUpMagnet
}

// String returns a readable name for a PoolState.
func (s PoolState) String() string {
	if s == PoolActive {
		return "active"
	}
	return "free"
}

// ParsePattern converts a config name to a Pattern. Empty means straight.
func ParsePattern(name string) (Pattern, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PatternStraight, nil
	}
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("unknown movement pattern %q", name)
}

// ParsePowerUp converts a config name to a PowerUpKind. Empty means none.
func ParsePowerUp(name string) (PowerUpKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PowerUpNone, nil
	}
	for i, n := range powerUpNames {
		if n == name {
			return PowerUpKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown power-up %q", name)
}
