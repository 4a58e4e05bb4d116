// Package elo implements the rating math for head-to-head battles: the
// standard logistic expectation curve with a K-factor scaled by account
// experience and by how long the account has gone without a rated battle.
package elo

import (
	"math"
	"time"

	"royale-tracker/internal/constants"
)

// ExpectedScore returns the probability of the player beating the opponent.
func ExpectedScore(player, opponent int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponent-player)/400))
}

// ExperienceMultiplier shrinks K as an account accumulates rated games:
// 2.0 at zero games, linearly down to 1.0 at 30 games and beyond.
func ExperienceMultiplier(gamesPlayed int) float64 {
	if gamesPlayed >= constants.ExperienceGameThreshold {
		return 1.0
	}
	return 2 - float64(gamesPlayed)/constants.ExperienceGameThreshold
}

// RecencyMultiplier boosts K for accounts returning after a break so their
// rating converges to current skill faster. Days are measured between the
// battle's own timestamp and the account's last rated battle.
func RecencyMultiplier(daysSinceLast int) float64 {
	switch {
	case daysSinceLast > 90:
		return 2.0
	case daysSinceLast > 30:
		return 1.5 + 0.5*float64(daysSinceLast-30)/60
	case daysSinceLast > 7:
		return 1.0 + 0.5*float64(daysSinceLast-7)/23
	default:
		return 1.0
	}
}

// NewRating computes the player's post-battle rating. score is 1 for a win
// and 0 for a loss.
func NewRating(player, opponent int, score float64, baseK float64, gamesPlayed, daysSinceLast int) int {
	expected := ExpectedScore(player, opponent)
	k := baseK * ExperienceMultiplier(gamesPlayed) * RecencyMultiplier(daysSinceLast)
	return int(math.Round(float64(player) + k*(score-expected)))
}

// DaysSince floors the whole days elapsed from the last rated battle to
// battleTime, returning 0 when there is no prior rated battle or the
// timestamps are out of order.
func DaysSince(last, battleTime time.Time) int {
	if last.IsZero() || !battleTime.After(last) {
		return 0
	}
	return int(battleTime.Sub(last).Hours() / 24)
}
