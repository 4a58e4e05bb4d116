package elo

import (
	"math"
	"testing"
	"time"
)

func TestExpectedScore(t *testing.T) {
	if got := ExpectedScore(1500, 1500); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("equal ratings should give 0.5, got %f", got)
	}

	stronger := ExpectedScore(1700, 1500)
	weaker := ExpectedScore(1500, 1700)
	if stronger <= 0.5 {
		t.Errorf("higher-rated player should be favored, got %f", stronger)
	}
	if math.Abs(stronger+weaker-1) > 1e-9 {
		t.Errorf("expectations should sum to 1, got %f + %f", stronger, weaker)
	}

	// a 400-point gap means ~10:1 odds
	if got := ExpectedScore(1900, 1500); math.Abs(got-10.0/11.0) > 1e-9 {
		t.Errorf("400-point gap should give 10/11, got %f", got)
	}
}

func TestExperienceMultiplier(t *testing.T) {
	tests := []struct {
		games int
		want  float64
	}{
		{0, 2.0},
		{15, 1.5},
		{30, 1.0},
		{100, 1.0},
	}
	for _, tt := range tests {
		if got := ExperienceMultiplier(tt.games); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ExperienceMultiplier(%d) = %f, want %f", tt.games, got, tt.want)
		}
	}
}

func TestRecencyMultiplier(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 1.0},
		{7, 1.0},
		{30, 1.5},
		{60, 1.75},
		{90, 2.0},
		{91, 2.0},
		{365, 2.0},
	}
	for _, tt := range tests {
		if got := RecencyMultiplier(tt.days); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RecencyMultiplier(%d) = %f, want %f", tt.days, got, tt.want)
		}
	}
}

func TestRecencyMultiplier_Interpolation(t *testing.T) {
	// 7-30 days ramps linearly from 1.0 toward 1.5
	mid := RecencyMultiplier(18)
	if mid <= 1.0 || mid >= 1.5 {
		t.Errorf("18 days should be between 1.0 and 1.5, got %f", mid)
	}
	if RecencyMultiplier(20) <= RecencyMultiplier(10) {
		t.Error("multiplier should grow with staleness inside the 7-30 band")
	}
}

func TestNewRating_WinAndLoss(t *testing.T) {
	win := NewRating(1500, 1500, 1, 32, 50, 0)
	loss := NewRating(1500, 1500, 0, 32, 50, 0)

	if win != 1516 {
		t.Errorf("even win should gain 16, got %d", win)
	}
	if loss != 1484 {
		t.Errorf("even loss should drop 16, got %d", loss)
	}
}

func TestNewRating_ExperienceSwing(t *testing.T) {
	// identical outcome, fewer games -> strictly larger swing
	novice := NewRating(1500, 1500, 1, 32, 5, 0)
	veteran := NewRating(1500, 1500, 1, 32, 35, 0)

	if novice-1500 <= veteran-1500 {
		t.Errorf("novice swing (%d) should exceed veteran swing (%d)", novice-1500, veteran-1500)
	}

	noviceLoss := NewRating(1500, 1500, 0, 32, 5, 0)
	veteranLoss := NewRating(1500, 1500, 0, 32, 35, 0)
	if 1500-noviceLoss <= 1500-veteranLoss {
		t.Errorf("novice loss swing (%d) should exceed veteran loss swing (%d)", 1500-noviceLoss, 1500-veteranLoss)
	}
}

func TestNewRating_RecencySwing(t *testing.T) {
	fresh := NewRating(1500, 1500, 1, 32, 50, 0)
	stale := NewRating(1500, 1500, 1, 32, 50, 120)

	if stale-1500 != 2*(fresh-1500) {
		t.Errorf(">90 days should double the swing: fresh %d, stale %d", fresh-1500, stale-1500)
	}
}

func TestDaysSince(t *testing.T) {
	battle := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last time.Time
		want int
	}{
		{"never rated", time.Time{}, 0},
		{"same day", battle.Add(-6 * time.Hour), 0},
		{"ten days", battle.AddDate(0, 0, -10), 10},
		{"clock skew", battle.Add(time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince(tt.last, battle); got != tt.want {
				t.Errorf("DaysSince = %d, want %d", got, tt.want)
			}
		})
	}
}
