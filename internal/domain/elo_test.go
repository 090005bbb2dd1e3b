package domain

import "testing"

func TestCalculateEloEqualRatings(t *testing.T) {
	// Evenly matched: winner gains K/2, loser drops K/2
	if got := CalculateElo(1000, 1000, 1.0); got != 1016 {
		t.Errorf("winner rating = %d, want 1016", got)
	}
	if got := CalculateElo(1000, 1000, 0.0); got != 984 {
		t.Errorf("loser rating = %d, want 984", got)
	}
	if got := CalculateElo(1000, 1000, 0.5); got != 1000 {
		t.Errorf("draw rating = %d, want 1000", got)
	}
}

func TestCalculateEloUpsetPaysMore(t *testing.T) {
	underdogGain := CalculateElo(1000, 1400, 1.0) - 1000
	favoriteGain := CalculateElo(1400, 1000, 1.0) - 1400

	if underdogGain <= favoriteGain {
		t.Errorf("underdog gained %d, favorite gained %d; upset should pay more", underdogGain, favoriteGain)
	}
	if underdogGain <= 0 || favoriteGain < 0 {
		t.Errorf("winners must not lose rating: underdog %+d, favorite %+d", underdogGain, favoriteGain)
	}
}

func TestCalculateEloNeverNegative(t *testing.T) {
	if got := CalculateElo(5, 2000, 0.0); got != 0 {
		t.Errorf("rating floor violated: got %d, want 0", got)
	}
}
