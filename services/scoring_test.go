// file: services/scoring_test.go
package services

import (
	"testing"

	"FrostCTF/models"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name       string
		basePoints uint
		hintsUsed  int
		difficulty models.ChallengeDifficulty
		want       int
	}{
		{"medium 不折分", 100, 0, models.ChallengeDifficultyMedium, 100},
		{"easy 减半", 100, 0, models.ChallengeDifficultyEasy, 50},
		{"hard 上浮", 100, 0, models.ChallengeDifficultyHard, 150},
		{"每条提示扣 10 分", 100, 2, models.ChallengeDifficultyMedium, 80},
		{"罚分先于难度系数", 100, 2, models.ChallengeDifficultyHard, 120},
		{"easy 带提示", 100, 3, models.ChallengeDifficultyEasy, 35},
		{"保底 10 分", 100, 20, models.ChallengeDifficultyEasy, 10},
		{"负分也保底", 20, 10, models.ChallengeDifficultyMedium, 10},
		{"0.5 进位", 25, 0, models.ChallengeDifficultyEasy, 13},
		{"未知难度按 1.0", 100, 1, models.ChallengeDifficulty("insane"), 90},
		{"零基础分", 0, 0, models.ChallengeDifficultyHard, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateScore(tt.basePoints, tt.hintsUsed, tt.difficulty)
			if got != tt.want {
				t.Errorf("CalculateScore(%d, %d, %q) = %d, want %d",
					tt.basePoints, tt.hintsUsed, tt.difficulty, got, tt.want)
			}
		})
	}
}

func TestCalculateScoreDeterministic(t *testing.T) {
	first := CalculateScore(250, 3, models.ChallengeDifficultyHard)
	for i := 0; i < 10; i++ {
		if got := CalculateScore(250, 3, models.ChallengeDifficultyHard); got != first {
			t.Fatalf("score not deterministic: run %d got %d, want %d", i, got, first)
		}
	}
}
