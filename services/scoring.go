// file: services/scoring.go
package services

import (
	"math"

	"FrostCTF/models"
)

const (
	hintPenalty  = 10
	minimumScore = 10
)

var difficultyMultipliers = map[models.ChallengeDifficulty]float64{
	models.ChallengeDifficultyEasy:   0.5,
	models.ChallengeDifficultyMedium: 1.0,
	models.ChallengeDifficultyHard:   1.5,
}

// CalculateScore 计算得分：基础分减去提示罚分，乘以难度系数，
// 四舍五入后不低于保底 10 分。纯函数，同输入必同输出。
// math.Round 对正数等价于 JS 的 Math.round（0.5 进位）。
func CalculateScore(basePoints uint, hintsUsed int, difficulty models.ChallengeDifficulty) int {
	score := float64(basePoints) - float64(hintsUsed)*hintPenalty

	multiplier, ok := difficultyMultipliers[difficulty]
	if !ok {
		multiplier = 1.0
	}
	score *= multiplier

	final := int(math.Round(score))
	if final < minimumScore {
		final = minimumScore
	}
	return final
}
