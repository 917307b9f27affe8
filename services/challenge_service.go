// file: services/challenge_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"FrostCTF/models"
)

// SubmissionResult Flag 提交结果。Flag 不匹配和重复提交都是正常业务结果，
// 不走 error 通道。
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Points  int    `json:"points,omitempty"`
}

const (
	msgFlagCorrect   = "🎉 Flag 正确，干得漂亮！"
	msgFlagWrong     = "❌ Flag 错误，再试一次。"
	msgAlreadySolved = "你已经解出过此题"
)

// ChallengeService Flag 判定与计分引擎
type ChallengeService struct {
	db          *gorm.DB
	leaderboard *LeaderboardService
	log         zerolog.Logger
}

func NewChallengeService(db *gorm.DB, leaderboard *LeaderboardService, log zerolog.Logger) *ChallengeService {
	return &ChallengeService{db: db, leaderboard: leaderboard, log: log}
}

// flagsMatch 判定规则：两侧去首尾空白、转小写后精确相等。
// 不支持部分匹配、正则和多答案。
func flagsMatch(submitted, canonical string) bool {
	return strings.ToLower(strings.TrimSpace(submitted)) == strings.ToLower(strings.TrimSpace(canonical))
}

// SubmitFlag 校验提交的 Flag 并在命中时落一条解题记录。
// 重复解题在服务端拒绝，唯一索引 (user_id, challenge_id) 兜底。
func (s *ChallengeService) SubmitFlag(ctx context.Context, userID, challengeID uint32, flag string, timeSpent int, clientIP string) (*SubmissionResult, error) {
	// 空白 Flag 直接拒绝，不查库
	if strings.TrimSpace(flag) == "" {
		return nil, ErrEmptyFlag
	}
	if timeSpent < 0 {
		timeSpent = 0
	}

	var challenge models.Challenge
	err := s.db.WithContext(ctx).
		Where("id = ? AND state = ?", challengeID, models.ChallengeStateVisible).
		First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Msg("submit: challenge load failed")
		return nil, ErrStorage
	}

	// 重复解题判定先于 Flag 比对，已解出的题不再计分
	var existing models.Completion
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&existing).Error
	if err == nil {
		s.logSubmission(ctx, challengeID, userID, flag, models.FlagResultDuplicate, clientIP)
		return &SubmissionResult{Success: false, Message: msgAlreadySolved}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error().Err(err).Msg("submit: completion lookup failed")
		return nil, ErrStorage
	}

	if !flagsMatch(flag, challenge.Flag) {
		s.logSubmission(ctx, challengeID, userID, flag, models.FlagResultWrong, clientIP)
		return &SubmissionResult{Success: false, Message: msgFlagWrong}, nil
	}

	// 罚分口径：该用户在此题上已揭示的不同提示数，以服务端记录为准
	hintsUsed, err := s.HintsUsed(ctx, userID, challengeID)
	if err != nil {
		return nil, ErrStorage
	}

	points := CalculateScore(challenge.Points, hintsUsed, challenge.Difficulty)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completion := models.Completion{
			ChallengeID:  challengeID,
			UserID:       userID,
			EventID:      challenge.EventID,
			TimeSpent:    timeSpent,
			HintsUsed:    hintsUsed,
			PointsEarned: points,
			CompletedAt:  time.Now(),
		}
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}

		return tx.Model(&models.Challenge{}).
			Where("id = ?", challengeID).
			UpdateColumn("solved_count", gorm.Expr("solved_count + ?", 1)).Error
	})
	if err != nil {
		// 并发双提交时唯一索引触发，按重复解题处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logSubmission(ctx, challengeID, userID, flag, models.FlagResultDuplicate, clientIP)
			return &SubmissionResult{Success: false, Message: msgAlreadySolved}, nil
		}
		s.log.Error().Err(err).Msg("submit: completion write failed")
		return nil, ErrStorage
	}

	s.logSubmission(ctx, challengeID, userID, flag, models.FlagResultCorrect, clientIP)
	if s.leaderboard != nil {
		s.leaderboard.InvalidateCache(ctx)
	}

	return &SubmissionResult{Success: true, Message: msgFlagCorrect, Points: points}, nil
}

// OpenHint 揭示指定下标的提示并记录；重复揭示同一下标不会重复计数
func (s *ChallengeService) OpenHint(ctx context.Context, userID, challengeID uint32, hintIndex int) (string, error) {
	var challenge models.Challenge
	err := s.db.WithContext(ctx).
		Where("id = ? AND state = ?", challengeID, models.ChallengeStateVisible).
		First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrChallengeNotFound
	}
	if err != nil {
		return "", ErrStorage
	}

	var hint models.Hint
	err = s.db.WithContext(ctx).
		Where("challenge_id = ? AND hint_index = ?", challengeID, hintIndex).
		First(&hint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrHintNotFound
	}
	if err != nil {
		return "", ErrStorage
	}

	reveal := models.HintReveal{
		UserID:      userID,
		ChallengeID: challengeID,
		HintIndex:   hintIndex,
		RevealedAt:  time.Now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}, {Name: "hint_index"}},
		DoNothing: true,
	}).Create(&reveal).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		s.log.Error().Err(err).Msg("hint: reveal record failed")
		return "", ErrStorage
	}

	return hint.Content, nil
}

// HintsUsed 该用户在此题上已揭示的不同提示数量
func (s *ChallengeService) HintsUsed(ctx context.Context, userID, challengeID uint32) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.HintReveal{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	if err != nil {
		s.log.Error().Err(err).Msg("hint: reveal count failed")
		return 0, err
	}
	return int(count), nil
}

// RevealedHints 返回该用户已揭示的提示内容，按下标升序
func (s *ChallengeService) RevealedHints(ctx context.Context, userID, challengeID uint32) ([]models.Hint, error) {
	var hints []models.Hint
	err := s.db.WithContext(ctx).Model(&models.Hint{}).
		Joins("JOIN frostctf_hint_reveal r ON r.challenge_id = frostctf_hint.challenge_id AND r.hint_index = frostctf_hint.hint_index").
		Where("r.user_id = ? AND frostctf_hint.challenge_id = ?", userID, challengeID).
		Order("frostctf_hint.hint_index asc").
		Find(&hints).Error
	if err != nil {
		return nil, ErrStorage
	}
	return hints, nil
}

func (s *ChallengeService) logSubmission(ctx context.Context, challengeID, userID uint32, flag string, result models.FlagResult, clientIP string) {
	entry := models.SubmissionLog{
		ChallengeID:    challengeID,
		UserID:         userID,
		SubmittedFlag:  flag,
		FlagResult:     result,
		SubmissionTime: time.Now(),
		IPAddress:      clientIP,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		// 审计日志失败不阻断提交流程
		s.log.Warn().Err(err).Msg("submit: audit log write failed")
	}
}
