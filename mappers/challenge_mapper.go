// file: mappers/challenge_mapper.go
package mappers

import (
	"FrostCTF/dto"
	"FrostCTF/models"
)

func MapCreateReqToModel(req dto.CreateChallengeReq) models.Challenge {
	ch := models.Challenge{
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		EventID:     req.EventID,
		Author:      req.Author,
		Description: req.Description,
		Flag:        req.Flag,
		Difficulty:  models.ChallengeDifficulty(req.Difficulty),
		Points:      req.Points,
	}
	for i, content := range req.Hints {
		ch.Hints = append(ch.Hints, models.Hint{HintIndex: i, Content: content})
	}
	return ch
}

func MapModelToItemResp(ch models.Challenge, completed bool) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:          ch.ID,
		Title:       ch.Title,
		Category:    ch.Category.Alias,
		Difficulty:  string(ch.Difficulty),
		Points:      ch.Points,
		SolvedCount: ch.SolvedCount,
		Completed:   completed,
	}
}

func MapModelToDetailResp(ch models.Challenge, completed bool) dto.ChallengeDetailResp {
	mini := make([]dto.ResourceMini, 0, len(ch.Resources))
	for _, r := range ch.Resources {
		mini = append(mini, dto.ResourceMini{ID: r.ID, FileName: r.FileName})
	}
	return dto.ChallengeDetailResp{
		ID:          ch.ID,
		Title:       ch.Title,
		Category:    ch.Category.Alias,
		EventID:     ch.EventID,
		Author:      ch.Author,
		Description: ch.Description,
		Difficulty:  string(ch.Difficulty),
		Points:      ch.Points,
		SolvedCount: ch.SolvedCount,
		HintCount:   len(ch.Hints),
		Resources:   mini,
		Completed:   completed,
	}
}
