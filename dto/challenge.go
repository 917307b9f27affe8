// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	Title       string   `json:"title"`
	CategoryID  uint32   `json:"category_id"`
	EventID     uint32   `json:"event_id"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Flag        string   `json:"flag"`
	Difficulty  string   `json:"difficulty"` // easy / medium / hard
	Points      uint     `json:"points"`
	Hints       []string `json:"hints"`
}

// Normalize 清洗输入并补默认值
func (r *CreateChallengeReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = strings.TrimSpace(r.Description)
	r.Flag = strings.TrimSpace(r.Flag)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))

	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
}

type UpdateChallengeReq struct {
	Title       *string `json:"title"`
	CategoryID  *uint32 `json:"category_id"`
	State       *string `json:"state"` // visible/hidden
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty"`
	Flag        *string `json:"flag"`
	Points      *uint   `json:"points"`
}

type SubmitFlagReq struct {
	Flag      string `json:"flag"`
	TimeSpent int    `json:"time_spent"`
	// 客户端可能随表单带上自己统计的提示数，但罚分一律以服务端揭示记录为准
	HintsUsed int `json:"hints_used"`
}

// ========== 响应 DTO ==========

type ChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Points      uint   `json:"points"`
	SolvedCount uint   `json:"solved_count"`
	Completed   bool   `json:"completed"`
}

type ResourceMini struct {
	ID       uint64 `json:"id"`
	FileName string `json:"file_name"`
}

type ChallengeDetailResp struct {
	ID          uint32         `json:"id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	EventID     uint32         `json:"event_id"`
	Author      string         `json:"author"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"`
	Points      uint           `json:"points"`
	SolvedCount uint           `json:"solved_count"`
	HintCount   int            `json:"hint_count"`
	Resources   []ResourceMini `json:"resources"`
	Completed   bool           `json:"completed"`
}

// ====== Admin 专用响应 DTO ======

type AdminChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	State       string `json:"state"`
	Points      uint   `json:"points"`
	SolvedCount uint   `json:"solved_count"`
	UpdatedAt   string `json:"updated_at"`
}

type AdminChallengeDetailResp struct {
	ID          uint32         `json:"id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	EventID     uint32         `json:"event_id"`
	Author      string         `json:"author"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"`
	State       string         `json:"state"`
	Flag        string         `json:"flag"`
	Points      uint           `json:"points"`
	SolvedCount uint           `json:"solved_count"`
	Hints       []string       `json:"hints"`
	Resources   []ResourceMini `json:"resources"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}
