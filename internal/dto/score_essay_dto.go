package dto

// DefaultTaskType is the IELTS writing task assumed when task_type is omitted.
const DefaultTaskType = "2"

type ScoreEssayRequest struct {
	Question string `json:"question" form:"question" validate:"required,min=10,max=2000"`
	Essay    string `json:"essay" form:"essay" validate:"required,min=100,max=6000"`
	TaskType string `json:"task_type" form:"task_type"`
}

// NewScoreEssayRequest returns a request with defaults applied, ready to be
// decoded into.
func NewScoreEssayRequest() ScoreEssayRequest {
	return ScoreEssayRequest{TaskType: DefaultTaskType}
}

// ScoringResult is whatever the scoring engine returns. The gateway encodes
// it without looking inside.
type ScoringResult = any

// ValidationDetail describes one rejected field.
type ValidationDetail struct {
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Type  string   `json:"type"`
	Input any      `json:"input,omitempty"`
}

type ValidationErrorResponse struct {
	Detail []ValidationDetail `json:"detail"`
}

type UpstreamErrorResponse struct {
	Detail string `json:"detail"`
}
