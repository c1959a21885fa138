package model

// DefaultBandScore is used for any criterion the examiner reply leaves out.
const DefaultBandScore = 5.0

const (
	DefaultFeedback   = "No feedback provided"
	DefaultSuggestion = "Please check your essay format and try again."
)

// EssayEvaluation is the examiner verdict for one essay.
type EssayEvaluation struct {
	TaskResponse             float64           `json:"taskResponse"`
	CoherenceCohesion        float64           `json:"coherenceCohesion"`
	LexicalResource          float64           `json:"lexicalResource"`
	GrammaticalRangeAccuracy float64           `json:"grammaticalRangeAccuracy"`
	OverallBand              float64           `json:"overallBand"`
	ExaminerFeedback         string            `json:"examinerFeedback"`
	Suggestions              map[string]string `json:"suggestions"`
}

// FallbackEvaluation is returned when the examiner reply cannot be read at all.
func FallbackEvaluation(reason string) *EssayEvaluation {
	return &EssayEvaluation{
		TaskResponse:             DefaultBandScore,
		CoherenceCohesion:        DefaultBandScore,
		LexicalResource:          DefaultBandScore,
		GrammaticalRangeAccuracy: DefaultBandScore,
		OverallBand:              DefaultBandScore,
		ExaminerFeedback:         "Could not evaluate properly. " + reason,
		Suggestions:              map[string]string{"general": DefaultSuggestion},
	}
}
