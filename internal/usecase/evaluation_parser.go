package usecase

import (
	"strconv"
	"strings"

	"github.com/fadilmartias/ielts-scorer/internal/model"
	"github.com/tidwall/gjson"
)

// ParseEvaluation reads the examiner reply. Missing or malformed scores
// fall back to model.DefaultBandScore; a reply that holds no JSON object at
// all yields model.FallbackEvaluation.
func ParseEvaluation(reply string) *model.EssayEvaluation {
	payload := strings.TrimSpace(reply)
	if i := strings.Index(payload, "{"); i > 0 {
		payload = payload[i:]
	}
	if j := strings.LastIndex(payload, "}"); j >= 0 {
		payload = payload[:j+1]
	}

	if !gjson.Valid(payload) {
		return model.FallbackEvaluation("invalid JSON in examiner reply")
	}
	root := gjson.Parse(payload)
	if !root.IsObject() {
		return model.FallbackEvaluation("examiner reply is not a JSON object")
	}

	feedback := model.DefaultFeedback
	if f := root.Get("examinerFeedback"); f.Exists() && f.Type != gjson.Null {
		feedback = f.String()
	}

	return &model.EssayEvaluation{
		TaskResponse:             bandScore(root, "taskResponse"),
		CoherenceCohesion:        bandScore(root, "coherenceCohesion"),
		LexicalResource:          bandScore(root, "lexicalResource"),
		GrammaticalRangeAccuracy: bandScore(root, "grammaticalRangeAccuracy"),
		OverallBand:              bandScore(root, "overallBand"),
		ExaminerFeedback:         feedback,
		Suggestions:              suggestions(root.Get("suggestions")),
	}
}

func bandScore(root gjson.Result, key string) float64 {
	v := root.Get(key)
	switch v.Type {
	case gjson.Number:
		return v.Float()
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return model.DefaultBandScore
		}
		return f
	default:
		return model.DefaultBandScore
	}
}

func suggestions(raw gjson.Result) map[string]string {
	out := make(map[string]string)
	if raw.IsObject() {
		raw.ForEach(func(key, value gjson.Result) bool {
			if key.String() != "" && value.Exists() && value.Type != gjson.Null {
				out[key.String()] = value.String()
			}
			return true
		})
	}
	if len(out) == 0 {
		out["general"] = model.DefaultSuggestion
	}
	return out
}
