package usecase

import (
	"testing"

	"github.com/fadilmartias/ielts-scorer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluation_FullReply(t *testing.T) {
	reply := `{
		"taskResponse": 7,
		"coherenceCohesion": 6.5,
		"lexicalResource": 7,
		"grammaticalRangeAccuracy": 6,
		"overallBand": 6.5,
		"examinerFeedback": "Well organised answer.",
		"suggestions": {"lexicalResource": "Avoid repeating 'important'."}
	}`

	got := ParseEvaluation(reply)

	assert.Equal(t, &model.EssayEvaluation{
		TaskResponse:             7,
		CoherenceCohesion:        6.5,
		LexicalResource:          7,
		GrammaticalRangeAccuracy: 6,
		OverallBand:              6.5,
		ExaminerFeedback:         "Well organised answer.",
		Suggestions:              map[string]string{"lexicalResource": "Avoid repeating 'important'."},
	}, got)
}

func TestParseEvaluation_TextAroundObject(t *testing.T) {
	reply := "Here is my evaluation:\n```json\n{\"overallBand\": 8, \"taskResponse\": 8}\n```"

	got := ParseEvaluation(reply)

	assert.Equal(t, 8.0, got.OverallBand)
	assert.Equal(t, 8.0, got.TaskResponse)
	assert.Equal(t, model.DefaultFeedback, got.ExaminerFeedback)
}

func TestParseEvaluation_ScoreCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"number", `6.5`, 6.5},
		{"numeric string", `"7"`, 7},
		{"padded numeric string", `" 5.5 "`, 5.5},
		{"non numeric string", `"seven"`, model.DefaultBandScore},
		{"null", `null`, model.DefaultBandScore},
		{"bool", `true`, model.DefaultBandScore},
		{"array", `[7]`, model.DefaultBandScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEvaluation(`{"lexicalResource": ` + tt.value + `}`)
			assert.Equal(t, tt.want, got.LexicalResource)
		})
	}
}

func TestParseEvaluation_MissingFieldsUseDefaults(t *testing.T) {
	got := ParseEvaluation(`{}`)

	assert.Equal(t, model.DefaultBandScore, got.TaskResponse)
	assert.Equal(t, model.DefaultBandScore, got.CoherenceCohesion)
	assert.Equal(t, model.DefaultBandScore, got.LexicalResource)
	assert.Equal(t, model.DefaultBandScore, got.GrammaticalRangeAccuracy)
	assert.Equal(t, model.DefaultBandScore, got.OverallBand)
	assert.Equal(t, model.DefaultFeedback, got.ExaminerFeedback)
	assert.Equal(t, map[string]string{"general": model.DefaultSuggestion}, got.Suggestions)
}

func TestParseEvaluation_NullFeedback(t *testing.T) {
	got := ParseEvaluation(`{"examinerFeedback": null}`)
	assert.Equal(t, model.DefaultFeedback, got.ExaminerFeedback)
}

func TestParseEvaluation_Suggestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"null entries dropped", `{"taskResponse": "Add examples.", "lexicalResource": null}`, map[string]string{"taskResponse": "Add examples."}},
		{"all null", `{"taskResponse": null}`, map[string]string{"general": model.DefaultSuggestion}},
		{"not an object", `"write more"`, map[string]string{"general": model.DefaultSuggestion}},
		{"numbers stringified", `{"overall": 7}`, map[string]string{"overall": "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEvaluation(`{"suggestions": ` + tt.raw + `}`)
			assert.Equal(t, tt.want, got.Suggestions)
		})
	}
}

func TestParseEvaluation_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty", ""},
		{"prose", "I cannot grade this essay."},
		{"truncated object", `{"overallBand": 7`},
		{"array", `[7, 6]`},
		{"bare number", `7`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEvaluation(tt.reply)
			require.NotNil(t, got)
			assert.Equal(t, model.DefaultBandScore, got.OverallBand)
			assert.Contains(t, got.ExaminerFeedback, "Could not evaluate properly.")
			assert.Equal(t, map[string]string{"general": model.DefaultSuggestion}, got.Suggestions)
		})
	}
}
