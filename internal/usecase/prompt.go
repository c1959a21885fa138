package usecase

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/ielts-scorer/internal/model"
)

const replySchema = `{
  "taskResponse": [score 1-9],
  "coherenceCohesion": [score 1-9],
  "lexicalResource": [score 1-9],
  "grammaticalRangeAccuracy": [score 1-9],
  "overallBand": [score 1-9],
  "examinerFeedback": "[detailed feedback]",
  "suggestions": {
    "taskResponse": "[specific suggestions]",
    "coherenceCohesion": "[specific suggestions]",
    "lexicalResource": "[specific suggestions]",
    "grammaticalRangeAccuracy": "[specific suggestions]"
  }
}`

// BuildScoringPrompt renders the examiner prompt for one essay, using the
// retrieved reference essays as calibration examples.
func BuildScoringPrompt(taskType, question, essay string, examples []model.Essay) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an experienced IELTS examiner. Evaluate this essay based on IELTS Writing Task %s criteria.\n\n", taskType)
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	fmt.Fprintf(&b, "Essay to evaluate:\n%s\n\n", essay)

	b.WriteString("Scoring Criteria:\n")
	b.WriteString("1. Task Response (TR): Address all parts, develop position, support ideas\n")
	b.WriteString("2. Coherence & Cohesion (CC): Logical organization, paragraphing, linking devices\n")
	b.WriteString("3. Lexical Resource (LR): Vocabulary range, accuracy, collocations\n")
	b.WriteString("4. Grammatical Range & Accuracy (GRA): Sentence structures, grammar, punctuation\n\n")

	if len(examples) > 0 {
		b.WriteString("Example Essays for Reference:\n")
		for _, e := range examples {
			if strings.TrimSpace(e.Content) == "" {
				continue
			}
			fmt.Fprintf(&b, " Example ---\n%s\n\n", e.Content)
		}
	}

	b.WriteString("Provide evaluation in this exact JSON format:\n")
	b.WriteString(replySchema)
	b.WriteString("\n")

	return b.String()
}

// BuildDocumentContent renders a graded dataset essay as the text that is
// embedded and later shown to the examiner as an example.
func BuildDocumentContent(question, essay, examinerComment, tr, cc, lr, gra, overall string) string {
	return fmt.Sprintf("IELTS Writing Task 2 Essay (Band %s)\n\nQuestion:\n%s\n\nEssay:\n%s\n\n"+
		"Examiner Comments:\n%s\n\nScores:\n- Task Response: %s\n"+
		"- Coherence & Cohesion: %s\n- Lexical Resource: %s\n"+
		"- Grammatical Range & Accuracy: %s\n- Overall: %s",
		overall, question, essay, examinerComment, tr, cc, lr, gra, overall)
}
