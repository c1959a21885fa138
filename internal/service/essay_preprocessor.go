package service

import (
	"regexp"
	"strings"
)

var (
	whitespacePattern  = regexp.MustCompile(`\s+`)
	punctuationPattern = regexp.MustCompile(`\s([.,;:!?])`)
	sentenceSplit      = regexp.MustCompile(`[.,]`)
)

// questionWords are instruction phrases stripped out when guessing a topic.
var questionWords = []string{
	"discuss", "to what extent", "advantages", "disadvantages",
	"opinion", "view", "agree", "disagree",
}

const generalTopic = "general"

// EssayPreprocessor normalises essay text before it is embedded or shown
// to the examiner. It holds no state and is safe for concurrent use.
type EssayPreprocessor struct{}

func NewEssayPreprocessor() *EssayPreprocessor {
	return &EssayPreprocessor{}
}

// CleanEssay collapses whitespace runs to a single space and removes the
// space before punctuation.
func (p *EssayPreprocessor) CleanEssay(essay string) string {
	if essay == "" {
		return ""
	}
	cleaned := whitespacePattern.ReplaceAllString(essay, " ")
	cleaned = punctuationPattern.ReplaceAllString(cleaned, "$1")
	return strings.TrimSpace(cleaned)
}

func (p *EssayPreprocessor) CountWords(text string) int {
	return len(strings.Fields(text))
}

// ExtractMainTopic reduces a task question to its first clause with the
// instruction phrases removed.
func (p *EssayPreprocessor) ExtractMainTopic(question string) string {
	if strings.TrimSpace(question) == "" {
		return generalTopic
	}

	lowercase := strings.ToLower(question)
	for _, word := range questionWords {
		lowercase = strings.ReplaceAll(lowercase, word, "")
	}

	first := strings.TrimSpace(sentenceSplit.Split(lowercase, 2)[0])
	if first == "" {
		return generalTopic
	}
	return first
}
