package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEssayPreprocessor_CleanEssay(t *testing.T) {
	p := NewEssayPreprocessor()
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"One  two\t\tthree\n\nfour", "One two three four"},
		{"Firstly , cities grow . Secondly ; they change !", "Firstly, cities grow. Secondly; they change!"},
		{"Why ? Because : reasons", "Why? Because: reasons"},
		{"  padded essay  ", "padded essay"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.CleanEssay(tt.in), "CleanEssay(%q)", tt.in)
	}
}

func TestEssayPreprocessor_CountWords(t *testing.T) {
	p := NewEssayPreprocessor()
	assert.Equal(t, 0, p.CountWords(""))
	assert.Equal(t, 0, p.CountWords(" \n\t"))
	assert.Equal(t, 4, p.CountWords("one two\nthree\tfour"))
	assert.Equal(t, 3, p.CountWords("  leading and trailing  "))
}

func TestEssayPreprocessor_ExtractMainTopic(t *testing.T) {
	p := NewEssayPreprocessor()
	tests := []struct {
		in, want string
	}{
		{"", "general"},
		{"Discuss.", "general"},
		{"Some people think that technology is good. Discuss both views.", "some people think that technology is good"},
		{"Working from home, in my opinion, is better", "working from home"},
		{"Give your opinion on public transport", "give your  on public transport"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.ExtractMainTopic(tt.in), "ExtractMainTopic(%q)", tt.in)
	}
}
