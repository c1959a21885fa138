package config

import (
	"strings"
	"sync"
	"time"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type ScoringConfig struct {
	// Provider selects the LLM that plays the examiner: "gemini" or "openrouter".
	// Embeddings always come from Gemini.
	Provider            string
	VectorStoreTable    string
	TopK                int
	SimilarityThreshold float64
	RateLimitMax        int
	RateLimitWindow     time.Duration
	LoaderBatchSize     int
	LoaderBatchDelay    time.Duration
}

var (
	scoringConfig *ScoringConfig
	scoringOnce   sync.Once
)

func LoadScoringConfig() *ScoringConfig {
	scoringOnce.Do(func() {
		scoringConfig = &ScoringConfig{
			Provider:            strings.ToLower(getEnv("SCORING_PROVIDER", ProviderGemini)),
			VectorStoreTable:    getEnv("VECTOR_STORE_TABLE", "ielts_essays"),
			TopK:                getEnvInt("SCORING_TOP_K", 5),
			SimilarityThreshold: getEnvFloat("SCORING_SIMILARITY_THRESHOLD", 0.7),
			RateLimitMax:        getEnvInt("SCORING_RATE_LIMIT", 50),
			RateLimitWindow:     getEnvDuration("SCORING_RATE_LIMIT_WINDOW", time.Minute),
			LoaderBatchSize:     getEnvInt("LOADER_BATCH_SIZE", 2),
			LoaderBatchDelay:    getEnvDuration("LOADER_BATCH_DELAY", 3*time.Second),
		}
	})
	return scoringConfig
}
