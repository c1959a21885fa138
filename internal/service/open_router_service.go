package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/ielts-scorer/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const examinerSystemPrompt = "You are an experienced IELTS examiner. Reply with JSON only."

type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return NewOpenRouterServiceWithClient(cfg.APIKey, cfg.Model, cfg.BaseURL, resty.New())
}

// NewOpenRouterServiceWithClient builds the service on top of an existing
// resty client, pointed at baseURL.
func NewOpenRouterServiceWithClient(apiKey, model, baseURL string, client *resty.Client) *OpenRouterService {
	client.
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(90*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	return &OpenRouterService{
		APIKey: apiKey,
		Model:  model,
		client: client,
	}
}

func (s *OpenRouterService) Name() string { return config.ProviderOpenRouter }

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": examinerSystemPrompt},
				{"role": "user", "content": prompt},
			},
			"temperature":     0.1,
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = body
		}
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	zap.L().Debug("openrouter completion received", zap.String("model", s.Model), zap.Int("length", len(text)))
	return text, nil
}
