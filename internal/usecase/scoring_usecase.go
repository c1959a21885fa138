package usecase

import (
	"context"
	"fmt"

	"github.com/fadilmartias/ielts-scorer/internal/dto"
	"github.com/fadilmartias/ielts-scorer/internal/model"
	"github.com/fadilmartias/ielts-scorer/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// EssayStore is the vector store of graded reference essays.
type EssayStore interface {
	SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int, threshold float64) ([]model.Essay, error)
	CreateEssays(ctx context.Context, essays []model.Essay) error
}

type ScoringOptions struct {
	TopK                int
	SimilarityThreshold float64
}

func DefaultScoringOptions() ScoringOptions {
	return ScoringOptions{TopK: 5, SimilarityThreshold: 0.7}
}

// ScoringUsecase is the IELTS examiner: it retrieves graded essays similar
// to the submission, asks the LLM for band scores and parses the verdict.
type ScoringUsecase struct {
	store        EssayStore
	preprocessor *service.EssayPreprocessor
	embedder     service.EmbeddingServiceInterface
	llm          service.LLMServiceInterface
	metrics      *service.EvaluationMetrics
	opts         ScoringOptions
}

func NewScoringUsecase(
	store EssayStore,
	preprocessor *service.EssayPreprocessor,
	embedder service.EmbeddingServiceInterface,
	llm service.LLMServiceInterface,
	metrics *service.EvaluationMetrics,
	opts ScoringOptions,
) *ScoringUsecase {
	if preprocessor == nil {
		preprocessor = service.NewEssayPreprocessor()
	}
	if metrics == nil {
		metrics = service.NewEvaluationMetrics()
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultScoringOptions().TopK
	}
	return &ScoringUsecase{
		store:        store,
		preprocessor: preprocessor,
		embedder:     embedder,
		llm:          llm,
		metrics:      metrics,
		opts:         opts,
	}
}

func (uc *ScoringUsecase) Metrics() *service.EvaluationMetrics {
	return uc.metrics
}

// ScoreEssay satisfies gateway.Scorer.
func (uc *ScoringUsecase) ScoreEssay(ctx context.Context, req dto.ScoreEssayRequest) (dto.ScoringResult, error) {
	return uc.Evaluate(ctx, req)
}

func (uc *ScoringUsecase) Evaluate(ctx context.Context, req dto.ScoreEssayRequest) (*model.EssayEvaluation, error) {
	cleanedEssay := uc.preprocessor.CleanEssay(req.Essay)
	searchQuery := req.Question + "\n" + cleanedEssay

	queryEmb, err := uc.embedder.GenerateEmbedding(ctx, searchQuery)
	if err != nil {
		return nil, fmt.Errorf("embed essay: %w", err)
	}

	similar, err := uc.store.SearchSimilar(ctx, pgvector.NewVector(queryEmb), uc.opts.TopK, uc.opts.SimilarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("retrieve similar essays: %w", err)
	}
	zap.L().Info("retrieved similar essays",
		zap.Int("count", len(similar)),
		zap.String("task_type", req.TaskType))

	prompt := BuildScoringPrompt(req.TaskType, req.Question, cleanedEssay, similar)
	zap.L().Debug("examiner prompt built", zap.Int("length", len(prompt)))

	reply, err := uc.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s evaluation: %w", uc.llm.Name(), err)
	}
	zap.L().Debug("examiner reply received", zap.String("provider", uc.llm.Name()), zap.String("reply", reply))

	evaluation := ParseEvaluation(reply)
	uc.trackEvaluationMetrics(evaluation)

	return evaluation, nil
}

func (uc *ScoringUsecase) trackEvaluationMetrics(e *model.EssayEvaluation) {
	band := service.FormatBand(e.OverallBand)
	uc.metrics.TrackEvaluation(band, "taskResponse", e.TaskResponse)
	uc.metrics.TrackEvaluation(band, "coherenceCohesion", e.CoherenceCohesion)
}
