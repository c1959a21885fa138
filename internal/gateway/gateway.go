package gateway

import (
	"context"

	"github.com/fadilmartias/ielts-scorer/internal/apperror"
	"github.com/fadilmartias/ielts-scorer/internal/dto"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Scorer is the scoring engine as seen from the gateway. Implementations
// must be safe for concurrent use.
type Scorer interface {
	ScoreEssay(ctx context.Context, req dto.ScoreEssayRequest) (dto.ScoringResult, error)
}

// Gateway validates scoring requests and forwards the valid ones to a
// Scorer. It holds no per-request state.
type Gateway struct {
	scorer   Scorer
	validate *validator.Validate
}

func NewGateway(scorer Scorer) *Gateway {
	return &Gateway{
		scorer:   scorer,
		validate: newValidator(),
	}
}

// Validate applies the request schema. It returns nil or a
// VALIDATION_ERROR *apperror.AppError whose Details are
// []dto.ValidationDetail.
func (g *Gateway) Validate(req dto.ScoreEssayRequest) error {
	if err := g.validate.Struct(req); err != nil {
		return apperror.Validation("request validation failed", validationDetails(err)).
			WithOperation("scoreEssay")
	}
	return nil
}

// ScoreEssay returns the engine result untouched, or an *apperror.AppError:
// VALIDATION_ERROR when the request is rejected (the engine is not called),
// UPSTREAM_ERROR for any failure the engine reports.
func (g *Gateway) ScoreEssay(ctx context.Context, req dto.ScoreEssayRequest) (dto.ScoringResult, error) {
	if req.TaskType == "" {
		req.TaskType = dto.DefaultTaskType
	}
	if err := g.Validate(req); err != nil {
		return nil, err
	}

	result, err := g.scorer.ScoreEssay(ctx, req)
	if err != nil {
		zap.L().Error("scoring engine failed", zap.Error(err))
		return nil, apperror.Upstream(err).WithOperation("scoreEssay")
	}
	return result, nil
}
