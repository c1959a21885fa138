package handler

import (
	"github.com/fadilmartias/ielts-scorer/internal/dto"
	"github.com/fadilmartias/ielts-scorer/internal/service"
	"github.com/fadilmartias/ielts-scorer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type MetricsHandler struct {
	metrics *service.EvaluationMetrics
}

func NewMetricsHandler(metrics *service.EvaluationMetrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

func (h *MetricsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/ai/metrics", h.Get)
	app.Delete("/ai/metrics", h.Reset)
}

func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation metrics",
		Data: dto.EvaluationMetricsDTO{
			AverageScoresByBand: h.metrics.AverageScoresByBand(),
			BandDistribution:    h.metrics.BandDistribution(),
		},
	})
}

func (h *MetricsHandler) Reset(c *fiber.Ctx) error {
	h.metrics.Reset()
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success reset evaluation metrics",
	})
}
