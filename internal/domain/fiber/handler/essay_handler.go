package handler

import (
	"context"
	"errors"

	"github.com/fadilmartias/ielts-scorer/internal/dto"
	"github.com/fadilmartias/ielts-scorer/internal/model"
	"github.com/fadilmartias/ielts-scorer/internal/response"
	"github.com/fadilmartias/ielts-scorer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPageSize = 100

// EssayReader exposes the reference essays in the vector store.
type EssayReader interface {
	ListEssays(ctx context.Context, page, pageSize int) ([]model.Essay, int64, error)
	FindEssayByID(ctx context.Context, id string) (*model.Essay, error)
}

type EssayHandler struct {
	essays EssayReader
}

func NewEssayHandler(essays EssayReader) *EssayHandler {
	return &EssayHandler{essays: essays}
}

func (h *EssayHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/ai/essays", h.List)
	app.Get("/ai/essays/:id", h.Get)
}

func (h *EssayHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = 20
	}

	essays, total, err := h.essays.ListEssays(c.UserContext(), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list reference essays",
		}, err)
	}

	data := make([]dto.EssayDTO, 0, len(essays))
	for _, e := range essays {
		data = append(data, toEssayDTO(e))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list reference essays",
		Data:       data,
		Pagination: response.NewPagination(page, pageSize, total, len(data)),
	})
}

func (h *EssayHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid essay id",
		}, err)
	}

	essay, err := h.essays.FindEssayByID(c.UserContext(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "essay not found",
		})
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get reference essay",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get reference essay",
		Data:    toEssayDTO(*essay),
	})
}

func toEssayDTO(e model.Essay) dto.EssayDTO {
	return dto.EssayDTO{
		ID:         e.ID,
		TaskType:   e.TaskType,
		Question:   e.Question,
		Topic:      e.Topic,
		Band:       e.Band,
		WordCount:  e.WordCount,
		SourceLine: e.SourceLine,
		CreatedAt:  e.CreatedAt,
	}
}
