package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/ielts-scorer/internal/apperror"
	"github.com/fadilmartias/ielts-scorer/internal/dto"
	"github.com/fadilmartias/ielts-scorer/internal/gateway"
	"github.com/fadilmartias/ielts-scorer/internal/middleware"
	"github.com/fadilmartias/ielts-scorer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxEssayFileSize = 5 * 1024 * 1024

type ScoreHandler struct {
	gw         *gateway.Gateway
	rateLimit  int
	rateWindow time.Duration
	// extract reads essay text from an uploaded file on disk.
	extract func(path string) (string, error)
}

func NewScoreHandler(gw *gateway.Gateway, rateLimit int, rateWindow time.Duration) *ScoreHandler {
	return &ScoreHandler{
		gw:         gw,
		rateLimit:  rateLimit,
		rateWindow: rateWindow,
		extract:    util.ExtractEssayText,
	}
}

func (h *ScoreHandler) RegisterRoutes(app *fiber.App) {
	limit := middleware.RateLimiter(h.rateLimit, h.rateWindow)
	ai := app.Group("/ai")
	ai.Post("/scoreEssay", limit, h.ScoreEssay)
	ai.Post("/scoreEssay/upload", limit, h.ScoreEssayUpload)
}

func (h *ScoreHandler) ScoreEssay(c *fiber.Ctx) error {
	req := dto.NewScoreEssayRequest()
	if err := c.BodyParser(&req); err != nil {
		return writeGatewayError(c, apperror.Validation("invalid request body", []dto.ValidationDetail{{
			Loc:  []string{"body"},
			Msg:  fmt.Sprintf("JSON decode error: %v", err),
			Type: "json_invalid",
		}}))
	}

	if details := nullFields(c.Body(), "question", "essay", "task_type"); len(details) > 0 {
		return writeGatewayError(c, apperror.Validation("invalid request body", details))
	}

	result, err := h.gw.ScoreEssay(c.UserContext(), req)
	if err != nil {
		return writeGatewayError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// nullFields reports each field sent as an explicit JSON null. Decoding
// null into a string leaves the default in place, so it is caught here.
func nullFields(body []byte, fields ...string) []dto.ValidationDetail {
	var details []dto.ValidationDetail
	for _, field := range fields {
		if v := gjson.GetBytes(body, field); v.Exists() && v.Type == gjson.Null {
			details = append(details, dto.ValidationDetail{
				Loc:  []string{"body", field},
				Msg:  "Input should be a valid string",
				Type: "string_type",
			})
		}
	}
	return details
}

// ScoreEssayUpload scores an essay submitted as a PDF file.
func (h *ScoreHandler) ScoreEssayUpload(c *fiber.Ctx) error {
	req := dto.NewScoreEssayRequest()
	req.Question = c.FormValue("question")
	if taskType := c.FormValue("task_type"); taskType != "" {
		req.TaskType = taskType
	}

	essay, err := h.processFile(c, "essay")
	if err != nil {
		return writeGatewayError(c, err)
	}
	req.Essay = essay

	result, err := h.gw.ScoreEssay(c.UserContext(), req)
	if err != nil {
		return writeGatewayError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ScoreHandler) processFile(c *fiber.Ctx, fieldName string) (string, error) {
	fileError := func(kind, msg string) error {
		return apperror.Validation(msg, []dto.ValidationDetail{{
			Loc:  []string{"body", fieldName},
			Msg:  msg,
			Type: kind,
		}})
	}

	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", fileError("missing", fmt.Sprintf("%s file is required", fieldName))
	}
	if file.Size > maxEssayFileSize {
		return "", fileError("file_too_large", fmt.Sprintf("%s file size is too large (max 5MB)", fieldName))
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return "", fileError("unsupported_file_type", fmt.Sprintf("unsupported %s file type %q", fieldName, ext))
	}

	tmpDir, err := os.MkdirTemp("", "essay-upload-*")
	if err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	savePath := filepath.Join(tmpDir, filepath.Base(file.Filename))
	if err := c.SaveFile(file, savePath); err != nil {
		return "", fmt.Errorf("cannot save %s file: %w", fieldName, err)
	}

	content, err := h.extract(savePath)
	if err != nil {
		zap.L().Warn("essay extraction failed", zap.String("file", file.Filename), zap.Error(err))
		return "", fileError("value_error", fmt.Sprintf("failed to extract %s text: %v", fieldName, err))
	}
	return content, nil
}

// writeGatewayError maps a gateway failure to its HTTP response.
func writeGatewayError(c *fiber.Ctx, err error) error {
	appErr, ok := apperror.As(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.UpstreamErrorResponse{Detail: err.Error()})
	}

	switch appErr.Code {
	case apperror.ErrCodeValidation:
		details, _ := appErr.Details.([]dto.ValidationDetail)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{Detail: details})
	default:
		detail := appErr.Message
		if appErr.Cause != nil {
			detail = appErr.Cause.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.UpstreamErrorResponse{Detail: detail})
	}
}
