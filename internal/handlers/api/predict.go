package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsverify/internal/prediction"
	"newsverify/internal/validation"
)

// Predictor classifies a headline.
type Predictor interface {
	Predict(ctx context.Context, text string) (*prediction.Result, error)
}

// predictRequest uses a pointer so an absent or null text can be told apart
// from an empty string.
type predictRequest struct {
	Text *string `json:"text"`
}

// PredictHandler serves POST /api/predict.
type PredictHandler struct {
	svc           Predictor
	maxTextLength int
	log           *zap.Logger
}

// NewPredictHandler creates a new predict handler. maxTextLength is in runes,
// 0 means unlimited.
func NewPredictHandler(svc Predictor, maxTextLength int, log *zap.Logger) *PredictHandler {
	return &PredictHandler{svc: svc, maxTextLength: maxTextLength, log: log}
}

// Predict returns the bare prediction result, without the status envelope.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	var req predictRequest
	if err := c.Bind().JSON(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Text == nil {
		return jsonError(c, fiber.StatusBadRequest, "text is required")
	}

	if err := validation.ValidateText(*req.Text, h.maxTextLength); err != nil {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, validation.TooLongMessage(h.maxTextLength))
	}

	result, err := h.svc.Predict(c.Context(), *req.Text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return jsonError(c, fiber.StatusServiceUnavailable, "request cancelled")
		}
		h.log.Error("prediction failed",
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.Error(err),
		)
		return jsonError(c, fiber.StatusInternalServerError, "prediction failed")
	}

	return c.JSON(result)
}
