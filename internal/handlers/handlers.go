// Package handlers serves the classic server-rendered form pages.
package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"newsverify/internal/config"
	"newsverify/internal/model"
	"newsverify/internal/prediction"
	"newsverify/internal/validation"
)

// NewsField is the form field the classic page posts.
const NewsField = "news"

// Predictor classifies a headline.
type Predictor interface {
	Predict(ctx context.Context, text string) (*prediction.Result, error)
	Mode() model.Mode
}

// ClassicHandler renders the form at /old and its result page.
type ClassicHandler struct {
	svc Predictor
	cfg *config.Config
}

// NewClassicHandler creates a new classic form handler.
func NewClassicHandler(svc Predictor, cfg *config.Config) *ClassicHandler {
	return &ClassicHandler{svc: svc, cfg: cfg}
}

// Index renders the submission form.
func (h *ClassicHandler) Index(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"Title":         "Verify a headline",
		"Mode":          string(h.svc.Mode()),
		"Scale":         prediction.Scale(),
		"MaxTextLength": h.cfg.MaxTextLength,
	}, h.cfg))
}

// PredictForm classifies the posted headline and renders the result page.
func (h *ClassicHandler) PredictForm(c fiber.Ctx) error {
	news, ok := formValue(c, NewsField)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "news is required")
	}

	if err := validation.ValidateText(news, h.cfg.MaxTextLength); err != nil {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, validation.TooLongMessage(h.cfg.MaxTextLength))
	}

	result, err := h.svc.Predict(c.Context(), news)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "request cancelled")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Something went wrong, please retry")
	}

	return c.Render("result", MergeBranding(fiber.Map{
		"Title":      "Prediction",
		"News":       news,
		"Summary":    prediction.Summary(result.Prediction, result.BinaryPrediction),
		"Display":    prediction.Describe(result.Prediction, result.BinaryPrediction),
		"Confidence": prediction.Confidence(result.Scores),
		"Rows":       result.Rows(),
		"Result":     result,
		"Mode":       string(h.svc.Mode()),
	}, h.cfg))
}

// PredictPage sends bare GETs on /predict back to the form.
func (h *ClassicHandler) PredictPage(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusSeeOther).To("/old")
}

// formValue distinguishes an absent field from an empty one for both
// urlencoded and multipart bodies.
func formValue(c fiber.Ctx, key string) (string, bool) {
	args := c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	if form, err := c.MultipartForm(); err == nil {
		if values := form.Value[key]; len(values) > 0 {
			return values[0], true
		}
	}
	return "", false
}
