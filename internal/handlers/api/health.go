package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"newsverify/internal/prediction"
)

const storePingTimeout = 2 * time.Second

// Store statuses reported by the health endpoint.
const (
	StoreDisabled    = "disabled"
	StoreOK          = "ok"
	StoreUnreachable = "unreachable"
)

// ModelDescriber exposes the loaded model.
type ModelDescriber interface {
	ModelInfo() prediction.ModelInfo
}

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Model          prediction.ModelInfo `json:"model"`
	FallbackReason string               `json:"fallback_reason,omitempty"`
	Store          string               `json:"store"`
}

// HealthHandler reports the startup mode and store reachability.
type HealthHandler struct {
	model          ModelDescriber
	store          Pinger
	fallbackReason string
}

// NewHealthHandler creates a new health handler. store may be nil when
// outcome persistence is disabled.
func NewHealthHandler(model ModelDescriber, store Pinger, fallbackReason error) *HealthHandler {
	h := &HealthHandler{model: model, store: store}
	if fallbackReason != nil {
		h.fallbackReason = fallbackReason.Error()
	}
	return h
}

// Health always answers 200 while a model is loaded; an unreachable store
// only degrades metrics, not predictions.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	resp := HealthResponse{
		Model:          h.model.ModelInfo(),
		FallbackReason: h.fallbackReason,
		Store:          StoreDisabled,
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Context(), storePingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			resp.Store = StoreUnreachable
		} else {
			resp.Store = StoreOK
		}
	}

	return jsonSuccess(c, resp)
}
