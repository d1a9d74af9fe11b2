package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"newsverify/internal/model"
	"newsverify/internal/prediction"
	"newsverify/internal/testutil"
	"newsverify/internal/textproc"
)

var (
	normalizerOnce sync.Once
	normalizer     *textproc.Normalizer
	normalizerErr  error
)

func fixtureService(t *testing.T) *prediction.Service {
	t.Helper()
	normalizerOnce.Do(func() {
		normalizer, normalizerErr = textproc.NewNormalizer()
	})
	require.NoError(t, normalizerErr)

	artifact, err := model.LoadSixClass(testutil.WriteSixClassBundle(t))
	require.NoError(t, err)
	svc, err := prediction.NewService(artifact, normalizer)
	require.NoError(t, err)
	return svc
}

type failingPredictor struct {
	err error
}

func (p failingPredictor) Predict(context.Context, string) (*prediction.Result, error) {
	return nil, p.err
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func newPredictApp(svc Predictor, maxLen int) *fiber.App {
	app := fiber.New()
	app.Post("/api/predict", NewPredictHandler(svc, maxLen, zap.NewNop()).Predict)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/predict", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestPredict(t *testing.T) {
	app := newPredictApp(fixtureService(t), 0)

	status, body := postJSON(t, app, `{"text":"Stocks rally after surprise rate cut"}`)
	require.Equal(t, fiber.StatusOK, status)

	var result prediction.Result
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, model.LabelTrue, result.Prediction)
	assert.Equal(t, model.LabelReal, result.BinaryPrediction)
	assert.Len(t, result.Scores, 6)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.NotContains(t, raw, "status", "predict responses are not enveloped")
}

func TestPredict_EmptyText(t *testing.T) {
	app := newPredictApp(fixtureService(t), 0)

	status, body := postJSON(t, app, `{"text":""}`)
	require.Equal(t, fiber.StatusOK, status)

	var result prediction.Result
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, model.LabelHalfTrue, result.Prediction)
	assert.Contains(t, []string{model.LabelFake, model.LabelReal}, result.BinaryPrediction)
}

func TestPredict_BadRequests(t *testing.T) {
	app := newPredictApp(fixtureService(t), 10)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"malformed json", `{"text":`, fiber.StatusBadRequest, "invalid request body"},
		{"empty body", ``, fiber.StatusBadRequest, "invalid request body"},
		{"wrong type", `{"text":42}`, fiber.StatusBadRequest, "invalid request body"},
		{"missing text", `{"headline":"Senate votes"}`, fiber.StatusBadRequest, "text is required"},
		{"null text", `{"text":null}`, fiber.StatusBadRequest, "text is required"},
		{"too long", `{"text":"Senate votes on the budget"}`, fiber.StatusRequestEntityTooLarge, "text must be at most 10 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postJSON(t, app, tt.body)
			assert.Equal(t, tt.status, status)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, "error", resp["status"])
			assert.Equal(t, tt.message, resp["error"])
		})
	}
}

func TestPredict_PipelineError(t *testing.T) {
	app := newPredictApp(failingPredictor{err: model.ErrDimensionMismatch}, 0)

	status, body := postJSON(t, app, `{"text":"Senate votes"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"status":"error","error":"prediction failed"}`, string(body))
}

func TestPredict_Cancelled(t *testing.T) {
	app := newPredictApp(failingPredictor{err: context.Canceled}, 0)

	status, _ := postJSON(t, app, `{"text":"Senate votes"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestHealth(t *testing.T) {
	svc := fixtureService(t)

	tests := []struct {
		name     string
		store    Pinger
		fallback error
		want     string
	}{
		{"no store", nil, nil, "disabled"},
		{"reachable store", stubPinger{}, nil, "ok"},
		{"unreachable store", stubPinger{err: errors.New("dial tcp: refused")}, nil, "unreachable"},
		{"fallback reason", nil, model.ErrMissingLabelEncoder, "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/api/health", NewHealthHandler(svc, tt.store, tt.fallback).Health)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			var env struct {
				Status string         `json:"status"`
				Data   HealthResponse `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
			assert.Equal(t, "ok", env.Status)
			assert.Equal(t, tt.want, env.Data.Store)
			assert.Equal(t, model.ModeSixClass, env.Data.Model.Mode)
			assert.Equal(t, "liar-fixture", env.Data.Model.Name)
			if tt.fallback != nil {
				assert.Equal(t, tt.fallback.Error(), env.Data.FallbackReason)
			} else {
				assert.Empty(t, env.Data.FallbackReason)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	app := fiber.New()
	app.Get("/api/categories", Categories)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/categories", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Status string               `json:"status"`
		Data   []prediction.Display `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, len(model.Categories))
	for i, d := range env.Data {
		assert.Equal(t, model.Categories[i], d.Category)
	}
	assert.Equal(t, "PANTS ON FIRE!", env.Data[0].Label)
}

func TestNotFound(t *testing.T) {
	app := fiber.New()
	app.Use("/api", NotFound)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"error","error":"not found"}`, string(body))
}
