package prediction_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

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

func sharedNormalizer(t *testing.T) *textproc.Normalizer {
	t.Helper()
	normalizerOnce.Do(func() {
		normalizer, normalizerErr = textproc.NewNormalizer()
	})
	require.NoError(t, normalizerErr)
	return normalizer
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordPrediction(label string, mode model.Mode, elapsed time.Duration) {
	m.Called(label, mode, elapsed)
}

func newSixClassService(t *testing.T, opts ...prediction.Option) *prediction.Service {
	t.Helper()
	artifact, err := model.LoadSixClass(testutil.WriteSixClassBundle(t))
	require.NoError(t, err)
	svc, err := prediction.NewService(artifact, sharedNormalizer(t), opts...)
	require.NoError(t, err)
	return svc
}

func newBinaryService(t *testing.T) *prediction.Service {
	t.Helper()
	artifact, err := model.LoadBinary(testutil.WriteBinaryBundle(t))
	require.NoError(t, err)
	svc, err := prediction.NewService(artifact, sharedNormalizer(t))
	require.NoError(t, err)
	return svc
}

func TestService_PredictSixClass(t *testing.T) {
	svc := newSixClassService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		text       string
		prediction string
		binary     string
	}{
		{"market headline", "Stocks rally after surprise rate cut", model.LabelTrue, model.LabelReal},
		{"hoax headline", "Miracle hoax cure!!!", model.LabelPantsFire, model.LabelFake},
		{"political headline", "Senate votes on budget", model.LabelHalfTrue, model.LabelReal},
		{"punctuation only", "!!! ??? 123", model.LabelHalfTrue, model.LabelReal},
		{"empty", "", model.LabelHalfTrue, model.LabelReal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Predict(ctx, tt.text)
			require.NoError(t, err)

			assert.Equal(t, tt.prediction, res.Prediction)
			assert.Equal(t, tt.binary, res.BinaryPrediction)
			assert.Len(t, res.Scores, 6)
		})
	}
}

func TestService_PredictBinary(t *testing.T) {
	svc := newBinaryService(t)
	ctx := context.Background()

	t.Run("real headline", func(t *testing.T) {
		res, err := svc.Predict(ctx, "Stocks rally after surprise rate cut")
		require.NoError(t, err)
		assert.Equal(t, model.LabelReal, res.Prediction)
		assert.Equal(t, model.LabelReal, res.BinaryPrediction)
		assert.Greater(t, res.Scores[model.LabelReal], 0.0)
		assert.Less(t, res.Scores[model.LabelFake], 0.0)
		assert.Equal(t, -res.Scores[model.LabelFake], res.Scores[model.LabelReal])
	})

	t.Run("fake headline", func(t *testing.T) {
		res, err := svc.Predict(ctx, "Miracle hoax")
		require.NoError(t, err)
		assert.Equal(t, model.LabelFake, res.Prediction)
		assert.Equal(t, model.LabelFake, res.BinaryPrediction)
	})

	t.Run("empty leans on intercept", func(t *testing.T) {
		res, err := svc.Predict(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, model.LabelFake, res.Prediction)
		assert.InDelta(t, -0.05, res.Scores[model.LabelReal], 1e-12)
		assert.InDelta(t, 0.05, res.Scores[model.LabelFake], 1e-12)
	})
}

func TestService_ResultProperties(t *testing.T) {
	inputs := []string{
		"Stocks rally after surprise rate cut",
		"Miracle hoax cure",
		"Senate votes",
		"!!! ??? 123",
		"",
		"   ",
		"The the the",
		"Stock stock hoax hoax miracle senate vote rally",
		"Ünïcödé headline — with dashes",
	}

	services := map[string]*prediction.Service{
		"six-class": newSixClassService(t),
		"binary":    newBinaryService(t),
	}

	for name, svc := range services {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				res, err := svc.Predict(context.Background(), in)
				require.NoError(t, err, in)

				assert.Contains(t, []string{model.LabelFake, model.LabelReal}, res.BinaryPrediction, in)
				assert.Contains(t, res.Scores, res.Prediction, in)

				if svc.Mode() == model.ModeSixClass {
					assert.True(t, model.IsCategory(res.Prediction), in)
					assert.Len(t, res.Scores, 6, in)
				} else {
					assert.Contains(t, model.BinaryLabels, res.Prediction, in)
					assert.Len(t, res.Scores, 2, in)
				}

				assert.Equal(t, model.BinaryFor(res.Prediction) == model.LabelFake, res.BinaryPrediction == model.LabelFake, in)

				for label, score := range res.Scores {
					assert.LessOrEqual(t, score, res.Scores[res.Prediction], "%q: %s beats prediction", in, label)
				}
			}
		})
	}
}

func TestService_Idempotent(t *testing.T) {
	svc := newSixClassService(t)

	first, err := svc.Predict(context.Background(), "Stock rally, hoax miracle and a senate vote")
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), "Stock rally, hoax miracle and a senate vote")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_Recorder(t *testing.T) {
	rec := new(mockRecorder)
	rec.On("RecordPrediction", model.LabelTrue, model.ModeSixClass, mock.AnythingOfType("time.Duration")).Return().Once()

	svc := newSixClassService(t, prediction.WithRecorder(rec))
	_, err := svc.Predict(context.Background(), "Stocks rally")
	require.NoError(t, err)

	rec.AssertExpectations(t)
}

func TestService_CancelledContext(t *testing.T) {
	rec := new(mockRecorder)
	svc := newSixClassService(t, prediction.WithRecorder(rec))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Predict(ctx, "Stocks rally")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	rec.AssertNotCalled(t, "RecordPrediction", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewService(t *testing.T) {
	_, err := prediction.NewService(nil, sharedNormalizer(t))
	assert.ErrorIs(t, err, model.ErrNoArtifact)

	artifact, err := model.LoadBinary(testutil.WriteBinaryBundle(t))
	require.NoError(t, err)
	_, err = prediction.NewService(artifact, nil)
	assert.Error(t, err)
}

func TestService_ModelInfo(t *testing.T) {
	info := newSixClassService(t).ModelInfo()

	assert.Equal(t, "liar-fixture", info.Name)
	assert.Equal(t, "test-1", info.Version)
	assert.Equal(t, model.ModeSixClass, info.Mode)
	assert.Equal(t, testutil.FixtureLabels, info.Labels)
}
