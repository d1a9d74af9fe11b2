// Package prediction runs the normalize → vectorize → classify pipeline and
// shapes its output into the public result.
package prediction

import (
	"context"
	"fmt"
	"time"

	"newsverify/internal/model"
	"newsverify/internal/textproc"
)

// Normalizer converts raw text into normalized tokens.
type Normalizer interface {
	Normalize(text string) []string
}

// Recorder observes completed predictions.
type Recorder interface {
	RecordPrediction(label string, mode model.Mode, elapsed time.Duration)
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports each successful prediction to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// Service is stateless per call; the artifact it holds is never mutated, so
// one Service may serve any number of concurrent requests.
type Service struct {
	artifact   *model.Artifact
	normalizer Normalizer
	recorder   Recorder
}

// NewService builds a Service around a loaded artifact.
func NewService(artifact *model.Artifact, normalizer Normalizer, opts ...Option) (*Service, error) {
	if artifact == nil {
		return nil, model.ErrNoArtifact
	}
	if normalizer == nil {
		return nil, fmt.Errorf("prediction service requires a normalizer")
	}

	s := &Service{artifact: artifact, normalizer: normalizer}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Mode is the startup mode, fixed for the life of the Service.
func (s *Service) Mode() model.Mode {
	return s.artifact.Mode
}

// ModelInfo describes the loaded artifact.
func (s *Service) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:    s.artifact.Manifest.Name,
		Version: s.artifact.Manifest.Version,
		Mode:    s.artifact.Mode,
		Labels:  append([]string(nil), s.artifact.ColumnLabels...),
	}
}

// Predict classifies one headline. Any input, including the empty string,
// yields a well-formed result; errors only come from a cancelled context or
// an artifact whose dimensions disagree.
func (s *Service) Predict(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	doc := textproc.Join(s.normalizer.Normalize(text))
	vec := s.artifact.Vectorizer.TransformBatch([]string{doc})[0]

	decision, err := s.artifact.Classifier.Decide(vec)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	var result *Result
	switch s.artifact.Mode {
	case model.ModeBinary:
		result = binaryResult(decision)
	default:
		result = multiClassResult(decision, s.artifact.ColumnLabels)
	}

	if s.recorder != nil {
		s.recorder.RecordPrediction(result.Prediction, s.artifact.Mode, time.Since(start))
	}
	return result, nil
}

func multiClassResult(d model.Decision, labels []string) *Result {
	scores := make(map[string]float64, len(labels))
	for i, score := range d.Scores {
		scores[labels[i]] = score
	}

	label := labels[d.Index]
	return &Result{
		Prediction:       label,
		Scores:           scores,
		BinaryPrediction: model.BinaryFor(label),
	}
}

// binaryResult applies the symmetric convention score(fake) = s,
// score(real) = -s for the single signed score s; a positive s means fake.
func binaryResult(d model.Decision) *Result {
	s := d.Scores[0]
	fake, real := s, -s
	if s == 0 {
		real = 0
	}

	label := model.BinaryLabels[d.Index]
	return &Result{
		Prediction: label,
		Scores: map[string]float64{
			model.LabelFake: fake,
			model.LabelReal: real,
		},
		BinaryPrediction: label,
	}
}
