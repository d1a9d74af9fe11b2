package main

import (
	"fmt"

	"go.uber.org/zap"

	"newsverify/internal/config"
	"newsverify/internal/model"
	"newsverify/internal/prediction"
	"newsverify/internal/textproc"
)

// loadService loads the six-class bundle, falling back to the binary one,
// and builds the prediction service. Failure to load either is fatal.
func loadService(cfg *config.Config, log *zap.Logger, opts ...prediction.Option) (*prediction.Service, *model.LoadResult, error) {
	loaded, err := model.LoadWithFallback(cfg.ModelDir, cfg.BinaryModelDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load model: %w", err)
	}

	if loaded.FallbackReason != nil {
		log.Warn("six-class model unavailable, using binary fallback",
			zap.String("model_dir", cfg.ModelDir),
			zap.String("binary_model_dir", cfg.BinaryModelDir),
			zap.Error(loaded.FallbackReason),
		)
	}
	log.Info("model loaded",
		zap.String("mode", string(loaded.Mode())),
		zap.String("name", loaded.Artifact.Manifest.Name),
		zap.String("version", loaded.Artifact.Manifest.Version),
		zap.Int("features", loaded.Artifact.Vectorizer.Dim()),
	)

	normalizer, err := textproc.NewNormalizer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load lemmatizer: %w", err)
	}

	svc, err := prediction.NewService(loaded.Artifact, normalizer, opts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, loaded, nil
}
