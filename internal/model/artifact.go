// Package model loads the serialized vectorizer and classifier bundles and
// evaluates them.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Mode is fixed once at startup for the life of the process.
type Mode string

const (
	ModeSixClass Mode = "six-class"
	ModeBinary   Mode = "binary"
)

// Default file names inside a bundle directory.
const (
	ManifestFile            = "manifest.yaml"
	DefaultVectorizerFile   = "vectorizer.json"
	DefaultClassifierFile   = "classifier.json"
	DefaultLabelEncoderFile = "label_encoder.json"
)

// Manifest describes a bundle directory. All fields are optional.
type Manifest struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Vectorizer   string `yaml:"vectorizer"`
	Classifier   string `yaml:"classifier"`
	LabelEncoder string `yaml:"label_encoder"`
}

// Artifact is the read-only vectorizer + classifier bundle. ColumnLabels
// names each decision score column; for binary bundles it is BinaryLabels.
type Artifact struct {
	Mode         Mode
	Manifest     Manifest
	Vectorizer   *Vectorizer
	Classifier   *LinearClassifier
	ColumnLabels []string
}

// LoadResult tags which bundle was loaded. FallbackReason is set when the
// six-class bundle failed and the binary one was used instead.
type LoadResult struct {
	Artifact       *Artifact
	FallbackReason error
}

// Mode returns the loaded artifact's mode.
func (r *LoadResult) Mode() Mode {
	return r.Artifact.Mode
}

// LoadWithFallback prefers the six-class bundle and falls back to the binary
// bundle. When neither loads the error wraps ErrNoArtifact and both causes.
func LoadWithFallback(primaryDir, fallbackDir string) (*LoadResult, error) {
	artifact, primaryErr := LoadSixClass(primaryDir)
	if primaryErr == nil {
		return &LoadResult{Artifact: artifact}, nil
	}

	artifact, fallbackErr := LoadBinary(fallbackDir)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: six-class (%s): %v; binary (%s): %v",
			ErrNoArtifact, primaryDir, primaryErr, fallbackDir, fallbackErr)
	}

	return &LoadResult{Artifact: artifact, FallbackReason: primaryErr}, nil
}

// LoadSixClass loads a bundle that carries a label encoder over the six
// truthfulness categories.
func LoadSixClass(dir string) (*Artifact, error) {
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	vectorizer, classifier, err := loadPair(dir, manifest)
	if err != nil {
		return nil, err
	}

	labels, err := loadLabelEncoder(filepath.Join(dir, manifest.LabelEncoder))
	if err != nil {
		return nil, err
	}
	seenLabels := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if !IsCategory(label) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
		}
		if _, dup := seenLabels[label]; dup {
			return nil, fmt.Errorf("%w: label %q appears twice in the encoder", ErrInvalidArtifact, label)
		}
		seenLabels[label] = struct{}{}
	}
	if classifier.Binary() {
		return nil, fmt.Errorf("%w: six-class bundle has a single-row classifier", ErrInvalidArtifact)
	}
	if rows := len(classifier.Classes()); rows != len(labels) {
		return nil, fmt.Errorf("%w: classifier has %d rows, label encoder has %d labels", ErrInvalidArtifact, rows, len(labels))
	}

	columns := make([]string, len(classifier.Classes()))
	seen := make(map[int]struct{}, len(columns))
	for i, class := range classifier.Classes() {
		if class < 0 || class >= len(labels) {
			return nil, fmt.Errorf("%w: class %d has no label (encoder has %d)", ErrInvalidArtifact, class, len(labels))
		}
		if _, dup := seen[class]; dup {
			return nil, fmt.Errorf("%w: class %d appears twice", ErrInvalidArtifact, class)
		}
		seen[class] = struct{}{}
		columns[i] = labels[class]
	}

	return &Artifact{
		Mode:         ModeSixClass,
		Manifest:     manifest,
		Vectorizer:   vectorizer,
		Classifier:   classifier,
		ColumnLabels: columns,
	}, nil
}

// LoadBinary loads a vectorizer + single-row classifier bundle. Labels are
// implicit: class 0 is real and class 1 is fake.
func LoadBinary(dir string) (*Artifact, error) {
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	vectorizer, classifier, err := loadPair(dir, manifest)
	if err != nil {
		return nil, err
	}
	if !classifier.Binary() {
		return nil, fmt.Errorf("%w: binary bundle has %d coef rows", ErrInvalidArtifact, len(classifier.coef))
	}
	if classes := classifier.Classes(); classes[0] != 0 || classes[1] != 1 {
		return nil, fmt.Errorf("%w: binary classes must be [0 1], got %v", ErrInvalidArtifact, classes)
	}

	return &Artifact{
		Mode:         ModeBinary,
		Manifest:     manifest,
		Vectorizer:   vectorizer,
		Classifier:   classifier,
		ColumnLabels: BinaryLabels,
	}, nil
}

func loadPair(dir string, manifest Manifest) (*Vectorizer, *LinearClassifier, error) {
	vectorizer, err := LoadVectorizer(filepath.Join(dir, manifest.Vectorizer))
	if err != nil {
		return nil, nil, err
	}
	classifier, err := LoadClassifier(filepath.Join(dir, manifest.Classifier))
	if err != nil {
		return nil, nil, err
	}
	if classifier.Features() != vectorizer.Dim() {
		return nil, nil, fmt.Errorf("%w: vectorizer emits %d features, classifier expects %d",
			ErrDimensionMismatch, vectorizer.Dim(), classifier.Features())
	}
	return vectorizer, classifier, nil
}

// readManifest fills defaults when the manifest or any field is absent.
func readManifest(dir string) (Manifest, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Manifest{}, fmt.Errorf("model bundle %s: %w", dir, err)
	}
	if !info.IsDir() {
		return Manifest{}, fmt.Errorf("%w: %s is not a directory", ErrInvalidArtifact, dir)
	}

	var m Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("%w: manifest: %v", ErrInvalidArtifact, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	if m.Name == "" {
		m.Name = filepath.Base(dir)
	}
	if m.Version == "" {
		m.Version = "unversioned"
	}
	if m.Vectorizer == "" {
		m.Vectorizer = DefaultVectorizerFile
	}
	if m.Classifier == "" {
		m.Classifier = DefaultClassifierFile
	}
	if m.LabelEncoder == "" {
		m.LabelEncoder = DefaultLabelEncoderFile
	}
	return m, nil
}

func loadLabelEncoder(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingLabelEncoder, path)
		}
		return nil, fmt.Errorf("failed to read label encoder: %w", err)
	}

	var f struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: label encoder %s: %v", ErrInvalidArtifact, path, err)
	}
	if len(f.Classes) == 0 {
		return nil, fmt.Errorf("%w: label encoder %s is empty", ErrInvalidArtifact, path)
	}
	return f.Classes, nil
}
