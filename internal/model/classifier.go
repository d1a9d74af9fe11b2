package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Decision is the raw output of the linear decision function.
//
// For a binary model Scores holds one value and Index is 0 or 1 (positive
// score selects 1). Otherwise Scores has one value per class column and
// Index is the first column holding the maximum score.
type Decision struct {
	Index  int
	Scores []float64
}

// LinearClassifier is a pre-fit one-vs-rest linear model.
type LinearClassifier struct {
	coef      [][]float64
	intercept []float64
	classes   []int
}

type classifierFile struct {
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
	Classes   []int       `json:"classes"`
}

// LoadClassifier reads a fitted classifier from a JSON file.
func LoadClassifier(path string) (*LinearClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier: %w", err)
	}

	var f classifierFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: classifier %s: %v", ErrInvalidArtifact, path, err)
	}

	return newClassifier(f)
}

func newClassifier(f classifierFile) (*LinearClassifier, error) {
	if len(f.Coef) == 0 {
		return nil, fmt.Errorf("%w: classifier has no coefficients", ErrInvalidArtifact)
	}
	if len(f.Intercept) != len(f.Coef) {
		return nil, fmt.Errorf("%w: %d coef rows but %d intercepts", ErrInvalidArtifact, len(f.Coef), len(f.Intercept))
	}
	width := len(f.Coef[0])
	for i, row := range f.Coef {
		if len(row) != width || width == 0 {
			return nil, fmt.Errorf("%w: coef row %d has %d features, want %d", ErrInvalidArtifact, i, len(row), width)
		}
	}

	n := len(f.Coef)
	if n == 1 {
		n = 2
	}
	classes := f.Classes
	if len(classes) == 0 {
		classes = make([]int, n)
		for i := range classes {
			classes[i] = i
		}
	}
	if len(classes) != n {
		return nil, fmt.Errorf("%w: %d classes for %d coef rows", ErrInvalidArtifact, len(classes), len(f.Coef))
	}

	return &LinearClassifier{coef: f.Coef, intercept: f.Intercept, classes: classes}, nil
}

// Binary reports whether the model emits a single signed score.
func (c *LinearClassifier) Binary() bool {
	return len(c.coef) == 1
}

// Features is the input dimension the model was fit on.
func (c *LinearClassifier) Features() int {
	return len(c.coef[0])
}

// Classes returns the encoded class for each decision index.
func (c *LinearClassifier) Classes() []int {
	return c.classes
}

// Decide evaluates the decision function for one feature vector.
func (c *LinearClassifier) Decide(x SparseVector) (Decision, error) {
	scores := make([]float64, len(c.coef))
	for i, row := range c.coef {
		dot, err := x.Dot(row)
		if err != nil {
			return Decision{}, err
		}
		scores[i] = dot + c.intercept[i]
	}

	if c.Binary() {
		idx := 0
		if scores[0] > 0 {
			idx = 1
		}
		return Decision{Index: idx, Scores: scores}, nil
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return Decision{Index: best, Scores: scores}, nil
}
