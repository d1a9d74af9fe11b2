package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// FixtureVocabulary is shared by the six-class and binary fixture bundles.
var FixtureVocabulary = map[string]int{
	"stock":   0,
	"rally":   1,
	"hoax":    2,
	"miracle": 3,
	"senate":  4,
	"vote":    5,
}

// FixtureLabels is in label-encoder (alphabetical) order.
var FixtureLabels = []string{"barely-true", "false", "half-true", "mostly-true", "pants-fire", "true"}

var fixtureIDF = []float64{1.5, 1.2, 2.0, 2.2, 1.1, 1.3}

// Fixture behaviour: market words lean "true", hoax/miracle lean
// "pants-fire", senate/vote lean "half-true", and empty input falls on the
// highest intercept ("half-true").
var sixClassCoef = [][]float64{
	{0, 0, 0.5, 0, 0, 0},
	{0, 0, 0.8, 0.3, 0, 0},
	{0, 0, 0, 0, 0.4, 0.4},
	{0.6, 0.5, 0, 0, 0, 0},
	{0, 0, 1.2, 1.5, 0, 0},
	{1.0, 0.8, 0, 0, 0, 0},
}

var sixClassIntercept = []float64{-0.3, -0.2, -0.05, -0.25, -0.4, -0.35}

const sixClassManifest = `name: liar-fixture
version: test-1
vectorizer: vectorizer.json
classifier: classifier.json
label_encoder: label_encoder.json
`

// WriteSixClassBundle writes a complete six-class bundle and returns its
// directory.
func WriteSixClassBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	WriteJSON(t, filepath.Join(dir, "vectorizer.json"), FixtureVectorizer())
	WriteJSON(t, filepath.Join(dir, "classifier.json"), map[string]any{
		"coef":      sixClassCoef,
		"intercept": sixClassIntercept,
		"classes":   []int{0, 1, 2, 3, 4, 5},
	})
	WriteJSON(t, filepath.Join(dir, "label_encoder.json"), map[string]any{
		"classes": FixtureLabels,
	})
	WriteFile(t, filepath.Join(dir, "manifest.yaml"), sixClassManifest)

	return dir
}

// WriteBinaryBundle writes a binary bundle without manifest or label
// encoder. Market words push towards real, hoax words towards fake, and
// empty input scores slightly fake.
func WriteBinaryBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	WriteJSON(t, filepath.Join(dir, "vectorizer.json"), FixtureVectorizer())
	WriteJSON(t, filepath.Join(dir, "classifier.json"), map[string]any{
		"coef":      [][]float64{{-0.9, -0.7, 1.3, 1.1, -0.2, -0.1}},
		"intercept": []float64{0.05},
	})

	return dir
}

// FixtureVectorizer returns the JSON body of the fixture vectorizer.
func FixtureVectorizer() map[string]any {
	return map[string]any{
		"vocabulary":    FixtureVocabulary,
		"idf":           fixtureIDF,
		"ngram_range":   []int{1, 1},
		"sublinear_tf":  false,
		"norm":          "l2",
		"token_pattern": `(?u)\b\w\w+\b`,
	}
}

// WriteJSON marshals v to path.
func WriteJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %s: %v", path, err)
	}
	WriteFile(t, path, string(data))
}

// WriteFile writes content to path.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
