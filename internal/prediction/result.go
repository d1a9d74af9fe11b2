package prediction

import (
	"math"

	"newsverify/internal/model"
)

// Result is the public prediction shape. Scores are raw decision values,
// not probabilities, and may be negative.
type Result struct {
	Prediction       string             `json:"prediction"`
	Scores           map[string]float64 `json:"scores"`
	BinaryPrediction string             `json:"binary_prediction"`
}

// ModelInfo describes the artifact a Service was built with.
type ModelInfo struct {
	Name    string     `json:"name"`
	Version string     `json:"version"`
	Mode    model.Mode `json:"mode"`
	Labels  []string   `json:"labels"`
}

// ScoreRow is one category line of a rendered result.
type ScoreRow struct {
	Category  string
	Score     float64
	Magnitude float64
	Percent   int
	Color     string
	Selected  bool
}

var rowOrder = append(append([]string{}, model.Categories...), model.LabelFake, model.LabelReal)

// Rows lists the scores in scale order, six categories before fake and real.
func (r *Result) Rows() []ScoreRow {
	rows := make([]ScoreRow, 0, len(r.Scores))
	for _, category := range rowOrder {
		score, ok := r.Scores[category]
		if !ok {
			continue
		}
		magnitude := math.Abs(score)
		rows = append(rows, ScoreRow{
			Category:  category,
			Score:     score,
			Magnitude: magnitude,
			Percent:   Confidence(map[string]float64{category: score}),
			Color:     Describe(category, model.BinaryFor(category)).Background,
			Selected:  category == r.Prediction,
		})
	}
	return rows
}
