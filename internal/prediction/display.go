package prediction

import (
	"math"

	"newsverify/internal/model"
)

// Display is the presentation of a label on the result page.
type Display struct {
	Category    string `json:"category"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Background  string `json:"background"`
	Description string `json:"description"`
	Verdict     string `json:"verdict"`
	Side        string `json:"side"`
}

var displays = map[string]Display{
	model.LabelPantsFire: {
		Label:       "PANTS ON FIRE!",
		Verdict:     "PANTS ON FIRE! Highly deceptive claim",
		Color:       "text-red-600",
		Background:  "bg-red-600",
		Description: "This claim is not only false but also ridiculous or absurd.",
	},
	model.LabelFalse: {
		Label:       "FALSE",
		Verdict:     "FALSE claim",
		Color:       "text-red-500",
		Background:  "bg-red-500",
		Description: "This claim is not accurate.",
	},
	model.LabelBarelyTrue: {
		Label:       "BARELY TRUE",
		Verdict:     "BARELY TRUE claim",
		Color:       "text-orange-500",
		Background:  "bg-orange-500",
		Description: "This claim contains some element of truth but ignores critical facts.",
	},
	model.LabelHalfTrue: {
		Label:       "HALF TRUE",
		Verdict:     "HALF TRUE claim",
		Color:       "text-yellow-500",
		Background:  "bg-yellow-500",
		Description: "This claim is partially accurate but leaves out important details.",
	},
	model.LabelMostlyTrue: {
		Label:       "MOSTLY TRUE",
		Verdict:     "MOSTLY TRUE claim",
		Color:       "text-emerald-500",
		Background:  "bg-emerald-500",
		Description: "This claim is accurate but needs clarification or additional information.",
	},
	model.LabelTrue: {
		Label:       "TRUE",
		Verdict:     "TRUE claim",
		Color:       "text-green-600",
		Background:  "bg-green-600",
		Description: "This claim is accurate and there's nothing significant missing.",
	},
}

var (
	lookingReal = Display{
		Label:       "LOOKING REAL",
		Verdict:     "Looking Real News",
		Color:       "text-truth",
		Background:  "bg-truth",
		Description: "This news appears to be factually accurate.",
	}
	lookingFake = Display{
		Label:       "LOOKING FAKE",
		Verdict:     "Looking Fake News",
		Color:       "text-falsehood",
		Background:  "bg-falsehood",
		Description: "This news appears to contain false information.",
	}
)

// Describe maps a prediction to its display. Labels outside the six
// categories use the binary label to pick "looking real" or "looking fake".
func Describe(prediction, binary string) Display {
	d, ok := displays[prediction]
	if !ok {
		if binary == model.LabelReal {
			d = lookingReal
		} else {
			d = lookingFake
		}
	}
	d.Category = prediction
	d.Side = model.BinaryFor(prediction)
	if !ok {
		d.Side = binary
	}
	return d
}

// Summary is the one-line verdict shown by the classic form.
func Summary(prediction, binary string) string {
	return "Prediction: " + Describe(prediction, binary).Verdict + " \U0001F4F0"
}

// Scale returns the display entries for the six categories in scale order.
func Scale() []Display {
	out := make([]Display, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, Describe(c, model.BinaryFor(c)))
	}
	return out
}

// Confidence is the display figure shown next to a result:
// round(min(max|score| * 100, 100)). It is the largest raw decision margin
// scaled into 0..100, not a calibrated probability.
func Confidence(scores map[string]float64) int {
	var maxAbs float64
	for _, s := range scores {
		if a := math.Abs(s); a > maxAbs {
			maxAbs = a
		}
	}
	return int(math.Round(math.Min(maxAbs*100, 100)))
}
