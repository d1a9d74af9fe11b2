package model

// Truthfulness categories ordered from most false to most true.
const (
	LabelPantsFire  = "pants-fire"
	LabelFalse      = "false"
	LabelBarelyTrue = "barely-true"
	LabelHalfTrue   = "half-true"
	LabelMostlyTrue = "mostly-true"
	LabelTrue       = "true"
)

// Binary labels.
const (
	LabelFake = "fake"
	LabelReal = "real"
)

// Categories lists the six truthfulness categories in scale order.
var Categories = []string{
	LabelPantsFire,
	LabelFalse,
	LabelBarelyTrue,
	LabelHalfTrue,
	LabelMostlyTrue,
	LabelTrue,
}

// BinaryLabels maps binary class index to label: 0 is real, 1 is fake, as
// in the fake-news training set the binary bundle is fit on.
var BinaryLabels = []string{LabelReal, LabelFake}

var fakeCategories = map[string]struct{}{
	LabelPantsFire:  {},
	LabelFalse:      {},
	LabelBarelyTrue: {},
}

// IsCategory reports whether label is one of the six truthfulness categories.
func IsCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}

// BinaryFor collapses a label to fake/real. Binary labels map to themselves.
func BinaryFor(label string) string {
	if label == LabelFake {
		return LabelFake
	}
	if _, ok := fakeCategories[label]; ok {
		return LabelFake
	}
	return LabelReal
}
