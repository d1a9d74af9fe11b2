package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
)

const defaultTokenPattern = `\b\w\w+\b`

// Norm selects the row normalization applied after TF-IDF weighting.
type Norm string

const (
	NormL2   Norm = "l2"
	NormL1   Norm = "l1"
	NormNone Norm = "none"
)

// SparseVector is a fixed-dimension vector with sorted indices.
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Dot multiplies the vector by a dense row of the same dimension.
func (v SparseVector) Dot(row []float64) (float64, error) {
	if len(row) != v.Dim {
		return 0, fmt.Errorf("%w: vector has %d features, row has %d", ErrDimensionMismatch, v.Dim, len(row))
	}
	var sum float64
	for i, idx := range v.Indices {
		sum += v.Values[i] * row[idx]
	}
	return sum, nil
}

// Vectorizer applies a pre-fit TF-IDF transform. It is immutable after
// loading and safe for concurrent use.
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	minN, maxN  int
	binary      bool
	sublinearTF bool
	lowercase   bool
	norm        Norm
	pattern     *regexp.Regexp
}

// vectorizerFile is the on-disk JSON layout exported from the training
// pipeline.
type vectorizerFile struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	NgramRange   []int          `json:"ngram_range"`
	Analyzer     string         `json:"analyzer"`
	Binary       bool           `json:"binary"`
	UseIDF       *bool          `json:"use_idf"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Lowercase    *bool          `json:"lowercase"`
	Norm         *string        `json:"norm"`
	TokenPattern string         `json:"token_pattern"`
}

// LoadVectorizer reads a fitted vectorizer from a JSON file.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectorizer: %w", err)
	}

	var f vectorizerFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: vectorizer %s: %v", ErrInvalidArtifact, path, err)
	}

	return newVectorizer(f)
}

func newVectorizer(f vectorizerFile) (*Vectorizer, error) {
	// Without idf every term weighs 1; the dimension is the vocabulary size.
	if f.UseIDF != nil && !*f.UseIDF {
		dim := len(f.IDF)
		if dim == 0 {
			dim = len(f.Vocabulary)
		}
		f.IDF = make([]float64, dim)
		for i := range f.IDF {
			f.IDF[i] = 1
		}
	}
	if len(f.IDF) == 0 {
		return nil, fmt.Errorf("%w: vectorizer has no idf weights", ErrInvalidArtifact)
	}
	if f.Analyzer != "" && f.Analyzer != "word" {
		return nil, fmt.Errorf("%w: unsupported analyzer %q", ErrInvalidArtifact, f.Analyzer)
	}
	for term, idx := range f.Vocabulary {
		if idx < 0 || idx >= len(f.IDF) {
			return nil, fmt.Errorf("%w: term %q has index %d outside [0,%d)", ErrInvalidArtifact, term, idx, len(f.IDF))
		}
	}

	v := &Vectorizer{
		vocabulary:  f.Vocabulary,
		idf:         f.IDF,
		minN:        1,
		maxN:        1,
		binary:      f.Binary,
		sublinearTF: f.SublinearTF,
		lowercase:   true,
		norm:        NormL2,
	}

	if len(f.NgramRange) == 2 {
		v.minN, v.maxN = f.NgramRange[0], f.NgramRange[1]
	}
	if v.minN < 1 || v.maxN < v.minN {
		return nil, fmt.Errorf("%w: bad ngram range %v", ErrInvalidArtifact, f.NgramRange)
	}
	if f.Lowercase != nil {
		v.lowercase = *f.Lowercase
	}
	if f.Norm != nil {
		switch Norm(*f.Norm) {
		case NormL2, NormL1:
			v.norm = Norm(*f.Norm)
		case "", NormNone:
			v.norm = NormNone
		default:
			return nil, fmt.Errorf("%w: unsupported norm %q", ErrInvalidArtifact, *f.Norm)
		}
	}

	pattern := f.TokenPattern
	if pattern == "" {
		pattern = defaultTokenPattern
	}
	// Python unicode flag; Go patterns are always UTF-8 aware.
	pattern = strings.TrimPrefix(pattern, "(?u)")
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: token pattern: %v", ErrInvalidArtifact, err)
	}
	v.pattern = re

	return v, nil
}

// Dim is the fixed feature dimension.
func (v *Vectorizer) Dim() int {
	return len(v.idf)
}

// TransformBatch vectorizes each document independently.
func (v *Vectorizer) TransformBatch(docs []string) []SparseVector {
	out := make([]SparseVector, len(docs))
	for i, doc := range docs {
		out[i] = v.transform(doc)
	}
	return out
}

func (v *Vectorizer) transform(doc string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range v.analyze(doc) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := SparseVector{
		Dim:     len(v.idf),
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	// Sorted so summation order, and therefore every float, is reproducible.
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	for _, idx := range vec.Indices {
		tf := counts[idx]
		if v.binary {
			tf = 1
		}
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec.Values = append(vec.Values, tf*v.idf[idx])
	}

	normalize(vec.Values, v.norm)
	return vec
}

func (v *Vectorizer) analyze(doc string) []string {
	if v.lowercase {
		doc = strings.ToLower(doc)
	}
	words := v.pattern.FindAllString(doc, -1)
	if v.minN == 1 && v.maxN == 1 {
		return words
	}

	var terms []string
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

func normalize(values []float64, norm Norm) {
	var total float64
	switch norm {
	case NormL2:
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	case NormL1:
		for _, x := range values {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
