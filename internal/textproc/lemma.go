package textproc

import (
	"strings"
)

// Dictionary reports whether a word is a known English word form.
type Dictionary interface {
	InDict(word string) bool
}

// nounSuffixes are the noun detachment rules, tried in order.
var nounSuffixes = []struct {
	suffix, replacement string
}{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// nounExceptions maps irregular plurals to their base noun. Entries mapping
// to themselves keep singular nouns that end in "s" intact.
var nounExceptions = map[string]string{
	"aliases":     "alias",
	"analyses":    "analysis",
	"appendices":  "appendix",
	"bacteria":    "bacterium",
	"calves":      "calf",
	"children":    "child",
	"crises":      "crisis",
	"criteria":    "criterion",
	"curricula":   "curriculum",
	"data":        "datum",
	"diagnoses":   "diagnosis",
	"economics":   "economics",
	"elves":       "elf",
	"feet":        "foot",
	"geese":       "goose",
	"halves":      "half",
	"hypotheses":  "hypothesis",
	"indices":     "index",
	"knives":      "knife",
	"leaves":      "leaf",
	"lice":        "louse",
	"lives":       "life",
	"loaves":      "loaf",
	"mathematics": "mathematics",
	"matrices":    "matrix",
	"media":       "medium",
	"mice":        "mouse",
	"news":        "news",
	"oxen":        "ox",
	"phenomena":   "phenomenon",
	"physics":     "physics",
	"politics":    "politics",
	"series":      "series",
	"selves":      "self",
	"shelves":     "shelf",
	"species":     "species",
	"strata":      "stratum",
	"teeth":       "tooth",
	"theses":      "thesis",
	"thieves":     "thief",
	"vertices":    "vertex",
	"wives":       "wife",
	"wolves":      "wolf",
}

// NounLemmatizer reduces words as nouns only, the default when no part of
// speech is known. Verb and adjective inflections such as "running" or
// "better" are left unchanged.
type NounLemmatizer struct {
	dict Dictionary
}

// NewNounLemmatizer checks rule candidates against dict.
func NewNounLemmatizer(dict Dictionary) *NounLemmatizer {
	return &NounLemmatizer{dict: dict}
}

// Lemma returns the shortest known base form among the word itself, its
// irregular plural entry and every suffix rule that yields a known word.
// Unknown words come back unchanged.
func (l *NounLemmatizer) Lemma(word string) string {
	candidates := make([]string, 0, 4)
	if base, ok := nounExceptions[word]; ok {
		candidates = append(candidates, base)
		if base == word {
			return word
		}
	}
	if l.dict.InDict(word) {
		candidates = append(candidates, word)
	}
	for _, rule := range nounSuffixes {
		if !strings.HasSuffix(word, rule.suffix) || len(word) <= len(rule.suffix) {
			continue
		}
		base := strings.TrimSuffix(word, rule.suffix) + rule.replacement
		if l.dict.InDict(base) {
			candidates = append(candidates, base)
		}
	}

	if len(candidates) == 0 {
		return word
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best
}
