package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var namePunctuationRegex = regexp.MustCompile(`[^\w\s]`)

// nameStopWords are descriptors that carry no identity: the same ingredient
// appears with and without them on recipes and receipts. Removed on both
// sides before similarity scoring so tokens compare like-for-like.
var nameStopWords = map[string]bool{
	"organic":     true,
	"fresh":       true,
	"raw":         true,
	"frozen":      true,
	"canned":      true,
	"dried":       true,
	"boneless":    true,
	"skinless":    true,
	"seedless":    true,
	"whole":       true,
	"large":       true,
	"medium":      true,
	"small":       true,
	"extra":       true,
	"jumbo":       true,
	"premium":     true,
	"natural":     true,
	"pure":        true,
	"unsalted":    true,
	"salted":      true,
	"sliced":      true,
	"diced":       true,
	"chopped":     true,
	"minced":      true,
	"shredded":    true,
	"grated":      true,
	"of":          true,
	"a":           true,
	"an":          true,
	"the":         true,
	"and":         true,
	"or":          true,
	"with":        true,
	"without":     true,
	"style":       true,
	"brand":       true,
	"homemade":    true,
	"store":       true,
	"bought":      true,
	"ripe":        true,
	"cooked":      true,
	"uncooked":    true,
	"unsweetened": true,
	"sweetened":   true,
}

// irregularSingulars covers plurals the suffix rules get wrong.
var irregularSingulars = map[string]string{
	"leaves":   "leaf",
	"loaves":   "loaf",
	"halves":   "half",
	"knives":   "knife",
	"children": "child",
	"feet":     "foot",
	"geese":    "goose",
}

// nonPluralEndings are words ending in "s" that are not plurals.
var nonPluralEndings = []string{"ss", "us", "is", "ous"}

// CanonicalizeName normalizes a free-text ingredient name into a comparable
// token sequence: lowercase, punctuation stripped, stop words removed, each
// remaining token singularized. Deterministic and total; unmapped words pass
// through unchanged.
func CanonicalizeName(raw string) []string {
	cleaned := namePunctuationRegex.ReplaceAllString(strings.ToLower(raw), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 {
			continue
		}
		if nameStopWords[word] {
			continue
		}
		tokens = append(tokens, Singularize(word))
	}
	return tokens
}

// CanonicalName joins the canonical token sequence into a single comparable
// string, the form stored on pantry items.
func CanonicalName(raw string) string {
	return strings.Join(CanonicalizeName(raw), " ")
}

// Singularize reduces a plural English token to its singular form using a
// small irregular table plus suffix rules. Words it cannot map pass through
// unchanged.
func Singularize(word string) string {
	if s, ok := irregularSingulars[word]; ok {
		return s
	}
	if !strings.HasSuffix(word, "s") || len(word) <= 2 {
		return word
	}
	for _, ending := range nonPluralEndings {
		if strings.HasSuffix(word, ending) {
			return word
		}
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		// berries -> berry
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "oes") && len(word) > 3:
		// tomatoes -> tomato
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "sses"), strings.HasSuffix(word, "xes"),
		strings.HasSuffix(word, "zes"):
		// peaches -> peach, radishes -> radish
		return word[:len(word)-2]
	default:
		return word[:len(word)-1]
	}
}
