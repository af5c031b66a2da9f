package usecase

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prepsense/backend/internal/domain"
)

// Token weight categories for similarity scoring
const (
	weightCore        = 3.0 // core food identity terms (chicken, milk, flour)
	weightDescriptive = 1.5 // variety/part terms (breast, thigh, whole)
	weightDefault     = 1.0 // everything else
	fuzzyWeightFactor = 0.8 // fuzzy token hits get 80% of the exact weight
)

// coreFoodTerms carry the identity of an ingredient: a requirement and a
// candidate that disagree on these are almost certainly different foods.
var coreFoodTerms = map[string]bool{
	"chicken": true, "beef": true, "pork": true, "turkey": true, "lamb": true,
	"fish": true, "salmon": true, "tuna": true, "shrimp": true, "bacon": true,
	"sausage": true, "ham": true, "steak": true, "tofu": true,
	"milk": true, "cheese": true, "yogurt": true, "butter": true, "cream": true,
	"egg": true, "cheddar": true, "mozzarella": true, "parmesan": true,
	"bread": true, "rice": true, "pasta": true, "flour": true, "oat": true,
	"noodle": true, "tortilla": true, "quinoa": true, "cereal": true,
	"apple": true, "banana": true, "orange": true, "lemon": true, "lime": true,
	"strawberry": true, "blueberry": true, "grape": true, "avocado": true,
	"tomato": true, "potato": true, "onion": true, "garlic": true,
	"carrot": true, "lettuce": true, "spinach": true, "broccoli": true,
	"pepper": true, "mushroom": true, "corn": true, "bean": true,
	"cucumber": true, "celery": true, "kale": true, "zucchini": true,
	"sugar": true, "salt": true, "honey": true, "oil": true, "vinegar": true,
	"juice": true, "coffee": true, "tea": true, "water": true, "wine": true,
}

// descriptiveFoodTerms narrow a food down without changing its identity.
var descriptiveFoodTerms = map[string]bool{
	"breast": true, "thigh": true, "wing": true, "leg": true, "ground": true,
	"fillet": true, "loin": true, "chop": true, "rib": true,
	"white": true, "brown": true, "red": true, "green": true, "yellow": true,
	"sweet": true, "sour": true, "baby": true, "wild": true,
	"plain": true, "greek": true, "skim": true, "lite": true, "light": true,
	"heavy": true, "half": true, "low": true, "fat": true, "nonfat": true,
	"instant": true, "rolled": true, "long": true, "short": true,
	"italian": true, "roma": true, "russet": true, "yukon": true,
}

// MatcherConfig holds configuration for the ingredient matcher
type MatcherConfig struct {
	// SimilarityThreshold is on a 0-100 scale; candidates below it are
	// rejected. Default 75.
	SimilarityThreshold float64
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
}

// Matcher pairs recipe ingredient requirements against pantry inventory rows
// using token-weighted, order-tolerant name similarity, then gates on unit
// compatibility.
type Matcher struct {
	similarityThreshold float64
	enableFuzzyMatching bool
	fuzzyEditDistance   int
	logger              *zap.Logger
}

// DefaultSimilarityThreshold is the documented acceptance threshold on the
// 0-100 similarity scale.
const DefaultSimilarityThreshold = 75.0

// NewMatcher creates a matcher with the given configuration
func NewMatcher(config MatcherConfig, logger *zap.Logger) *Matcher {
	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		similarityThreshold: threshold,
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
		logger:              logger,
	}
}

// Match finds the inventory row that best satisfies a canonicalized
// requirement. It returns an unmatched result when no candidate clears the
// similarity threshold or when the best candidate's canonical unit is not
// comparable with the requirement's; no cross-dimension guessing happens
// here, that ambiguity is resolved at canonicalization time with a density.
func (m *Matcher) Match(requirement domain.RecipeIngredientRequirement, need domain.CanonicalQuantity, inventory []domain.PantryItem) domain.MatchResult {
	reqTokens := CanonicalizeName(requirement.Name)

	unmatched := domain.MatchResult{
		Requirement: requirement,
		Matched:     false,
		Reason:      domain.ReasonNoMatch,
	}
	if len(reqTokens) == 0 || len(inventory) == 0 {
		return unmatched
	}

	var best *domain.PantryItem
	bestSimilarity := -1.0
	for i := range inventory {
		candidate := &inventory[i]
		candTokens := CanonicalizeName(candidate.RawName)
		similarity := m.similarity(reqTokens, candTokens)

		switch {
		case similarity > bestSimilarity:
			best = candidate
			bestSimilarity = similarity
		case similarity == bestSimilarity && best != nil:
			if preferCandidate(candidate, best, need) {
				best = candidate
			}
		}
	}

	if best == nil || bestSimilarity < m.similarityThreshold {
		m.logger.Debug("no inventory match cleared threshold",
			zap.String("requirement", requirement.Name),
			zap.Float64("bestSimilarity", bestSimilarity),
			zap.Float64("threshold", m.similarityThreshold),
		)
		unmatched.Similarity = bestSimilarity
		return unmatched
	}

	if best.Quantity.Unit != need.Unit {
		m.logger.Debug("best candidate has incompatible unit",
			zap.String("requirement", requirement.Name),
			zap.String("candidate", best.RawName),
			zap.String("requirementUnit", string(need.Unit)),
			zap.String("candidateUnit", string(best.Quantity.Unit)),
		)
		unmatched.Similarity = bestSimilarity
		unmatched.Reason = domain.ReasonDimensionMismatch
		return unmatched
	}

	return domain.MatchResult{
		Requirement:  requirement,
		Matched:      true,
		PantryItemID: best.ID,
		Have:         best.Quantity.Amount,
		Need:         need.Amount,
		Score:        availabilityScore(best.Quantity.Amount, need.Amount),
		Similarity:   bestSimilarity,
	}
}

// availabilityScore is min(1, have/need); zero or negative need scores zero.
func availabilityScore(have, need decimal.Decimal) float64 {
	if !need.IsPositive() {
		return 0
	}
	ratio, _ := have.Div(need).Float64()
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

// preferCandidate breaks similarity ties: prefer the item with the smaller
// absolute quantity surplus over the need, then the nearer expiration date,
// so scarce and soon-to-expire stock is consumed first.
func preferCandidate(candidate, current *domain.PantryItem, need domain.CanonicalQuantity) bool {
	// A comparable unit beats any surplus consideration.
	candComparable := candidate.Quantity.Unit == need.Unit
	currComparable := current.Quantity.Unit == need.Unit
	if candComparable != currComparable {
		return candComparable
	}

	candSurplus := candidate.Quantity.Amount.Sub(need.Amount).Abs()
	currSurplus := current.Quantity.Amount.Sub(need.Amount).Abs()
	if cmp := candSurplus.Cmp(currSurplus); cmp != 0 {
		return cmp < 0
	}

	switch {
	case candidate.Expiration == nil:
		return false
	case current.Expiration == nil:
		return true
	default:
		return candidate.Expiration.Before(*current.Expiration)
	}
}

// similarity computes a token-weighted, order-tolerant score on a 0-100
// scale between two canonical token sequences.
func (m *Matcher) similarity(reqTokens, candTokens []string) float64 {
	if len(reqTokens) == 0 || len(candTokens) == 0 {
		return 0
	}

	reqCoverage := m.weightedCoverage(reqTokens, candTokens)
	candCoverage := m.weightedCoverage(candTokens, reqTokens)

	// Requirement coverage dominates: a requirement fully contained in a
	// longer inventory name is a better signal than the reverse.
	return (reqCoverage*0.7 + candCoverage*0.3) * 100
}

// weightedCoverage is the weight fraction of tokens in a that appear in b,
// with fuzzy hits discounted.
func (m *Matcher) weightedCoverage(a, b []string) float64 {
	var total, matched float64
	for _, token := range a {
		w := tokenWeight(token)
		total += w
		switch {
		case containsToken(b, token):
			matched += w
		case m.enableFuzzyMatching && fuzzyContains(b, token, m.fuzzyEditDistance):
			matched += w * fuzzyWeightFactor
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}

func tokenWeight(token string) float64 {
	switch {
	case coreFoodTerms[token]:
		return weightCore
	case descriptiveFoodTerms[token]:
		return weightDescriptive
	default:
		return weightDefault
	}
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

func fuzzyContains(tokens []string, token string, threshold int) bool {
	for _, t := range tokens {
		if fuzzyTokenMatch(t, token, threshold) {
			return true
		}
	}
	return false
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance
// threshold. Short tokens are excluded to avoid false positives.
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}
	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}
	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	n := len(r2)

	// Two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
