package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prepsense/backend/internal/domain"
)

// LedgerConfig holds configuration for the pantry ledger
type LedgerConfig struct {
	// DeductionTimeout bounds each deduction transaction. Default 5s.
	DeductionTimeout time.Duration
	// Density lookups per canonical ingredient name, used to bridge a
	// volume-specified requirement against mass-tracked stock.
	Densities map[string]domain.Density
}

// Ledger orchestrates matching and deduction: the read path aggregates the
// matcher over a recipe's requirements, the write path executes the
// conditional deduction batch against the backing store.
//
// Batch policy: partial commit. Each line's stock predicate is independent;
// lines that pass commit together, lines that fail are reported as
// insufficient, and one short line never aborts the batch.
type Ledger struct {
	repo             domain.PantryRepository
	matcher          *Matcher
	densities        map[string]domain.Density
	deductionTimeout time.Duration
	logger           *zap.Logger
}

// NewLedger creates a ledger over the given repository and matcher
func NewLedger(repo domain.PantryRepository, matcher *Matcher, config LedgerConfig, logger *zap.Logger) *Ledger {
	timeout := config.DeductionTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		repo:             repo,
		matcher:          matcher,
		densities:        config.Densities,
		deductionTimeout: timeout,
		logger:           logger,
	}
}

// MatchAll pairs every requirement against the inventory snapshot and
// computes coverage. Pure and side-effect free; the snapshot is read outside
// any lock, so results are an eventually-consistent view that the deduction
// path re-validates at commit time.
func (l *Ledger) MatchAll(ctx context.Context, requirements []domain.RecipeIngredientRequirement, inventory []domain.PantryItem) (domain.MatchReport, error) {
	if len(requirements) == 0 {
		return domain.MatchReport{}, fmt.Errorf("%w: no requirements", domain.ErrInvalidRequest)
	}

	results := make([]domain.MatchResult, 0, len(requirements))
	matched := 0
	for _, req := range requirements {
		select {
		case <-ctx.Done():
			return domain.MatchReport{}, ctx.Err()
		default:
		}

		need := l.canonicalizeRequirement(req)
		result := l.matcher.Match(req, need, inventory)
		if result.Matched {
			matched++
		}
		results = append(results, result)
	}

	return domain.MatchReport{
		Results:  results,
		Coverage: float64(matched) / float64(len(requirements)),
	}, nil
}

// canonicalizeRequirement reduces a requirement's raw amount and unit to a
// canonical quantity. Unknown units degrade to count/"each" with a warning
// rather than dropping the requirement. Ingredients with a configured density
// are tracked by mass, so a volume-specified requirement is bridged to grams
// to stay comparable with stock.
func (l *Ledger) canonicalizeRequirement(req domain.RecipeIngredientRequirement) domain.CanonicalQuantity {
	q := CanonicalizeLenient(l.logger, req.Amount, req.Unit, ConversionOptions{})

	density, ok := l.densities[CanonicalName(req.Name)]
	if !ok || q.Unit != domain.UnitMilliliter {
		return q
	}
	bridged, err := CanonicalizeQuantity(q.Amount, string(q.Unit), ConversionOptions{
		Target:  domain.DimensionMass,
		Density: density,
	})
	if err != nil {
		return q
	}
	return bridged
}

// Deduct removes the requested amounts from inventory as one isolated
// transaction. Lines whose conditional predicate fails come back as
// insufficient; store-level conflicts and timeouts fail the whole batch with
// no audit records. Deduction is never retried here; callers decide whether
// to re-attempt.
func (l *Ledger) Deduct(ctx context.Context, ownerID string, lines []domain.DeductionLine, reason string) (domain.DeductionOutcome, error) {
	if ownerID == "" || len(lines) == 0 {
		return domain.DeductionOutcome{}, fmt.Errorf("%w: owner and lines are required", domain.ErrInvalidRequest)
	}
	// Amounts are normalized to the canonical precision here so every
	// backing store sees the same granularity; a line too small to survive
	// the rounding is rejected rather than silently becoming a no-op.
	normalized := make([]domain.DeductionLine, len(lines))
	for i, line := range lines {
		if line.PantryItemID == "" {
			return domain.DeductionOutcome{}, fmt.Errorf("%w: line missing pantry item id", domain.ErrInvalidRequest)
		}
		if !line.Amount.IsPositive() {
			return domain.DeductionOutcome{}, fmt.Errorf("%w: deduction amount must be positive", domain.ErrInvalidRequest)
		}
		amount := line.Amount.Round(DefaultPrecision)
		if amount.IsZero() {
			return domain.DeductionOutcome{}, fmt.Errorf("%w: deduction amount %s is below the %d decimal place granularity",
				domain.ErrInvalidRequest, line.Amount, DefaultPrecision)
		}
		normalized[i] = domain.DeductionLine{PantryItemID: line.PantryItemID, Amount: amount}
	}
	lines = normalized
	if reason == "" {
		reason = "recipe cooked"
	}

	ctx, cancel := context.WithTimeout(ctx, l.deductionTimeout)
	defer cancel()

	outcome, err := l.repo.Deduct(ctx, ownerID, lines, reason)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.logger.Error("deduction batch timed out",
				zap.String("owner", ownerID),
				zap.Int("lines", len(lines)),
			)
			return domain.DeductionOutcome{}, fmt.Errorf("%w: deduction timed out", domain.ErrTransactionConflict)
		}
		return domain.DeductionOutcome{}, err
	}

	l.logger.Info("deduction batch committed",
		zap.String("owner", ownerID),
		zap.Int("succeeded", len(outcome.Succeeded)),
		zap.Int("insufficient", len(outcome.Insufficient)),
	)
	return outcome, nil
}

// MatchAndDeduct is the "I cooked this recipe" path: match the requirements
// against the owner's current inventory, then deduct the needed amount for
// every matched line. Unmatched requirements are skipped, reported through
// the returned report.
func (l *Ledger) MatchAndDeduct(ctx context.Context, ownerID string, requirements []domain.RecipeIngredientRequirement, reason string) (domain.MatchReport, domain.DeductionOutcome, error) {
	inventory, err := l.repo.ItemsForOwner(ctx, ownerID)
	if err != nil {
		return domain.MatchReport{}, domain.DeductionOutcome{}, err
	}

	report, err := l.MatchAll(ctx, requirements, inventory)
	if err != nil {
		return domain.MatchReport{}, domain.DeductionOutcome{}, err
	}

	var lines []domain.DeductionLine
	for _, r := range report.Results {
		if !r.Matched {
			continue
		}
		amount := r.Need
		// Stock can only cover what it has; the conditional update would
		// reject the full need, so clamp to the matched row's quantity.
		if r.Have.LessThan(r.Need) {
			amount = r.Have
		}
		if amount.IsPositive() {
			lines = append(lines, domain.DeductionLine{PantryItemID: r.PantryItemID, Amount: amount})
		}
	}
	if len(lines) == 0 {
		return report, domain.DeductionOutcome{}, nil
	}

	outcome, err := l.Deduct(ctx, ownerID, lines, reason)
	if err != nil {
		return report, domain.DeductionOutcome{}, err
	}
	return report, outcome, nil
}
