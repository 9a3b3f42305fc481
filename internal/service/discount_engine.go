package service

import (
	"context"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// membershipWorkers bounds concurrent membership lookups against the catalog.
const membershipWorkers = 4

var percentBase = decimal.NewFromInt(100)

// CartLine is one purchasable line as submitted by the storefront. Price is
// the unit price in currency units.
type CartLine struct {
	ProductID string
	VariantID string
	Price     decimal.Decimal
	Quantity  int
	Title     string
}

// LineDiscount records the winning collection and the derived amounts for a
// single cart line. All amounts are line totals (unit price times quantity)
// and stay unrounded until presentation.
type LineDiscount struct {
	ProductID       string
	CollectionID    string
	PercentOff      decimal.Decimal
	OriginalPrice   decimal.Decimal
	DiscountedPrice decimal.Decimal
	DiscountAmount  decimal.Decimal
}

// LineResult pairs a cart line with its discount outcome. Match is nil when
// the product belongs to none of the resolved collections.
type LineResult struct {
	Line  CartLine
	Match *LineDiscount
}

// DiscountSummary aggregates the per-line results for the whole cart.
type DiscountSummary struct {
	TotalOriginal  decimal.Decimal
	TotalDiscount  decimal.Decimal
	SavingsPercent decimal.Decimal
}

// DiscountEngine prices a cart against a resolved rule set.
type DiscountEngine interface {
	// Compute returns one result per input line, in input order.
	Compute(ctx context.Context, lines []CartLine, resolved []ResolvedCollection) []LineResult
}

type discountEngine struct {
	catalog catalog.Service
	logger  *logger.Logger
}

func NewDiscountEngine(catalogSvc catalog.Service, logger *logger.Logger) DiscountEngine {
	return &discountEngine{
		catalog: catalogSvc,
		logger:  logger,
	}
}

// Compute fans the membership checks out across lines with a bounded worker
// pool. Each line scans the resolved collections best-percentage-first and
// stops at the first membership hit, so the applied rate is always the
// highest one the product qualifies for.
func (e *discountEngine) Compute(ctx context.Context, lines []CartLine, resolved []ResolvedCollection) []LineResult {
	results := make([]LineResult, len(lines))

	p := pool.New().WithMaxGoroutines(membershipWorkers)
	for i := range lines {
		i := i
		p.Go(func() {
			results[i] = e.computeLine(ctx, lines[i], resolved)
		})
	}
	p.Wait()

	return results
}

func (e *discountEngine) computeLine(ctx context.Context, line CartLine, resolved []ResolvedCollection) LineResult {
	result := LineResult{Line: line}

	for _, rc := range resolved {
		member, err := e.catalog.ProductInCollection(ctx, line.ProductID, rc.CollectionID)
		if err != nil {
			// A failed lookup never fails the order; the line simply does
			// not qualify for this collection.
			e.logger.Warnw("membership check failed, treating as non-member",
				"product_id", line.ProductID,
				"collection_id", rc.CollectionID,
				"error", err,
			)
			continue
		}
		if !member {
			continue
		}

		original := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		amount := original.Mul(rc.PercentOff).Div(percentBase)
		result.Match = &LineDiscount{
			ProductID:       line.ProductID,
			CollectionID:    rc.CollectionID,
			PercentOff:      rc.PercentOff,
			OriginalPrice:   original,
			DiscountedPrice: original.Sub(amount),
			DiscountAmount:  amount,
		}
		break
	}

	return result
}

// Summarize folds the per-line results into cart totals. Undiscounted lines
// still count toward the original total, so the savings percentage reflects
// the whole cart, not just the discounted part.
func Summarize(results []LineResult) DiscountSummary {
	summary := DiscountSummary{
		TotalOriginal:  decimal.Zero,
		TotalDiscount:  decimal.Zero,
		SavingsPercent: decimal.Zero,
	}

	for _, r := range results {
		original := r.Line.Price.Mul(decimal.NewFromInt(int64(r.Line.Quantity)))
		summary.TotalOriginal = summary.TotalOriginal.Add(original)
		if r.Match != nil {
			summary.TotalDiscount = summary.TotalDiscount.Add(r.Match.DiscountAmount)
		}
	}

	if summary.TotalOriginal.IsPositive() {
		summary.SavingsPercent = summary.TotalDiscount.Mul(percentBase).Div(summary.TotalOriginal)
	}

	return summary
}
