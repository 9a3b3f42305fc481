package service

import (
	"errors"
	"testing"

	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var errCatalogDown = errors.New("catalog unavailable")

type DiscountEngineSuite struct {
	testutil.BaseServiceTestSuite
	engine DiscountEngine
}

func TestDiscountEngine(t *testing.T) {
	suite.Run(t, new(DiscountEngineSuite))
}

func (s *DiscountEngineSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.engine = NewDiscountEngine(s.GetCatalog(), logger.GetLogger())
}

func (s *DiscountEngineSuite) TestLinePricing() {
	s.GetCatalog().Membership["p1"] = []string{"c1"}

	lines := []CartLine{
		{ProductID: "p1", VariantID: "v1", Price: decimal.NewFromInt(100), Quantity: 2},
	}
	resolved := []ResolvedCollection{
		{CollectionID: "c1", PercentOff: decimal.NewFromInt(15)},
	}

	results := s.engine.Compute(s.GetContext(), lines, resolved)
	s.Require().Len(results, 1)
	s.Require().NotNil(results[0].Match)

	m := results[0].Match
	s.True(m.OriginalPrice.Equal(decimal.NewFromInt(200)), "original %s", m.OriginalPrice)
	s.True(m.DiscountAmount.Equal(decimal.NewFromInt(30)), "amount %s", m.DiscountAmount)
	s.True(m.DiscountedPrice.Equal(decimal.NewFromInt(170)), "discounted %s", m.DiscountedPrice)

	summary := Summarize(results)
	s.True(summary.TotalOriginal.Equal(decimal.NewFromInt(200)))
	s.True(summary.TotalDiscount.Equal(decimal.NewFromInt(30)))
	s.True(summary.SavingsPercent.Equal(decimal.NewFromInt(15)))
}

func (s *DiscountEngineSuite) TestBestCollectionWinsPerLine() {
	// p1 belongs to both collections; the 40% one must apply.
	s.GetCatalog().Membership["p1"] = []string{"c_low", "c_high"}

	lines := []CartLine{
		{ProductID: "p1", VariantID: "v1", Price: decimal.NewFromInt(50), Quantity: 1},
	}
	resolved := OrderResolved(map[string]decimal.Decimal{
		"c_low":  decimal.NewFromInt(10),
		"c_high": decimal.NewFromInt(40),
	})

	results := s.engine.Compute(s.GetContext(), lines, resolved)
	s.Require().NotNil(results[0].Match)
	s.Equal("c_high", results[0].Match.CollectionID)
	s.True(results[0].Match.PercentOff.Equal(decimal.NewFromInt(40)))
}

func (s *DiscountEngineSuite) TestMembershipFailureMeansNoDiscount() {
	s.GetCatalog().Membership["p1"] = []string{"c1"}
	s.GetCatalog().MembershipErr = errCatalogDown

	lines := []CartLine{
		{ProductID: "p1", VariantID: "v1", Price: decimal.NewFromInt(100), Quantity: 1},
	}
	resolved := []ResolvedCollection{
		{CollectionID: "c1", PercentOff: decimal.NewFromInt(15)},
	}

	results := s.engine.Compute(s.GetContext(), lines, resolved)
	s.Require().Len(results, 1)
	s.Nil(results[0].Match)

	summary := Summarize(results)
	s.True(summary.TotalOriginal.Equal(decimal.NewFromInt(100)))
	s.True(summary.TotalDiscount.IsZero())
	s.True(summary.SavingsPercent.IsZero())
}

func (s *DiscountEngineSuite) TestNonMemberLineKeepsFullPrice() {
	s.GetCatalog().Membership["p1"] = []string{"c1"}

	lines := []CartLine{
		{ProductID: "p1", VariantID: "v1", Price: decimal.NewFromInt(100), Quantity: 1},
		{ProductID: "p2", VariantID: "v2", Price: decimal.NewFromInt(60), Quantity: 1},
	}
	resolved := []ResolvedCollection{
		{CollectionID: "c1", PercentOff: decimal.NewFromInt(10)},
	}

	results := s.engine.Compute(s.GetContext(), lines, resolved)
	s.Require().Len(results, 2)
	s.NotNil(results[0].Match)
	s.Nil(results[1].Match)

	summary := Summarize(results)
	s.True(summary.TotalOriginal.Equal(decimal.NewFromInt(160)))
	s.True(summary.TotalDiscount.Equal(decimal.NewFromInt(10)))
}

func (s *DiscountEngineSuite) TestResultsPreserveInputOrder() {
	for i := 0; i < 8; i++ {
		s.GetCatalog().Membership["p"+string(rune('0'+i))] = []string{"c1"}
	}

	var lines []CartLine
	for i := 0; i < 8; i++ {
		lines = append(lines, CartLine{
			ProductID: "p" + string(rune('0'+i)),
			VariantID: "v" + string(rune('0'+i)),
			Price:     decimal.NewFromInt(int64(10 * (i + 1))),
			Quantity:  1,
		})
	}
	resolved := []ResolvedCollection{
		{CollectionID: "c1", PercentOff: decimal.NewFromInt(10)},
	}

	results := s.engine.Compute(s.GetContext(), lines, resolved)
	s.Require().Len(results, 8)
	for i, r := range results {
		s.Equal(lines[i].ProductID, r.Line.ProductID)
	}
}

func (s *DiscountEngineSuite) TestEmptyCartSummary() {
	summary := Summarize(nil)
	s.True(summary.TotalOriginal.IsZero())
	s.True(summary.TotalDiscount.IsZero())
	s.True(summary.SavingsPercent.IsZero())
}
