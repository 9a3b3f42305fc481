package service

import (
	"testing"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/testutil"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PlanServiceSuite struct {
	testutil.BaseServiceTestSuite
	svc PlanService
}

func TestPlanService(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.GetCatalog().Segments = []*catalog.Segment{
		{ID: "gid://shopify/Segment/9", Name: "VIP"},
	}
	s.svc = NewPlanService(ServiceParams{
		Logger:    s.GetLogger(),
		Config:    s.GetConfig(),
		PlanRepo:  s.GetStores().PlanRepo,
		Catalog:   s.GetCatalog(),
		OrderSink: s.GetOrderSink(),
	})
}

func (s *PlanServiceSuite) validPlan() *plan.DiscountPlan {
	return &plan.DiscountPlan{
		Name:       "VIP Perks",
		TargetType: types.TargetTypeSegment,
		TargetKey:  "VIP",
		Rules: []*plan.Rule{
			{CategoryID: "11", PercentOff: decimal.NewFromInt(15)},
		},
	}
}

func (s *PlanServiceSuite) TestCreatePlan() {
	created, err := s.svc.CreatePlan(s.GetContext(), s.validPlan())
	s.Require().NoError(err)

	s.NotEmpty(created.ID)
	s.Contains(created.ID, types.UUID_PREFIX_PLAN+"_")
	s.Require().Len(created.Rules, 1)
	s.Contains(created.Rules[0].ID, types.UUID_PREFIX_RULE+"_")
	s.Equal(created.ID, created.Rules[0].PlanID)
	s.Equal("gid://shopify/Collection/11", created.Rules[0].CategoryID)

	got, err := s.svc.GetPlan(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.Name, got.Name)
}

func (s *PlanServiceSuite) TestCreateNormalizesSegmentTargetKey() {
	p := s.validPlan()
	p.TargetKey = "gid://shopify/Segment/9"

	created, err := s.svc.CreatePlan(s.GetContext(), p)
	s.Require().NoError(err)
	s.Equal("VIP", created.TargetKey)
}

func (s *PlanServiceSuite) TestCreateKeepsKeyWhenCatalogDown() {
	s.GetCatalog().SegmentsErr = errCatalogDown

	p := s.validPlan()
	p.TargetKey = "gid://shopify/Segment/9"

	created, err := s.svc.CreatePlan(s.GetContext(), p)
	s.Require().NoError(err)
	s.Equal("gid://shopify/Segment/9", created.TargetKey)
}

func (s *PlanServiceSuite) TestCreateRejectsSecondPlanForTarget() {
	_, err := s.svc.CreatePlan(s.GetContext(), s.validPlan())
	s.Require().NoError(err)

	_, err = s.svc.CreatePlan(s.GetContext(), s.validPlan())
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *PlanServiceSuite) TestCreateValidation() {
	tests := []struct {
		name   string
		mutate func(p *plan.DiscountPlan)
	}{
		{"empty name", func(p *plan.DiscountPlan) { p.Name = " " }},
		{"bad target type", func(p *plan.DiscountPlan) { p.TargetType = "region" }},
		{"empty target key", func(p *plan.DiscountPlan) { p.TargetKey = "" }},
		{"empty collection", func(p *plan.DiscountPlan) { p.Rules[0].CategoryID = "" }},
		{"zero percent", func(p *plan.DiscountPlan) { p.Rules[0].PercentOff = decimal.Zero }},
		{"negative percent", func(p *plan.DiscountPlan) { p.Rules[0].PercentOff = decimal.NewFromInt(-5) }},
		{"over 100 percent", func(p *plan.DiscountPlan) { p.Rules[0].PercentOff = decimal.NewFromInt(101) }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			p := s.validPlan()
			tt.mutate(p)
			_, err := s.svc.CreatePlan(s.GetContext(), p)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *PlanServiceSuite) TestFullPercentIsAllowed() {
	p := s.validPlan()
	p.Rules[0].PercentOff = decimal.NewFromInt(100)

	_, err := s.svc.CreatePlan(s.GetContext(), p)
	s.NoError(err)
}

func (s *PlanServiceSuite) TestUpdatePlan() {
	created, err := s.svc.CreatePlan(s.GetContext(), s.validPlan())
	s.Require().NoError(err)

	created.Name = "VIP Perks v2"
	created.Rules = append(created.Rules, &plan.Rule{
		CategoryID: "12",
		PercentOff: decimal.NewFromInt(30),
	})

	updated, err := s.svc.UpdatePlan(s.GetContext(), created)
	s.Require().NoError(err)
	s.Equal("VIP Perks v2", updated.Name)
	s.Require().Len(updated.Rules, 2)
	s.NotEmpty(updated.Rules[1].ID)
}

func (s *PlanServiceSuite) TestUpdateUnknownPlan() {
	p := s.validPlan()
	p.ID = "plan_missing"

	_, err := s.svc.UpdatePlan(s.GetContext(), p)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PlanServiceSuite) TestDeletePlan() {
	created, err := s.svc.CreatePlan(s.GetContext(), s.validPlan())
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeletePlan(s.GetContext(), created.ID))

	_, err = s.svc.GetPlan(s.GetContext(), created.ID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PlanServiceSuite) TestListPlans() {
	_, err := s.svc.CreatePlan(s.GetContext(), s.validPlan())
	s.Require().NoError(err)

	second := s.validPlan()
	second.TargetKey = "Wholesale"
	_, err = s.svc.CreatePlan(s.GetContext(), second)
	s.Require().NoError(err)

	plans, err := s.svc.ListPlans(s.GetContext())
	s.Require().NoError(err)
	s.Len(plans, 2)
}
