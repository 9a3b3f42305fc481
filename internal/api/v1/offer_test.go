package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/plan"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/rest/middleware"
	"github.com/pixelpetals-dev/discount-editor/internal/service"
	"github.com/pixelpetals-dev/discount-editor/internal/testutil"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OfferHandlerSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestOfferHandler(t *testing.T) {
	suite.Run(t, new(OfferHandlerSuite))
}

func (s *OfferHandlerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	gin.SetMode(gin.TestMode)

	params := service.ServiceParams{
		Logger:    s.GetLogger(),
		Config:    s.GetConfig(),
		PlanRepo:  s.GetStores().PlanRepo,
		Catalog:   s.GetCatalog(),
		OrderSink: s.GetOrderSink(),
	}
	matcher := service.NewSegmentMatcher(logger.GetLogger())
	selector := service.NewPlanSelector(params.PlanRepo, service.HighestRateStrategy{}, logger.GetLogger())
	offerService := service.NewOfferService(params, matcher, selector)

	s.router = gin.New()
	s.router.Use(middleware.RequestIDMiddleware)
	s.router.Use(middleware.ErrorHandler())
	s.router.POST("/v1/offers/resolve", NewOfferHandler(offerService, s.GetLogger()).ResolveOffer)
}

func (s *OfferHandlerSuite) seedVIPWorld() {
	s.GetCatalog().Customers["42"] = &catalog.Customer{ID: "42", Tags: []string{"VIP"}}
	s.GetCatalog().Segments = []*catalog.Segment{{ID: "9", Name: "VIP"}}
	s.GetCatalog().Collections["11"] = &catalog.Collection{ID: "11", Title: "Sneakers", Handle: "sneakers"}

	p := &plan.DiscountPlan{
		ID:         "plan_1",
		Name:       "VIP Perks",
		TargetType: types.TargetTypeSegment,
		TargetKey:  "VIP",
		Rules: []*plan.Rule{
			{ID: "rule_1", PlanID: "plan_1", CategoryID: "11", PercentOff: decimal.NewFromInt(25)},
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().PlanRepo.Create(s.GetContext(), p))
}

func (s *OfferHandlerSuite) resolve(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/offers/resolve", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *OfferHandlerSuite) TestResolveOffer() {
	s.seedVIPWorld()

	w := s.resolve(`{"customer":{"id":"42","tags":["VIP"]}}`)
	s.Equal(http.StatusOK, w.Code)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(true, body["success"])

	offer := body["offer"].(map[string]any)
	s.Equal(true, offer["discountApplicable"])
	s.Equal("VIP", offer["segmentName"])
	s.Equal("VIP Perks", offer["planName"])
	s.Equal(float64(25), offer["highestDiscountRate"])

	collections := offer["collections"].([]any)
	s.Require().Len(collections, 1)
	col := collections[0].(map[string]any)
	s.Equal("11", col["id"])
	s.Equal("Sneakers", col["title"])
	s.Equal("sneakers", col["handle"])
	s.Equal(float64(25), col["percentOff"])
}

func (s *OfferHandlerSuite) TestNoMatchEndToEnd() {
	s.seedVIPWorld()
	s.GetCatalog().Customers["77"] = &catalog.Customer{ID: "77", Tags: []string{"regular"}}

	w := s.resolve(`{"customer":{"id":"77","tags":["regular"]}}`)
	s.Equal(http.StatusOK, w.Code)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(true, body["success"])

	offer := body["offer"].(map[string]any)
	s.Equal(false, offer["discountApplicable"])
	s.NotContains(offer, "segmentName")
	s.NotContains(offer, "collections")
}

func (s *OfferHandlerSuite) TestMissingCustomerIs400() {
	w := s.resolve(`{}`)
	s.Equal(http.StatusBadRequest, w.Code)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(false, body["success"])
}

func (s *OfferHandlerSuite) TestUnknownCustomerIs404() {
	s.seedVIPWorld()

	w := s.resolve(`{"customer":{"id":"404"}}`)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *OfferHandlerSuite) TestIdempotentResolution() {
	s.seedVIPWorld()

	first := s.resolve(`{"customer":{"id":"42","tags":["VIP"]}}`)
	second := s.resolve(`{"customer":{"id":"42","tags":["VIP"]}}`)
	s.Equal(http.StatusOK, first.Code)
	s.Equal(first.Body.String(), second.Body.String())
}
