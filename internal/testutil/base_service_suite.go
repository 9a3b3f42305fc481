package testutil

import (
	"context"
	"time"

	"github.com/pixelpetals-dev/discount-editor/internal/config"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/stretchr/testify/suite"
)

// Stores holds the repository fakes for testing
type Stores struct {
	PlanRepo *InMemoryPlanStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	stores  Stores
	catalog *FakeCatalog
	sink    *FakeOrderSink
	logger  *logger.Logger
	config  *config.Configuration
	now     time.Time
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.logger = logger.GetLogger()
	s.config = config.GetDefaultConfig()
	s.now = time.Now().UTC()

	s.stores = Stores{
		PlanRepo: NewInMemoryPlanStore(),
	}
	s.catalog = NewFakeCatalog()
	s.sink = NewFakeOrderSink()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCatalog() *FakeCatalog {
	return s.catalog
}

func (s *BaseServiceTestSuite) GetOrderSink() *FakeOrderSink {
	return s.sink
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
