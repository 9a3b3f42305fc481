package testutil

import (
	"context"
	"sync"

	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

// FakeCatalog implements catalog.Service with canned data and per-method call
// counters, so tests can assert how many round trips a code path costs.
type FakeCatalog struct {
	mu sync.Mutex

	Customers   map[string]*catalog.Customer
	Segments    []*catalog.Segment
	Collections map[string]*catalog.Collection
	// Membership maps productID -> collectionIDs the product belongs to.
	Membership map[string][]string

	// Failure switches
	SegmentsErr   error
	MembershipErr error
	MetadataErr   error

	// Call counters
	GetCustomerCalls  int
	ListSegmentsCalls int
	MembershipCalls   int
	MetadataCalls     int
}

func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		Customers:   make(map[string]*catalog.Customer),
		Collections: make(map[string]*catalog.Collection),
		Membership:  make(map[string][]string),
	}
}

func (f *FakeCatalog) GetCustomer(ctx context.Context, customerID string) (*catalog.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCustomerCalls++

	c, ok := f.Customers[customerID]
	if !ok {
		return nil, ierr.NewError("customer not found").
			WithReportableDetails(map[string]any{"customer_id": customerID}).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (f *FakeCatalog) ListSegments(ctx context.Context) ([]*catalog.Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListSegmentsCalls++

	if f.SegmentsErr != nil {
		return nil, f.SegmentsErr
	}
	return f.Segments, nil
}

func (f *FakeCatalog) ProductInCollection(ctx context.Context, productID, collectionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MembershipCalls++

	if f.MembershipErr != nil {
		return false, f.MembershipErr
	}

	bareProduct, _ := types.BareID(productID)
	for _, id := range f.Membership[bareProduct] {
		if types.GIDEqual(id, collectionID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeCatalog) CollectionsMetadata(ctx context.Context, collectionIDs []string) ([]*catalog.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MetadataCalls++

	if f.MetadataErr != nil {
		return nil, f.MetadataErr
	}

	var result []*catalog.Collection
	for _, id := range collectionIDs {
		bare, _ := types.BareID(id)
		if c, ok := f.Collections[bare]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}
