package catalog

import (
	"context"
)

// Service is the read contract against the external catalog/customer service.
// Implementations must bound every call with the request context; retry policy
// belongs to the caller, not the client.
type Service interface {
	// GetCustomer fetches a customer with its raw tag list.
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)

	// ListSegments fetches the full segment catalog.
	ListSegments(ctx context.Context) ([]*Segment, error)

	// ProductInCollection answers membership for a (product, collection) pair.
	ProductInCollection(ctx context.Context, productID, collectionID string) (bool, error)

	// CollectionsMetadata resolves title/handle for the given collection IDs
	// in a single round trip. Unknown IDs are simply absent from the result.
	CollectionsMetadata(ctx context.Context, collectionIDs []string) ([]*Collection, error)
}
