package shopify

import (
	"context"
	"net/http"
	"testing"

	"github.com/pixelpetals-dev/discount-editor/internal/config"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *testutil.MockHTTPClient) {
	t.Helper()

	mock := testutil.NewMockHTTPClient()
	cfg := config.GetDefaultConfig()
	cfg.Shopify = config.ShopifyConfig{
		ShopDomain:  "demo.myshopify.com",
		AccessToken: "shpat_test",
	}
	return NewClient(cfg, mock, logger.GetLogger()), mock
}

func TestClient_MissingCredentialsIsUnauthorized(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	cfg := config.GetDefaultConfig()
	client := NewClient(cfg, mock, logger.GetLogger())

	_, err := client.GetCustomer(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, ierr.IsUnauthorized(err))
	assert.Empty(t, mock.Requests, "no request should leave the process without credentials")
}

func TestClient_GetCustomerSplitsTags(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/customers/42.json", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"customer":{"id":42,"tags":"VIP, wholesale , ,newsletter"}}`),
	})

	customer, err := client.GetCustomer(context.Background(), "gid://shopify/Customer/42")
	require.NoError(t, err)
	assert.Equal(t, "42", customer.ID)
	assert.Equal(t, []string{"VIP", "wholesale", "newsletter"}, customer.Tags)
}

func TestClient_GetCustomerNotFound(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/customers/404.json", testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"errors":"Not Found"}`),
	})

	_, err := client.GetCustomer(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestClient_ListSegments(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/segments.json", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"segments":[{"id":9,"name":"VIP","query":"customer_tags CONTAINS 'VIP'"}]}`),
	})

	segments, err := client.ListSegments(context.Background())
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "9", segments[0].ID)
	assert.Equal(t, "VIP", segments[0].Name)
}

func TestClient_ProductInCollection(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/collects.json", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"collects":[{"id":1}]}`),
	})

	member, err := client.ProductInCollection(context.Background(), "gid://shopify/Product/7", "11")
	require.NoError(t, err)
	assert.True(t, member)

	// Bare IDs go out on the wire, not the prefixed form.
	require.Len(t, mock.Requests, 1)
	assert.Contains(t, mock.Requests[0].URL, "product_id=7")
	assert.Contains(t, mock.Requests[0].URL, "collection_id=11")
	assert.Contains(t, mock.Requests[0].URL, "limit=1")
}

func TestClient_ProductNotInCollection(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/collects.json", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"collects":[]}`),
	})

	member, err := client.ProductInCollection(context.Background(), "7", "11")
	require.NoError(t, err)
	assert.False(t, member)
}

func TestClient_CollectionsMetadata(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/collections.json", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"collections":[{"id":11,"title":"Sneakers","handle":"sneakers"}]}`),
	})

	collections, err := client.CollectionsMetadata(context.Background(), []string{"gid://shopify/Collection/11", "12"})
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, "11", collections[0].ID)
	assert.Equal(t, "Sneakers", collections[0].Title)

	require.Len(t, mock.Requests, 1)
	assert.Contains(t, mock.Requests[0].URL, "ids=11%2C12")
}

func TestClient_CollectionsMetadataEmptyInput(t *testing.T) {
	client, mock := newTestClient(t)

	collections, err := client.CollectionsMetadata(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, collections)
	assert.Empty(t, mock.Requests)
}
