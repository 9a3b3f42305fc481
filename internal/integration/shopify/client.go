package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pixelpetals-dev/discount-editor/internal/config"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/catalog"
	"github.com/pixelpetals-dev/discount-editor/internal/domain/order"
	ierr "github.com/pixelpetals-dev/discount-editor/internal/errors"
	"github.com/pixelpetals-dev/discount-editor/internal/httpclient"
	"github.com/pixelpetals-dev/discount-editor/internal/logger"
	"github.com/pixelpetals-dev/discount-editor/internal/types"
)

// Client talks to the Shopify Admin REST API. It implements both the catalog
// read contract and the draft-order sink. Credentials are injected through
// config; the client holds no ambient or mutable session state.
type Client struct {
	cfg    config.ShopifyConfig
	http   httpclient.Client
	logger *logger.Logger
}

func NewClient(cfg *config.Configuration, http httpclient.Client, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg.Shopify,
		http:   http,
		logger: logger,
	}
}

// AsCatalogService exposes the client under the catalog read contract.
func AsCatalogService(c *Client) catalog.Service { return c }

// AsOrderSink exposes the client under the order sink contract.
func AsOrderSink(c *Client) order.Sink { return c }

func (c *Client) checkCredentials() error {
	if c.cfg.ShopDomain == "" || c.cfg.AccessToken == "" {
		return ierr.NewError("shopify credentials are not configured").
			WithHint("Shop domain and access token are required").
			Mark(ierr.ErrUnauthorized)
	}
	return nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"X-Shopify-Access-Token": c.cfg.AccessToken,
		"Accept":                 "application/json",
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}

	u := c.cfg.BaseURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     u,
		Headers: c.headers(),
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return ierr.WithError(err).
			WithHint("Unexpected response from the catalog service").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

type customerEnvelope struct {
	Customer struct {
		ID   int64  `json:"id"`
		Tags string `json:"tags"`
	} `json:"customer"`
}

// GetCustomer fetches a customer and splits the comma-separated tag field into
// a clean tag list.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*catalog.Customer, error) {
	bare, ok := types.BareID(customerID)
	if !ok {
		c.logger.Warnw("unrecognized customer identifier", "customer_id", customerID)
	}

	var env customerEnvelope
	if err := c.get(ctx, fmt.Sprintf("/customers/%s.json", bare), nil, &env); err != nil {
		if httpErr, isHTTP := httpclient.IsHTTPError(err); isHTTP && httpErr.StatusCode == http.StatusNotFound {
			return nil, ierr.WithError(err).
				WithHint("Customer not found").
				WithReportableDetails(map[string]any{"customer_id": customerID}).
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}

	var tags []string
	for _, tag := range strings.Split(env.Customer.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &catalog.Customer{
		ID:   fmt.Sprintf("%d", env.Customer.ID),
		Tags: tags,
	}, nil
}

type segmentsEnvelope struct {
	Segments []struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Query string `json:"query"`
	} `json:"segments"`
}

func (c *Client) ListSegments(ctx context.Context) ([]*catalog.Segment, error) {
	var env segmentsEnvelope
	if err := c.get(ctx, "/segments.json", nil, &env); err != nil {
		return nil, err
	}

	segments := make([]*catalog.Segment, 0, len(env.Segments))
	for _, s := range env.Segments {
		segments = append(segments, &catalog.Segment{
			ID:    fmt.Sprintf("%d", s.ID),
			Name:  s.Name,
			Query: s.Query,
		})
	}
	return segments, nil
}

type collectsEnvelope struct {
	Collects []struct {
		ID int64 `json:"id"`
	} `json:"collects"`
}

// ProductInCollection answers membership through the collects endpoint in a
// single bounded call.
func (c *Client) ProductInCollection(ctx context.Context, productID, collectionID string) (bool, error) {
	productBare, _ := types.BareID(productID)
	collectionBare, _ := types.BareID(collectionID)

	query := url.Values{}
	query.Set("product_id", productBare)
	query.Set("collection_id", collectionBare)
	query.Set("limit", "1")

	var env collectsEnvelope
	if err := c.get(ctx, "/collects.json", query, &env); err != nil {
		return false, err
	}
	return len(env.Collects) > 0, nil
}

type collectionsEnvelope struct {
	Collections []struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Handle string `json:"handle"`
	} `json:"collections"`
}

// CollectionsMetadata resolves title/handle for the given collections in one
// round trip. IDs the catalog does not know are absent from the result; the
// caller decides how to degrade.
func (c *Client) CollectionsMetadata(ctx context.Context, collectionIDs []string) ([]*catalog.Collection, error) {
	if len(collectionIDs) == 0 {
		return nil, nil
	}

	bare := make([]string, 0, len(collectionIDs))
	for _, id := range collectionIDs {
		b, _ := types.BareID(id)
		bare = append(bare, b)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(bare, ","))
	query.Set("fields", "id,title,handle")

	var env collectionsEnvelope
	if err := c.get(ctx, "/collections.json", query, &env); err != nil {
		return nil, err
	}

	collections := make([]*catalog.Collection, 0, len(env.Collections))
	for _, col := range env.Collections {
		collections = append(collections, &catalog.Collection{
			ID:     fmt.Sprintf("%d", col.ID),
			Title:  col.Title,
			Handle: col.Handle,
		})
	}
	return collections, nil
}
