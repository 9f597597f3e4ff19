package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/smartymode/folio/pkg/core"
)

// Catalog errors.
var (
	ErrUnavailable      = errors.New("catalog unavailable")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingBaseURL   = errors.New("catalog base url is required")
)

const (
	// DefaultTimeout bounds a single catalog request.
	DefaultTimeout = 30 * time.Second
	// DefaultPageSize is the page size used by ListAll when Filters.Limit is unset.
	DefaultPageSize = 100

	maxResponseBytes = 10 * 1024 * 1024
	productsPath     = "/items/products"
)

// Config holds the configuration for a catalog client.
type Config struct {
	BaseURL string
	Token   string
	// SiteID scopes every query to one tenant unless a filter overrides it.
	SiteID  string
	Timeout time.Duration
	// RequestsPerSecond paces paginated reads. Zero means unlimited.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Filters narrows a product listing.
type Filters struct {
	Status Status // defaults to StatusFetched
	SiteID string // defaults to the client's SiteID
	Limit  int
	Offset int
}

// Client reads products from the catalog REST API.
type Client struct {
	baseURL    string
	token      string
	siteID     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a catalog client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		siteID:     strings.TrimSpace(cfg.SiteID),
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     cfg.Logger.With("component", "catalog"),
	}, nil
}

// ListProducts fetches one page of products, newest first.
func (c *Client) ListProducts(ctx context.Context, f Filters) ([]Record, error) {
	params := url.Values{}
	status := f.Status
	if status == "" {
		status = StatusFetched
	}
	params.Set("filter[status][_eq]", string(status))
	c.scope(params, f.SiteID)
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("offset", strconv.Itoa(f.Offset))
	}
	params.Set("sort", "-date_created")

	return c.query(ctx, params)
}

// ListAll pages through ListProducts until a short page is returned or max
// records were collected. A maxRecords of zero or less means no cap.
func (c *Client) ListAll(ctx context.Context, f Filters, maxRecords int) ([]Record, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if maxRecords > 0 && f.Limit > maxRecords {
		f.Limit = maxRecords
	}

	var all []Record
	for {
		page, err := c.ListProducts(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if maxRecords > 0 && len(all) >= maxRecords {
			return all[:maxRecords], nil
		}
		if len(page) < f.Limit {
			return all, nil
		}
		f.Offset += len(page)
	}
}

// GetProductByExternalID fetches a single product by its external identifier.
// It returns core.ErrNotFound when the catalog has no such record.
func (c *Client) GetProductByExternalID(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, core.ErrNotFound
	}

	params := url.Values{}
	params.Set("filter[asin][_eq]", id)
	c.scope(params, "")
	params.Set("limit", "1")

	records, err := c.query(ctx, params)
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, core.ErrNotFound
	}
	return records[0], nil
}

func (c *Client) scope(params url.Values, override string) {
	site := strings.TrimSpace(override)
	if site == "" {
		site = c.siteID
	}
	if site != "" {
		params.Set("filter[site_id][_eq]", site)
	}
}

// query performs one GET against the products collection.
// Every failure wraps ErrUnavailable.
func (c *Client) query(ctx context.Context, params url.Values) (records []Record, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	endpoint := c.baseURL + productsPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	c.logger.Debug("catalog request", "query", params.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w: %d %s", ErrUnavailable, ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %w", ErrUnavailable, err)
	}
	return envelope.Data, nil
}
