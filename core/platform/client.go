package platform

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-insights/core/apperror"
	"catalog-insights/core/models"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// maxPages guards against a platform that never reports the last page.
const maxPages = 10000

// errorBodyLimit caps how much of an error response is kept in the error message.
const errorBodyLimit = 512

// DeploymentFilter narrows a deployment listing. Empty fields are ignored.
type DeploymentFilter struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
	Search    string `json:"search"`
}

// Client talks to the platform API.
type Client struct {
	baseURL       *url.URL
	token         string
	pageSize      int
	maxTries      uint
	retryInterval time.Duration
	http          *http.Client
	logger        *zap.Logger
}

// NewClient creates a platform client from cfg. A nil logger disables logging.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid platform base url %q", cfg.BaseURL)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	interval := time.Duration(cfg.RetryIntervalMillis) * time.Millisecond
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}, //nolint:gosec // opt-in for lab platforms
	}

	return &Client{
		baseURL:       base,
		token:         cfg.Token,
		pageSize:      pageSize,
		maxTries:      uint(retries) + 1,
		retryInterval: interval,
		http:          &http.Client{Transport: transport, Timeout: timeoutDuration},
		logger:        logger,
	}, nil
}

// ListCatalogItems returns every catalog item, following pagination.
func (c *Client) ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error) {
	dtos, err := listAll[catalogItemDTO](ctx, c, "list catalog items", "/catalog/api/items", nil)
	if err != nil {
		return nil, err
	}
	items := make([]models.CatalogItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.model())
	}
	return items, nil
}

// ListDeployments returns every deployment matching filter, following pagination.
func (c *Client) ListDeployments(ctx context.Context, filter DeploymentFilter) ([]models.Deployment, error) {
	query := url.Values{}
	if filter.ProjectID != "" {
		query.Set("projects", filter.ProjectID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	query.Set("expand", "resources")

	dtos, err := listAll[deploymentDTO](ctx, c, "list deployments", "/deployment/api/deployments", query)
	if err != nil {
		return nil, err
	}
	deployments := make([]models.Deployment, 0, len(dtos))
	for _, d := range dtos {
		deployments = append(deployments, d.model())
	}
	return deployments, nil
}

// FetchResources returns the resources of one deployment.
func (c *Client) FetchResources(ctx context.Context, deploymentID string) ([]models.Resource, error) {
	path := "/deployment/api/deployments/" + url.PathEscape(deploymentID) + "/resources"
	dtos, err := listAll[resourceDTO](ctx, c, "fetch resources", path, nil)
	if err != nil {
		return nil, err
	}
	list := make([]models.Resource, 0, len(dtos))
	for _, d := range dtos {
		list = append(list, d.model(deploymentID))
	}
	return list, nil
}

// RequestDeployment requests a new deployment of a catalog item.
func (c *Client) RequestDeployment(ctx context.Context, catalogItemID string, req DeploymentRequest) (*DeploymentRequestResult, error) {
	path := "/catalog/api/items/" + url.PathEscape(catalogItemID) + "/request"

	var results []DeploymentRequestResult
	if err := c.do(ctx, "request deployment", http.MethodPost, path, nil, req, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperror.NewUpstreamError("request deployment", 0, errors.New("platform returned no deployment"))
	}
	return &results[0], nil
}

func listAll[T any](ctx context.Context, c *Client, op, path string, query url.Values) ([]T, error) {
	var all []T
	for n := 0; n < maxPages; n++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(n))
		q.Set("size", strconv.Itoa(c.pageSize))

		var p page[T]
		if err := c.do(ctx, op, http.MethodGet, path, q, nil, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Content...)

		if p.Last || len(p.Content) == 0 || (p.TotalPages > 0 && n+1 >= p.TotalPages) {
			c.logger.Debug("Platform listing complete",
				zap.String("operation", op),
				zap.Int("pages", n+1),
				zap.Int("elements", len(all)),
			)
			return all, nil
		}
	}
	return nil, apperror.NewUpstreamError(op, 0, fmt.Errorf("pagination exceeded %d pages", maxPages))
}

// do performs one API call with retries. Transport errors, 429 and 5xx are
// retried; other statuses fail immediately.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
	}

	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()
	target := u.String()

	attempt := 0
	operation := func() (struct{}, error) {
		attempt++
		err := c.once(ctx, op, method, target, payload, out)
		if err == nil {
			return struct{}{}, nil
		}

		var upstream *apperror.UpstreamError
		if errors.As(err, &upstream) && !retryable(upstream.StatusCode) {
			return struct{}{}, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return struct{}{}, backoff.Permanent(err)
		}

		c.logger.Debug("Platform call failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return struct{}{}, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
	)
	if err == nil {
		return nil
	}

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Unwrap()
	}
	if !apperror.IsUpstream(err) {
		err = apperror.NewUpstreamError(op, 0, err)
	}
	return err
}

func (c *Client) once(ctx context.Context, op, method, target string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperror.NewUpstreamError(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.NewUpstreamError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return apperror.NewUpstreamError(op, resp.StatusCode, errors.New(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstreamError(op, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func retryable(status int) bool {
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}
