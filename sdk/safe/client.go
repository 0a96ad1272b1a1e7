package safe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/julius-network/safeprop/types"
)

const defaultTimeout = 30 * time.Second

// apiSuffix matches the API part of a service URL, which is dropped to build links into the
// Safe web app.
var apiSuffix = regexp.MustCompile(`/api.*$`)

// ServiceError is returned when the transaction service answers with a non-2xx status.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("Safe service error %d: %s", e.StatusCode, e.Body)
}

// Client talks to a Safe Transaction Service.
type Client struct {
	serviceURL string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client, which times out after 30 seconds.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// NewClient returns a client for the service at serviceURL.
func NewClient(serviceURL string, opts ...ClientOption) (*Client, error) {
	if serviceURL == "" {
		return nil, errors.New("safe transaction service URL is required")
	}

	c := &Client{
		serviceURL: strings.TrimSuffix(serviceURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ProposeTransaction posts tx to the multisig transactions endpoint of safeAddress.
func (c *Client) ProposeTransaction(
	ctx context.Context, safeAddress string, tx types.SafeTransaction,
) (*ProposeResponse, error) {
	endpoint, err := url.JoinPath(c.serviceURL, "api", "v1", "safes", safeAddress, "multisig-transactions")
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}
	// The service routes require the trailing slash.
	endpoint += "/"

	body, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return ParseProposeResponse(respBody)
}

// TransactionURL links to a transaction of safeAddress in the Safe web app served next to the
// service.
func (c *Client) TransactionURL(safeAddress, txID string) string {
	base := c.serviceURL
	// Only the path is trimmed so hosts such as api.example.org survive.
	if u, err := url.Parse(c.serviceURL); err == nil && u.Host != "" {
		u.Path = apiSuffix.ReplaceAllString(u.Path, "")
		u.RawPath = ""
		base = u.String()
	} else {
		base = apiSuffix.ReplaceAllString(base, "")
	}
	base = strings.TrimSuffix(base, "/")

	return fmt.Sprintf("%s/safes/%s/transactions/%s", base, safeAddress, txID)
}
