package anchor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

type httpSettings struct {
	client   *http.Client
	endpoint string
}

// HTTPOption configures how a collaborator reaches its remote service.
type HTTPOption func(*httpSettings)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *httpSettings) {
		s.client = c
	}
}

// WithEndpoint points a collaborator at another base URL, such as a test server.
func WithEndpoint(endpoint string) HTTPOption {
	return func(s *httpSettings) {
		s.endpoint = endpoint
	}
}

func newHTTPSettings(endpoint string, opts []HTTPOption) httpSettings {
	s := httpSettings{
		client:   &http.Client{Timeout: defaultTimeout},
		endpoint: endpoint,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// post sends body to url and returns the status code and response body. Transport failures wrap
// ErrConnection.
func (s httpSettings) post(
	ctx context.Context, url string, body any, headers map[string]string,
) (int, []byte, error) {
	var payload []byte
	switch b := body.(type) {
	case []byte:
		payload = b
	default:
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: failed to read response body: %w", ErrConnection, err)
	}

	return resp.StatusCode, respBody, nil
}
