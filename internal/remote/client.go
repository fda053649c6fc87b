// Package remote submits validated documents to the fulfillment API as
// GraphQL mutations, authenticated by a login token and tenant header.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmallard/manifest/internal/config"
	"github.com/jmallard/manifest/internal/pipeline"
)

// System defines the public contract for remote submission.
type System interface {
	Login(ctx context.Context) (string, error)
	SaveOrder(ctx context.Context, token string, payload *pipeline.OrderPayload) (string, error)
	SaveConsignment(ctx context.Context, token string, payload *pipeline.ConsignmentPayload) (string, error)
}

type client struct {
	url          string
	username     string
	password     string
	logoutAll    bool
	tenantHeader string
	http         *http.Client
	logger       *slog.Logger
}

// New creates a remote submission client from the given configuration.
// The configuration is assumed finalized, so the timeout and tenant
// header are well formed.
func New(cfg config.RemoteConfig, logger *slog.Logger) System {
	return &client{
		url:          cfg.URL,
		username:     cfg.Username,
		password:     cfg.Password,
		logoutAll:    cfg.LogoutAll,
		tenantHeader: cfg.TenantHeader(),
		http:         &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:       logger.With("system", "remote"),
	}
}

func (c *client) post(ctx context.Context, token, query string, variables any) (*graphQLResponse, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("tenant", c.tenantHeader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("post: unexpected status %d", resp.StatusCode)
	}

	var parsed graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &parsed, nil
}

// rejection turns a non-success response into an ErrRejected carrying the
// API's own wording.
func rejection(resp *graphQLResponse, message string) error {
	if msgs := resp.ErrorMessages(); len(msgs) > 0 {
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(msgs, "; "))
	}
	if message != "" {
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}
	return ErrRejected
}
