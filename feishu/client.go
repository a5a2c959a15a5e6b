// Package feishu is a minimal client for the Feishu wiki and docx APIs,
// covering the three calls the ingestion pipeline needs: tenant token
// exchange, child-node listing, and paginated block fetching.
package feishu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"podigest/httpx"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://open.feishu.cn/open-apis"

// AuthError indicates the credential exchange failed. It is fatal for the
// whole refresh cycle: nothing can be listed without a token.
type AuthError struct {
	Err error
}

// Error returns a string representation of the auth error.
func (e *AuthError) Error() string { return fmt.Sprintf("feishu: auth failed: %v", e.Err) }

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error { return e.Err }

// ErrMissingCredentials indicates app credentials are unset.
var ErrMissingCredentials = errors.New("feishu: app id and app secret must be set")

// Client talks to the Feishu open API.
type Client struct {
	http    *httpx.Client
	baseURL string

	appID     string
	appSecret string

	spaceID    string
	parentNode string

	listPageSize  int
	blockPageSize int
}

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API endpoint (tests point this at a local server).
	BaseURL string
	// AppID and AppSecret are the workspace app credentials.
	AppID     string
	AppSecret string
	// SpaceID is the wiki space; ParentNode is the collection node whose
	// children are the episode documents.
	SpaceID    string
	ParentNode string
	// ListPageSize is the child-node listing page size (default 50).
	ListPageSize int
	// BlockPageSize is the block listing page size (default 100).
	BlockPageSize int
}

// NewClient creates a Feishu API client using the given HTTP client.
func NewClient(httpClient *httpx.Client, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ListPageSize <= 0 {
		opts.ListPageSize = 50
	}
	if opts.BlockPageSize <= 0 {
		opts.BlockPageSize = 100
	}
	return &Client{
		http:          httpClient,
		baseURL:       opts.BaseURL,
		appID:         opts.AppID,
		appSecret:     opts.AppSecret,
		spaceID:       opts.SpaceID,
		parentNode:    opts.ParentNode,
		listPageSize:  opts.ListPageSize,
		blockPageSize: opts.BlockPageSize,
	}
}

// TenantToken exchanges the app credentials for a short-lived bearer token.
// Failures return an *AuthError.
func (c *Client) TenantToken(ctx context.Context) (string, error) {
	if c.appID == "" || c.appSecret == "" {
		return "", &AuthError{Err: ErrMissingCredentials}
	}

	body, err := json.Marshal(map[string]string{
		"app_id":     c.appID,
		"app_secret": c.appSecret,
	})
	if err != nil {
		return "", &AuthError{Err: err}
	}

	resp, err := c.http.Post(ctx, c.baseURL+"/auth/v3/tenant_access_token/internal",
		body, map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return "", &AuthError{Err: err}
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body, &tok); err != nil {
		return "", &AuthError{Err: fmt.Errorf("parse token response: %w", err)}
	}
	if tok.TenantAccessToken == "" {
		return "", &AuthError{Err: fmt.Errorf("no token in response (code %d: %s)", tok.Code, tok.Msg)}
	}

	return tok.TenantAccessToken, nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
