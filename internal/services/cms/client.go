package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"aircast/internal/services"
)

const stageName = "publish"

// HTTPDoer describes the HTTP client used by the publishing service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the publishing API.
type Client struct {
	baseURL  string
	apiToken string
	client   HTTPDoer
}

// NewClient constructs a publishing client. A nil doer falls back to
// http.DefaultClient.
func NewClient(baseURL, apiToken string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiToken: strings.TrimSpace(apiToken),
		client:   doer,
	}
}

// Enabled reports whether a publishing endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Register upserts the full asset bundle for a post.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if strings.TrimSpace(req.PostID) == "" {
		return services.Wrap(services.ErrValidation, stageName, "register", "post identifier required", nil)
	}
	return c.send(ctx, http.MethodPost, "/api/v1/posts/register", req)
}

// PatchAssets applies a scoped partial update to a post.
func (c *Client) PatchAssets(ctx context.Context, postID string, patch PatchRequest) error {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return services.Wrap(services.ErrValidation, stageName, "patch", "post identifier required", nil)
	}
	path := fmt.Sprintf("/api/v1/posts/%s/assets", url.PathEscape(postID))
	return c.send(ctx, http.MethodPatch, path, patch)
}

func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	if !c.Enabled() {
		return services.Wrap(services.ErrConfiguration, stageName, "send", "publishing endpoint missing", nil)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "send", "encode payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrTransient, stageName, "send", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, stageName, "send", "call publishing service", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrExternalTool, stageName, "send",
			fmt.Sprintf("publishing service returned %d", resp.StatusCode), nil)
	}
	return nil
}
