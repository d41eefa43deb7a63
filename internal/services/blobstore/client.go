package blobstore

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"aircast/internal/services"
)

const stageName = "store"

// HTTPDoer describes the HTTP client used by the storage service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Location is where a stored artifact can be retrieved.
type Location struct {
	URL       string
	PublicURL string
}

// Client uploads files to the object store.
type Client struct {
	baseURL       string
	publicBaseURL string
	apiToken      string
	client        HTTPDoer
}

// NewClient constructs a storage client. A nil doer falls back to
// http.DefaultClient.
func NewClient(baseURL, publicBaseURL, apiToken string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		apiToken:      strings.TrimSpace(apiToken),
		client:        doer,
	}
}

// Enabled reports whether a storage endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Store uploads localPath to destPath under the storage base and returns the
// retrievable location. destPath should include the storage prefix, e.g.
// "2026/08/<base>.vtt".
func (c *Client) Store(ctx context.Context, localPath, destPath string) (Location, error) {
	var loc Location
	if !c.Enabled() {
		return loc, services.Wrap(services.ErrConfiguration, stageName, "store", "storage endpoint missing", nil)
	}
	destPath = strings.TrimLeft(strings.TrimSpace(destPath), "/")
	if destPath == "" {
		return loc, services.Wrap(services.ErrValidation, stageName, "store", "destination path required", nil)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return loc, services.Wrap(services.ErrValidation, stageName, "store", "open artifact", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return loc, services.Wrap(services.ErrValidation, stageName, "store", "stat artifact", err)
	}

	target := c.baseURL + "/" + destPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, file)
	if err != nil {
		return loc, services.Wrap(services.ErrTransient, stageName, "store", "build request", err)
	}
	req.ContentLength = info.Size()
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return loc, services.Wrap(services.ErrTransient, stageName, "store", "upload artifact", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return loc, services.Wrap(services.ErrExternalTool, stageName, "store",
			fmt.Sprintf("storage returned %d", resp.StatusCode), nil)
	}

	loc.URL = target
	if c.publicBaseURL != "" {
		loc.PublicURL = c.publicBaseURL + "/" + destPath
	}
	return loc, nil
}
