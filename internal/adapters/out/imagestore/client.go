// Package imagestore is the outbound adapter for the media service that holds
// refund proof images. The service exposes a plain DELETE endpoint per object
// reference; this client is only used for best-effort cleanup after a refund
// decision, so it carries a short timeout and no retries.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resto/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client deletes proof images from the media service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the media service at the given base URL.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("media service base URL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("media service base URL", err)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Delete removes the image behind the given reference. A 404 from the media
// service counts as success: the image is gone either way.
func (c *Client) Delete(ctx context.Context, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return errs.NewValueIsRequiredError("image reference")
	}

	target := c.baseURL + "/" + strings.TrimLeft(ref, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("media service returned %s deleting %q", resp.Status, ref)
	}

	return nil
}
