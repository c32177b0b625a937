package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rrosajp/service.yt-dlp/internal/log"
	"github.com/rrosajp/service.yt-dlp/internal/streams"
)

// ErrBuild wraps every failure of the manifest-builder collaborator.
var ErrBuild = errors.New("manifest build failed")

// Client delegates manifest construction to a remote builder endpoint. It
// posts the stream list and expects the URL of the generated document back.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a builder client for the given endpoint. A nil httpClient
// falls back to http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		log:        log.WithComponent("manifest"),
	}
}

type buildRequest struct {
	Duration float64          `json:"duration"`
	Streams  []streams.Stream `json:"streams"`
}

type buildResponse struct {
	URL string `json:"url"`
}

// Build implements streams.Builder.
func (c *Client) Build(ctx context.Context, duration float64, list []streams.Stream) (string, error) {
	payload, err := json.Marshal(buildRequest{Duration: duration, Streams: list})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrBuild, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBuild, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Int("streams", len(list)).Float64("duration", duration).Msg("building manifest")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBuild, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: builder returned %d: %s", ErrBuild, resp.StatusCode, bytes.TrimSpace(body))
	}

	var out buildResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrBuild, err)
	}
	return out.URL, nil
}
