package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/chyehsia/npp-updater/internal/domain/release"
	"github.com/chyehsia/npp-updater/internal/logger"
	"github.com/chyehsia/npp-updater/internal/version"
)

var (
	// ErrRequestFailed is returned on transport failures and
	// non-success response statuses.
	ErrRequestFailed = errors.New("release registry request failed")

	// ErrInvalidResponse is returned when the payload cannot be parsed
	// into the expected shape.
	ErrInvalidResponse = errors.New("invalid release registry response")
)

// Client resolves the latest published release of a repository via the
// GitHub releases API. One request per call, no caching, no retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
}

// NewClient creates a resolver for the given repository slug. The HTTP
// client is passed in explicitly so the caller controls its timeout.
func NewClient(httpClient *http.Client, baseURL, owner, repo string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		owner:      owner,
		repo:       repo,
	}
}

// latestReleasePayload is the wire shape of the releases/latest response.
// Loosely-typed JSON is mapped to this strict structure at the boundary;
// required fields are checked immediately after decoding.
type latestReleasePayload struct {
	TagName string         `json:"tag_name"`
	Assets  []assetPayload `json:"assets"`
}

// assetPayload is the wire shape of a single release asset.
type assetPayload struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// LatestRelease fetches and validates the most recent published release.
func (c *Client) LatestRelease(ctx context.Context) (*release.Info, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build release request: %w", err)
	}

	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("User-Agent", version.UserAgent())

	logger.DebugKV(ctx, "Requesting latest release", "url", endpoint)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrRequestFailed, endpoint, response.Status)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	return parseLatestRelease(body)
}

// parseLatestRelease decodes the payload and rejects missing or
// malformed required fields before any field is used.
func parseLatestRelease(body []byte) (*release.Info, error) {
	var payload latestReleasePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if payload.TagName == "" {
		return nil, fmt.Errorf("%w: missing tag", ErrInvalidResponse)
	}

	if len(payload.Assets) == 0 {
		return nil, fmt.Errorf("%w: missing asset list", ErrInvalidResponse)
	}

	tag, err := release.ParseTag(payload.TagName)
	if err != nil {
		return nil, fmt.Errorf("%w: tag %q: %w", ErrInvalidResponse, payload.TagName, err)
	}

	assets := make([]release.Asset, 0, len(payload.Assets))

	for _, asset := range payload.Assets {
		if asset.Name == "" || asset.BrowserDownloadURL == "" {
			return nil, fmt.Errorf("%w: incomplete asset entry", ErrInvalidResponse)
		}

		assets = append(assets, release.Asset{
			Name:        asset.Name,
			DownloadURL: asset.BrowserDownloadURL,
		})
	}

	return &release.Info{Tag: tag, Assets: assets}, nil
}
