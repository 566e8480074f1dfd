// Package discovery implements the metadata fetcher against the remote
// program catalog service.
package discovery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2/clientcredentials"

	"registrar/internal/domain/program"
	sharedConfig "registrar/internal/shared/config"
	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

var _ program.MetadataFetcher = (*Client)(nil)

// Client fetches program documents from the discovery service over HTTP.
// When OAuth client credentials are configured every request carries a
// service token; token refresh is handled by the oauth2 transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(cfg *sharedConfig.DiscoveryConfig, log logger.Interface) *Client {
	var httpClient *http.Client
	if cfg.OAuthKey != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuthKey,
			ClientSecret: cfg.OAuthSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(context.Background())
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = cfg.Timeout()

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

// Fetch returns the raw JSON document for the program, a not-found error
// when discovery reports no such program, and a transport error for any
// other failure. Retry policy, if any, belongs to the caller's deployment
// and not here.
func (c *Client) Fetch(ctx context.Context, programUUID string) ([]byte, error) {
	url := fmt.Sprintf("%s/api/v1/programs/%s/", c.baseURL, programUUID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to build discovery request", err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("discovery request failed", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewNotFoundError("program not found in discovery", programUUID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnw("discovery returned unexpected status",
			"program_uuid", programUUID, "status", resp.StatusCode)
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("discovery returned status %d", resp.StatusCode), programUUID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to read discovery response", err.Error())
	}
	return body, nil
}
