// Package ecfr is the read-only client for the public eCFR API and the
// flattening of its nested agency documents.
package ecfr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/ecfr-analyzer-backend/internal/document"
	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/utils"
)

const defaultBaseURL = "https://www.ecfr.gov"

// Client fetches the three upstream documents the ingestion run needs.
type Client interface {
	FetchAgencies(ctx context.Context) ([]Agency, error)
	FetchTitles(ctx context.Context) ([]Title, error)
	// FetchTitleBody returns the full-title XML for one effective date,
	// decoded into the generic document tree.
	FetchTitleBody(ctx context.Context, titleNumber int, date string) (any, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseLog *logger.Logger) Client {
	baseURL := strings.TrimRight(utils.GetEnv("ECFR_BASE_URL", defaultBaseURL, baseLog), "/")
	// Full-title XML bodies run to tens of megabytes.
	timeout := utils.GetEnvAsInt("ECFR_TIMEOUT_SECONDS", 180, baseLog)
	return &client{
		log:        baseLog.With("client", "EcfrClient"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *client) FetchAgencies(ctx context.Context) ([]Agency, error) {
	var payload agencyResponse
	if err := c.getJSON(ctx, "/api/admin/v1/agencies.json", &payload); err != nil {
		return nil, err
	}
	return payload.Agencies, nil
}

func (c *client) FetchTitles(ctx context.Context) ([]Title, error) {
	var payload titleResponse
	if err := c.getJSON(ctx, "/api/versioner/v1/titles.json", &payload); err != nil {
		return nil, err
	}
	return payload.Titles, nil
}

func (c *client) FetchTitleBody(ctx context.Context, titleNumber int, date string) (any, error) {
	path := fmt.Sprintf("/api/versioner/v1/full/%s/title-%d.xml", date, titleNumber)
	resp, err := c.get(ctx, path, "application/xml")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := document.DecodeXML(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("title %d at %s: %w", titleNumber, date, err)
	}
	return doc, nil
}

func (c *client) getJSON(ctx context.Context, path string, dest any) error {
	resp, err := c.get(ctx, path, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *client) get(ctx context.Context, path, accept string) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", accept)

	c.log.Debug("Fetching upstream document", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", path, resp.StatusCode)
	}
	return resp, nil
}
