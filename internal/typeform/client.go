package typeform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ClientConfig controls form provider access.
type ClientConfig struct {
	APIKey   string
	FormID   string
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// Client fetches completed responses from the form provider. A failure here
// is the only fatal failure class in the pipeline: without the response list
// there is no batch to run.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a Client.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.typeform.com"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type responsePage struct {
	TotalItems int               `json:"total_items"`
	Items      []json.RawMessage `json:"items"`
}

// FetchResponses retrieves all completed responses for the configured form,
// following the provider's cursor pagination. Items are returned in provider
// order with their raw payloads attached.
func (c *Client) FetchResponses(ctx context.Context) ([]Response, error) {
	var all []Response
	before := ""
	for {
		page, err := c.fetchPage(ctx, before)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			var resp Response
			if err := json.Unmarshal(item, &resp); err != nil {
				return nil, fmt.Errorf("decode response item: %w", err)
			}
			resp.Raw = item
			all = append(all, resp)
		}
		if len(page.Items) < c.cfg.PageSize {
			break
		}
		next := all[len(all)-1].Token
		if next == "" || next == before {
			return nil, fmt.Errorf("fetch responses: pagination cursor did not advance after %d items", len(all))
		}
		before = next
	}
	c.logger.Info("fetched form responses",
		zap.String("form_id", c.cfg.FormID),
		zap.Int("count", len(all)),
	)
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, before string) (responsePage, error) {
	endpoint := fmt.Sprintf("%s/forms/%s/responses", c.cfg.BaseURL, url.PathEscape(c.cfg.FormID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return responsePage{}, fmt.Errorf("build responses request: %w", err)
	}
	q := req.URL.Query()
	q.Set("page_size", strconv.Itoa(c.cfg.PageSize))
	q.Set("completed", "true")
	if before != "" {
		q.Set("before", before)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return responsePage{}, fmt.Errorf("fetch responses: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return responsePage{}, fmt.Errorf("fetch responses: unexpected status %d: %s", resp.StatusCode, body)
	}

	var page responsePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return responsePage{}, fmt.Errorf("decode responses page: %w", err)
	}
	return page, nil
}
