package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/postbot/internal/domain"
)

const (
	defaultBaseURL = "https://api.notion.com"

	// apiVersion is the fixed content-store API version header value.
	// Bumping it is a contract change for the whole reader.
	apiVersion = "2022-06-28"
)

// Client issues paginated collection queries against the content
// store. It never retries: retry policy belongs to callers, and the
// cache layer above keeps call volume bounded.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the production API endpoint. The
// timeout bounds every individual page request.
func NewClient(token string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithURL(defaultBaseURL, token, timeout, logger)
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "notion"),
	}
}

// filter is a single equality predicate on one named property. The
// store's query language allows richer filters; this reader's contract
// deliberately does not.
type filter struct {
	Property string
	Field    string
	Value    string
}

// QueryAll reads every record of a collection, following the cursor
// until the store reports no further pages.
func (c *Client) QueryAll(ctx context.Context, collectionID string) ([]Record, error) {
	return c.query(ctx, collectionID, nil)
}

// QueryFiltered reads every record of a collection whose property
// matches value under the given filter field (e.g. property "Telegram",
// field "url"). Pagination works exactly as in QueryAll; the store
// makes no distinction between filtered and unfiltered cursors.
func (c *Client) QueryFiltered(ctx context.Context, collectionID, property, field, value string) ([]Record, error) {
	return c.query(ctx, collectionID, &filter{Property: property, Field: field, Value: value})
}

func (c *Client) query(ctx context.Context, collectionID string, f *filter) ([]Record, error) {
	var (
		all    []Record
		cursor *string
		pages  int
	)

	for {
		page, err := c.queryPage(ctx, collectionID, f, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		pages++

		if page.NextCursor == nil || *page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	c.log.DebugContext(ctx, "collection query",
		slog.String("collection", collectionID),
		slog.Int("pages", pages),
		slog.Int("records", len(all)),
		slog.Bool("filtered", f != nil),
	)

	return all, nil
}

func (c *Client) queryPage(ctx context.Context, collectionID string, f *filter, cursor *string) (*queryResponse, error) {
	body := map[string]any{}
	if f != nil {
		body["filter"] = map[string]any{
			"property": f.Property,
			f.Field:    map[string]any{"equals": f.Value},
		}
	}
	if cursor != nil {
		body["start_cursor"] = *cursor
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("notion: marshal query: %w", err)
	}

	reqURL := c.baseURL + "/v1/collections/" + collectionID + "/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("notion: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RemoteReadError{
			Kind:     domain.ReadFailureNetwork,
			Database: collectionID,
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RemoteReadError{
			Kind:     domain.ReadFailureServer,
			Database: collectionID,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RemoteReadError{
			Kind:     domain.ReadFailureNetwork,
			Database: collectionID,
			Err:      fmt.Errorf("read body: %w", err),
		}
	}

	var page queryResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, &domain.RemoteReadError{
			Kind:     domain.ReadFailureMalformed,
			Database: collectionID,
			Err:      fmt.Errorf("decode json: %w", err),
		}
	}

	return &page, nil
}
