package kubishi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

const (
	DefaultBaseURL = "https://dictionary.kubishi.com"
	defaultTimeout = 10 * time.Second

	// Cap on response bodies; search results are small JSON arrays.
	maxBodySize = 4 << 20
)

// Client calls the Kubishi Paiute dictionary API.
// It is safe for concurrent use and never retries on its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the given base URL.
// An empty baseURL falls back to DefaultBaseURL, a zero timeout to 10s.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "kubishi"),
	}
}

// LookupByID fetches a single entry by its dictionary identifier.
func (c *Client) LookupByID(ctx context.Context, id string) (*domain.LexicalEntry, error) {
	var entry *domain.LexicalEntry
	if err := c.get(ctx, "word", id, "/api/word/"+url.PathEscape(id), &entry); err != nil {
		return nil, err
	}
	// The backend answers some misses with 200 and a null body.
	if entry == nil {
		return nil, &domain.LookupError{Op: "word", Query: id, Status: http.StatusOK, Kind: domain.ErrNotFound}
	}
	return entry, nil
}

// SearchEnglish searches entries by their English glosses and definitions.
func (c *Client) SearchEnglish(ctx context.Context, query string) ([]domain.LexicalEntry, error) {
	return c.searchEntries(ctx, "search_english", "/api/search/english", query)
}

// SearchPaiute searches Paiute entries matching an English word.
func (c *Client) SearchPaiute(ctx context.Context, query string) ([]domain.LexicalEntry, error) {
	return c.searchEntries(ctx, "search_paiute", "/api/search/paiute", query)
}

// SearchSentences searches example sentences relevant to the query.
func (c *Client) SearchSentences(ctx context.Context, query string) ([]domain.SentenceEntry, error) {
	var out []domain.SentenceEntry
	if err := c.get(ctx, "search_sentence", query, "/api/search/sentence?query="+escapeQuery(query), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.SentenceEntry{}
	}
	return out, nil
}

// Ping checks that the backend answers at all. Any status below 500 counts as up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("kubishi: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("kubishi: ping: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize)) //nolint:errcheck

	if resp.StatusCode >= 500 {
		return fmt.Errorf("kubishi: ping: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) searchEntries(ctx context.Context, op, path, query string) ([]domain.LexicalEntry, error) {
	var out []domain.LexicalEntry
	if err := c.get(ctx, op, query, path+"?query="+escapeQuery(query), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.LexicalEntry{}
	}
	return out, nil
}

// get performs a GET and decodes a JSON body into dst. Every failure comes
// back as a *domain.LookupError.
func (c *Client) get(ctx context.Context, op, query, pathAndQuery string, dst any) error {
	reqURL := c.baseURL + pathAndQuery

	c.log.DebugContext(ctx, "kubishi request", slog.String("op", op), slog.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &domain.LookupError{Op: op, Query: query, Kind: domain.ErrTransient, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "kubishi request failed",
			slog.String("op", op),
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return &domain.LookupError{Op: op, Query: query, Kind: domain.ErrTransient, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &domain.LookupError{Op: op, Query: query, Status: resp.StatusCode, Kind: domain.ErrTransient, Err: fmt.Errorf("read body: %w", err)}
	}

	if kind := statusKind(resp.StatusCode); kind != nil {
		c.log.WarnContext(ctx, "kubishi non-success status",
			slog.String("op", op),
			slog.String("query", query),
			slog.Int("status", resp.StatusCode),
		)
		return &domain.LookupError{Op: op, Query: query, Status: resp.StatusCode, Kind: kind}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &domain.LookupError{Op: op, Query: query, Status: resp.StatusCode, Kind: domain.ErrTransient, Err: fmt.Errorf("decode json: %w", err)}
	}

	c.log.DebugContext(ctx, "kubishi response",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// statusKind maps an HTTP status to an error kind, nil for 2xx.
func statusKind(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusBadRequest:
		return domain.ErrInvalidQuery
	default:
		return domain.ErrTransient
	}
}

// escapeQuery percent-encodes a query value with spaces as %20.
func escapeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}
