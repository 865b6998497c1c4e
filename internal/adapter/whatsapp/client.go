package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v18.0"
	defaultTimeout    = 10 * time.Second

	messagingProduct = "whatsapp"
	// Error bodies are only logged.
	maxErrorBody = 4 << 10
)

// Config configures the Graph API client.
type Config struct {
	AccessToken string
	BaseURL     string
	APIVersion  string
	Timeout     time.Duration
}

// Client delivers replies and read receipts through the WhatsApp Cloud API.
// It never retries.
type Client struct {
	baseURL     string
	apiVersion  string
	accessToken string
	httpClient  *http.Client
	log         *slog.Logger
}

// NewClient creates a Graph API client. Empty fields fall back to defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion:  strings.Trim(cfg.APIVersion, "/"),
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         logger.With("adapter", "whatsapp"),
	}
}

// ---------------------------------------------------------------------------
// Payloads
// ---------------------------------------------------------------------------

type textBody struct {
	Body string `json:"body"`
}

type replyContext struct {
	MessageID string `json:"message_id"`
}

type replyPayload struct {
	MessagingProduct string        `json:"messaging_product"`
	To               string        `json:"to"`
	Text             textBody      `json:"text"`
	Context          *replyContext `json:"context,omitempty"`
}

type readPayload struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// SendReply sends body to the user as a reply to the message replyTo.
// An empty replyTo sends a plain message.
func (c *Client) SendReply(ctx context.Context, phoneNumberID, to, body, replyTo string) error {
	p := replyPayload{
		MessagingProduct: messagingProduct,
		To:               to,
		Text:             textBody{Body: body},
	}
	if replyTo != "" {
		p.Context = &replyContext{MessageID: replyTo}
	}
	return c.post(ctx, "send reply", phoneNumberID, p)
}

// MarkRead marks the inbound message as read.
func (c *Client) MarkRead(ctx context.Context, phoneNumberID, messageID string) error {
	return c.post(ctx, "mark read", phoneNumberID, readPayload{
		MessagingProduct: messagingProduct,
		Status:           "read",
		MessageID:        messageID,
	})
}

func (c *Client) post(ctx context.Context, op, phoneNumberID string, payload any) error {
	if phoneNumberID == "" {
		return fmt.Errorf("whatsapp: %s: phone number id is required", op)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: %s: marshal: %w", op, err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, url.PathEscape(phoneNumberID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("whatsapp: %s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("whatsapp: %s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.log.DebugContext(ctx, "graph api call",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
