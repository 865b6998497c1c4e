package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

const (
	DefaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 1024
	defaultTimeout   = 60 * time.Second
)

// Config configures the Anthropic client.
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int64
	Timeout   time.Duration
}

// Client sends single-turn Messages requests to Anthropic.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewClient creates an Anthropic client. SDK retries are disabled; one
// Generate call is one HTTP request.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", "anthropic"),
	}, nil
}

// Generate sends one prompt and returns the reply's content blocks as parts.
// A Messages reply is always a single candidate.
func (c *Client) Generate(ctx context.Context, req domain.ModelRequest) (*domain.RawReply, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemInstruction}}
	}
	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
	}

	start := time.Now()
	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: messages: %w", err)
	}

	reply, err := toRawReply(msg)
	if err != nil {
		return nil, err
	}
	c.log.DebugContext(ctx, "messages",
		slog.String("model", c.model),
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int("parts", len(reply.Parts)),
		slog.Duration("duration", time.Since(start)),
	)
	return reply, nil
}

func convertTools(tools []domain.ToolDeclaration) []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		properties := make(map[string]any, len(t.Params))
		var required []string
		for _, p := range t.Params {
			properties[p.Name] = map[string]any{
				"type":        string(p.Type),
				"description": p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}

		tp := anthropic.ToolUnionParamOfTool(
			anthropic.ToolInputSchemaParam{
				Properties: properties,
				Required:   required,
			},
			string(t.Name),
		)
		tp.OfTool.Description = param.NewOpt(t.Description)
		result = append(result, tp)
	}
	return result
}

func toRawReply(msg *anthropic.Message) (*domain.RawReply, error) {
	if msg == nil || len(msg.Content) == 0 {
		return &domain.RawReply{}, nil
	}

	reply := &domain.RawReply{Candidates: 1}
	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			if block.Text != "" {
				reply.Parts = append(reply.Parts, domain.ReplyPart{Text: block.Text})
			}
		case "tool_use":
			var args map[string]any
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &args); err != nil {
					return nil, fmt.Errorf("anthropic: decode tool input for %s: %w", block.Name, err)
				}
			}
			reply.Parts = append(reply.Parts, domain.ReplyPart{
				Call: &domain.ToolCall{Name: domain.Capability(block.Name), Args: args},
			})
		}
	}
	return reply, nil
}
