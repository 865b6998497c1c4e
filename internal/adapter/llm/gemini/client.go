package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

const (
	DefaultModel   = "gemini-1.5-flash"
	defaultTimeout = 60 * time.Second
)

// Config configures the Gemini client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string
	Timeout time.Duration
}

// Client sends single-turn generateContent requests to Gemini.
type Client struct {
	genai *genai.Client
	model string
	log   *slog.Logger
}

// NewClient creates a Gemini client. It does not contact the API.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	return &Client{
		genai: gc,
		model: cfg.Model,
		log:   logger.With("adapter", "gemini"),
	}, nil
}

// Generate sends one prompt, with the optional system instruction and tool
// declarations, and returns the parts of the first candidate.
func (c *Client) Generate(ctx context.Context, req domain.ModelRequest) (*domain.RawReply, error) {
	gcfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		gcfg.Tools = []*genai.Tool{{FunctionDeclarations: functionDeclarations(req.Tools)}}
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), gcfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}

	reply := toRawReply(resp)
	c.log.DebugContext(ctx, "generate content",
		slog.String("model", c.model),
		slog.Int("candidates", reply.Candidates),
		slog.Int("parts", len(reply.Parts)),
		slog.Duration("duration", time.Since(start)),
	)
	return reply, nil
}

func functionDeclarations(tools []domain.ToolDeclaration) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(t.Params)),
		}
		for _, p := range t.Params {
			schema.Properties[p.Name] = &genai.Schema{
				Type:        genai.TypeString,
				Description: p.Description,
			}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        string(t.Name),
			Description: t.Description,
			Parameters:  schema,
		})
	}
	return out
}

func toRawReply(resp *genai.GenerateContentResponse) *domain.RawReply {
	if resp == nil || len(resp.Candidates) == 0 {
		return &domain.RawReply{}
	}

	reply := &domain.RawReply{Candidates: len(resp.Candidates)}
	first := resp.Candidates[0]
	if first == nil || first.Content == nil {
		return reply
	}

	for _, part := range first.Content.Parts {
		if part == nil {
			continue
		}
		if fc := part.FunctionCall; fc != nil {
			reply.Parts = append(reply.Parts, domain.ReplyPart{
				Call: &domain.ToolCall{Name: domain.Capability(fc.Name), Args: fc.Args},
			})
			continue
		}
		if part.Text != "" {
			reply.Parts = append(reply.Parts, domain.ReplyPart{Text: part.Text})
		}
	}
	return reply
}
