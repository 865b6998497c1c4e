package orchestrator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

// Converse sends one prompt to the model and classifies the reply as either
// a capability call or direct text. It never fails: adapter errors and empty
// replies become fallback text.
func (s *Service) Converse(ctx context.Context, prompt string, opts ...Option) domain.ModelReply {
	o := applyOptions(opts)

	req := domain.ModelRequest{
		Prompt:            prompt,
		SystemInstruction: o.systemInstruction,
	}
	if !o.withoutTools {
		req.Tools = s.catalog.Declarations()
	}

	start := time.Now()
	raw, err := s.model.Generate(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "model call failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return domain.ModelReply{Text: msgModelError}
	}

	reply, ok := classify(raw)
	if !ok {
		s.log.WarnContext(ctx, "model reply had no usable parts",
			slog.Duration("duration", time.Since(start)),
		)
		return domain.ModelReply{Text: msgNoResponse}
	}

	if reply.IsCall() {
		s.log.DebugContext(ctx, "model requested capability",
			slog.String("capability", string(reply.Call.Name)),
			slog.Duration("duration", time.Since(start)),
		)
	}
	return reply
}

// classify applies the reply decision table to the first candidate. The first
// call part wins over any text; otherwise text parts are concatenated.
func classify(raw *domain.RawReply) (domain.ModelReply, bool) {
	if raw == nil || raw.Candidates == 0 || len(raw.Parts) == 0 {
		return domain.ModelReply{}, false
	}

	var text strings.Builder
	for _, p := range raw.Parts {
		if p.Call != nil && p.Call.Name != "" {
			call := *p.Call
			return domain.ModelReply{Call: &call}, true
		}
		text.WriteString(p.Text)
	}

	if strings.TrimSpace(text.String()) == "" {
		return domain.ModelReply{}, false
	}
	return domain.ModelReply{Text: text.String()}, true
}
