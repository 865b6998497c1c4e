package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
	"github.com/heartmarshall/kubishi-relay/internal/service/catalog"
	"github.com/heartmarshall/kubishi-relay/internal/service/format"
)

// Execute runs Converse and, when the model asks for a capability, performs
// the lookup and returns the formatted result. Direct text is returned as is.
func (s *Service) Execute(ctx context.Context, prompt string, opts ...Option) string {
	reply := s.Converse(ctx, prompt, opts...)
	if !reply.IsCall() {
		return reply.Text
	}
	return s.dispatch(ctx, *reply.Call)
}

func (s *Service) dispatch(ctx context.Context, call domain.ToolCall) string {
	h, ok := s.handlers[call.Name]
	if !ok {
		s.log.WarnContext(ctx, "unknown capability", slog.String("capability", string(call.Name)))
		return msgUnknownFunction
	}

	args, err := s.catalog.ValidateArgs(call.Name, call.Args)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCapability) {
			s.log.WarnContext(ctx, "capability not in catalog", slog.String("capability", string(call.Name)))
			return msgUnknownFunction
		}
		s.log.WarnContext(ctx, "invalid capability arguments",
			slog.String("capability", string(call.Name)),
			slog.String("error", err.Error()),
		)
		return fmt.Sprintf(msgBadArguments, call.Name)
	}

	return h(ctx, args)
}

// ---------------------------------------------------------------------------
// Capability handlers
// ---------------------------------------------------------------------------

func (s *Service) translateToPaiute(ctx context.Context, args map[string]string) string {
	word := args[catalog.ParamEnglishWord]
	entries, err := s.dict.SearchPaiute(ctx, word)
	if err != nil {
		s.logLookupFailure(ctx, domain.CapTranslateToPaiute, err)
		return format.LookupFailure(domain.CapTranslateToPaiute, word, err)
	}
	return format.Translations(word, entries)
}

func (s *Service) getWordDetails(ctx context.Context, args map[string]string) string {
	id := args[catalog.ParamWordID]
	entry, err := s.dict.LookupByID(ctx, id)
	if err != nil {
		s.logLookupFailure(ctx, domain.CapGetWordDetails, err)
		return format.LookupFailure(domain.CapGetWordDetails, id, err)
	}
	return format.WordDetails(id, entry)
}

func (s *Service) searchEnglishWords(ctx context.Context, args map[string]string) string {
	query := args[catalog.ParamQuery]
	entries, err := s.dict.SearchEnglish(ctx, query)
	if err != nil {
		s.logLookupFailure(ctx, domain.CapSearchEnglishWords, err)
		return format.LookupFailure(domain.CapSearchEnglishWords, query, err)
	}
	return format.EnglishSearch(query, entries)
}

func (s *Service) searchSentences(ctx context.Context, args map[string]string) string {
	query := args[catalog.ParamQuery]
	entries, err := s.dict.SearchSentences(ctx, query)
	if err != nil {
		s.logLookupFailure(ctx, domain.CapSearchSentences, err)
		return format.LookupFailure(domain.CapSearchSentences, query, err)
	}
	return format.Sentences(query, entries)
}

func (s *Service) logLookupFailure(ctx context.Context, c domain.Capability, err error) {
	level := slog.LevelError
	if errors.Is(err, domain.ErrNotFound) {
		level = slog.LevelInfo
	}
	s.log.Log(ctx, level, "dictionary lookup failed",
		slog.String("capability", string(c)),
		slog.String("error", err.Error()),
	)
}
