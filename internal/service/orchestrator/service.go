package orchestrator

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
	"github.com/heartmarshall/kubishi-relay/internal/service/catalog"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type modelClient interface {
	Generate(ctx context.Context, req domain.ModelRequest) (*domain.RawReply, error)
}

type dictionary interface {
	LookupByID(ctx context.Context, id string) (*domain.LexicalEntry, error)
	SearchEnglish(ctx context.Context, query string) ([]domain.LexicalEntry, error)
	SearchPaiute(ctx context.Context, query string) ([]domain.LexicalEntry, error)
	SearchSentences(ctx context.Context, query string) ([]domain.SentenceEntry, error)
}

// ---------------------------------------------------------------------------
// User-facing fallback texts
// ---------------------------------------------------------------------------

const (
	msgNoResponse      = "Sorry, I couldn't extract a response from the model."
	msgModelError      = "Sorry, I encountered an error while processing your request."
	msgUnknownFunction = "Sorry, I don't know how to handle that function."
	msgBadArguments    = "Error processing arguments for function %s"
)

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// handler runs one capability with validated arguments and renders the result.
type handler func(ctx context.Context, args map[string]string) string

// Service sends prompts to the model and executes the capabilities it asks for.
type Service struct {
	log      *slog.Logger
	model    modelClient
	dict     dictionary
	catalog  *catalog.Catalog
	handlers map[domain.Capability]handler
}

// NewService creates a new orchestrator. A nil catalog means catalog.Default().
func NewService(logger *slog.Logger, model modelClient, dict dictionary, cat *catalog.Catalog) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Service{
		log:     logger.With("service", "orchestrator"),
		model:   model,
		dict:    dict,
		catalog: cat,
	}
	s.handlers = map[domain.Capability]handler{
		domain.CapTranslateToPaiute:  s.translateToPaiute,
		domain.CapGetWordDetails:     s.getWordDetails,
		domain.CapSearchEnglishWords: s.searchEnglishWords,
		domain.CapSearchSentences:    s.searchSentences,
	}
	return s
}

// ---------------------------------------------------------------------------
// Call options
// ---------------------------------------------------------------------------

// Option adjusts a single model call.
type Option func(*callOptions)

type callOptions struct {
	systemInstruction string
	withoutTools      bool
}

// WithSystemInstruction sets the system instruction for the call.
func WithSystemInstruction(text string) Option {
	return func(o *callOptions) {
		o.systemInstruction = text
	}
}

// WithoutTools withholds the capability catalog from the model.
func WithoutTools() Option {
	return func(o *callOptions) {
		o.withoutTools = true
	}
}

func applyOptions(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
