// Package conversation turns one inbound chat message into one reply.
package conversation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kubishi-relay/internal/config"
	"github.com/heartmarshall/kubishi-relay/internal/service/format"
	"github.com/heartmarshall/kubishi-relay/internal/service/orchestrator"
)

type executor interface {
	Execute(ctx context.Context, prompt string, opts ...orchestrator.Option) string
}

// Chat commands.
const (
	CmdTranslate = "/translate"
	CmdSentences = "/sentences"
	CmdHelp      = "/help"
)

// DefaultSystemInstruction frames free-form messages.
const DefaultSystemInstruction = "You are a helpful assistant for learners of the Paiute language. " +
	"You have access to the Kubishi Paiute dictionary through function calls. " +
	"Whenever a question involves Paiute words, translations, meanings or example sentences, " +
	"use the dictionary functions instead of answering from memory."

const (
	msgTranslateUsage = "Please provide a sentence to translate after the /translate command."
	msgSentencesUsage = "Please provide a query to search for sentences after the /sentences command."
	msgNoResponse     = "Sorry, I couldn't generate a response."
)

const helpText = "I can help you with the Paiute language.\n\n" +
	"/translate <sentence> translates each English word to Paiute.\n" +
	"/sentences <query> finds example sentences.\n" +
	"/help shows this message.\n\n" +
	"You can also just ask me a question."

// Service handles chat messages.
type Service struct {
	log    *slog.Logger
	exec   executor
	cfg    config.ConversationConfig
	system string
}

// NewService creates a new conversation service.
func NewService(logger *slog.Logger, exec executor, cfg config.ConversationConfig) *Service {
	system := cfg.SystemInstruction
	if strings.TrimSpace(system) == "" {
		system = DefaultSystemInstruction
	}
	if cfg.TranslateConcurrency < 1 {
		cfg.TranslateConcurrency = 1
	}
	return &Service{
		log:    logger.With("service", "conversation"),
		exec:   exec,
		cfg:    cfg,
		system: system,
	}
}

// Handle produces the reply text for one message. Failures are already
// rendered as text, and the reply is cut to the outbound size limit.
func (s *Service) Handle(ctx context.Context, text string) string {
	return format.Truncate(s.reply(ctx, text))
}

func (s *Service) reply(ctx context.Context, text string) string {
	if arg, ok := command(text, CmdTranslate); ok {
		if arg == "" {
			return msgTranslateUsage
		}
		s.log.DebugContext(ctx, "command", slog.String("command", CmdTranslate))
		return s.translate(ctx, arg)
	}

	if arg, ok := command(text, CmdSentences); ok {
		if arg == "" {
			return msgSentencesUsage
		}
		s.log.DebugContext(ctx, "command", slog.String("command", CmdSentences))
		return s.exec.Execute(ctx, arg)
	}

	if _, ok := command(text, CmdHelp); ok {
		return helpText
	}

	out := s.exec.Execute(ctx, text, orchestrator.WithSystemInstruction(s.system))
	if strings.TrimSpace(out) == "" {
		return msgNoResponse
	}
	return out
}

// command reports whether text starts with name and returns the trimmed rest.
func command(text, name string) (string, bool) {
	if !strings.HasPrefix(text, name) {
		return "", false
	}
	return strings.TrimSpace(text[len(name):]), true
}
