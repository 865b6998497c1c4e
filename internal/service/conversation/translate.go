package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// translate looks up every whitespace-separated word of sentence and joins
// the results with single spaces in the original word order.
func (s *Service) translate(ctx context.Context, sentence string) string {
	words := strings.Fields(sentence)
	results := make([]string, len(words))

	start := time.Now()

	var g errgroup.Group
	g.SetLimit(s.cfg.TranslateConcurrency)
	for i, word := range words {
		g.Go(func() error {
			results[i] = s.exec.Execute(ctx, fmt.Sprintf("Translate \"%s\" to Paiute.", word))
			return nil
		})
	}
	_ = g.Wait()

	s.log.InfoContext(ctx, "sentence translated",
		slog.Int("words", len(words)),
		slog.Int("concurrency", s.cfg.TranslateConcurrency),
		slog.Duration("duration", time.Since(start)),
	)

	return strings.TrimSpace(strings.Join(results, " "))
}
