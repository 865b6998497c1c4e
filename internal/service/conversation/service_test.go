package conversation

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/heartmarshall/kubishi-relay/internal/config"
	"github.com/heartmarshall/kubishi-relay/internal/service/format"
	"github.com/heartmarshall/kubishi-relay/internal/service/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:generate moq -out executor_mock_test.go -pkg conversation . executor

func newTestService(t *testing.T, exec *executorMock, concurrency int) *Service {
	t.Helper()
	return NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		exec,
		config.ConversationConfig{TranslateConcurrency: concurrency},
	)
}

func echoExecutor(reply func(prompt string) string) *executorMock {
	return &executorMock{
		ExecuteFunc: func(ctx context.Context, prompt string, opts ...orchestrator.Option) string {
			return reply(prompt)
		},
	}
}

func prompts(exec *executorMock) []string {
	calls := exec.ExecuteCalls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Prompt
	}
	return out
}

// ---------------------------------------------------------------------------
// /translate
// ---------------------------------------------------------------------------

func TestHandle_Translate_SequentialInWordOrder(t *testing.T) {
	t.Parallel()

	exec := echoExecutor(func(prompt string) string {
		switch prompt {
		case `Translate "hello" to Paiute.`:
			return "HELLO"
		case `Translate "world" to Paiute.`:
			return "WORLD"
		}
		return "?"
	})
	svc := newTestService(t, exec, 1)

	got := svc.Handle(context.Background(), "/translate hello world")

	assert.Equal(t, "HELLO WORLD", got)
	assert.Equal(t, []string{
		`Translate "hello" to Paiute.`,
		`Translate "world" to Paiute.`,
	}, prompts(exec))
	for _, c := range exec.ExecuteCalls() {
		assert.Empty(t, c.Opts, "sub-requests use the plain tool-enabled call")
	}
}

func TestHandle_Translate_ParallelKeepsOrder(t *testing.T) {
	t.Parallel()

	var others sync.WaitGroup
	others.Add(2)
	var mu sync.Mutex
	var completed []string

	exec := echoExecutor(func(prompt string) string {
		var out string
		switch {
		case strings.Contains(prompt, `"one"`):
			// Finish only after the later words have completed.
			others.Wait()
			out = "1"
		case strings.Contains(prompt, `"two"`):
			defer others.Done()
			out = "2"
		case strings.Contains(prompt, `"three"`):
			defer others.Done()
			out = "3"
		}
		mu.Lock()
		completed = append(completed, out)
		mu.Unlock()
		return out
	})
	svc := newTestService(t, exec, 3)

	got := svc.Handle(context.Background(), "/translate one two three")

	assert.Equal(t, "1 2 3", got)
	require.Len(t, completed, 3)
	assert.Equal(t, "1", completed[2], "first word should have completed last")
}

func TestHandle_Translate_CollapsesWhitespace(t *testing.T) {
	t.Parallel()

	exec := echoExecutor(func(prompt string) string { return "x" })
	svc := newTestService(t, exec, 1)

	got := svc.Handle(context.Background(), "/translate   big \t  dog  ")

	assert.Equal(t, "x x", got)
	assert.Equal(t, []string{
		`Translate "big" to Paiute.`,
		`Translate "dog" to Paiute.`,
	}, prompts(exec))
}

func TestHandle_Translate_TrimsTrailingWhitespace(t *testing.T) {
	t.Parallel()

	exec := echoExecutor(func(prompt string) string {
		if strings.Contains(prompt, `"dog"`) {
			return ""
		}
		return "sarii"
	})
	svc := newTestService(t, exec, 1)

	assert.Equal(t, "sarii", svc.Handle(context.Background(), "/translate cat dog"))
}

func TestHandle_Translate_Empty(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"/translate", "/translate   ", "/translate\n"} {
		exec := &executorMock{}
		svc := newTestService(t, exec, 1)

		assert.Equal(t, "Please provide a sentence to translate after the /translate command.", svc.Handle(context.Background(), text))
		assert.Empty(t, exec.ExecuteCalls())
	}
}

// ---------------------------------------------------------------------------
// /sentences
// ---------------------------------------------------------------------------

func TestHandle_Sentences(t *testing.T) {
	t.Parallel()

	exec := echoExecutor(func(prompt string) string {
		return "Search results for sentences \"dog\" (1 result):"
	})
	svc := newTestService(t, exec, 1)

	got := svc.Handle(context.Background(), "/sentences  dog ")

	assert.Equal(t, "Search results for sentences \"dog\" (1 result):", got)
	calls := exec.ExecuteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "dog", calls[0].Prompt)
	assert.Empty(t, calls[0].Opts)
}

func TestHandle_Sentences_Empty(t *testing.T) {
	t.Parallel()

	exec := &executorMock{}
	svc := newTestService(t, exec, 1)

	assert.Equal(t, "Please provide a query to search for sentences after the /sentences command.", svc.Handle(context.Background(), "/sentences"))
	assert.Empty(t, exec.ExecuteCalls())
}

// ---------------------------------------------------------------------------
// /help and default flow
// ---------------------------------------------------------------------------

func TestHandle_Help(t *testing.T) {
	t.Parallel()

	exec := &executorMock{}
	svc := newTestService(t, exec, 1)

	got := svc.Handle(context.Background(), "/help")
	assert.Contains(t, got, "/translate")
	assert.Contains(t, got, "/sentences")
	assert.Empty(t, exec.ExecuteCalls())
}

func TestHandle_Default(t *testing.T) {
	t.Parallel()

	exec := echoExecutor(func(prompt string) string { return "Paiute is spoken in Nevada." })
	svc := newTestService(t, exec, 1)

	got := svc.Handle(context.Background(), "Where is Paiute spoken?")

	assert.Equal(t, "Paiute is spoken in Nevada.", got)
	calls := exec.ExecuteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Where is Paiute spoken?", calls[0].Prompt)
	assert.Len(t, calls[0].Opts, 1, "default flow sets a system instruction")
}

func TestHandle_Default_EmptyResult(t *testing.T) {
	t.Parallel()

	exec := echoExecutor(func(prompt string) string { return "" })
	svc := newTestService(t, exec, 1)

	assert.Equal(t, "Sorry, I couldn't generate a response.", svc.Handle(context.Background(), "hi"))
}

func TestHandle_CommandMustBePrefix(t *testing.T) {
	t.Parallel()

	exec := echoExecutor(func(prompt string) string { return "ok" })
	svc := newTestService(t, exec, 1)

	svc.Handle(context.Background(), "please /translate dog")

	calls := exec.ExecuteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "please /translate dog", calls[0].Prompt)
}

// ---------------------------------------------------------------------------
// Output sizing
// ---------------------------------------------------------------------------

func TestHandle_Truncation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		length  int
		wantLen int
	}{
		{name: "under limit", length: 100, wantLen: 100},
		{name: "at limit", length: format.MaxMessageLength, wantLen: format.MaxMessageLength},
		{name: "over limit", length: 5000, wantLen: 4090 + len(format.TruncationMarker)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body := strings.Repeat("a", tt.length)
			exec := echoExecutor(func(prompt string) string { return body })
			svc := newTestService(t, exec, 1)

			got := svc.Handle(context.Background(), "/sentences dog")
			assert.Len(t, got, tt.wantLen)
			if tt.length > format.MaxMessageLength {
				assert.True(t, strings.HasSuffix(got, "...(truncated)"))
				assert.Equal(t, body[:4090], strings.TrimSuffix(got, "...(truncated)"))
			} else {
				assert.Equal(t, body, got)
			}
		})
	}
}

func TestNewService_CustomSystemInstruction(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), &executorMock{}, config.ConversationConfig{
		SystemInstruction: "Reply in haiku.",
	})
	assert.Equal(t, "Reply in haiku.", svc.system)
	assert.Equal(t, 1, svc.cfg.TranslateConcurrency)

	svc = NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), &executorMock{}, config.ConversationConfig{})
	assert.Equal(t, DefaultSystemInstruction, svc.system)
}
