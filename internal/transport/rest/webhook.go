package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/heartmarshall/kubishi-relay/pkg/ctxutil"
)

const (
	maxWebhookBody        = 1 << 20
	defaultProcessTimeout = 2 * time.Minute

	messageTypeText = "text"
)

// messageHandler turns one inbound text into one reply.
type messageHandler interface {
	Handle(ctx context.Context, text string) string
}

// replier delivers replies and read receipts to the user.
type replier interface {
	SendReply(ctx context.Context, phoneNumberID, to, body, replyTo string) error
	MarkRead(ctx context.Context, phoneNumberID, messageID string) error
}

// WebhookHandler serves the WhatsApp Cloud API webhook.
type WebhookHandler struct {
	conv           messageHandler
	out            replier
	verifyToken    string
	processTimeout time.Duration
	log            *slog.Logger

	wg sync.WaitGroup
}

// NewWebhookHandler creates a WebhookHandler. A non-positive processTimeout
// falls back to two minutes.
func NewWebhookHandler(
	logger *slog.Logger,
	conv messageHandler,
	out replier,
	verifyToken string,
	processTimeout time.Duration,
) *WebhookHandler {
	if processTimeout <= 0 {
		processTimeout = defaultProcessTimeout
	}
	return &WebhookHandler{
		conv:           conv,
		out:            out,
		verifyToken:    verifyToken,
		processTimeout: processTimeout,
		log:            logger.With("handler", "webhook"),
	}
}

// ---------------------------------------------------------------------------
// Envelope
// ---------------------------------------------------------------------------

type webhookEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Metadata struct {
					PhoneNumberID string `json:"phone_number_id"`
				} `json:"metadata"`
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

// inbound is a text message ready for processing.
type inbound struct {
	phoneNumberID string
	from          string
	id            string
	body          string
}

// firstTextMessage extracts entry[0].changes[0].value.messages[0] when it is a
// text message.
func (e *webhookEnvelope) firstTextMessage() (inbound, bool) {
	if len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 {
		return inbound{}, false
	}
	value := e.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		return inbound{}, false
	}
	m := value.Messages[0]
	if m.Type != messageTypeText {
		return inbound{}, false
	}
	return inbound{
		phoneNumberID: value.Metadata.PhoneNumberID,
		from:          m.From,
		id:            m.ID,
		body:          m.Text.Body,
	}, true
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// Verify answers the subscription handshake.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")

	if mode != "subscribe" || !h.tokenMatches(token) {
		h.log.WarnContext(r.Context(), "webhook verification rejected", slog.String("mode", mode))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	h.log.InfoContext(r.Context(), "webhook verified")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(q.Get("hub.challenge"))) //nolint:errcheck
}

func (h *WebhookHandler) tokenMatches(token string) bool {
	if h.verifyToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) == 1
}

// Receive acknowledges every notification with 200 and processes text
// messages in the background.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var env webhookEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody)).Decode(&env); err != nil {
		h.log.WarnContext(ctx, "undecodable webhook body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusOK)
		return
	}

	msg, ok := env.firstTextMessage()
	if !ok {
		h.log.DebugContext(ctx, "webhook notification ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	procCtx := ctxutil.WithMessage(context.WithoutCancel(ctx), msg.from, msg.id)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.process(procCtx, msg)
	}()

	w.WriteHeader(http.StatusOK)
}

// Wait blocks until all in-flight messages are processed.
func (h *WebhookHandler) Wait() {
	h.wg.Wait()
}

func (h *WebhookHandler) process(ctx context.Context, msg inbound) {
	ctx, cancel := context.WithTimeout(ctx, h.processTimeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			h.log.ErrorContext(ctx, "panic while processing message", slog.Any("panic", rec))
		}
	}()

	start := time.Now()
	reply := h.conv.Handle(ctx, msg.body)

	if err := h.out.SendReply(ctx, msg.phoneNumberID, msg.from, reply, msg.id); err != nil {
		h.log.ErrorContext(ctx, "send reply failed", slog.String("error", err.Error()))
	}
	if err := h.out.MarkRead(ctx, msg.phoneNumberID, msg.id); err != nil {
		h.log.ErrorContext(ctx, "mark read failed", slog.String("error", err.Error()))
	}

	h.log.InfoContext(ctx, "message processed",
		slog.Int("reply_length", len([]rune(reply))),
		slog.Duration("duration", time.Since(start)),
	)
}
