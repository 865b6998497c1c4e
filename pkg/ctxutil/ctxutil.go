package ctxutil

import (
	"context"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	senderKey    ctxKey = "sender"
	messageIDKey ctxKey = "message_id"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithMessage stores the sender and ID of the inbound chat message being
// processed. Empty values are not stored.
func WithMessage(ctx context.Context, sender, messageID string) context.Context {
	if sender != "" {
		ctx = context.WithValue(ctx, senderKey, sender)
	}
	if messageID != "" {
		ctx = context.WithValue(ctx, messageIDKey, messageID)
	}
	return ctx
}

// SenderFromCtx extracts the message sender from the context.
// Returns an empty string if absent.
func SenderFromCtx(ctx context.Context) string {
	s, _ := ctx.Value(senderKey).(string)
	return s
}

// MessageIDFromCtx extracts the inbound message ID from the context.
// Returns an empty string if absent.
func MessageIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(messageIDKey).(string)
	return id
}
