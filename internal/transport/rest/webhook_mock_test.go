package rest

import (
	"context"
	"sync"
)

type messageHandlerMock struct {
	HandleFunc func(ctx context.Context, text string) string

	calls struct {
		Handle []struct {
			Ctx  context.Context
			Text string
		}
	}
	lockHandle sync.RWMutex
}

func (mock *messageHandlerMock) Handle(ctx context.Context, text string) string {
	if mock.HandleFunc == nil {
		panic("messageHandlerMock.HandleFunc: method is nil but messageHandler.Handle was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockHandle.Lock()
	mock.calls.Handle = append(mock.calls.Handle, callInfo)
	mock.lockHandle.Unlock()
	return mock.HandleFunc(ctx, text)
}

func (mock *messageHandlerMock) HandleCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockHandle.RLock()
	defer mock.lockHandle.RUnlock()
	return mock.calls.Handle
}

type replierMock struct {
	SendReplyFunc func(ctx context.Context, phoneNumberID, to, body, replyTo string) error
	MarkReadFunc  func(ctx context.Context, phoneNumberID, messageID string) error

	calls struct {
		SendReply []struct {
			Ctx           context.Context
			PhoneNumberID string
			To            string
			Body          string
			ReplyTo       string
		}
		MarkRead []struct {
			Ctx           context.Context
			PhoneNumberID string
			MessageID     string
		}
	}
	lockSendReply sync.RWMutex
	lockMarkRead  sync.RWMutex
}

func (mock *replierMock) SendReply(ctx context.Context, phoneNumberID, to, body, replyTo string) error {
	if mock.SendReplyFunc == nil {
		panic("replierMock.SendReplyFunc: method is nil but replier.SendReply was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		PhoneNumberID string
		To            string
		Body          string
		ReplyTo       string
	}{Ctx: ctx, PhoneNumberID: phoneNumberID, To: to, Body: body, ReplyTo: replyTo}
	mock.lockSendReply.Lock()
	mock.calls.SendReply = append(mock.calls.SendReply, callInfo)
	mock.lockSendReply.Unlock()
	return mock.SendReplyFunc(ctx, phoneNumberID, to, body, replyTo)
}

func (mock *replierMock) SendReplyCalls() []struct {
	Ctx           context.Context
	PhoneNumberID string
	To            string
	Body          string
	ReplyTo       string
} {
	mock.lockSendReply.RLock()
	defer mock.lockSendReply.RUnlock()
	return mock.calls.SendReply
}

func (mock *replierMock) MarkRead(ctx context.Context, phoneNumberID, messageID string) error {
	if mock.MarkReadFunc == nil {
		panic("replierMock.MarkReadFunc: method is nil but replier.MarkRead was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		PhoneNumberID string
		MessageID     string
	}{Ctx: ctx, PhoneNumberID: phoneNumberID, MessageID: messageID}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, phoneNumberID, messageID)
}

func (mock *replierMock) MarkReadCalls() []struct {
	Ctx           context.Context
	PhoneNumberID string
	MessageID     string
} {
	mock.lockMarkRead.RLock()
	defer mock.lockMarkRead.RUnlock()
	return mock.calls.MarkRead
}
