package orchestrator

import (
	"context"
	"sync"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

var _ modelClient = &modelClientMock{}

type modelClientMock struct {
	GenerateFunc func(ctx context.Context, req domain.ModelRequest) (*domain.RawReply, error)

	calls struct {
		Generate []struct {
			Ctx context.Context
			Req domain.ModelRequest
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *modelClientMock) Generate(ctx context.Context, req domain.ModelRequest) (*domain.RawReply, error) {
	if mock.GenerateFunc == nil {
		panic("modelClientMock.GenerateFunc: method is nil but modelClient.Generate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.ModelRequest
	}{Ctx: ctx, Req: req}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, req)
}

func (mock *modelClientMock) GenerateCalls() []struct {
	Ctx context.Context
	Req domain.ModelRequest
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
