package conversation

import (
	"context"
	"sync"

	"github.com/heartmarshall/kubishi-relay/internal/service/orchestrator"
)

var _ executor = &executorMock{}

type executorMock struct {
	ExecuteFunc func(ctx context.Context, prompt string, opts ...orchestrator.Option) string

	calls struct {
		Execute []struct {
			Ctx    context.Context
			Prompt string
			Opts   []orchestrator.Option
		}
	}
	lockExecute sync.RWMutex
}

func (mock *executorMock) Execute(ctx context.Context, prompt string, opts ...orchestrator.Option) string {
	if mock.ExecuteFunc == nil {
		panic("executorMock.ExecuteFunc: method is nil but executor.Execute was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prompt string
		Opts   []orchestrator.Option
	}{Ctx: ctx, Prompt: prompt, Opts: opts}
	mock.lockExecute.Lock()
	mock.calls.Execute = append(mock.calls.Execute, callInfo)
	mock.lockExecute.Unlock()
	return mock.ExecuteFunc(ctx, prompt, opts...)
}

func (mock *executorMock) ExecuteCalls() []struct {
	Ctx    context.Context
	Prompt string
	Opts   []orchestrator.Option
} {
	mock.lockExecute.RLock()
	calls := mock.calls.Execute
	mock.lockExecute.RUnlock()
	return calls
}
