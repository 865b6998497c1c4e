package orchestrator

import (
	"context"
	"sync"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

var _ dictionary = &dictionaryMock{}

type dictionaryMock struct {
	LookupByIDFunc      func(ctx context.Context, id string) (*domain.LexicalEntry, error)
	SearchEnglishFunc   func(ctx context.Context, query string) ([]domain.LexicalEntry, error)
	SearchPaiuteFunc    func(ctx context.Context, query string) ([]domain.LexicalEntry, error)
	SearchSentencesFunc func(ctx context.Context, query string) ([]domain.SentenceEntry, error)

	calls struct {
		LookupByID []struct {
			Ctx context.Context
			ID  string
		}
		SearchEnglish []struct {
			Ctx   context.Context
			Query string
		}
		SearchPaiute []struct {
			Ctx   context.Context
			Query string
		}
		SearchSentences []struct {
			Ctx   context.Context
			Query string
		}
	}
	lockLookupByID      sync.RWMutex
	lockSearchEnglish   sync.RWMutex
	lockSearchPaiute    sync.RWMutex
	lockSearchSentences sync.RWMutex
}

func (mock *dictionaryMock) LookupByID(ctx context.Context, id string) (*domain.LexicalEntry, error) {
	if mock.LookupByIDFunc == nil {
		panic("dictionaryMock.LookupByIDFunc: method is nil but dictionary.LookupByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockLookupByID.Lock()
	mock.calls.LookupByID = append(mock.calls.LookupByID, callInfo)
	mock.lockLookupByID.Unlock()
	return mock.LookupByIDFunc(ctx, id)
}

func (mock *dictionaryMock) LookupByIDCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockLookupByID.RLock()
	calls := mock.calls.LookupByID
	mock.lockLookupByID.RUnlock()
	return calls
}

func (mock *dictionaryMock) SearchEnglish(ctx context.Context, query string) ([]domain.LexicalEntry, error) {
	if mock.SearchEnglishFunc == nil {
		panic("dictionaryMock.SearchEnglishFunc: method is nil but dictionary.SearchEnglish was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
	}{Ctx: ctx, Query: query}
	mock.lockSearchEnglish.Lock()
	mock.calls.SearchEnglish = append(mock.calls.SearchEnglish, callInfo)
	mock.lockSearchEnglish.Unlock()
	return mock.SearchEnglishFunc(ctx, query)
}

func (mock *dictionaryMock) SearchEnglishCalls() []struct {
	Ctx   context.Context
	Query string
} {
	mock.lockSearchEnglish.RLock()
	calls := mock.calls.SearchEnglish
	mock.lockSearchEnglish.RUnlock()
	return calls
}

func (mock *dictionaryMock) SearchPaiute(ctx context.Context, query string) ([]domain.LexicalEntry, error) {
	if mock.SearchPaiuteFunc == nil {
		panic("dictionaryMock.SearchPaiuteFunc: method is nil but dictionary.SearchPaiute was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
	}{Ctx: ctx, Query: query}
	mock.lockSearchPaiute.Lock()
	mock.calls.SearchPaiute = append(mock.calls.SearchPaiute, callInfo)
	mock.lockSearchPaiute.Unlock()
	return mock.SearchPaiuteFunc(ctx, query)
}

func (mock *dictionaryMock) SearchPaiuteCalls() []struct {
	Ctx   context.Context
	Query string
} {
	mock.lockSearchPaiute.RLock()
	calls := mock.calls.SearchPaiute
	mock.lockSearchPaiute.RUnlock()
	return calls
}

func (mock *dictionaryMock) SearchSentences(ctx context.Context, query string) ([]domain.SentenceEntry, error) {
	if mock.SearchSentencesFunc == nil {
		panic("dictionaryMock.SearchSentencesFunc: method is nil but dictionary.SearchSentences was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
	}{Ctx: ctx, Query: query}
	mock.lockSearchSentences.Lock()
	mock.calls.SearchSentences = append(mock.calls.SearchSentences, callInfo)
	mock.lockSearchSentences.Unlock()
	return mock.SearchSentencesFunc(ctx, query)
}

func (mock *dictionaryMock) SearchSentencesCalls() []struct {
	Ctx   context.Context
	Query string
} {
	mock.lockSearchSentences.RLock()
	calls := mock.calls.SearchSentences
	mock.lockSearchSentences.RUnlock()
	return calls
}
