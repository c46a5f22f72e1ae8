package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

type mockLister struct {
	ListActiveCodesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockLister) ListActiveCodes(ctx context.Context) ([]string, error) {
	return m.ListActiveCodesFunc(ctx)
}

type recordingQuoter struct {
	mu    sync.Mutex
	calls [][]string
	hook  func(n int)
}

func (q *recordingQuoter) GetQuotes(_ context.Context, symbols []string) []entity.Quote {
	q.mu.Lock()
	q.calls = append(q.calls, symbols)
	n := len(q.calls)
	q.mu.Unlock()
	if q.hook != nil {
		q.hook(n)
	}
	out := make([]entity.Quote, len(symbols))
	for i, s := range symbols {
		out[i] = entity.Quote{Symbol: s, Source: entity.SourceLive}
	}
	return out
}

func (q *recordingQuoter) Calls() [][]string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([][]string(nil), q.calls...)
}

func TestRefresher_Interval(t *testing.T) {
	t.Parallel()

	market := &fakeMarket{open: true}
	r := usecase.NewRefresher(&recordingQuoter{}, &mockLister{}, market, 0, 0, nil)

	assert.Equal(t, usecase.DefaultRefreshOpen, r.Interval(time.Now()))
	market.open = false
	assert.Equal(t, usecase.DefaultRefreshClosed, r.Interval(time.Now()))
}

func TestRefresher_RefreshOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		codes     []string
		err       error
		wantCalls int
	}{
		{name: "refreshes watchlist", codes: []string{"NVDA", "META"}, wantCalls: 1},
		{name: "empty watchlist", codes: nil, wantCalls: 0},
		{name: "lister error", err: errors.New("db down"), wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quoter := &recordingQuoter{}
			lister := &mockLister{ListActiveCodesFunc: func(context.Context) ([]string, error) {
				return tt.codes, tt.err
			}}
			r := usecase.NewRefresher(quoter, lister, &fakeMarket{open: true}, time.Minute, time.Minute, nil)

			r.RefreshOnce(context.Background())

			calls := quoter.Calls()
			require.Len(t, calls, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.Equal(t, tt.codes, calls[0])
			}
		})
	}
}

func TestRefresher_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quoter := &recordingQuoter{hook: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	lister := &mockLister{ListActiveCodesFunc: func(context.Context) ([]string, error) {
		return []string{"AAPL"}, nil
	}}
	r := usecase.NewRefresher(quoter, lister, &fakeMarket{open: true}, 5*time.Millisecond, 5*time.Millisecond, nil)

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}
	assert.Len(t, quoter.Calls(), 3)
}
