package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/yungbote/restaurant-admin/internal/domain"
)

type fakeUpstream[T domain.Record] struct {
	mu      sync.Mutex
	list    []T
	listErr error
	one     map[string]T
	getErr  error
	sent    T
	sendErr error
	delErr  error

	queries []url.Values
	bodies  []any
	deleted []string
	// onList runs before List returns, for simulating a caller that gave up.
	onList func()
}

func (f *fakeUpstream[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeUpstream[T]) Get(ctx context.Context, id string) (T, error) {
	if f.getErr != nil {
		var zero T
		return zero, f.getErr
	}
	return f.one[id], nil
}

func (f *fakeUpstream[T]) Create(ctx context.Context, body any) (T, error) {
	f.bodies = append(f.bodies, body)
	return f.sent, f.sendErr
}

func (f *fakeUpstream[T]) Update(ctx context.Context, id string, body any) (T, error) {
	f.bodies = append(f.bodies, body)
	return f.sent, f.sendErr
}

func (f *fakeUpstream[T]) Delete(ctx context.Context, id string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}
