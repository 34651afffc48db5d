package vocabulary

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

// mockStore implements the consumer interface for tests. An in-memory
// fields map backs HUpdate so merge semantics can be exercised end to end.
type mockStore struct {
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)

	hashes        map[string]map[string]string
	updateErr     error
	updateCalls   int
	lastUpdateKey string
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return m.hashes[key], nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *mockStore) HUpdate(
	_ context.Context,
	key string,
	update func(current map[string]string) (map[string]string, error),
) (map[string]string, error) {
	m.updateCalls++
	m.lastUpdateKey = key
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	current := m.hashes[key]
	next, err := update(current)
	if err != nil {
		return nil, err
	}
	if m.hashes == nil {
		m.hashes = make(map[string]map[string]string)
	}
	m.hashes[key] = next
	return next, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repository, *mockStore) {
	t.Helper()
	ms := &mockStore{hashes: make(map[string]map[string]string)}
	return New(ms, "vocab:", zap.NewNop()), ms
}
