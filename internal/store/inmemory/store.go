package inmemory

import (
	"context"
	"sync"

	"github.com/foxowl-ops/digital-twin/internal/store"
)

// Store is an in-memory implementation of the transaction log. It is safe
// for concurrent use but loses its contents on restart, so it suits tests
// and dry runs only; durable deployments use the sqlite or bolt backends.
type Store struct {
	mu      sync.RWMutex
	records []*store.Record
	ids     map[string]struct{}
}

// New creates an empty in-memory transaction log.
func New() *Store {
	return &Store{
		ids: make(map[string]struct{}),
	}
}

// Append implements store.Store.
func (s *Store) Append(ctx context.Context, rec *store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[rec.TransactionID]; exists {
		return &store.DuplicateIDError{TransactionID: rec.TransactionID}
	}

	// Copy so later mutation by the caller cannot reach the log.
	recCopy := *rec
	s.records = append(s.records, &recCopy)
	s.ids[rec.TransactionID] = struct{}{}

	return nil
}

// ListAll implements store.Store.
func (s *Store) ListAll(ctx context.Context) ([]*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*store.Record, 0, len(s.records))
	for _, rec := range s.records {
		recCopy := *rec
		result = append(result, &recCopy)
	}
	return result, nil
}

// Close implements store.Store. It is a no-op for the in-memory log.
func (s *Store) Close() error {
	return nil
}

var _ store.Store = (*Store)(nil)
