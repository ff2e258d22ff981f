package session

import (
	"context"
	"sync"

	"github.com/cardtable/kings-corner/pkg/gamedto"
)

// memrepo is an in-memory Repository used when no database is configured and
// in tests.
type memrepo struct {
	mu      sync.RWMutex
	records map[string]*gamedto.GameRecord // gameID -> record
}

func NewMemoryRepository() Repository {
	return &memrepo{records: make(map[string]*gamedto.GameRecord)}
}

func (m *memrepo) SaveResult(ctx context.Context, rec *gamedto.GameRecord) error {
	if rec == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *rec
	m.records[rec.GameID] = &copy
	return nil
}

// Result returns the stored record for a game, if any.
func (m *memrepo) Result(gameID string) (*gamedto.GameRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[gameID]
	return rec, ok
}
