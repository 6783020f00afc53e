package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and local development. It
// honors the same rotation guarantee as the Postgres store: the conditional
// replacement happens under one lock, so concurrent rotations of the same
// record produce exactly one winner.
type MemoryStore struct {
	mu     sync.Mutex
	byID   map[string]*Record
	byHash map[string]string // token hash -> record ID
}

// NewMemoryStore creates an empty in-memory refresh-token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*Record),
		byHash: make(map[string]string),
	}
}

// Insert creates a new record.
func (s *MemoryStore) Insert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(rec)
	return nil
}

func (s *MemoryStore) insertLocked(rec Record) {
	cp := rec
	s.byID[cp.ID] = &cp
	s.byHash[cp.TokenHash] = cp.ID
}

// GetByTokenHash loads a record by token hash.
func (s *MemoryStore) GetByTokenHash(_ context.Context, tokenHash string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byHash[tokenHash]
	if !ok {
		return Record{}, ErrTokenNotFound
	}
	return *s.byID[id], nil
}

// GetByID loads a record by ID.
func (s *MemoryStore) GetByID(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return Record{}, ErrTokenNotFound
	}
	return *rec, nil
}

// PredecessorOf loads the record that was replaced by id.
func (s *MemoryStore) PredecessorOf(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.byID {
		if rec.ReplacedByID != nil && *rec.ReplacedByID == id {
			return *rec, nil
		}
	}
	return Record{}, ErrTokenNotFound
}

// Rotate inserts next and retires the old record atomically.
func (s *MemoryStore) Rotate(_ context.Context, now time.Time, oldID string, next Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[oldID]
	if !ok {
		return ErrTokenNotFound
	}
	if old.RevokedAt != nil || old.ReplacedByID != nil {
		return ErrRotationConflict
	}

	s.insertLocked(next)

	revokedAt := now
	replacedBy := next.ID
	old.RevokedAt = &revokedAt
	old.ReplacedByID = &replacedBy
	return nil
}

// Revoke revokes a single record (idempotent).
func (s *MemoryStore) Revoke(_ context.Context, now time.Time, id string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil
	}
	if rec.RevokedAt == nil {
		revokedAt := now
		rec.RevokedAt = &revokedAt
	}
	return nil
}

// RevokeByTokenHash revokes a single record by token hash (idempotent).
func (s *MemoryStore) RevokeByTokenHash(_ context.Context, now time.Time, tokenHash string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byHash[tokenHash]
	if !ok {
		return ErrTokenNotFound
	}
	rec := s.byID[id]
	if rec.RevokedAt == nil {
		revokedAt := now
		rec.RevokedAt = &revokedAt
	}
	return nil
}

// RevokeAllForAccount revokes every record for an account (idempotent).
func (s *MemoryStore) RevokeAllForAccount(_ context.Context, now time.Time, accountID string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.byID {
		if rec.AccountID == accountID && rec.RevokedAt == nil {
			revokedAt := now
			rec.RevokedAt = &revokedAt
		}
	}
	return nil
}
