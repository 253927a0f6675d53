package repository

import (
	"context"
	"sync"

	"github.com/ducnguyen/caretrack/internal/model"
)

// OTPStore holds pending password-reset codes keyed by email.
// Get returns (nil, nil) when no record exists for the email.
//
// Implementations are free to evict stale entries on their own schedule;
// code validity is always decided by comparing OTPRecord.ExpiresAt
// against the clock, never by store eviction.
type OTPStore interface {
	Put(ctx context.Context, email string, rec model.OTPRecord) error
	Get(ctx context.Context, email string) (*model.OTPRecord, error)
	Delete(ctx context.Context, email string) error
}

// MemoryOTPStore is a process-wide in-memory OTPStore. It does not
// survive a restart and never evicts: an expired record stays until it
// is overwritten by a new request or consumed by a successful reset.
type MemoryOTPStore struct {
	mu      sync.Mutex
	records map[string]model.OTPRecord
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{records: make(map[string]model.OTPRecord)}
}

// Put stores a record, overwriting any prior record for the email
func (s *MemoryOTPStore) Put(_ context.Context, email string, rec model.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = rec
	return nil
}

// Get returns the pending record for the email, or nil if none exists
func (s *MemoryOTPStore) Get(_ context.Context, email string) (*model.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[email]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Delete removes the record for the email. Deleting a missing record is not an error.
func (s *MemoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}
