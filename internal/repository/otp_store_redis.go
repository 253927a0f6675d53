package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ducnguyen/caretrack/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	otpKeyPrefix = "reset:otp:"

	// Housekeeping TTL, far past the code's validity window. It bounds
	// memory growth from abandoned resets without ever deciding whether
	// a code is still valid.
	otpKeyTTL = 24 * time.Hour
)

// RedisOTPStore keeps pending reset codes in Redis so they survive a
// process restart and are shared across instances.
type RedisOTPStore struct {
	rdb *redis.Client
}

func NewRedisOTPStore(rdb *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{rdb: rdb}
}

// Put stores a record, overwriting any prior record for the email
func (s *RedisOTPStore) Put(ctx context.Context, email string, rec model.OTPRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode otp record: %w", err)
	}
	return s.rdb.Set(ctx, otpKeyPrefix+email, data, otpKeyTTL).Err()
}

// Get returns the pending record for the email, or nil if none exists
func (s *RedisOTPStore) Get(ctx context.Context, email string) (*model.OTPRecord, error) {
	data, err := s.rdb.Get(ctx, otpKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec model.OTPRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode otp record: %w", err)
	}
	return &rec, nil
}

// Delete removes the record for the email. Deleting a missing record is not an error.
func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, otpKeyPrefix+email).Err()
}
