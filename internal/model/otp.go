package model

import "time"

// OTPRecord is a pending password-reset code for one email address.
// At most one live record exists per email; issuing a new code
// overwrites the previous one.
type OTPRecord struct {
	Code      string    `json:"code"`       // 6-digit numeric code
	ExpiresAt time.Time `json:"expires_at"` // when the code becomes invalid
}

// ExpiredAt reports whether the record is expired at the given instant.
// The record stays in the store past its expiry until it is overwritten
// by a new request or consumed by a successful reset.
func (r *OTPRecord) ExpiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
