package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ducnguyen/caretrack/internal/model"
	"github.com/ducnguyen/caretrack/internal/repository"
	"github.com/ducnguyen/caretrack/pkg/auth"
	"gorm.io/gorm"
)

type mockUserStore struct {
	usersByEmail map[string]*model.User
	passwords    map[uint]string
	updateErr    error
}

func (m *mockUserStore) FindByEmail(email string) (*model.User, error) {
	user, ok := m.usersByEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserStore) UpdatePassword(userID uint, hashedPassword string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.passwords == nil {
		m.passwords = make(map[uint]string)
	}
	m.passwords[userID] = hashedPassword
	return nil
}

type mockMailer struct {
	sent    []string // codes, in send order
	sendErr error
}

func (m *mockMailer) SendPasswordReset(toEmail, username, code string, expiryMinutes int) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, code)
	return nil
}

type resetFixture struct {
	svc    *ResetService
	users  *mockUserStore
	otps   *repository.MemoryOTPStore
	mailer *mockMailer
	jwt    *auth.JWTManager
	now    time.Time
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	users := &mockUserStore{
		usersByEmail: map[string]*model.User{
			"user@example.com":  {ID: 1, Username: "user", Email: "user@example.com"},
			"other@example.com": {ID: 2, Username: "other", Email: "other@example.com"},
		},
	}
	otps := repository.NewMemoryOTPStore()
	mailer := &mockMailer{}
	jwt := auth.NewJWTManager("test-secret", time.Hour)

	f := &resetFixture{
		svc:    NewResetService(users, otps, jwt, mailer),
		users:  users,
		otps:   otps,
		mailer: mailer,
		jwt:    jwt,
		now:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *resetFixture) token(t *testing.T, userID uint, email string) string {
	t.Helper()
	token, err := f.jwt.GenerateToken(userID, email, "user")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func (f *resetFixture) storedCode(t *testing.T, email string) string {
	t.Helper()
	rec, err := f.otps.Get(context.Background(), email)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected a pending record for %s", email)
	}
	return rec.Code
}

func TestRequestOTPStoresAndMailsCode(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	resp, err := f.svc.RequestOTP(context.Background(), token, "user@example.com")
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	if resp.Email != "user@example.com" {
		t.Errorf("expected echoed email, got %s", resp.Email)
	}
	if resp.ExpiresIn != 600 {
		t.Errorf("expected 600s validity, got %d", resp.ExpiresIn)
	}

	code := f.storedCode(t, "user@example.com")
	if len(code) != 6 {
		t.Errorf("expected a 6-digit code, got %q", code)
	}
	if len(f.mailer.sent) != 1 || f.mailer.sent[0] != code {
		t.Errorf("expected stored code to be mailed, sent=%v stored=%s", f.mailer.sent, code)
	}

	rec, _ := f.otps.Get(context.Background(), "user@example.com")
	if want := f.now.Add(10 * time.Minute); !rec.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, rec.ExpiresAt)
	}
}

func TestRequestOTPValidation(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	tests := []struct {
		name    string
		token   string
		email   string
		wantErr error
	}{
		{"missing token", "", "user@example.com", ErrTokenRequired},
		{"missing email", token, "", ErrEmailRequired},
		{"garbage token", "not-a-token", "user@example.com", ErrInvalidToken},
		{"unknown email", token, "nobody@example.com", ErrUserNotFound},
		{"other account", token, "other@example.com", ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RequestOTP(context.Background(), tt.token, tt.email)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// No record may be written by any failed request
	rec, _ := f.otps.Get(context.Background(), "user@example.com")
	if rec != nil {
		t.Fatal("expected no record after failed requests")
	}
}

func TestRequestOTPMailFailureKeepsRecord(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.sendErr = errors.New("smtp unreachable")
	token := f.token(t, 1, "user@example.com")

	_, err := f.svc.RequestOTP(context.Background(), token, "user@example.com")
	if err == nil {
		t.Fatal("expected an error when mail delivery fails")
	}
	if errors.Is(err, ErrTokenRequired) || errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("mail failure should surface as a dependency error, got %v", err)
	}

	// The code was written before the send and is not rolled back
	code := f.storedCode(t, "user@example.com")
	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", code); err != nil {
		t.Fatalf("stored code should still verify after mail failure: %v", err)
	}
}

func TestVerifyOTPNoPendingRequest(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	_, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", "123456")
	if !errors.Is(err, ErrNoPendingReset) {
		t.Fatalf("expected ErrNoPendingReset, got %v", err)
	}
}

func TestVerifyOTPRepeatableWhileWindowOpen(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	if _, err := f.svc.RequestOTP(context.Background(), token, "user@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	code := f.storedCode(t, "user@example.com")

	// Verification is read-only and repeatable
	for i := 0; i < 3; i++ {
		resp, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", code)
		if err != nil {
			t.Fatalf("verify #%d failed: %v", i+1, err)
		}
		if resp.Email != "user@example.com" {
			t.Errorf("expected echoed email, got %s", resp.Email)
		}
	}

	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", "000000"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for wrong code, got %v", err)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	if _, err := f.svc.RequestOTP(context.Background(), token, "user@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	code := f.storedCode(t, "user@example.com")

	// Just inside the window still verifies
	f.now = f.now.Add(10 * time.Minute)
	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", code); err != nil {
		t.Fatalf("verify at the window edge failed: %v", err)
	}

	// 11 minutes after issuance the matching code is rejected
	f.now = f.now.Add(time.Minute)
	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", code); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}

	// A wrong code reports invalid, not expired, regardless of timing
	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", "000000"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}

	// The expired record is not removed
	if got := f.storedCode(t, "user@example.com"); got != code {
		t.Fatalf("expired record should persist, got %s", got)
	}
}

func TestVerifyOTPMissingCode(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", ""); !errors.Is(err, ErrOTPRequired) {
		t.Fatalf("expected ErrOTPRequired, got %v", err)
	}
}

func TestResetPasswordConsumesRecordOnce(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	if _, err := f.svc.RequestOTP(context.Background(), token, "user@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	if err := f.svc.ResetPassword(context.Background(), token, "user@example.com", "new-password"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	hash, ok := f.users.passwords[1]
	if !ok || hash == "" || hash == "new-password" {
		t.Fatalf("expected a stored bcrypt hash, got %q", hash)
	}

	// The record was consumed: a second reset finds nothing pending
	err := f.svc.ResetPassword(context.Background(), token, "user@example.com", "another-password")
	if !errors.Is(err, ErrNoPendingReset) {
		t.Fatalf("expected ErrNoPendingReset on second reset, got %v", err)
	}
}

func TestResetPasswordExpired(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	if _, err := f.svc.RequestOTP(context.Background(), token, "user@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	f.now = f.now.Add(11 * time.Minute)
	err := f.svc.ResetPassword(context.Background(), token, "user@example.com", "new-password")
	if !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}

	// Nothing was mutated: password unchanged, record still there
	if _, ok := f.users.passwords[1]; ok {
		t.Fatal("password must not change for an expired code")
	}
	f.storedCode(t, "user@example.com")
}

func TestResetPasswordValidation(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	if err := f.svc.ResetPassword(context.Background(), token, "user@example.com", ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if err := f.svc.ResetPassword(context.Background(), "", "user@example.com", "pw"); !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
	if err := f.svc.ResetPassword(context.Background(), token, "user@example.com", "pw"); !errors.Is(err, ErrNoPendingReset) {
		t.Fatalf("expected ErrNoPendingReset, got %v", err)
	}
}

func TestReissueInvalidatesStaleCode(t *testing.T) {
	f := newResetFixture(t)
	token := f.token(t, 1, "user@example.com")

	if _, err := f.svc.RequestOTP(context.Background(), token, "user@example.com"); err != nil {
		t.Fatalf("first RequestOTP failed: %v", err)
	}
	first := f.storedCode(t, "user@example.com")

	if _, err := f.svc.RequestOTP(context.Background(), token, "user@example.com"); err != nil {
		t.Fatalf("second RequestOTP failed: %v", err)
	}
	second := f.storedCode(t, "user@example.com")

	if len(f.mailer.sent) != 2 {
		t.Fatalf("expected two mails, got %d", len(f.mailer.sent))
	}
	if first == second {
		// Random collisions on a 900000-value space are possible but a
		// same-code reissue would make the stale-code check meaningless.
		t.Fatalf("expected a fresh code on reissue, got %s twice", first)
	}

	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", first); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("stale code should be invalid after reissue, got %v", err)
	}
	if _, err := f.svc.VerifyOTP(context.Background(), token, "user@example.com", second); err != nil {
		t.Fatalf("fresh code should verify: %v", err)
	}
}

func TestGeneratedCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOTPCode()
		if err != nil {
			t.Fatalf("generateOTPCode failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("code %q outside [100000, 999999]", code)
		}
	}
}
