package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ducnguyen/caretrack/internal/model"
	"github.com/ducnguyen/caretrack/internal/repository"
	"github.com/ducnguyen/caretrack/pkg/auth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpValidityMinutes = 10

// TokenVerifier validates a bearer token and yields its claims
type TokenVerifier interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// ResetUserStore is the slice of the user repository the reset flow needs
type ResetUserStore interface {
	FindByEmail(email string) (*model.User, error)
	UpdatePassword(userID uint, hashedPassword string) error
}

// ResetMailer delivers the reset code to the account owner
type ResetMailer interface {
	SendPasswordReset(toEmail, username, code string, expiryMinutes int) error
}

// ResetService coordinates the password-reset OTP lifecycle: a code is
// issued per email, verified any number of times while its window is
// open, and consumed exactly once by a successful password reset.
type ResetService struct {
	users    ResetUserStore
	otps     repository.OTPStore
	verifier TokenVerifier
	mailer   ResetMailer
	now      func() time.Time
}

func NewResetService(users ResetUserStore, otps repository.OTPStore, verifier TokenVerifier, mailer ResetMailer) *ResetService {
	return &ResetService{
		users:    users,
		otps:     otps,
		verifier: verifier,
		mailer:   mailer,
		now:      time.Now,
	}
}

// RequestOTP issues a fresh reset code for the email, overwriting any
// pending one, and emails it to the account owner. The token holder
// must own the account being reset.
//
// If the email fails to send the stored code stays in place; the caller
// sees the failure but a retry of the emailed code would still work.
func (s *ResetService) RequestOTP(ctx context.Context, token, email string) (*model.OTPSentResponse, error) {
	user, err := s.authorize(token, email)
	if err != nil {
		return nil, err
	}

	code, err := generateOTPCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset code: %w", err)
	}

	rec := model.OTPRecord{
		Code:      code,
		ExpiresAt: s.now().Add(otpValidityMinutes * time.Minute),
	}
	if err := s.otps.Put(ctx, email, rec); err != nil {
		return nil, fmt.Errorf("failed to store reset code: %w", err)
	}

	if err := s.mailer.SendPasswordReset(user.Email, user.Username, code, otpValidityMinutes); err != nil {
		return nil, fmt.Errorf("failed to send reset email: %w", err)
	}

	return &model.OTPSentResponse{
		Message:   "Reset code sent to your email",
		Email:     user.Email,
		ExpiresIn: otpValidityMinutes * 60,
	}, nil
}

// VerifyOTP checks a submitted code against the pending record. It
// never mutates the record: a correct code verifies repeatedly until
// the window closes or the reset is completed.
func (s *ResetService) VerifyOTP(ctx context.Context, token, email, otp string) (*model.OTPVerifiedResponse, error) {
	if otp == "" {
		return nil, ErrOTPRequired
	}

	user, err := s.authorize(token, email)
	if err != nil {
		return nil, err
	}

	rec, err := s.otps.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load reset code: %w", err)
	}
	if rec == nil {
		return nil, ErrNoPendingReset
	}
	if rec.Code != otp {
		return nil, ErrInvalidOTP
	}
	if rec.ExpiredAt(s.now()) {
		return nil, ErrOTPExpired
	}

	return &model.OTPVerifiedResponse{
		Message: "Code verified",
		Email:   user.Email,
	}, nil
}

// ResetPassword sets a new password for the account. It re-checks the
// pending record and its expiry itself rather than trusting an earlier
// VerifyOTP call, and deletes the record on success so the code cannot
// be used twice.
func (s *ResetService) ResetPassword(ctx context.Context, token, email, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}

	user, err := s.authorize(token, email)
	if err != nil {
		return err
	}

	rec, err := s.otps.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load reset code: %w", err)
	}
	if rec == nil {
		return ErrNoPendingReset
	}
	if rec.ExpiredAt(s.now()) {
		return ErrOTPExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.otps.Delete(ctx, email); err != nil {
		return fmt.Errorf("failed to consume reset code: %w", err)
	}
	return nil
}

// authorize validates the token, resolves the email to a user and
// checks the token holder owns that account.
func (s *ResetService) authorize(token, email string) (*model.User, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	claims, err := s.verifier.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.ID != claims.UserID {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// generateOTPCode returns a 6-digit code drawn uniformly from [100000, 999999]
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
