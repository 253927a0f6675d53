package service

import "errors"

var (
	// ErrTokenRequired is returned when no bearer token was supplied.
	ErrTokenRequired = errors.New("token is required")
	// ErrInvalidToken is returned for a malformed, tampered or expired token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmailRequired is returned when the email field is missing.
	ErrEmailRequired = errors.New("email is required")
	// ErrOTPRequired is returned when the otp field is missing.
	ErrOTPRequired = errors.New("otp is required")
	// ErrPasswordRequired is returned when the new password field is missing.
	ErrPasswordRequired = errors.New("new password is required")
	// ErrUserNotFound is returned when the email resolves to no account,
	// or to an account that is not the token holder's.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoPendingReset is returned when no reset code was requested for the email.
	ErrNoPendingReset = errors.New("no pending reset request")
	// ErrInvalidOTP is returned when the submitted code does not match the stored one.
	ErrInvalidOTP = errors.New("invalid code")
	// ErrOTPExpired is returned when the stored code's validity window has passed.
	ErrOTPExpired = errors.New("code expired")
	// ErrEmailExists is returned when registering with an already-used email.
	ErrEmailExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned for a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
