package model

// ========== Auth DTOs ==========

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ========== Password Reset DTOs ==========

// Reset endpoints carry the bearer token in the body: the caller proves
// possession of an authenticated session for the account being reset.

type ResetRequestRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type ResetVerifyRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetConfirmRequest struct {
	Token       string `json:"token"`
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type OTPSentResponse struct {
	Message   string `json:"message"`
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"` // seconds until code expires
}

type OTPVerifiedResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// ========== Admission DTOs ==========

type AdmissionRequest struct {
	PatientID         uint   `json:"patient_id" binding:"required"`
	AdmissionDate     string `json:"admission_date" binding:"required"`
	DischargeDate     string `json:"discharge_date"`
	Diagnosis         string `json:"diagnosis" binding:"required"`
	AttendingDoctorID uint   `json:"attending_doctor_id" binding:"required"`
}

type AdmissionCreatedResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// ========== Common DTOs ==========

type SuccessResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
