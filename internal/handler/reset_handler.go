package handler

import (
	"errors"
	"net/http"

	"github.com/ducnguyen/caretrack/internal/model"
	"github.com/ducnguyen/caretrack/internal/service"
	"github.com/gin-gonic/gin"
)

// ResetHandler handles the password-reset endpoints. The bearer token
// travels in the request body on these routes, so they bypass the
// Authorization-header middleware.
type ResetHandler struct {
	resetService *service.ResetService
}

func NewResetHandler(resetService *service.ResetService) *ResetHandler {
	return &ResetHandler{resetService: resetService}
}

// RequestOTP godoc
// @Summary Request a password reset code
// @Tags Reset
// @Accept json
// @Produce json
// @Param body body model.ResetRequestRequest true "Reset request"
// @Success 200 {object} model.OTPSentResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /reset/request [post]
func (h *ResetHandler) RequestOTP(c *gin.Context) {
	var req model.ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	resp, err := h.resetService.RequestOTP(c.Request.Context(), req.Token, req.Email)
	if err != nil {
		c.JSON(statusForResetError(err), model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyOTP godoc
// @Summary Verify a password reset code
// @Tags Reset
// @Accept json
// @Produce json
// @Param body body model.ResetVerifyRequest true "Verify request"
// @Success 200 {object} model.OTPVerifiedResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /reset/verify [post]
func (h *ResetHandler) VerifyOTP(c *gin.Context) {
	var req model.ResetVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	resp, err := h.resetService.VerifyOTP(c.Request.Context(), req.Token, req.Email, req.OTP)
	if err != nil {
		c.JSON(statusForResetError(err), model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmReset godoc
// @Summary Reset the password using a pending code
// @Tags Reset
// @Accept json
// @Produce json
// @Param body body model.ResetConfirmRequest true "Confirm request"
// @Success 200 {object} model.SuccessResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /reset/confirm [post]
func (h *ResetHandler) ConfirmReset(c *gin.Context) {
	var req model.ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	if err := h.resetService.ResetPassword(c.Request.Context(), req.Token, req.Email, req.NewPassword); err != nil {
		c.JSON(statusForResetError(err), model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Password reset successfully"})
}

// statusForResetError maps service errors onto HTTP statuses:
// 401 token problems, 404 unknown/foreign account, 400 field and code
// problems, 500 everything else (store or mail failures included).
func statusForResetError(err error) int {
	switch {
	case errors.Is(err, service.ErrTokenRequired), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrOTPRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrNoPendingReset),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPExpired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
