package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sshusain313/causeconnect-sub000/internal/services"
)

// OTPHandler handles OTP-related HTTP requests
type OTPHandler struct {
	otpService *services.OTPService
}

// NewOTPHandler creates a new OTPHandler
func NewOTPHandler(otpService *services.OTPService) *OTPHandler {
	return &OTPHandler{
		otpService: otpService,
	}
}

// SendOTP handles POST /otp/send. The code itself never appears in the
// response body.
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.otpService.IssueCode(c.Request.Context(), request.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Verification code sent"
	if result.Dedup {
		message = "A verification code was already sent recently"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "email": request.Email})
}

// VerifyOTP handles POST /otp/verify. All failure outcomes are 400 with a
// distinguishing message; only the message tells invalid, expired and
// already-used apart.
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.otpService.VerifyCode(c.Request.Context(), request.Email, request.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	switch status {
	case services.VerificationSuccess:
		c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
	case services.VerificationAlreadyUsed:
		c.JSON(http.StatusBadRequest, gin.H{"error": "This code has already been used"})
	case services.VerificationExpired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "This code has expired"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
	}
}
