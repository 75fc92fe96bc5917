package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vitadoc/internal/models"
	"vitadoc/internal/services"
)

type ResetHandler struct {
	reset services.ResetService
}

func NewResetHandler(reset services.ResetService) *ResetHandler {
	return &ResetHandler{reset: reset}
}

// @Summary      Request a password reset
// @Description  Email: issues a 6-digit code and mails it. Phone: acknowledged only; the client widget runs the verification.
// @Tags         Reset
// @Accept       json
// @Produce      json
// @Param        body  body      models.ForgotPasswordRequest  true  "Contact and channel"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *ResetHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.reset.RequestReset(req.Contact, req.Type); err != nil {
		respondError(c, err)
		return
	}
	if req.Type == models.ResetTypePhone {
		c.JSON(http.StatusOK, gin.H{"message": "Proceed with phone verification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// @Summary      Check a reset code
// @Description  Does not invalidate the code; only a completed reset does.
// @Tags         Reset
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyCodeRequest  true  "Contact, code and channel"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/verify-code [post]
func (h *ResetHandler) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Type == models.ResetTypePhone {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Phone codes are verified by the sign-in widget"})
		return
	}

	if err := h.reset.VerifyCode(req.Contact, req.Code, req.Type); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

// @Summary      Set a new password
// @Description  Email channel finalizes with the pending code's contact; phone channel with a Firebase ID token.
// @Tags         Reset
// @Accept       json
// @Produce      json
// @Param        body  body      models.ResetPasswordRequest  true  "New password plus contact or ID token"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *ResetHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	// the union must carry the field its tag requires
	if req.Type == models.ResetTypeEmail && req.Contact == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "contact is required for email reset"})
		return
	}
	if req.Type == models.ResetTypePhone && req.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "idToken is required for phone reset"})
		return
	}

	if err := h.reset.ResetPassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
