package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"vitadoc/internal/middleware"
	"vitadoc/internal/models"
	"vitadoc/internal/services"
)

type AuthHandler struct {
	users      services.UserService
	tokens     services.TokenService
	uploadsDir string
}

func NewAuthHandler(users services.UserService, tokens services.TokenService, uploadsDir string) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, uploadsDir: uploadsDir}
}

// @Summary      Register a doctor account
// @Description  Creates an account from multipart form data with an optional profile picture
// @Tags         Auth
// @Accept       mpfd
// @Produce      json
// @Param        firstName  formData  string  true  "First name"
// @Param        email      formData  string  true  "Email"
// @Param        password   formData  string  true  "Password"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	picture := ""
	if file, err := c.FormFile("picture"); err == nil && file != nil {
		name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
		dst := filepath.Join(h.uploadsDir, name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			log.Printf("[auth][signup] save picture failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		picture = "/uploads/" + name
	}

	user, err := h.users.Signup(req, picture)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[auth][signup] success user_id=%d", user.ID)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userSummary(user)})
}

// @Summary      Sign in with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.SigninRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.Signin(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[auth][signin] success user_id=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userSummary(user)})
}

// @Summary      Sign in with a Google ID token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.GoogleSigninRequest  true  "Google ID token"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleSignin(c *gin.Context) {
	var req models.GoogleSigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.GoogleSignin(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userSummary(user)})
}

// @Summary      Check a session token
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/verify [get]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	tokenStr, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "No token provided"})
		return
	}
	userID, err := h.tokens.Verify(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "Invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "userId": userID})
}

// @Summary      Exchange a still-valid token for a fresh one
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenStr, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
		return
	}
	fresh, err := h.tokens.Refresh(tokenStr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": fresh})
}
