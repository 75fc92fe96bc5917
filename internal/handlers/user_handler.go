package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vitadoc/internal/pdf"
	"vitadoc/internal/services"
)

type UserHandler struct {
	users services.UserService
	cards pdf.Generator
}

func NewUserHandler(users services.UserService, cards pdf.Generator) *UserHandler {
	return &UserHandler{users: users, cards: cards}
}

// @Summary      Fetch a doctor profile
// @Tags         Users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /auth/user/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}
	user, err := h.users.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	// credential and reset fields are json:"-" and never leave the server
	c.JSON(http.StatusOK, user)
}

// @Summary      Download a doctor profile card as PDF
// @Tags         Users
// @Produce      application/pdf
// @Param        id  path  int  true  "User ID"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /auth/user/{id}/card [get]
func (h *UserHandler) DownloadProfileCard(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}
	user, err := h.users.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	path, err := h.cards.GenerateProfileCard(pdf.ProfileCardData{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Specialty:   user.MedicalSpecialty,
		Location:    user.Location,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		SecondPhone: user.SecondPhone,
		MemberSince: user.CreatedAt,
	})
	if err != nil {
		log.Printf("[users][card] generate failed for user_id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.FileAttachment(path, "profile.pdf")
}
