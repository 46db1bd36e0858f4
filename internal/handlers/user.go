package handlers

import (
	"errors"
	"net/http"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/auth"
	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/dto"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the current account's profile.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me godoc
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(u))
}

// ChangeEmail godoc
// @Summary      Replace the current user's email
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.ChangeEmailRequest  true  "New email"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/me/email [put]
func (h *UserHandler) ChangeEmail(c *gin.Context) {
	var req dto.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.ChangeEmail(c.Request.Context(), auth.UserIDFromContext(c), req.Email)
	if err != nil {
		if errors.Is(err, dom.ErrEmptyEmail) || errors.Is(err, dom.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(u))
}
