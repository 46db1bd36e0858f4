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

type AuthHandler struct {
	sessions *auth.Store
	users    *service.UserService
}

func NewAuthHandler(sessions *auth.Store, users *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Registration body"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidCredentials),
			errors.Is(err, dom.ErrEmptyEmail),
			errors.Is(err, dom.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	h.startSession(c, u)
	c.JSON(http.StatusCreated, userToResponse(u))
}

// Login godoc
// @Summary      Log in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Login body"
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.startSession(c, u)
	c.JSON(http.StatusOK, userToResponse(u))
}

// Logout godoc
// @Summary      Log out and drop the session
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(auth.SessionCookieName); err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) startSession(c *gin.Context, u *dom.User) {
	sessionID, err := h.sessions.Create(c.Request.Context(), u.ID())
	if err != nil {
		// The account exists; the client just has to log in again.
		return
	}
	c.SetCookie(auth.SessionCookieName, sessionID, 0, "/", "", false, true)
}

func userToResponse(u *dom.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID().String(), Email: u.Email().Value()}
}
