package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/dto"
	apierrors "github.com/taskflowhq/taskflow-api/internal/errors"
	"github.com/taskflowhq/taskflow-api/internal/middleware"
	"github.com/taskflowhq/taskflow-api/internal/models"
	"github.com/taskflowhq/taskflow-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and returns their first bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Invalid request body", bindingFieldErrors(err))
		return
	}

	user, token, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(gin.H{
		"user":  userWithEmail(user),
		"token": token,
	}, "User registered successfully.", http.StatusCreated))
}

// Login authenticates a user and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Invalid request body", bindingFieldErrors(err))
		return
	}

	user, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(gin.H{
		"user":  userWithEmail(user),
		"token": token,
	}, "Login successful.", http.StatusOK))
}

// Logout acknowledges the logout; tokens are stateless and simply discarded
// by the client.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewResponse(nil, "Logged out successfully.", http.StatusOK))
}

// Show returns the authenticated user.
func (h *AuthHandler) Show(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(userWithEmail(user), "User fetched successfully.", http.StatusOK))
}

// userWithEmail is the auth-only user representation; other endpoints omit
// email addresses.
func userWithEmail(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.ValidationFailed(c, "Password is too short", map[string]string{"password": "must be at least 8 characters"})
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.ValidationFailed(c, err.Error(), map[string]string{"email": "already registered"})
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
