package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tigerapps/tigertaxi/internal/config"
	"github.com/tigerapps/tigertaxi/internal/middleware"
	"github.com/tigerapps/tigertaxi/internal/services"
	"github.com/tigerapps/tigertaxi/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	casCfg      *config.CASConfig
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, &cfg.CAS, &cfg.JWT),
		userService: services.NewUserService(db),
		casCfg:      &cfg.CAS,
	}
}

// GetAuthConfig returns the CAS redirect targets the client needs.
// GET /api/auth/config?service_url=...
func (h *AuthHandler) GetAuthConfig(c *gin.Context) {
	serviceURL := c.Query("service_url")
	response.Success(c, gin.H{
		"login_url":    h.authService.LoginURL(serviceURL),
		"logout_url":   h.authService.LogoutURL(),
		"after_logout": h.casCfg.AfterLogout,
	})
}

// Login exchanges a CAS service ticket for a session token, provisioning
// the account on first login.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrCASAuthFailed) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetCurrentUser returns the authenticated account.
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userService.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "user not found")
		return
	}
	response.Success(c, user)
}

// Logout acknowledges the session teardown. Tokens are stateless; the
// client discards its copy and redirects through CAS logout so a stale
// SSO session cannot silently re-authenticate.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, gin.H{
		"message":    "logged out",
		"logout_url": h.authService.LogoutURL(),
	})
}
