package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tigerapps/tigertaxi/internal/middleware"
	"github.com/tigerapps/tigertaxi/internal/services"
	"github.com/tigerapps/tigertaxi/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(db),
	}
}

// UpdateSettings applies the Settings form. Only the account owner may
// change their own settings.
// POST /api/users/:netid/settings
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateSettings(c.Param("netid"), middleware.GetNetid(c), &req)
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	response.Success(c, user)
}

// GetSettings returns the current user-adjustable settings.
// GET /api/users/:netid/settings
func (h *UserHandler) GetSettings(c *gin.Context) {
	netid := c.Param("netid")
	if netid != middleware.GetNetid(c) {
		response.Forbidden(c, "you do not have permission to view these settings")
		return
	}

	user, err := h.userService.GetByNetid(netid)
	if err != nil {
		respondError(c, err, "user not found")
		return
	}

	response.Success(c, gin.H{
		"netid":        user.Netid,
		"disp_name":    user.DispName,
		"phone_num":    user.PhoneNum,
		"email_notifs": user.EmailNotifs,
		"text_notifs":  user.TextNotifs,
	})
}
