package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tigerapps/tigertaxi/internal/middleware"
	"github.com/tigerapps/tigertaxi/internal/services"
	"github.com/tigerapps/tigertaxi/pkg/response"
	"gorm.io/gorm"
)

type RiderHandler struct {
	riderService  *services.RiderService
	rideService   *services.RideService
	notifications *services.NotificationService
}

func NewRiderHandler(db *gorm.DB, notifications *services.NotificationService) *RiderHandler {
	return &RiderHandler{
		riderService:  services.NewRiderService(db),
		rideService:   services.NewRideService(db),
		notifications: notifications,
	}
}

// Remove takes a rider off a ride and emails them. Creator only; the
// creator's own seat cannot be removed.
// POST /api/riders/:id/remove
func (h *RiderHandler) Remove(c *gin.Context) {
	riderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid rider ID")
		return
	}

	rider, err := h.riderService.Remove(uint(riderID), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "rider not found")
		return
	}

	if ride, err := h.rideService.GetByID(rider.RideID); err == nil && ride.Creator != nil && rider.User != nil {
		h.notifications.RiderRemoved(rider.User, ride.Creator, ride)
	}

	response.Success(c, gin.H{"removed": true})
}
