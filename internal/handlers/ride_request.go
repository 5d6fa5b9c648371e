package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tigerapps/tigertaxi/internal/middleware"
	"github.com/tigerapps/tigertaxi/internal/models"
	"github.com/tigerapps/tigertaxi/internal/services"
	"github.com/tigerapps/tigertaxi/pkg/response"
	"gorm.io/gorm"
)

type RideRequestHandler struct {
	requestService *services.RideRequestService
	notifications  *services.NotificationService
}

func NewRideRequestHandler(db *gorm.DB, notifications *services.NotificationService) *RideRequestHandler {
	return &RideRequestHandler{
		requestService: services.NewRideRequestService(db),
		notifications:  notifications,
	}
}

// Create files a join request for a ride and emails the ride creator.
// POST /api/rides/:id/requests
func (h *RideRequestHandler) Create(c *gin.Context) {
	rideID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid ride ID")
		return
	}

	req, err := h.requestService.Create(uint(rideID), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "ride not found")
		return
	}

	if req.Ride != nil && req.Ride.Creator != nil && req.User != nil {
		h.notifications.RequestReceived(req.Ride.Creator, req.User, req.Ride)
	}

	response.Created(c, req)
}

// Accept seats the requester and emails them. Creator only.
// POST /api/ride-requests/:id/accept
func (h *RideRequestHandler) Accept(c *gin.Context) {
	h.transition(c, h.requestService.Accept, func(req *models.RideRequest) {
		if req.User != nil && req.Ride != nil {
			h.notifications.RequestAccepted(req.User, req.Ride)
		}
	})
}

// Reject declines the request and emails the requester. Creator only.
// POST /api/ride-requests/:id/reject
func (h *RideRequestHandler) Reject(c *gin.Context) {
	h.transition(c, h.requestService.Reject, func(req *models.RideRequest) {
		if req.User != nil && req.Ride != nil {
			h.notifications.RequestRejected(req.User, req.Ride)
		}
	})
}

// Cancel withdraws the caller's own pending request. No email is sent.
// POST /api/ride-requests/:id/cancel
func (h *RideRequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.requestService.Cancel, nil)
}

// transition runs a request state change and, on success, fires the
// associated notification.
func (h *RideRequestHandler) transition(
	c *gin.Context,
	op func(requestID, actorID uint) (*models.RideRequest, error),
	notify func(*models.RideRequest),
) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid request ID")
		return
	}

	req, err := op(uint(requestID), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "request not found")
		return
	}

	if notify != nil {
		notify(req)
	}

	response.Success(c, req)
}
