package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tigerapps/tigertaxi/internal/middleware"
	"github.com/tigerapps/tigertaxi/internal/services"
	"github.com/tigerapps/tigertaxi/pkg/response"
	"gorm.io/gorm"
)

type RideHandler struct {
	rideService    *services.RideService
	requestService *services.RideRequestService
	riderService   *services.RiderService
	userService    *services.UserService
	notifications  *services.NotificationService
}

func NewRideHandler(db *gorm.DB, notifications *services.NotificationService) *RideHandler {
	return &RideHandler{
		rideService:    services.NewRideService(db),
		requestService: services.NewRideRequestService(db),
		riderService:   services.NewRiderService(db),
		userService:    services.NewUserService(db),
		notifications:  notifications,
	}
}

// Create posts a new ride and seats the creator.
// POST /api/rides
func (h *RideHandler) Create(c *gin.Context) {
	var req services.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	ride, err := h.rideService.Create(userID, &req)
	if err != nil {
		respondError(c, err, "ride not found")
		return
	}

	if creator, err := h.userService.GetByID(userID); err == nil {
		h.notifications.RideCreated(creator, ride)
	}

	response.Created(c, ride)
}

// Search lists upcoming rides matching the query, decorated with the
// viewer's membership flags.
// GET /api/rides
func (h *RideHandler) Search(c *gin.Context) {
	var req services.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	views, err := h.rideService.Search(&req, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "ride not found")
		return
	}

	response.Success(c, gin.H{
		"rides": views,
		"total": len(views),
	})
}

// MyRides returns the My Rides page data: rides the user created plus their
// outbound requests bucketed by status.
// GET /api/rides/mine
func (h *RideHandler) MyRides(c *gin.Context) {
	userID := middleware.GetUserID(c)

	created, err := h.rideService.GetCreatedRides(userID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	outbox, err := h.requestService.Outbox(userID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	inbox, err := h.requestService.PendingInbox(userID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"created_rides":    created,
		"requests":         outbox,
		"pending_requests": inbox,
	})
}

// Leave gives up the caller's own seat on a ride. The ride creator is
// emailed; the creator's own seat cannot be given up.
// POST /api/rides/:id/leave
func (h *RideHandler) Leave(c *gin.Context) {
	rideID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid ride ID")
		return
	}

	rider, err := h.riderService.Leave(uint(rideID), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "ride not found")
		return
	}

	if ride, err := h.rideService.GetByID(uint(rideID)); err == nil && ride.Creator != nil {
		name := ""
		if rider.User != nil {
			name = rider.User.DispName
		}
		h.notifications.RiderLeft(ride.Creator, name, ride)
	}

	response.Success(c, gin.H{"left": true})
}
