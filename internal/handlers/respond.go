package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tigerapps/tigertaxi/internal/services"
	"github.com/tigerapps/tigertaxi/pkg/response"
	"gorm.io/gorm"
)

// respondError maps service errors onto the API's response vocabulary:
// validation failures are 400s, guard failures are 403/409s, missing rows
// are 404s, and anything else is a server fault.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(c, vErr.Error())
	case errors.Is(err, services.ErrWrongActor):
		response.Forbidden(c, err.Error())
	case services.IsGuardFailure(err):
		response.Conflict(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, notFoundMsg)
	default:
		response.ServerError(c, err.Error())
	}
}
