package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/helpers"
	"github.com/stackstay/stayd/internal/services"
)

type raiseDisputeRequest struct {
	BookingID *uint64 `json:"booking_id" binding:"required"`
	Reason    string  `json:"reason" binding:"required,max=500"`
	Evidence  string  `json:"evidence" binding:"max=1000"`
}

type resolveDisputeRequest struct {
	Resolution       string  `json:"resolution" binding:"required,max=500"`
	RefundPercentage *uint64 `json:"refund_percentage" binding:"required"`
}

func RaiseDisputeHandler(ds *services.DisputeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := principal(c)
		if !ok {
			return
		}
		var req raiseDisputeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		id, err := ds.RaiseDispute(caller, *req.BookingID, req.Reason, req.Evidence)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"dispute_id": id}, "Dispute raised"))
	}
}

func ResolveDisputeHandler(ds *services.DisputeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := principal(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req resolveDisputeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		if err := ds.ResolveDispute(caller, id, req.Resolution, *req.RefundPercentage); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"dispute_id": id}, "Dispute resolved"))
	}
}

func GetDispute(ds *services.DisputeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		dispute, err := ds.GetDispute(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		if dispute == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("dispute not found"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(dispute, ""))
	}
}

func GetDisputeStatus(ds *services.DisputeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		status, err := ds.GetDisputeStatus(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		resolved, err := ds.IsDisputeResolved(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"status":   status,
			"resolved": resolved,
		}, ""))
	}
}

func GetBookingDispute(ds *services.DisputeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := idParam(c, "id")
		if !ok {
			return
		}
		result, err := ds.GetBookingDispute(bookingID)
		if err != nil {
			abortWith(c, err)
			return
		}
		if result == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("no dispute for booking"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, ""))
	}
}
