package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/helpers"
	"github.com/stackstay/stayd/internal/services"
)

type bookPropertyRequest struct {
	PropertyID *uint64 `json:"property_id" binding:"required"`
	CheckIn    uint64  `json:"check_in"`
	CheckOut   uint64  `json:"check_out" binding:"required"`
	NumNights  uint64  `json:"num_nights" binding:"required,gt=0"`
}

func BookPropertyHandler(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guest, ok := principal(c)
		if !ok {
			return
		}
		var req bookPropertyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		id, err := es.BookProperty(guest, *req.PropertyID, req.CheckIn, req.CheckOut, req.NumNights)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"booking_id": id}, "Booking confirmed"))
	}
}

func GetBooking(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		booking, err := es.GetBooking(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		if booking == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("booking not found"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, ""))
	}
}

func ReleasePayment(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := principal(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := es.ReleasePayment(caller, id); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"booking_id": id}, "Payment released"))
	}
}

func CancelBooking(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := principal(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		refund, err := es.CancelBooking(caller, id)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"booking_id":    id,
			"refund_amount": refund,
		}, "Booking cancelled"))
	}
}
