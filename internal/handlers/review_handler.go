package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/helpers"
	"github.com/stackstay/stayd/internal/services"
)

type submitReviewRequest struct {
	BookingID *uint64 `json:"booking_id" binding:"required"`
	Reviewee  string  `json:"reviewee" binding:"required,principal"`
	Rating    uint64  `json:"rating" binding:"required,min=1,max=5"`
	Comment   string  `json:"comment" binding:"max=500"`
}

func SubmitReviewHandler(rs *services.ReputationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := principal(c)
		if !ok {
			return
		}
		var req submitReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		id, err := rs.SubmitReview(caller, *req.BookingID, req.Reviewee, req.Rating, req.Comment)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"review_id": id}, "Review submitted"))
	}
}

func GetReview(rs *services.ReputationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		review, err := rs.GetReview(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		if review == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("review not found"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(review, ""))
	}
}

func GetUserStats(rs *services.ReputationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("principal")
		stats, err := rs.GetUserStats(owner)
		if err != nil {
			abortWith(c, err)
			return
		}
		if stats == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("no reviews for user"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, ""))
	}
}

// GetUserAverageRating always succeeds: an unreviewed principal rates 0.
func GetUserAverageRating(rs *services.ReputationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("principal")
		average, err := rs.GetUserAverageRating(owner)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"average_rating": average}, ""))
	}
}
