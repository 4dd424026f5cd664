package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/helpers"
	"github.com/stackstay/stayd/internal/services"
)

type listPropertyRequest struct {
	PricePerNight uint64 `json:"price_per_night" binding:"required,gt=0"`
	LocationTag   uint64 `json:"location_tag"`
	MetadataURI   string `json:"metadata_uri" binding:"required,max=256"`
}

func ListPropertyHandler(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := principal(c)
		if !ok {
			return
		}
		var req listPropertyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		id, err := es.ListProperty(owner, req.PricePerNight, req.LocationTag, req.MetadataURI)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"property_id": id}, "Property listed successfully"))
	}
}

func ListProperties(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := c.DefaultQuery("limit", "10")
		offset := c.DefaultQuery("offset", "0")
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt <= 0 {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid limit parameter"))
			return
		}
		offsetInt, err := strconv.Atoi(offset)
		if err != nil || offsetInt < 0 {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid offset parameter"))
			return
		}

		properties, total, err := es.ListProperties(offsetInt, limitInt)
		if err != nil {
			abortWith(c, err)
			return
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, helpers.PaginatedResponse(properties, page, limitInt, total))
	}
}

func GetProperty(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		property, err := es.GetProperty(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		if property == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("property not found"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(property, ""))
	}
}
