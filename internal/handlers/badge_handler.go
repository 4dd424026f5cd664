package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/helpers"
	"github.com/stackstay/stayd/internal/services"
)

type mintBadgeRequest struct {
	Recipient   string `json:"recipient" binding:"required,principal"`
	BadgeType   uint64 `json:"badge_type" binding:"required"`
	MetadataURI string `json:"metadata_uri" binding:"required,max=256"`
}

func MintBadgeHandler(bs *services.BadgeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := principal(c)
		if !ok {
			return
		}
		var req mintBadgeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		id, err := bs.MintBadge(caller, req.Recipient, req.BadgeType, req.MetadataURI)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"badge_id": id}, "Badge minted"))
	}
}

func GetBadge(bs *services.BadgeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		badge, err := bs.GetBadgeMetadata(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		if badge == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("badge not found"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(badge, ""))
	}
}

func GetTokenURI(bs *services.BadgeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		uri, err := bs.GetTokenURI(id)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"token_uri": uri}, ""))
	}
}

func GetBadgeTypeInfo(bs *services.BadgeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		badgeType, ok := idParam(c, "type")
		if !ok {
			return
		}
		info, err := bs.GetBadgeTypeInfo(badgeType)
		if err != nil {
			abortWith(c, err)
			return
		}
		if info == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("unknown badge type"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(info, ""))
	}
}

func GetUserBadge(bs *services.BadgeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("principal")
		badgeType, ok := idParam(c, "type")
		if !ok {
			return
		}
		badge, err := bs.GetUserBadge(owner, badgeType)
		if err != nil {
			abortWith(c, err)
			return
		}
		if badge == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("badge not earned"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(badge, ""))
	}
}
