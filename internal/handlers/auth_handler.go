package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/config"
	"github.com/stackstay/stayd/internal/helpers"
	"github.com/stackstay/stayd/internal/services"
)

const sessionTTL = 24 * time.Hour

type sessionRequest struct {
	Principal string `json:"principal" binding:"required,principal"`
}

// CreateSession issues a signed session token for a principal. This is the
// local stand-in for the wallet gateway and is only mounted outside
// production.
func CreateSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		token, err := helpers.SignSessionToken(cfg.AuthSecret, req.Principal, sessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("failed to sign session token"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"access_token": token,
			"principal":    req.Principal,
			"expires_in":   int(sessionTTL.Seconds()),
		}, "Session created"))
	}
}

// GetBalance reports the authenticated caller's spendable balance.
func GetBalance(es *services.EscrowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := principal(c)
		if !ok {
			return
		}
		balance, err := es.GetBalance(caller)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"principal": caller,
			"balance":   balance,
		}, ""))
	}
}
