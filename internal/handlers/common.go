package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stackstay/stayd/internal/helpers"
	"github.com/stackstay/stayd/internal/ledger"
)

// statusFor maps a settlement error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidRating),
		errors.Is(err, ledger.ErrInvalidRefund):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrAlreadyExists),
		errors.Is(err, ledger.ErrAlreadyMinted),
		errors.Is(err, ledger.ErrAlreadyReviewed),
		errors.Is(err, ledger.ErrAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), helpers.ErrorResponse(err.Error()))
}

// principal returns the authenticated caller set by the auth middleware.
func principal(c *gin.Context) (string, bool) {
	value, exists := c.Get("principal")
	if !exists {
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
		return "", false
	}
	p, ok := value.(string)
	if !ok || p == "" {
		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid principal in session"))
		return "", false
	}
	return p, true
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}
