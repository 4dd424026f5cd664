package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackstay/stayd/internal/config"
	"github.com/stackstay/stayd/internal/connect"
	"github.com/stackstay/stayd/internal/container"
	"github.com/stackstay/stayd/internal/ledger"
	"github.com/stackstay/stayd/internal/models"
	"github.com/stackstay/stayd/internal/routes"
)

const (
	testPlatform = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	testHost     = "ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5"
	testGuest    = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("AUTH_SECRET", "test-secret")
	t.Setenv("AUTH_JWKS_URL", "")

	cfg := &config.Config{
		Port:              "8080",
		Environment:       "test",
		AuthSecret:        "test-secret",
		PlatformPrincipal: testPlatform,
		Policy:            config.DefaultPolicy(),
	}

	db, err := connect.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, connect.Migrate(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := container.NewContainer(cfg, logger, db, ledger.NewManualClock(5))
	require.NoError(t, err)

	return routes.SetupRoutes(c)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, models.ApiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var res models.ApiResponse
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &res)
	}
	return rec, res
}

func sessionToken(t *testing.T, router *gin.Engine, principal string) string {
	t.Helper()
	rec, res := doJSON(t, router, http.MethodPost, "/api/v1/auth/session", "", gin.H{"principal": principal})
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	token, ok := data["access_token"].(string)
	require.True(t, ok)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stackstay-settlement")
}

func TestSessionRejectsMalformedPrincipal(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/session", "", gin.H{"principal": "bob"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/session", "", gin.H{"principal": "SX1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/balance", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	hostToken := sessionToken(t, router, testHost)
	guestToken := sessionToken(t, router, testGuest)

	rec, res := doJSON(t, router, http.MethodPost, "/api/v1/properties", hostToken, gin.H{
		"price_per_night": 1_000_000,
		"location_tag":    1,
		"metadata_uri":    "ipfs://QmPropertyMetadata",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, res.Success)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["property_id"])

	rec, res = doJSON(t, router, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": 0,
		"check_in":    1000,
		"check_out":   1005,
		"num_nights":  5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data = res.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["booking_id"])

	rec, res = doJSON(t, router, http.MethodGet, "/api/v1/bookings/0", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = res.Data.(map[string]interface{})
	assert.Equal(t, testGuest, data["guest"])
	assert.Equal(t, testHost, data["host"])
	assert.Equal(t, float64(5_100_000), data["escrowed_amount"])
	assert.Equal(t, "confirmed", data["status"])

	rec, res = doJSON(t, router, http.MethodGet, "/api/v1/balance", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = res.Data.(map[string]interface{})
	assert.Equal(t, float64(100_000_000_000_000-5_100_000), data["balance"])
}

func TestErrorStatusMapping(t *testing.T) {
	router := newTestRouter(t)
	hostToken := sessionToken(t, router, testHost)
	guestToken := sessionToken(t, router, testGuest)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": 42,
		"check_in":    1000,
		"check_out":   1005,
		"num_nights":  5,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, "unknown property")

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/properties", hostToken, gin.H{
		"price_per_night": 1_000_000,
		"location_tag":    1,
		"metadata_uri":    "ipfs://QmPropertyMetadata",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/bookings", hostToken, gin.H{
		"property_id": 0,
		"check_in":    1000,
		"check_out":   1005,
		"num_nights":  5,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, "host booking own property")

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/properties", hostToken, gin.H{
		"price_per_night": 0,
		"location_tag":    1,
		"metadata_uri":    "ipfs://QmPropertyMetadata",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "zero price rejected at binding")

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/properties/99", hostToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDisputeAndReviewRoutes(t *testing.T) {
	router := newTestRouter(t)
	hostToken := sessionToken(t, router, testHost)
	guestToken := sessionToken(t, router, testGuest)
	platformToken := sessionToken(t, router, testPlatform)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/properties", hostToken, gin.H{
		"price_per_night": 1_000_000,
		"location_tag":    1,
		"metadata_uri":    "ipfs://QmPropertyMetadata",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"property_id": 0,
		"check_in":    1000,
		"check_out":   1005,
		"num_nights":  5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, res := doJSON(t, router, http.MethodPost, "/api/v1/disputes", guestToken, gin.H{
		"booking_id": 0,
		"reason":     "Property not as described",
		"evidence":   "Photos attached",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["dispute_id"])

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/disputes/0/resolve", guestToken, gin.H{
		"resolution":        "Refund half",
		"refund_percentage": 50,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, "only the platform principal resolves")

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/disputes/0/resolve", platformToken, gin.H{
		"resolution":        "Refund half",
		"refund_percentage": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, res = doJSON(t, router, http.MethodGet, "/api/v1/disputes/0/status", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = res.Data.(map[string]interface{})
	assert.Equal(t, "resolved", data["status"])

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/reviews", guestToken, gin.H{
		"booking_id": 0,
		"reviewee":   testHost,
		"rating":     5,
		"comment":    "Great stay",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, res = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/users/%s/rating", testHost), guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = res.Data.(map[string]interface{})
	assert.Equal(t, float64(500), data["average_rating"])
}

func TestBadgeRoutes(t *testing.T) {
	router := newTestRouter(t)
	guestToken := sessionToken(t, router, testGuest)
	platformToken := sessionToken(t, router, testPlatform)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/badges", guestToken, gin.H{
		"recipient":    testGuest,
		"badge_type":   1,
		"metadata_uri": "ipfs://QmBadge",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, "only the platform principal mints")

	rec, res := doJSON(t, router, http.MethodPost, "/api/v1/badges", platformToken, gin.H{
		"recipient":    testGuest,
		"badge_type":   1,
		"metadata_uri": "ipfs://QmBadge",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["badge_id"])

	rec, res = doJSON(t, router, http.MethodGet, "/api/v1/badge-types/1", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = res.Data.(map[string]interface{})
	assert.Equal(t, "First Booking", data["name"])

	rec, res = doJSON(t, router, http.MethodGet, "/api/v1/badges/0/uri", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = res.Data.(map[string]interface{})
	assert.Equal(t, "ipfs://QmBadge", data["token_uri"])

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/badges/99/uri", guestToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
