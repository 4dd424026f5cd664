package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stackstay/stayd/internal/models"
)

// SuccessResponse wraps data in the standard API envelope.
func SuccessResponse(data interface{}, message string) models.ApiResponse {
	return models.SuccessResponse(data, message)
}

// ErrorResponse wraps an error message in the standard API envelope.
func ErrorResponse(err string) models.ApiResponse {
	return models.ErrorResponse(err)
}

// PaginatedResponse wraps a page of data in the standard API envelope.
func PaginatedResponse(data interface{}, page, limit, total int) models.ApiResponse {
	return models.PaginatedResponse(data, page, limit, total)
}

// SignSessionToken issues an HS256 session token for a principal. Used by
// the development session endpoint; in production the wallet gateway signs
// tokens instead.
func SignSessionToken(secret, principal string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &PrincipalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Principal: principal,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken checks a session token and extracts the caller's principal.
// When AUTH_JWKS_URL is set the token is verified against the wallet
// gateway's JWKS; otherwise it is verified locally with the shared HS256
// secret.
func ValidateToken(tokenStr string) (*PrincipalClaims, error) {
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL != "" {
		return validateWithJWKS(tokenStr, jwksURL)
	}

	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		return nil, errors.New("AUTH_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &PrincipalClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}
	return extractClaims(token)
}

func validateWithJWKS(tokenStr, jwksURL string) (*PrincipalClaims, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &PrincipalClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}
	return extractClaims(token)
}

func extractClaims(token *jwt.Token) (*PrincipalClaims, error) {
	claims, ok := token.Claims.(*PrincipalClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Principal == "" {
		claims.Principal = claims.Subject
	}
	if claims.Principal == "" {
		return nil, errors.New("token carries no principal")
	}
	return claims, nil
}
