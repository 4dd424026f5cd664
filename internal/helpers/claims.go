package helpers

import (
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalClaims is the token payload the wallet gateway signs for an
// authenticated session. Principal is the caller's ledger address.
type PrincipalClaims struct {
	jwt.RegisteredClaims
	Principal string `json:"principal"`
}
