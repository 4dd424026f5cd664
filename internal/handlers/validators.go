package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// c32 alphabet used by Stacks addresses. I, L, O and U are excluded.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("principal", validPrincipal)
	}
}

// validPrincipal checks the shape of a Stacks principal: a version prefix
// followed by c32 characters, with an optional .contract-name suffix.
// Ownership of the address is proven by the session token, not here.
func validPrincipal(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	if i := strings.IndexByte(addr, '.'); i >= 0 {
		if i == len(addr)-1 {
			return false
		}
		addr = addr[:i]
	}
	if len(addr) < 3 || len(addr) > 41 || addr[0] != 'S' {
		return false
	}
	switch addr[1] {
	case 'P', 'T', 'M', 'N':
	default:
		return false
	}
	for _, r := range addr[2:] {
		if !strings.ContainsRune(c32Alphabet, r) {
			return false
		}
	}
	return true
}
