package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenValidFor reports whether token is a well-formed JWT whose expiry is
// at least margin away. The signature is the server's concern; only the
// expiry claim matters for deciding whether to log in again.
func tokenValidFor(token string, margin time.Duration) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return time.Until(exp.Time) > margin
}
