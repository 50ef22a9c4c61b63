package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenMalformed is returned by Inspect when the credential is not a
// decodable JWT.
var ErrTokenMalformed = errors.New("malformed access token")

// TokenInfo is the locally decoded, UNVERIFIED claim set of an access
// token.
type TokenInfo struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Inspect decodes the claims of an access token without verifying its
// signature.
func Inspect(token string) (*TokenInfo, error) {
	parser := jwt.NewParser()

	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	info := &TokenInfo{
		UserID:   stringClaim(claims, "user_id"),
		Username: stringClaim(claims, "username"),
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether the token's exp claim lies in the past, with
// leeway tolerated. Undecodable tokens count as expired; tokens without
// an exp claim do not.
func Expired(token string, leeway time.Duration) bool {
	info, err := Inspect(token)
	if err != nil {
		return true
	}
	if info.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(info.ExpiresAt.Add(leeway))
}

func stringClaim(claims jwt.MapClaims, name string) string {
	switch v := claims[name].(type) {
	case string:
		return v
	case float64:
		// Numeric IDs arrive as JSON numbers.
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
