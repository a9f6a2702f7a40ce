package services

import (
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

const TokenIssuer = "notekeeper"

// Token scopes. Access tokens authorize API calls; reset tokens only
// authorize the password-reset endpoint.
const (
	ScopeAccess = "access"
	ScopeReset  = "reset"
)

type SignedClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed token bound to the user identity,
// valid for the configured window (24h by default).
func GenerateAccessToken(userID, email string) (string, error) {
	ttl := time.Duration(utils.JWTExpirationTime) * time.Second
	return generate(userID, email, ScopeAccess, ttl)
}

// GenerateResetToken issues a short-lived token that only the
// password-reset endpoint accepts.
func GenerateResetToken(userID, email string) (string, error) {
	ttl := time.Duration(utils.ResetTokenExpirationTime) * time.Second
	return generate(userID, email, ScopeReset, ttl)
}

func generate(userID, email, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SignedClaims{
		UserID: userID,
		Email:  email,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ValidateToken verifies the signature, expiry and scope of a token and
// returns its claims.
func ValidateToken(tokenString, wantScope string) (*SignedClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SignedClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, utils.AuthError("unexpected signing method")
			}
			return []byte(utils.JWTSecretKey), nil
		},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, utils.AuthError("invalid or expired token")
	}

	claims, ok := token.Claims.(*SignedClaims)
	if !ok || !token.Valid {
		return nil, utils.AuthError("invalid token claims")
	}
	if claims.Scope != wantScope {
		return nil, utils.AuthError("invalid token scope")
	}
	if claims.UserID == "" {
		return nil, utils.AuthError("missing user identity in token")
	}

	return claims, nil
}
