package dto

import "github.com/golang-jwt/jwt/v5"

// GoogleIDTokenClaims are the claims this service reads from a Google
// ID token. Audience, expiry and issuer live in RegisteredClaims.
type GoogleIDTokenClaims struct {
	Email           string `json:"email"`
	EmailVerified   bool   `json:"email_verified"`
	Name            string `json:"name"`
	AuthorizedParty string `json:"azp"`
	jwt.RegisteredClaims
}
