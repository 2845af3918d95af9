package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT with the identity it was issued for.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in the Authorization header. Identity is a cached
// copy of the "sub" claim: the stable user identity the vault keys are
// derived from.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	Identity string `json:"-"`
}

// GetIdentity returns the "sub" claim of the token.
func (t *Token) GetIdentity() (string, error) {
	identity, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting identity from token: %w", err)
	}
	if identity == "" {
		return "", fmt.Errorf("empty subject in token")
	}

	return identity, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
