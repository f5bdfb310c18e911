package utils

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims the identity provider embeds in its access
// tokens. Subject carries the provider-side user ID.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseAndValidateJWT parses an access token issued by the identity provider,
// validates its signature, standard claims and issuer, and returns the claims.
// An empty issuer skips the issuer check.
func ParseAndValidateJWT(tokenString string, secretKey string, issuer string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	var opts []jwt.ParserOption
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
