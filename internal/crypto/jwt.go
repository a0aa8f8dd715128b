package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "dietlog"
	tokenAudience = "dietlog-api"
)

// JWTCodec issues HS256-signed session tokens whose subject is the user id.
// Unlike PlainCodec, expiry is enforced on decode.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec creates a JWTCodec signing with secret and expiring tokens after ttl.
func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

// Encode creates a signed token for userID, valid from now for the codec's ttl.
func (c *JWTCodec) Encode(userID uuid.UUID, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode validates the signature, issuer, audience and expiry of token and
// returns the user id in its subject.
func (c *JWTCodec) Decode(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
