package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the validity window of a session token.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingEmail = errors.New("identity claim must contain an email")
)

// Identity is the decoded payload of a verified session token.
type Identity struct {
	Email     string
	Claims    map[string]interface{}
	ExpiresAt time.Time
}

// Codec issues and verifies HS256 session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs the identity claim with an expiry of now+TTL. Registered
// time claims supplied by the caller are overwritten.
func (c *Codec) Issue(claims map[string]interface{}) (string, error) {
	if email, _ := claims["email"].(string); email == "" {
		return "", ErrMissingEmail
	}
	now := c.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(c.ttl).Unix()
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := jt.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the identity claims it was issued with.
func (c *Codec) Verify(raw string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	mc := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(raw, mc, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	email, _ := mc["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, ErrMissingEmail)
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: bad exp claim", ErrInvalidToken)
	}
	claims := make(map[string]interface{}, len(mc))
	for k, v := range mc {
		if k == "exp" || k == "iat" {
			continue
		}
		claims[k] = v
	}
	return &Identity{Email: email, Claims: claims, ExpiresAt: exp.Time}, nil
}
