package utils // package utils provides token, hashing and SQL-identifier helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens
)

// TokenTTL is the fixed validity window of issued tokens.  Tokens are
// stateless: there is no server-side revocation list, so expiry is the only
// way a credential dies.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, or expiry.  Callers must not distinguish these cases in
// their responses.
var ErrInvalidToken = errors.New("invalid token")

// Token is a signed credential along with its expiry.
type Token struct {
	Value string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the verified identity extracted from a token.
type Claims struct {
	UserID uint64
	Role   string
}

// NewToken builds and signs an HS256 JWT for a user.  The JWT carries the
// standard claims: subject (sub), role, expiration (exp) and issued at (iat).
func NewToken(secret string, userID uint64, role string) (Token, error) {
	now := time.Now().UTC()
	exp := now.Add(TokenTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Exp: exp}, nil
}

// VerifyToken parses and validates a serialized token.  The signature check
// is an HMAC comparison (constant-time inside the jwt library) and expiry is
// enforced by the parser, so an expired token with a correct signature fails
// the same way a forged one does.
func VerifyToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var c Claims
	switch sub := mc["sub"].(type) {
	case float64: // JSON numbers decode as float64
		c.UserID = uint64(sub)
	default:
		return Claims{}, ErrInvalidToken
	}
	role, ok := mc["role"].(string)
	if !ok || role == "" {
		return Claims{}, ErrInvalidToken
	}
	c.Role = role
	return c, nil
}
