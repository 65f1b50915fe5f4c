package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies an authenticated merchant for the duration of one
// request. It is passed explicitly into the application services; there is
// no ambient current-user lookup anywhere.
type Session struct {
	UserID string
	Email  string
}

// Verifier validates bearer tokens issued by the external auth
// collaborator. Tokens are HMAC-signed JWTs whose subject is the merchant's
// user id.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token and returns the session it
// represents.
func (v *Verifier) Verify(token string) (Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Session{}, ErrInvalidToken
	}

	session := Session{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	return session, nil
}

var ErrInvalidToken = errors.New("invalid session token")
