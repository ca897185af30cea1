package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mihret/tmscli/internal/tms"
)

// Session holds the bearer credential and the role derived for it. It is
// created on login, persisted to disk, and destroyed on logout or expiry.
// Components receive a Session explicitly; nothing reads it from ambient state.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Username     string    `json:"username"`
	UserID       int       `json:"user_id"`
	Role         tms.Role  `json:"role"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// New builds a session from a token pair, deriving expiry from the access
// token's JWT claims. The signature is not verified locally; the server is
// the authority and rejects bad tokens anyway.
func New(accessToken, refreshToken string) (*Session, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	sess := &Session{
		AccessToken:  accessToken,
		RefreshToken: strings.TrimSpace(refreshToken),
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			sess.ExpiresAt = exp.Time
		}
		if id, ok := claims["user_id"].(float64); ok {
			sess.UserID = int(id)
		}
	}
	return sess, nil
}

// IsExpired reports whether the credential is past its expiry. A session
// without an exp claim is treated as non-expiring.
func (s *Session) IsExpired() bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// Authenticated reports whether the session carries a usable credential.
func (s *Session) Authenticated() bool {
	return s != nil && strings.TrimSpace(s.AccessToken) != "" && !s.IsExpired()
}

// Bearer returns the Authorization header value for API calls.
func (s *Session) Bearer() string {
	return "Bearer " + s.AccessToken
}
