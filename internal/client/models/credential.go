package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is the persisted sign-in state. It is valid only when both the
// token and the user are present.
type Credential struct {
	Token      string
	User       *User
	RememberMe bool
}

func (c Credential) Valid() bool {
	return c.Token != "" && c.User != nil
}

// IsAdmin reports whether the credential belongs to an administrator.
func (c Credential) IsAdmin() bool {
	return c.User != nil && c.User.IsAdmin()
}

// ExpiresAt reads the exp claim of a JWT token without verifying its
// signature. ok is false for opaque tokens or tokens without exp.
func (c Credential) ExpiresAt() (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, claims); err != nil {
		return time.Time{}, false
	}
	nd, err := claims.GetExpirationTime()
	if err != nil || nd == nil {
		return time.Time{}, false
	}
	return nd.Time, true
}

// Expired reports whether the token carries an exp claim at or before now.
func (c Credential) Expired(now time.Time) bool {
	exp, ok := c.ExpiresAt()
	return ok && !now.Before(exp)
}
