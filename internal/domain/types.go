package domain

import "time"

// AuthResult is the outcome of a credential check.
type AuthResult int

const (
	Unauthorized AuthResult = iota
	Authorized
)

func (r AuthResult) String() string {
	if r == Authorized {
		return "authorized"
	}
	return "unauthorized"
}

// RequestContext carries the authenticated session when available.
type RequestContext struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}
