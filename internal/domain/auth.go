package domain

import "time"

// AccessToken is what a successful login hands to the client: a signed bearer
// token and the anti-forgery token bound to it.
type AccessToken struct {
	Token     string
	CSRF      string
	ExpiresAt time.Time
}
