package model

import "time"

// Session is the server-side state bound to one client cookie.  A login
// overwrites the binding; the record disappears when ExpiresAt passes.
//
// Fields:
//  ID          – opaque identifier carried by the session cookie.
//  AccessToken – signed JWT minted at login.
//  Username    – identity verified at login time.
//  ExpiresAt   – absolute expiry, equal to the token's exp claim.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Authenticated reports whether the session carries a login binding.
func (s *Session) Authenticated() bool {
	return s != nil && s.Username != "" && s.AccessToken != ""
}
