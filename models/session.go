package models

// UserSession is the login session handed back to the client after a
// successful account login or registration. The server-side authority is
// the UserSession:<sessionId> cache entry; this struct only carries what
// the client needs.
type UserSession struct {
	SessionID    string `json:"sessionId"`
	UpdateSecret string `json:"-"`
	HaveSpotify  bool   `json:"havespotify"`
}
