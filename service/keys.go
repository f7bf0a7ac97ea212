package service

// Cache key namespace shared with any pre-existing cache state. Key
// patterns must not change.
const (
	userSessionPrefix = "UserSession:"
	userTokenSuffix   = ":spotifyUserAccessToken"
	serverTokenKey    = "spotifyServerAccessToken"
	deejayPrefix      = "deejay:"
)

func userSessionKey(sessionID string) string {
	return userSessionPrefix + sessionID
}

func userTokenKey(sessionID string) string {
	return sessionID + userTokenSuffix
}

func deejayKey(code string) string {
	return deejayPrefix + code
}
