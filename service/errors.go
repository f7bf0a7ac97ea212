package service

import "errors"

// Broker error taxonomy. Controllers map these onto transport responses;
// none of them is fatal to the process.
var (
	// ErrSessionNotFound means the login session is absent from the cache
	// or its TTL has lapsed.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrNotLinked means the account exists but has never completed the
	// Spotify authorization flow, so no refresh token is available.
	ErrNotLinked = errors.New("account has no linked spotify credentials")

	// ErrStateMismatch means the OAuth callback state did not match the
	// value issued at the start of the flow.
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrUpstreamAuth means the Spotify token endpoint rejected a token
	// exchange or refresh.
	ErrUpstreamAuth = errors.New("spotify token endpoint rejected the request")

	// ErrUpstream means a Spotify resource API call failed.
	ErrUpstream = errors.New("spotify api request failed")

	// ErrUnknownCode means the deejay code was never issued or already
	// expired.
	ErrUnknownCode = errors.New("unknown or expired deejay code")

	// ErrNoAccessToken means no Spotify access token could be resolved
	// for the session.
	ErrNoAccessToken = errors.New("no spotify access token for session")
)
