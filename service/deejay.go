package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/JasonChow320/DeeJay/kv"
)

// DeejayService manages ephemeral shared queueing codes. A code binds a
// point-in-time copy of the owner's access token, not a live reference:
// once the snapshot expires, the code cannot queue tracks anymore even if
// the owner's own session refreshes. Codes die by TTL; there is no
// explicit delete path.
type DeejayService struct {
	kv      kv.KeyValueStore
	oauth   *OAuthService
	spotify *SpotifyService

	codeTTL time.Duration
}

func NewDeejayService(store kv.KeyValueStore, oauth *OAuthService, spotify *SpotifyService, codeTTL time.Duration) *DeejayService {
	return &DeejayService{
		kv:      store,
		oauth:   oauth,
		spotify: spotify,
		codeTTL: codeTTL,
	}
}

// Start resolves the caller's current access token, refreshing it if
// needed, and binds a snapshot of it to a fresh 5-character code.
func (s *DeejayService) Start(ctx context.Context, sessionID string) (string, error) {
	token, err := s.oauth.ResolveAccessToken(ctx, sessionID)
	if err != nil {
		slog.Info("no resolvable access token for deejay session", "error", err, "session_id", sessionID)
		return "", ErrNoAccessToken
	}

	code := randomString(deejayCodeLength)
	if err := s.kv.Set(deejayKey(code), token, s.codeTTL); err != nil {
		return "", err
	}

	slog.Info("started deejay session", "session_id", sessionID, "deejay_code", code)
	return code, nil
}

// Join checks that the code is live. Idempotent: any number of
// participants may join the same code concurrently; no participant list
// is kept.
func (s *DeejayService) Join(code string) error {
	if _, err := s.kv.Get(deejayKey(code)); err != nil {
		return ErrUnknownCode
	}

	return nil
}

// RequestTrack enqueues a track using the code's snapshot-bound token.
// Upstream failures are reported, not retried.
func (s *DeejayService) RequestTrack(ctx context.Context, code, trackID string) error {
	token, err := s.kv.Get(deejayKey(code))
	if err != nil {
		return ErrUnknownCode
	}

	if err := s.spotify.QueueTrack(ctx, token, trackID); err != nil {
		slog.Error("failed to queue track for deejay session", "error", err, "deejay_code", code, "track_id", trackID)
		return err
	}

	slog.Info("queued track for deejay session", "deejay_code", code, "track_id", trackID)
	return nil
}
