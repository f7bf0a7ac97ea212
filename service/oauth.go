package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JasonChow320/DeeJay/db"
	"github.com/JasonChow320/DeeJay/kv"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"

	// Fallback when the provider omits expires_in. Spotify reports 3600s.
	defaultTokenTTL = time.Hour

	tokenRetryAttempts = 3
)

// spotifyScopes is the fixed scope set requested on every authorization.
var spotifyScopes = []string{"user-read-private", "user-read-email", "playlist-modify-public"}

// OAuthConfig carries the confidential-client credentials. AuthURL and
// TokenURL default to the Spotify endpoints; tests point them at fakes.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
}

// OAuthService obtains and keeps fresh Spotify access tokens: per-session
// tokens through the authorization-code and refresh-token flows, and one
// process-wide server token through the client-credentials flow. Access
// tokens live in the cache with the provider-reported TTL; refresh tokens
// are persisted on the account and never cached.
type OAuthService struct {
	kv     kv.KeyValueStore
	db     db.Database
	conf   *oauth2.Config
	server *clientcredentials.Config

	httpClient *http.Client

	// refreshGroup serializes refresh-token exchanges per session id so a
	// burst of cache misses triggers a single upstream call. Server-token
	// misses intentionally race; the client-credentials flow is idempotent.
	refreshGroup singleflight.Group
}

func NewOAuthService(store kv.KeyValueStore, database db.Database, cfg OAuthConfig) *OAuthService {
	if cfg.AuthURL == "" {
		cfg.AuthURL = spotifyAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = spotifyTokenURL
	}

	return &OAuthService{
		kv: store,
		db: database,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       spotifyScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		server: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL returns the Spotify authorize URL carrying the given state.
func (s *OAuthService) AuthorizeURL(state string) string {
	return s.conf.AuthCodeURL(state)
}

// BeginAuthorization starts the authorization-code flow. When
// bindSessionID is empty a fresh anonymous session id is minted and the
// flow produces an unlinked, Spotify-only session; otherwise the eventual
// callback binds the refresh token to the account behind bindSessionID.
// The caller stores state and sessionID in cookies for the callback.
func (s *OAuthService) BeginAuthorization(bindSessionID string) (redirectURL, state, sessionID string) {
	state = randomString(stateLength)

	sessionID = bindSessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	return s.conf.AuthCodeURL(state), state, sessionID
}

// CompleteAuthorization exchanges the authorization code for a token pair
// and caches the access token under the session id. When bindAccount is
// set, the refresh token is persisted onto the account behind the session;
// a persistence failure is logged but does not undo the cached token.
func (s *OAuthService) CompleteAuthorization(ctx context.Context, code, state, storedState, sessionID string, bindAccount bool) error {
	if state == "" || state != storedState {
		return ErrStateMismatch
	}

	tok, err := s.fetchToken(ctx, func(ctx context.Context) (*oauth2.Token, error) {
		return s.conf.Exchange(ctx, code)
	})
	if err != nil {
		return err
	}

	if err := s.kv.Set(userTokenKey(sessionID), tok.AccessToken, tokenTTL(tok)); err != nil {
		slog.Error("failed to cache access token", "error", err, "session_id", sessionID)
		return fmt.Errorf("cache access token: %w", err)
	}

	if !bindAccount {
		return nil
	}

	secret, err := s.kv.Get(userSessionKey(sessionID))
	if err != nil {
		slog.Error("no login session to bind spotify credentials to", "session_id", sessionID)
		return ErrSessionNotFound
	}

	acc, err := s.db.FindByUpdateSecret(secret)
	if err != nil {
		slog.Error("failed to find account for login session", "error", err, "session_id", sessionID)
		return ErrSessionNotFound
	}

	if tok.RefreshToken == "" {
		slog.Warn("spotify returned no refresh token", "session_id", sessionID)
		return nil
	}

	// Best-effort: the access token is already cached, so the user keeps a
	// working session even if persisting the refresh token fails.
	if err := s.db.SaveRefreshToken(acc.ID, tok.RefreshToken); err != nil {
		slog.Error("failed to persist refresh token", "error", err, "account_id", acc.ID.String())
	}

	return nil
}

// ResolveAccessToken returns the session's cached access token, running
// the refresh-token flow on a miss when the account is linked. Only one
// refresh is in flight per session id; concurrent callers share its result.
func (s *OAuthService) ResolveAccessToken(ctx context.Context, sessionID string) (string, error) {
	if tok, err := s.kv.Get(userTokenKey(sessionID)); err == nil {
		return tok, nil
	} else if !errors.Is(err, kv.ErrNotFound) {
		slog.Error("access token cache read failed", "error", err, "session_id", sessionID)
	}

	tok, err, _ := s.refreshGroup.Do(sessionID, func() (interface{}, error) {
		return s.refreshAccessToken(ctx, sessionID)
	})
	if err != nil {
		return "", err
	}

	return tok.(string), nil
}

func (s *OAuthService) refreshAccessToken(ctx context.Context, sessionID string) (string, error) {
	// A concurrent caller may have refreshed while we waited on the group.
	if tok, err := s.kv.Get(userTokenKey(sessionID)); err == nil {
		return tok, nil
	}

	secret, err := s.kv.Get(userSessionKey(sessionID))
	if err != nil {
		return "", ErrSessionNotFound
	}

	acc, err := s.db.FindByUpdateSecret(secret)
	if err != nil {
		return "", ErrSessionNotFound
	}

	if !acc.HaveSpotify || acc.RefreshToken == "" {
		return "", ErrNotLinked
	}

	tok, err := s.fetchToken(ctx, func(ctx context.Context) (*oauth2.Token, error) {
		return s.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: acc.RefreshToken}).Token()
	})
	if err != nil {
		return "", err
	}

	if err := s.kv.Set(userTokenKey(sessionID), tok.AccessToken, tokenTTL(tok)); err != nil {
		slog.Error("failed to cache refreshed access token", "error", err, "session_id", sessionID)
		return "", fmt.Errorf("cache access token: %w", err)
	}

	slog.Debug("refreshed spotify access token", "session_id", sessionID)
	return tok.AccessToken, nil
}

// ResolveServerToken returns the process-wide client-credentials token,
// acquiring one on a cache miss. Concurrent misses may each run the
// exchange; both results are valid and last-writer-wins.
func (s *OAuthService) ResolveServerToken(ctx context.Context) (string, error) {
	if tok, err := s.kv.Get(serverTokenKey); err == nil {
		return tok, nil
	} else if !errors.Is(err, kv.ErrNotFound) {
		slog.Error("server token cache read failed", "error", err)
	}

	tok, err := s.fetchToken(ctx, func(ctx context.Context) (*oauth2.Token, error) {
		return s.server.Token(ctx)
	})
	if err != nil {
		return "", err
	}

	if err := s.kv.Set(serverTokenKey, tok.AccessToken, tokenTTL(tok)); err != nil {
		slog.Error("failed to cache server token", "error", err)
		return "", fmt.Errorf("cache server token: %w", err)
	}

	slog.Debug("acquired spotify server token via client credentials")
	return tok.AccessToken, nil
}

// fetchToken runs a token-endpoint call with bounded exponential-backoff
// retry. A rejection from the endpoint is permanent; only transport-level
// failures are retried.
func (s *OAuthService) fetchToken(ctx context.Context, fetch func(context.Context) (*oauth2.Token, error)) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	tok, err := backoff.Retry(ctx, func() (*oauth2.Token, error) {
		tok, err := fetch(ctx)
		if err != nil {
			var retrieveErr *oauth2.RetrieveError
			if errors.As(err, &retrieveErr) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return tok, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(tokenRetryAttempts))
	if err != nil {
		slog.Error("spotify token endpoint call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}

	return tok, nil
}

// tokenTTL converts the provider-reported expiry into a cache TTL. The
// cache entry's expiry is the sole authority on token freshness.
func tokenTTL(tok *oauth2.Token) time.Duration {
	if tok.Expiry.IsZero() {
		return defaultTokenTTL
	}
	if ttl := time.Until(tok.Expiry); ttl > 0 {
		return ttl
	}
	return defaultTokenTTL
}
