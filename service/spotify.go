package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/JasonChow320/DeeJay/models"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// SpotifyService performs outbound Spotify Web API calls. Each method
// declares its token source: catalog browsing runs on the process-wide
// server token, personal playlist actions on the caller's session token,
// and deejay queueing on a snapshot token supplied by the caller. Tokens
// are resolved immediately before dispatch so a lapsed cache entry fails
// fast instead of reusing a stale token.
type SpotifyService struct {
	oauth      *OAuthService
	baseURL    string
	httpClient *http.Client
}

func NewSpotifyService(oauth *OAuthService) *SpotifyService {
	return &SpotifyService{
		oauth:      oauth,
		baseURL:    spotifyBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// doRequest performs a bearer-authenticated call against the Spotify API
// and decodes the response into result when given. Any non-2xx response
// maps to ErrUpstream.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint, token string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
		}
	}

	return nil
}

func (s *SpotifyService) serverGet(ctx context.Context, endpoint string, result interface{}) error {
	token, err := s.oauth.ResolveServerToken(ctx)
	if err != nil {
		return err
	}

	return s.doRequest(ctx, http.MethodGet, endpoint, token, result)
}

// NewReleases returns Spotify's new album releases.
func (s *SpotifyService) NewReleases(ctx context.Context) (models.SpotifyNewReleases, error) {
	var out models.SpotifyNewReleases
	err := s.serverGet(ctx, "/browse/new-releases", &out)
	return out, err
}

// FeaturedPlaylists returns Spotify's featured playlists.
func (s *SpotifyService) FeaturedPlaylists(ctx context.Context) (models.SpotifyFeaturedPlaylists, error) {
	var out models.SpotifyFeaturedPlaylists
	err := s.serverGet(ctx, "/browse/featured-playlists", &out)
	return out, err
}

// Genres returns the available recommendation genre seeds.
func (s *SpotifyService) Genres(ctx context.Context) (models.SpotifyGenreSeeds, error) {
	var out models.SpotifyGenreSeeds
	err := s.serverGet(ctx, "/recommendations/available-genre-seeds", &out)
	return out, err
}

// Categories returns Spotify's browse categories.
func (s *SpotifyService) Categories(ctx context.Context) (models.SpotifyCategories, error) {
	var out models.SpotifyCategories
	err := s.serverGet(ctx, "/browse/categories", &out)
	return out, err
}

// Search runs a catalog search. Types: album, artist, playlist, track,
// show, episode.
func (s *SpotifyService) Search(ctx context.Context, query, typ string) (models.SpotifySearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", typ)

	var out models.SpotifySearchResult
	err := s.serverGet(ctx, "/search?"+q.Encode(), &out)
	return out, err
}

// Recommendations returns track recommendations seeded by artists, genres
// and tracks.
func (s *SpotifyService) Recommendations(ctx context.Context, artists, genre, tracks string) (models.SpotifyRecommendations, error) {
	q := url.Values{}
	q.Set("seed_artists", artists)
	q.Set("seed_genres", genre)
	q.Set("seed_tracks", tracks)

	var out models.SpotifyRecommendations
	err := s.serverGet(ctx, "/recommendations?"+q.Encode(), &out)
	return out, err
}

// AddPlaylistItems adds track URIs to a playlist using the session's own
// access token.
func (s *SpotifyService) AddPlaylistItems(ctx context.Context, sessionID, playlistID, uris string) error {
	token, err := s.oauth.ResolveAccessToken(ctx, sessionID)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("uris", uris)
	endpoint := "/playlists/" + url.PathEscape(playlistID) + "/tracks?" + q.Encode()

	return s.doRequest(ctx, http.MethodPost, endpoint, token, nil)
}

// QueueTrack enqueues a track on the player behind the given access
// token. Used by deejay sessions with their snapshot-bound token.
func (s *SpotifyService) QueueTrack(ctx context.Context, token, trackID string) error {
	q := url.Values{}
	q.Set("uri", "spotify:track:"+trackID)

	return s.doRequest(ctx, http.MethodPost, "/me/player/queue?"+q.Encode(), token, nil)
}
