package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JasonChow320/DeeJay/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deejayTTL = time.Hour

type queueCall struct {
	token string
	uri   string
}

// newDeejayFixture wires a DeejayService against a fake Spotify API that
// records player-queue calls.
func newDeejayFixture(t *testing.T, store *kv.Memory) (*DeejayService, *[]queueCall) {
	t.Helper()

	var calls []queueCall
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/me/player/queue") {
			calls = append(calls, queueCall{
				token: strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
				uri:   r.URL.Query().Get("uri"),
			})
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(api.Close)

	endpoint := newFakeTokenEndpoint("unused", 3600)
	oauth := newTestOAuthService(t, store, newFakeDatabase(), endpoint)
	spotify := NewSpotifyService(oauth)
	spotify.baseURL = api.URL

	return NewDeejayService(store, oauth, spotify, deejayTTL), &calls
}

func TestStartWithoutAccessToken(t *testing.T) {
	store := kv.NewMemoryKV()
	svc, _ := newDeejayFixture(t, store)

	_, err := svc.Start(context.Background(), "ghost-session")
	assert.ErrorIs(t, err, ErrNoAccessToken)

	for _, key := range store.Keys() {
		assert.False(t, strings.HasPrefix(key, "deejay:"), "failed start must not create a deejay key")
	}
}

func TestStartBindsTokenSnapshot(t *testing.T) {
	store := kv.NewMemoryKV()
	now := time.Now()
	store.SetClock(func() time.Time { return now })
	svc, calls := newDeejayFixture(t, store)

	require.NoError(t, store.Set("S1:spotifyUserAccessToken", "token-A", time.Hour))

	code, err := svc.Start(context.Background(), "S1")
	require.NoError(t, err)
	assert.Len(t, code, 5)

	ttl, ok := store.TTL("deejay:" + code)
	require.True(t, ok)
	assert.Equal(t, deejayTTL, ttl)

	require.NoError(t, svc.Join(code))

	// the owner's own token refreshes to a different value; the code keeps
	// queueing with the snapshot captured at start time
	require.NoError(t, store.Set("S1:spotifyUserAccessToken", "token-B", time.Hour))

	require.NoError(t, svc.RequestTrack(context.Background(), code, "7x9"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "token-A", (*calls)[0].token)
	assert.Equal(t, "spotify:track:7x9", (*calls)[0].uri)
}

func TestJoinUnknownCode(t *testing.T) {
	store := kv.NewMemoryKV()
	svc, _ := newDeejayFixture(t, store)

	assert.ErrorIs(t, svc.Join("ZZZZZ"), ErrUnknownCode)
}

func TestJoinExpiredCode(t *testing.T) {
	store := kv.NewMemoryKV()
	svc, _ := newDeejayFixture(t, store)

	now := time.Now()
	store.SetClock(func() time.Time { return now })

	require.NoError(t, store.Set("S1:spotifyUserAccessToken", "token-A", 24*time.Hour))

	code, err := svc.Start(context.Background(), "S1")
	require.NoError(t, err)
	require.NoError(t, svc.Join(code))

	now = now.Add(deejayTTL + time.Second)

	assert.ErrorIs(t, svc.Join(code), ErrUnknownCode)
	assert.ErrorIs(t, svc.RequestTrack(context.Background(), code, "7x9"), ErrUnknownCode)
}

func TestJoinIsIdempotent(t *testing.T) {
	store := kv.NewMemoryKV()
	svc, _ := newDeejayFixture(t, store)

	require.NoError(t, store.Set("S1:spotifyUserAccessToken", "token-A", time.Hour))

	code, err := svc.Start(context.Background(), "S1")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.NoError(t, svc.Join(code))
	}
}

func TestRequestTrackUpstreamFailure(t *testing.T) {
	store := kv.NewMemoryKV()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(api.Close)

	endpoint := newFakeTokenEndpoint("unused", 3600)
	oauth := newTestOAuthService(t, store, newFakeDatabase(), endpoint)
	spotify := NewSpotifyService(oauth)
	spotify.baseURL = api.URL
	svc := NewDeejayService(store, oauth, spotify, deejayTTL)

	require.NoError(t, store.Set("deejay:AB12C", "token-A", time.Hour))

	err := svc.RequestTrack(context.Background(), "AB12C", "7x9")
	assert.ErrorIs(t, err, ErrUpstream)
}
