package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/JasonChow320/DeeJay/forms"
	"github.com/JasonChow320/DeeJay/service"
	"github.com/gin-gonic/gin"
)

// Cookie names shared with the browser client.
const (
	stateCookie       = "spotify_auth_state"
	sessionCookie     = "sessionId"
	haveAccountCookie = "haveAccount"
)

const cookieMaxAge = 3600

// SpotifyController exposes the OAuth redirect surface and the catalog
// routes backed by the server token.
type SpotifyController struct {
	oauth   *service.OAuthService
	spotify *service.SpotifyService

	clientBaseURL string
}

func NewSpotifyController(oauth *service.OAuthService, spotify *service.SpotifyService, clientBaseURL string) *SpotifyController {
	return &SpotifyController{
		oauth:         oauth,
		spotify:       spotify,
		clientBaseURL: clientBaseURL,
	}
}

// Login begins a Spotify-only authorization flow with a fresh anonymous
// session id.
func (ctrl SpotifyController) Login(c *gin.Context) {
	redirectURL, state, sessionID := ctrl.oauth.BeginAuthorization("")

	c.SetCookie(stateCookie, state, cookieMaxAge, "/", "", false, false)
	c.SetCookie(sessionCookie, sessionID, cookieMaxAge, "/", "", false, false)
	c.Redirect(http.StatusFound, redirectURL)
}

// LoginWithAccount begins an authorization flow bound to an existing
// account login session; the callback will persist the refresh token.
func (ctrl SpotifyController) LoginWithAccount(c *gin.Context) {
	redirectURL, state, sessionID := ctrl.oauth.BeginAuthorization(c.Param("id"))

	c.SetCookie(stateCookie, state, cookieMaxAge, "/", "", false, false)
	c.SetCookie(sessionCookie, sessionID, cookieMaxAge, "/", "", false, false)
	c.SetCookie(haveAccountCookie, "true", cookieMaxAge, "/", "", false, false)
	c.Redirect(http.StatusFound, redirectURL)
}

// Callback completes the authorization-code flow and redirects back to
// the client with sessionId (unlinked), loginSession (linked) or error.
func (ctrl SpotifyController) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	storedState, _ := c.Cookie(stateCookie)
	storedID, _ := c.Cookie(sessionCookie)

	haveAcc, err := c.Cookie(haveAccountCookie)
	bindAccount := err == nil && haveAcc != ""
	if bindAccount {
		c.SetCookie(haveAccountCookie, "", -1, "/", "", false, false)
	}

	err = ctrl.oauth.CompleteAuthorization(c.Request.Context(), code, state, storedState, storedID, bindAccount)

	q := url.Values{}
	switch {
	case err == nil && bindAccount:
		q.Set("loginSession", storedID)
	case err == nil:
		q.Set("sessionId", storedID)
	case errors.Is(err, service.ErrStateMismatch):
		q.Set("error", "Invalid state on callback")
	case errors.Is(err, service.ErrSessionNotFound):
		q.Set("error", "Invalid login session")
	default:
		q.Set("error", "Invalid response from Spotify!")
	}

	c.Redirect(http.StatusFound, ctrl.clientBaseURL+"?"+q.Encode())
}

// Logout sends the browser to Spotify's own logout page.
func (ctrl SpotifyController) Logout(c *gin.Context) {
	c.Redirect(http.StatusFound, "https://spotify.com/logout")
}

// NewReleases lists new album releases.
func (ctrl SpotifyController) NewReleases(c *gin.Context) {
	out, err := ctrl.spotify.NewReleases(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// FeaturedPlaylists lists Spotify's featured playlists.
func (ctrl SpotifyController) FeaturedPlaylists(c *gin.Context) {
	out, err := ctrl.spotify.FeaturedPlaylists(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// Genres lists the available genre seeds.
func (ctrl SpotifyController) Genres(c *gin.Context) {
	out, err := ctrl.spotify.Genres(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// Categories lists the browse categories.
func (ctrl SpotifyController) Categories(c *gin.Context) {
	out, err := ctrl.spotify.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// Search runs a catalog search for the requested type.
func (ctrl SpotifyController) Search(c *gin.Context) {
	var form forms.SearchForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search request"})
		return
	}

	out, err := ctrl.spotify.Search(c.Request.Context(), form.Query, form.Type)
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// Artists searches for an artist by name.
func (ctrl SpotifyController) Artists(c *gin.Context) {
	out, err := ctrl.spotify.Search(c.Request.Context(), c.Param("name"), "artist")
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// Tracks searches for a track by name.
func (ctrl SpotifyController) Tracks(c *gin.Context) {
	out, err := ctrl.spotify.Search(c.Request.Context(), c.Param("song"), "track")
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// Recommendations returns seeded track recommendations.
func (ctrl SpotifyController) Recommendations(c *gin.Context) {
	out, err := ctrl.spotify.Recommendations(c.Request.Context(),
		c.Query("artists"), c.Query("genre"), c.Query("tracks"))
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// AddItems adds tracks to a playlist using the caller's own access token,
// identified by the sessionId cookie.
func (ctrl SpotifyController) AddItems(c *gin.Context) {
	var form forms.AddItemsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	if err := ctrl.spotify.AddPlaylistItems(c.Request.Context(), sessionID, form.PlaylistID, form.URIs); err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tracks added to playlist"})
}
