// Spotify Web API response types, based on
// https://developer.spotify.com/documentation/web-api/reference/
package models

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Genres []string       `json:"genres,omitempty"`
	Images []SpotifyImage `json:"images,omitempty"`
	URI    string         `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string         `json:"release_date"`
	TotalTracks int            `json:"total_tracks"`
	Images      []SpotifyImage `json:"images"`
	URI         string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

type playlistOwner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyPlaylist represents a simplified playlist object.
type SpotifyPlaylist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       playlistOwner  `json:"owner"`
	Public      bool           `json:"public"`
	Images      []SpotifyImage `json:"images"`
	URI         string         `json:"uri"`
}

// SpotifyPaging is the paging envelope Spotify wraps list responses in.
type SpotifyPaging[T any] struct {
	Items    []T     `json:"items"`
	Total    int     `json:"total"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// SpotifyNewReleases is the response of GET /browse/new-releases.
type SpotifyNewReleases struct {
	Albums SpotifyPaging[SpotifyAlbum] `json:"albums"`
}

// SpotifyFeaturedPlaylists is the response of GET /browse/featured-playlists.
type SpotifyFeaturedPlaylists struct {
	Message   string                         `json:"message"`
	Playlists SpotifyPaging[SpotifyPlaylist] `json:"playlists"`
}

// SpotifyCategory represents a browse category.
type SpotifyCategory struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Icons []SpotifyImage `json:"icons"`
}

// SpotifyCategories is the response of GET /browse/categories.
type SpotifyCategories struct {
	Categories SpotifyPaging[SpotifyCategory] `json:"categories"`
}

// SpotifyGenreSeeds is the response of GET /recommendations/available-genre-seeds.
type SpotifyGenreSeeds struct {
	Genres []string `json:"genres"`
}

// SpotifySearchResult is the response of GET /search. Only the sections
// matching the requested types are populated.
type SpotifySearchResult struct {
	Tracks    *SpotifyPaging[SpotifyTrack]    `json:"tracks,omitempty"`
	Artists   *SpotifyPaging[SpotifyArtist]   `json:"artists,omitempty"`
	Albums    *SpotifyPaging[SpotifyAlbum]    `json:"albums,omitempty"`
	Playlists *SpotifyPaging[SpotifyPlaylist] `json:"playlists,omitempty"`
}

// SpotifyRecommendations is the response of GET /recommendations.
type SpotifyRecommendations struct {
	Tracks []SpotifyTrack `json:"tracks"`
}
