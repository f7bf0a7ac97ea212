package forms

// SearchForm is the body of POST /spotifyapi/search.
// Types: album, artist, playlist, track, show and episode.
type SearchForm struct {
	Query string `form:"q" json:"q" binding:"required"`
	Type  string `form:"type" json:"type" binding:"required,oneof=album artist playlist track show episode"`
}

// AddItemsForm is the body of POST /spotifyapi/additems.
type AddItemsForm struct {
	PlaylistID string `form:"playlistID" json:"playlistID" binding:"required"`
	URIs       string `form:"uris" json:"uris" binding:"required"`
}
