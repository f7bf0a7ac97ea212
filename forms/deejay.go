package forms

// JoinDeejayForm is the body of POST /spotifyapi/join_deejay.
type JoinDeejayForm struct {
	SessionID  string `form:"sessionId" json:"sessionId" binding:"required"`
	DeejayCode string `form:"deejay_code" json:"deejay_code" binding:"required"`
}

// RequestTrackForm is the body of POST /spotifyapi/req_track_deejay.
type RequestTrackForm struct {
	SessionID  string `form:"sessionId" json:"sessionId" binding:"required"`
	DeejayCode string `form:"deejay_code" json:"deejay_code" binding:"required"`
	TrackID    string `form:"track_id" json:"track_id" binding:"required"`
}
