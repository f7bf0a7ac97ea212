package controllers

import (
	"net/http"

	"github.com/JasonChow320/DeeJay/forms"
	"github.com/JasonChow320/DeeJay/service"
	"github.com/gin-gonic/gin"
)

// DeejayController exposes the shared-queueing endpoints. The error
// channel of this surface is a 204 with an error body, matching what the
// browser client already expects.
type DeejayController struct {
	deejay *service.DeejayService
}

func NewDeejayController(deejay *service.DeejayService) *DeejayController {
	return &DeejayController{deejay: deejay}
}

// Start mints a deejay code bound to the caller's current access token.
func (ctrl DeejayController) Start(c *gin.Context) {
	sessionID := c.Param("sessionId")

	code, err := ctrl.deejay.Start(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": code})
}

// Join checks a deejay code and lets any number of participants in.
func (ctrl DeejayController) Join(c *gin.Context) {
	var form forms.JoinDeejayForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := ctrl.deejay.Join(form.DeejayCode); err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully joined session"})
}

// RequestTrack queues a track through the code's snapshot-bound token.
func (ctrl DeejayController) RequestTrack(c *gin.Context) {
	var form forms.RequestTrackForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := ctrl.deejay.RequestTrack(c.Request.Context(), form.DeejayCode, form.TrackID); err != nil {
		c.JSON(http.StatusNoContent, gin.H{"error": "Server Error!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "track requested"})
}
