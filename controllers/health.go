package controllers

import "github.com/gin-gonic/gin"

// HealthController serves the liveness probe.
type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health reports that the service is up.
func (ctrl HealthController) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}
