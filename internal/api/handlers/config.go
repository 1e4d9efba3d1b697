package handlers

import (
	"net/http"

	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/dynbilliards/backend/internal/config"
	"github.com/gin-gonic/gin"
)

// GetConfig returns the input limits the frontend needs to build its sliders
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ball_count":           billiards.NumBalls,
			"min_velocity":         billiards.MinVelocity,
			"max_velocity":         billiards.MaxVelocity,
			"min_playback_fps":     billiards.MinPlaybackFPS,
			"max_playback_fps":     billiards.MaxPlaybackFPS,
			"default_playback_fps": cfg.DefaultPlaybackFPS,
		})
	}
}
