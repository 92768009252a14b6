package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/audioengine/api/types"
	"github.com/killallgit/audioengine/internal/services/audio"
)

// Get handles health check requests
// @Summary      Service health
// @Description  Reports decoder availability and database connectivity. An unavailable decoder degrades the service but does not fail it.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Failure      503  {object}  types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    types.StatusOK,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  getDatabaseStatus(deps),
		}

		if deps != nil && deps.WaveformService != nil {
			response.Decoder = deps.WaveformService.Availability()
		} else {
			response.Decoder = audio.Availability{Reason: "engine not configured"}
		}

		code := http.StatusOK
		switch {
		case response.Database.Status == types.StatusUnhealthy:
			response.Status = types.StatusUnhealthy
			code = http.StatusServiceUnavailable
		case !response.Decoder.Available:
			response.Status = types.StatusDegraded
		}

		c.JSON(code, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) types.DatabaseHealth {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return types.DatabaseHealth{Status: "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return types.DatabaseHealth{Status: types.StatusUnhealthy, Error: err.Error()}
	}

	return types.DatabaseHealth{Status: "healthy"}
}
