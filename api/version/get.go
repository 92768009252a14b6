package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/audioengine/api/types"
)

// Get handles version requests
// @Summary      Build information
// @Tags         version
// @Produce      json
// @Success      200  {object}  types.VersionResponse
// @Router       / [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	version := "dev"
	if deps != nil && deps.Version != "" {
		version = deps.Version
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:        "Audio Engine",
			Version:     version,
			Description: "Audio metadata and waveform extraction",
			Status:      "running",
		})
	}
}
