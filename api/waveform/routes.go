package waveform

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/audioengine/api/types"
)

// RegisterRoutes registers the metadata and waveform routes on an /audio group.
// limit guards the decode-heavy waveform route; nil means unlimited.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, limit gin.HandlerFunc) {
	router.GET("/metadata", GetMetadata(deps))

	waveformHandlers := []gin.HandlerFunc{GetWaveform(deps)}
	if limit != nil {
		waveformHandlers = append([]gin.HandlerFunc{limit}, waveformHandlers...)
	}
	router.GET("/waveform", waveformHandlers...)
	router.DELETE("/waveform", DeleteWaveform(deps))
}
