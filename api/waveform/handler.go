package waveform

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/audioengine/api/types"
	"github.com/killallgit/audioengine/internal/services/audio"
	"github.com/killallgit/audioengine/internal/services/waveforms"
)

const defaultMaxWidth = 10000

// GetMetadata returns the metadata of an audio file
// @Summary      Audio metadata
// @Description  Probes a file with the decoder, or estimates duration from its size when the decoder is unavailable or fails.
// @Tags         audio
// @Produce      json
// @Param        path  query     string  true  "File path relative to the media root"
// @Success      200   {object}  types.MetadataResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /api/v1/audio/metadata [get]
func GetMetadata(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Query("path")
		filePath, ok := resolveRequest(c, deps, requested)
		if !ok {
			return
		}

		metadata, err := deps.WaveformService.GetMetadata(c.Request.Context(), filePath)
		if err != nil {
			respondError(c, requested, err)
			return
		}

		c.JSON(http.StatusOK, types.MetadataResponse{Path: requested, Metadata: metadata})
	}
}

// GetWaveform returns display peaks for an audio file
// @Summary      Audio waveform
// @Description  Returns exactly width peaks in [0,1]. Falls back to a synthetic waveform when decoding is impossible; see waveform.source.
// @Tags         audio
// @Produce      json
// @Param        path   query     string  true   "File path relative to the media root"
// @Param        width  query     int     false  "Number of peaks (default 800)"
// @Success      200    {object}  types.WaveformResponse
// @Failure      400    {object}  types.ErrorResponse
// @Failure      404    {object}  types.ErrorResponse
// @Failure      429    {object}  types.ErrorResponse
// @Failure      500    {object}  types.ErrorResponse
// @Router       /api/v1/audio/waveform [get]
func GetWaveform(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Query("path")
		filePath, ok := resolveRequest(c, deps, requested)
		if !ok {
			return
		}

		width, err := parseWidth(c.Query("width"), deps)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error(), Path: requested})
			return
		}

		waveform, err := deps.WaveformService.GetWaveform(c.Request.Context(), filePath, width)
		if err != nil {
			respondError(c, requested, err)
			return
		}

		c.JSON(http.StatusOK, types.WaveformResponse{Path: requested, Width: width, Waveform: waveform})
	}
}

// DeleteWaveform drops cached and stored results for an audio file
// @Summary      Invalidate waveforms
// @Description  Forgets memoized metadata and every stored waveform width for a file, e.g. after it was replaced in place.
// @Tags         audio
// @Produce      json
// @Param        path  query     string  true  "File path relative to the media root"
// @Success      200   {object}  types.InvalidateResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /api/v1/audio/waveform [delete]
func DeleteWaveform(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Query("path")
		filePath, ok := resolveRequest(c, deps, requested)
		if !ok {
			return
		}

		removed, err := deps.WaveformService.Invalidate(c.Request.Context(), filePath)
		if err != nil {
			respondError(c, requested, err)
			return
		}

		c.JSON(http.StatusOK, types.InvalidateResponse{Path: requested, Removed: removed})
	}
}

// resolveRequest checks the service is wired and maps the query path into the media root,
// writing the error response itself when it returns false
func resolveRequest(c *gin.Context, deps *types.Dependencies, requested string) (string, bool) {
	if deps == nil || deps.WaveformService == nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Waveform service not available"})
		return "", false
	}

	filePath, err := resolvePath(deps.MediaRoot, requested)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error(), Path: requested})
		return "", false
	}
	return filePath, true
}

// parseWidth returns the default width for an empty value and rejects anything outside [1, max]
func parseWidth(raw string, deps *types.Dependencies) (int, error) {
	maxWidth := deps.MaxWidth
	if maxWidth < 1 {
		maxWidth = defaultMaxWidth
	}

	if raw == "" {
		if deps.DefaultWidth >= 1 && deps.DefaultWidth <= maxWidth {
			return deps.DefaultWidth, nil
		}
		return min(audio.DefaultWidth, maxWidth), nil
	}

	width, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid width %q", raw)
	}
	if width < 1 || width > maxWidth {
		return 0, fmt.Errorf("width must be between 1 and %d", maxWidth)
	}
	return width, nil
}

func respondError(c *gin.Context, requested string, err error) {
	switch {
	case errors.Is(err, audio.ErrFileNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Audio file not found", Path: requested})
	case errors.Is(err, waveforms.ErrInvalidPath):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error(), Path: requested})
	default:
		log.Printf("[ERROR] %s %s failed for %s: %v", c.Request.Method, c.FullPath(), requested, err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to process audio file", Path: requested})
	}
}
