package audio

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"
)

// FormatFromPath returns the lower-cased extension of a path without its dot
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// fileDetails holds what can be learned from the file bytes without a decoder
type fileDetails struct {
	mimeType string
	title    string
	artist   string
	album    string
	year     string
}

// inspectFile sniffs the MIME type from magic bytes and reads embedded tags.
// Both are best effort; any failure leaves the field empty.
func inspectFile(path string) fileDetails {
	var details fileDetails

	if kind, err := filetype.MatchFile(path); err == nil && kind != filetype.Unknown {
		details.mimeType = kind.MIME.Value
	}

	f, err := os.Open(path)
	if err != nil {
		return details
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return details
	}
	details.title = strings.TrimSpace(m.Title())
	details.artist = strings.TrimSpace(m.Artist())
	details.album = strings.TrimSpace(m.Album())
	if y := m.Year(); y > 0 {
		details.year = strconv.Itoa(y)
	}
	return details
}

// apply copies details into metadata without overwriting values already set
func (d fileDetails) apply(meta *AudioMetadata) {
	if meta.MIMEType == "" {
		meta.MIMEType = d.mimeType
	}
	if meta.Title == "" {
		meta.Title = d.title
	}
	if meta.Artist == "" {
		meta.Artist = d.artist
	}
	if meta.Album == "" {
		meta.Album = d.album
	}
	if meta.Year == "" {
		meta.Year = d.year
	}
}
