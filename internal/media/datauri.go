package media

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
)

// MIMEJPEG is the MIME type of every generated thumbnail.
const MIMEJPEG = "image/jpeg"

var mimeByExt = map[string]string{
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
}

// MIMEFromPath derives an image MIME type from the file extension.
// Unknown or missing extensions map to image/jpeg.
func MIMEFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if mime, ok := mimeByExt[ext]; ok {
		return mime
	}
	return MIMEJPEG
}

// EncodeDataURI wraps data in a data URI using standard, padded base64.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrParse)
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing ;base64, separator", ErrParse)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: decode payload: %w", ErrParse, err)
	}
	return mime, data, nil
}
