// Package images handles the only inline image form the service accepts:
// data-URI-encoded bytes. It derives the content-addressed blob key that
// makes deduplication and write-once storage possible.
package images

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// extByMediaType maps declared media types onto blob key extensions.
var extByMediaType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

var contentTypeByExt = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"webp": "image/webp",
	"gif":  "image/gif",
}

// IsDataURI reports whether s looks like an inline data-URI image.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURI splits a data URI of the form
// "data:<media-type>;base64,<payload>" into its media type and raw bytes.
func ParseDataURI(s string) (mediaType string, data []byte, err error) {
	if !IsDataURI(s) {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(s, "data:")
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", nil, fmt.Errorf("malformed data URI: missing payload separator")
	}
	header, payload := rest[:comma], rest[comma+1:]
	if !strings.HasSuffix(header, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding: %s", header)
	}
	mediaType = strings.TrimSuffix(header, ";base64")
	if mediaType == "" {
		return "", nil, fmt.Errorf("data URI missing media type")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return mediaType, data, nil
}

// BlobKey derives the deterministic content-addressed key for image bytes:
// the sha256 of the raw content plus an extension from the media type.
// Identical bytes always map to the same key.
func BlobKey(data []byte, mediaType string) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + "." + ExtForMediaType(mediaType)
}

// ExtForMediaType returns the blob key extension for a media type, falling
// back to "bin" for anything unrecognized.
func ExtForMediaType(mediaType string) string {
	if ext, ok := extByMediaType[strings.ToLower(strings.TrimSpace(mediaType))]; ok {
		return ext
	}
	return "bin"
}

// ContentTypeForKey maps a blob key's extension back to a response
// content type.
func ContentTypeForKey(key string) string {
	dot := strings.LastIndexByte(key, '.')
	if dot < 0 {
		return "application/octet-stream"
	}
	if ct, ok := contentTypeByExt[key[dot+1:]]; ok {
		return ct
	}
	return "application/octet-stream"
}

// URLForKey builds the publicly dereferenceable URL for a stored blob key.
func URLForKey(key string) string {
	return "/image/" + key
}
