package site

import (
	"path"
	"strings"
)

// DefaultMIMEType is used for extensions missing from MIMETypes.
const DefaultMIMEType = "application/octet-stream"

// TextExtensions lists the extensions collected as text. Everything else
// is collected as binary.
var TextExtensions = map[string]bool{
	"html": true,
	"js":   true,
	"css":  true,
	"json": true,
	"txt":  true,
	"svg":  true,
	"xml":  true,
}

// MIMETypes maps a lowercase extension to the type given to rehydrated
// assets. The unlock script embeds the same table.
var MIMETypes = map[string]string{
	"js":          "application/javascript",
	"css":         "text/css",
	"html":        "text/html",
	"json":        "application/json",
	"txt":         "text/plain",
	"xml":         "application/xml",
	"png":         "image/png",
	"jpg":         "image/jpeg",
	"jpeg":        "image/jpeg",
	"gif":         "image/gif",
	"svg":         "image/svg+xml",
	"webp":        "image/webp",
	"ico":         "image/x-icon",
	"woff":        "font/woff",
	"woff2":       "font/woff2",
	"webmanifest": "application/manifest+json",
}

// Extension returns the lowercase extension of p without the dot.
func Extension(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

// IsText reports whether a file with this path is collected as text.
func IsText(p string) bool {
	return TextExtensions[Extension(p)]
}

// MIMEType infers the content type of p from its extension.
func MIMEType(p string) string {
	if t, ok := MIMETypes[Extension(p)]; ok {
		return t
	}
	return DefaultMIMEType
}
