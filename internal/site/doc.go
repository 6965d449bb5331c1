// Package site models a built static site as an in-memory file map.
//
// A FileMap is keyed by slash-separated paths relative to the site root.
// Each Record is either text (content stored verbatim) or binary (content
// stored as standard base64). The JSON form of a FileMap is the payload
// that gets encrypted into the artifact and parsed again by the unlock
// script, so the field names here are part of the artifact format:
//
//	{"index.html": {"type": "text", "content": "<!doctype html>..."},
//	 "logo.png":   {"type": "binary", "content": "iVBORw0KGgo..."}}
//
// Classification is by lowercase extension only. See TextExtensions.
package site
