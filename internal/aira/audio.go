// ABOUTME: Pure audio URL resolution for opaque backend audio references
// ABOUTME: Total function: empty in, empty out; never errors

package aira

import "strings"

// ResolveAudioURL produces an absolute URL for an opaque audio reference.
// Absolute references pass through unchanged. Root-relative references are
// prefixed with the backend origin. Anything else is treated as a bare
// filename under audioPath. An empty reference resolves to the empty string.
func ResolveAudioURL(origin, audioPath, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	origin = strings.TrimRight(origin, "/")
	if strings.HasPrefix(ref, "/") {
		return origin + ref
	}
	audioPath = "/" + strings.Trim(audioPath, "/")
	return origin + audioPath + "/" + ref
}
