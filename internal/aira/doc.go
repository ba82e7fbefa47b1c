// Package aira is the typed HTTP client for the external Aira voice-agent
// backend.
//
// # Overview
//
// Every backend operation has exactly one exported method on Client, grouped
// by resource: webcall sessions, calls, prompts, policy, FSM states, stats.
// The console never talks to the backend except through this package, and the
// backend owns all persistent state: nothing here caches or stores.
//
// # Wire format
//
// JSON with snake_case field names over the backend's /api prefix. Enum
// values travel as lowercase string tokens (see the constants in types.go).
// Non-2xx responses decode into *APIError carrying the backend's detail
// message; transport failures are returned wrapped, never swallowed.
//
// # Dev-mode mock fallback
//
// When constructed with devMode enabled, read operations whose endpoint the
// backend does not serve yet (404/501) return a deterministic mock dataset
// instead of failing, and log a warning each time. This keeps the console
// exercisable against a partially built backend. It is a development
// convenience only: outside dev mode every error propagates, and mutating
// operations never fall back.
//
// # Audio references
//
// Turn and prompt audio fields are opaque references. ResolveAudioURL turns
// them into absolute URLs without I/O: absolute stays, root-relative gets the
// backend origin, bare filenames get the fixed audio path.
package aira
