// Package simulator holds the in-memory state of text-based test calls
// driven against the backend's webcall endpoints.
//
// Each operator gets a Session moving through idle, connecting, active, and
// ended. Sessions live in a Hub keyed by a browser cookie, expire after a
// configurable idle TTL, and are capped with least-recently-used eviction.
// The transcript is local and optimistic: user activity turns render before
// the backend round-trip, agent replies append as they return, and a reply
// flagged final ends the session without an explicit end action.
package simulator
