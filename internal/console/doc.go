// Package console provides the browser-based operator console.
//
// # Overview
//
// The console is the operator-facing web UI for the Aira voice-agent
// backend:
//
//   - Live Calls: auto-updating board of in-flight calls and counters
//   - Call Review: paginated, filterable history with a detail panel
//   - Prompt Training: draft, publish, and retire agent prompt variants
//   - Simulator: text-driven test calls against the real FSM
//   - Qualification: read-only snapshots of captured call data
//   - Policy: draft-then-publish editing of operational rules
//   - FSM States: read-only reference of the conversation graph
//
// # Architecture
//
// Components:
//
//   - Console: main struct coordinating handlers and templates
//   - Backend: the slice of the Aira API the console consumes
//   - monitor.Monitor: background poller feeding the live board
//   - simulator.Hub: per-operator simulator sessions keyed by cookie
//
// Handlers render full pages on plain GETs and partials for HTMX
// requests. Mutations always re-render the partial they live in, with
// a flash line reporting the outcome.
//
// # Live Updates
//
// The live board is pushed over Server-Sent Events. The server-side
// poller owns the fetch cadence; browsers subscribe to /console/live/stream
// and swap the rendered board HTML from each snapshot event. Poll
// failures keep the last good data on screen; only a manual refresh
// surfaces an error banner.
//
// # Templates
//
// Templates use Go's html/template:
//
//   - Base layout: templates/base.html
//   - Pages: templates/*.html defining the content block
//   - Partials: templates/partials/*.html, shared by pages and HTMX swaps
//
// Templates and static assets are embedded with //go:embed for
// single-binary deployment.
//
// # Usage
//
// Create the console and mount it on a mux:
//
//	con := console.New(console.Config{
//		Backend:  client,
//		Monitor:  mon,
//		Sessions: hub,
//		Logger:   logger,
//	})
//	con.RegisterRoutes(mux)
//
// The console owns /console/*, /static/*, and the health probes.
package console
