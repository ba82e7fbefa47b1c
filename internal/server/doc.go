// Package server runs the operator console's HTTP server.
//
// # Overview
//
// The server package owns the process lifecycle: it binds the listener,
// starts the background monitor, serves the console routes, and shuts
// everything down in order when the context is canceled.
//
// # Listeners
//
// Two serving modes are supported:
//
//   - Plain TCP on server.http_addr (the default, for localhost or a
//     reverse proxy)
//   - A Tailscale tsnet node, so the console joins the tailnet as its own
//     machine without any open ports on the host
//
// In Tailscale mode the node serves plain HTTP on :80 inside the tailnet,
// HTTPS on :443 with Tailscale-provisioned certificates when
// tailscale.https is set, or a public Funnel when tailscale.funnel is set.
//
// # Shutdown
//
// Run blocks until the context is canceled or the HTTP server fails, then
// performs a graceful shutdown with a five second budget: in-flight
// requests drain, the tsnet node closes, and the monitor and simulator
// sessions are released.
package server
