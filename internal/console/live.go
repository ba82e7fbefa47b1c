// ABOUTME: Live call monitor handlers: board page, SSE snapshot stream, manual refresh
// ABOUTME: Background poll failures stay silent; only operator-initiated refreshes surface errors

package console

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/2389/aira-console/internal/monitor"
)

// snapshotEvent is the SSE payload for live board updates. HTML carries the
// rendered board partial so the browser swaps it in verbatim.
type snapshotEvent struct {
	Seq       uint64 `json:"seq"`
	FetchedAt string `json:"fetched_at"`
	HTML      string `json:"html"`
}

// handleLivePage renders the live monitor page from the current snapshot.
func (c *Console) handleLivePage(w http.ResponseWriter, r *http.Request) {
	data := livePageData{
		Title:     "Live Calls",
		ActiveNav: "live",
		Board:     c.buildLiveBoard(c.monitor.Snapshot(), ""),
	}
	c.renderLivePage(w, data)
}

// handleLiveStream pushes board updates over SSE as the monitor refreshes.
func (c *Console) handleLiveStream(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	snapshots, subID := c.monitor.Subscribe(r.Context())
	c.logger.Debug("live stream opened", "subscriber_id", subID)

	// Send the current snapshot immediately so a reconnecting browser does
	// not wait for the next poll tick.
	c.writeSnapshotEvent(w, c.monitor.Snapshot())
	flusher.Flush()

	// Heartbeat keeps idle connections alive through proxies
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			c.logger.Debug("live stream closed", "subscriber_id", subID)
			return

		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()

		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			c.writeSnapshotEvent(w, snap)
			flusher.Flush()
		}
	}
}

// writeSnapshotEvent renders the board partial and writes it as one SSE event.
func (c *Console) writeSnapshotEvent(w http.ResponseWriter, snap monitor.Snapshot) {
	html, err := c.liveBoardHTML(c.buildLiveBoard(snap, ""))
	if err != nil {
		c.logger.Error("failed to render live board for stream", "error", err)
		return
	}

	data, err := json.Marshal(snapshotEvent{
		Seq:       snap.Seq,
		FetchedAt: formatTime(snap.FetchedAt),
		HTML:      html,
	})
	if err != nil {
		c.logger.Error("failed to marshal snapshot event", "error", err)
		return
	}

	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
}

// handleLiveRefresh refreshes the monitor on operator demand. Unlike the
// background poll, a failure here is surfaced on the board.
func (c *Console) handleLiveRefresh(w http.ResponseWriter, r *http.Request) {
	var errMsg string
	if err := c.monitor.RefreshNow(r.Context()); err != nil {
		c.logger.Warn("manual refresh failed", "error", err)
		errMsg = "Refresh failed: " + err.Error()
	}
	c.renderLiveBoard(w, c.buildLiveBoard(c.monitor.Snapshot(), errMsg))
}

// buildLiveBoard shapes a monitor snapshot for the board template.
func (c *Console) buildLiveBoard(snap monitor.Snapshot, errMsg string) liveBoardData {
	data := liveBoardData{
		HasData:    snap.HasData,
		CallsStale: snap.CallsStale,
		StatsStale: snap.StatsStale,
		FetchedAt:  formatTime(snap.FetchedAt),
		Stats:      snap.Stats,
		Error:      errMsg,
	}
	for _, call := range snap.Calls {
		data.Calls = append(data.Calls, liveCallRow{
			ID:         call.ID,
			SessionID:  call.SessionID,
			FSMState:   call.FSMState,
			Language:   call.Language,
			Started:    formatTime(call.StartTime),
			Duration:   formatDuration(call.StartTime, call.EndTime),
			TurnCount:  call.TurnCount,
			DemoIntent: call.DemoIntent,
		})
	}
	return data
}
