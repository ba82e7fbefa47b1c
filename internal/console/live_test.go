// ABOUTME: Tests for the live monitor handlers: page render, manual refresh, SSE stream.
// ABOUTME: Verifies that only operator-initiated refreshes surface backend errors.

package console

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/2389/aira-console/internal/aira"
)

// --- handleLivePage tests ---

func TestHandleLivePage_BeforeFirstFetch(t *testing.T) {
	con := newTestConsole(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/live", nil)
	rec := httptest.NewRecorder()

	con.handleLivePage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Waiting for the first backend snapshot") {
		t.Fatalf("expected placeholder before data arrives, got:\n%s", rec.Body.String())
	}
}

func TestHandleLivePage_RendersSnapshot(t *testing.T) {
	fetch := &fakeFetcher{
		calls: []aira.CallListItem{
			{ID: "live-1", FSMState: "qualification", Language: "en", StartTime: time.Now()},
		},
		stats: aira.Stats{ActiveCalls: 1, TotalCalls: 40},
	}
	con := newTestConsole(nil, fetch)
	if err := con.monitor.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/console/live", nil)
	rec := httptest.NewRecorder()

	con.handleLivePage(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "live-1") {
		t.Fatalf("expected live call in board, got:\n%s", body)
	}
	if !strings.Contains(body, "/console/live/stream") {
		t.Fatalf("expected the SSE subscription script, got:\n%s", body)
	}
}

// --- handleLiveRefresh tests ---

func TestHandleLiveRefresh_SurfacesError(t *testing.T) {
	fetch := &fakeFetcher{
		callsErr: errors.New("backend exploded"),
		stats:    aira.Stats{TotalCalls: 10},
	}
	con := newTestConsole(nil, fetch)

	req := httptest.NewRequest(http.MethodPost, "/console/live/refresh", nil)
	rec := httptest.NewRecorder()

	con.handleLiveRefresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Refresh failed: backend exploded") {
		t.Fatalf("expected error banner, got:\n%s", body)
	}
	if !strings.Contains(body, "calls stale") {
		t.Fatalf("expected stale badge on the failed half, got:\n%s", body)
	}
}

func TestHandleLiveRefresh_Success(t *testing.T) {
	fetch := &fakeFetcher{
		calls: []aira.CallListItem{{ID: "live-9", StartTime: time.Now()}},
		stats: aira.Stats{ActiveCalls: 1},
	}
	con := newTestConsole(nil, fetch)

	req := httptest.NewRequest(http.MethodPost, "/console/live/refresh", nil)
	rec := httptest.NewRecorder()

	con.handleLiveRefresh(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "Refresh failed") {
		t.Fatalf("successful refresh must not show an error, got:\n%s", body)
	}
	if !strings.Contains(body, "live-9") {
		t.Fatalf("expected refreshed call in board, got:\n%s", body)
	}
}

// --- handleLiveStream tests ---

func TestHandleLiveStream_SendsInitialSnapshot(t *testing.T) {
	fetch := &fakeFetcher{stats: aira.Stats{ActiveCalls: 2}}
	con := newTestConsole(nil, fetch)
	if err := con.monitor.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	// A pre-cancelled context lets the handler write the initial event and
	// return instead of blocking on the subscription.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/console/live/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	con.handleLiveStream(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected SSE content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "event: snapshot") {
		t.Fatalf("expected an initial snapshot event, got:\n%s", body)
	}

	// The data line must carry the sequence and the rendered board.
	var payload struct {
		Seq  uint64 `json:"seq"`
		HTML string `json:"html"`
	}
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data: ") {
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &payload); err != nil {
				t.Fatalf("bad event payload: %v", err)
			}
			break
		}
	}
	if payload.Seq == 0 {
		t.Fatal("snapshot event must carry the sequence number")
	}
	if !strings.Contains(payload.HTML, "2") {
		t.Fatalf("expected board HTML in payload, got %q", payload.HTML)
	}
}
