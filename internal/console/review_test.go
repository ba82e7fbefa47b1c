// ABOUTME: Tests for the call review handlers (handleCallsPage, handleCallPanel).
// ABOUTME: Verifies filter plumbing, error banners, panel-stays-closed failures, and the detail cache.

package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/2389/aira-console/internal/aira"
)

// --- handleCallsPage tests ---

func TestHandleCallsPage_RendersRows(t *testing.T) {
	backend := &fakeBackend{
		listCalls: func(ctx context.Context, page, pageSize int, filters aira.CallFilters) (*aira.CallList, error) {
			return &aira.CallList{
				Calls: []aira.CallListItem{
					{ID: "call-aaa", Status: "completed", FSMState: "closing", Language: "en", StartTime: time.Now()},
					{ID: "call-bbb", Status: "failed", FSMState: "greeting", Language: "es", StartTime: time.Now()},
				},
				Total: 2, Page: 1, PageSize: pageSize, TotalPages: 1,
			}, nil
		},
	}
	con := newTestConsole(backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/calls", nil)
	rec := httptest.NewRecorder()

	con.handleCallsPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "call-aaa") || !strings.Contains(body, "call-bbb") {
		t.Fatalf("expected both calls in response, got:\n%s", body)
	}
	if !strings.Contains(body, "Page 1 of 1") {
		t.Fatalf("expected pager label in response, got:\n%s", body)
	}
}

func TestHandleCallsPage_PassesPageAndFilters(t *testing.T) {
	var gotPage int
	var gotFilters aira.CallFilters
	backend := &fakeBackend{
		listCalls: func(ctx context.Context, page, pageSize int, filters aira.CallFilters) (*aira.CallList, error) {
			gotPage = page
			gotFilters = filters
			return &aira.CallList{Page: page, PageSize: pageSize}, nil
		},
	}
	con := newTestConsole(backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/calls?page=2&status=completed&exit_reason=user_hangup&demo_intent=true", nil)
	rec := httptest.NewRecorder()

	con.handleCallsPage(rec, req)

	if gotPage != 2 {
		t.Fatalf("expected page 2, got %d", gotPage)
	}
	if gotFilters.Status != "completed" || gotFilters.ExitReason != "user_hangup" {
		t.Fatalf("filters not passed through: %+v", gotFilters)
	}
	if gotFilters.DemoIntent == nil || !*gotFilters.DemoIntent {
		t.Fatal("expected demo_intent=true filter")
	}
}

func TestHandleCallsPage_ErrorShowsBanner(t *testing.T) {
	backend := &fakeBackend{
		listCalls: func(ctx context.Context, page, pageSize int, filters aira.CallFilters) (*aira.CallList, error) {
			return nil, context.DeadlineExceeded
		},
	}
	con := newTestConsole(backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/calls", nil)
	rec := httptest.NewRecorder()

	con.handleCallsPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not load calls") {
		t.Fatalf("expected error banner, got:\n%s", rec.Body.String())
	}
}

func TestHandleCallsPage_HTMXGetsTableOnly(t *testing.T) {
	con := newTestConsole(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/calls", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	con.handleCallsPage(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "topnav") {
		t.Fatalf("htmx response must not include the page chrome, got:\n%s", body)
	}
	if !strings.Contains(body, "No calls match the current filters.") {
		t.Fatalf("expected empty table state, got:\n%s", body)
	}
}

// --- handleCallPanel tests ---

func panelRequest(callID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/console/calls/"+callID+"/panel", nil)
	req.SetPathValue("id", callID)
	return req
}

func TestHandleCallPanel_RendersDetail(t *testing.T) {
	backend := &fakeBackend{
		getCall: func(ctx context.Context, callID string) (*aira.Call, error) {
			return &aira.Call{
				ID:       callID,
				Status:   aira.CallStatusCompleted,
				Language: "en",
				Turns: []aira.CallTurn{
					{Speaker: aira.SpeakerAira, Text: "Hello, this is Aira.", FSMState: "greeting", AudioURL: "/audio/t1.mp3"},
					{Speaker: aira.SpeakerUser, Text: aira.ActivityDetected, FSMState: "greeting"},
				},
				QualificationData: map[string]interface{}{"industry": "logistics"},
			}, nil
		},
	}
	con := newTestConsole(backend, nil)

	rec := httptest.NewRecorder()
	con.handleCallPanel(rec, panelRequest("call-123"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Hello, this is Aira.") {
		t.Fatalf("expected transcript text, got:\n%s", body)
	}
	if !strings.Contains(body, "http://backend.test/audio/t1.mp3") {
		t.Fatalf("expected resolved audio URL, got:\n%s", body)
	}
	if !strings.Contains(body, "logistics") {
		t.Fatalf("expected qualification summary, got:\n%s", body)
	}
}

func TestHandleCallPanelClose_ReturnsEmptyFragment(t *testing.T) {
	con := newTestConsole(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/console/calls/panel/close", nil)
	con.handleCallPanelClose(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("close must swap in nothing, got:\n%s", rec.Body.String())
	}
}

func TestHandleCallPanel_NotFoundLeavesPanelClosed(t *testing.T) {
	backend := &fakeBackend{
		getCall: func(ctx context.Context, callID string) (*aira.Call, error) {
			return nil, &aira.APIError{StatusCode: 404, Message: "no such call"}
		},
	}
	con := newTestConsole(backend, nil)

	rec := httptest.NewRecorder()
	con.handleCallPanel(rec, panelRequest("call-gone"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "was not found") {
		t.Fatalf("expected not-found notice, got:\n%s", body)
	}
	if strings.Contains(body, "detail-panel") {
		t.Fatalf("failed load must not render a panel, got:\n%s", body)
	}
}

func TestHandleCallPanel_BackendErrorLeavesPanelClosed(t *testing.T) {
	backend := &fakeBackend{
		getCall: func(ctx context.Context, callID string) (*aira.Call, error) {
			return nil, context.DeadlineExceeded
		},
	}
	con := newTestConsole(backend, nil)

	rec := httptest.NewRecorder()
	con.handleCallPanel(rec, panelRequest("call-err"))

	body := rec.Body.String()
	if !strings.Contains(body, "Could not load call detail") {
		t.Fatalf("expected error notice, got:\n%s", body)
	}
	if strings.Contains(body, "detail-panel") {
		t.Fatalf("failed load must not render a panel, got:\n%s", body)
	}
}

func TestHandleCallPanel_CachesFinishedCalls(t *testing.T) {
	fetches := 0
	backend := &fakeBackend{
		getCall: func(ctx context.Context, callID string) (*aira.Call, error) {
			fetches++
			return &aira.Call{ID: callID, Status: aira.CallStatusCompleted}, nil
		},
	}
	con := newTestConsole(backend, nil)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		con.handleCallPanel(rec, panelRequest("call-done"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rec.Code)
		}
	}

	if fetches != 1 {
		t.Fatalf("expected one backend fetch for a finished call, got %d", fetches)
	}
}

func TestHandleCallPanel_DoesNotCacheActiveCalls(t *testing.T) {
	fetches := 0
	backend := &fakeBackend{
		getCall: func(ctx context.Context, callID string) (*aira.Call, error) {
			fetches++
			return &aira.Call{ID: callID, Status: aira.CallStatusActive}, nil
		},
	}
	con := newTestConsole(backend, nil)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		con.handleCallPanel(rec, panelRequest("call-live"))
	}

	if fetches != 2 {
		t.Fatalf("active calls must be refetched every time, got %d fetches", fetches)
	}
}
