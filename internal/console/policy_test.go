// ABOUTME: Tests for the policy handlers: section rendering, draft validation, publish.
// ABOUTME: Covers the no-draft publish rejection and form parsing edge cases.

package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/2389/aira-console/internal/aira"
)

func validPolicyForm() url.Values {
	return url.Values{
		"max_attempts":            {"3"},
		"retry_delay_minutes":     {"30"},
		"start_hour":              {"9"},
		"end_hour":                {"20"},
		"weekends_allowed":        {"1"},
		"error_threshold":         {"5"},
		"quarantine_after_errors": {"2"},
		"silence_timeout_seconds": {"10"},
		"max_silence_strikes":     {"2"},
	}
}

func testPolicy() aira.Policy {
	return aira.Policy{
		Retry:        aira.RetryRule{MaxAttempts: 3, RetryDelayMinutes: 30},
		CallingHours: aira.CallingHoursRule{StartHour: 9, EndHour: 20},
		NumberHealth: aira.NumberHealthRule{ErrorThreshold: 5, QuarantineAfterErrors: 2},
		Silence:      aira.SilenceRule{SilenceTimeoutSeconds: 10, MaxSilenceStrikes: 2},
		UpdatedAt:    time.Now(),
	}
}

// --- handlePolicyPage tests ---

func TestHandlePolicyPage_ShowsActiveAndDraft(t *testing.T) {
	draft := testPolicy()
	draft.Retry.MaxAttempts = 5
	backend := &fakeBackend{
		getPolicy: func(ctx context.Context) (*aira.PolicyPair, error) {
			return &aira.PolicyPair{Active: testPolicy(), Draft: &draft}, nil
		},
	}
	con := newTestConsole(backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/policy", nil)
	rec := httptest.NewRecorder()

	con.handlePolicyPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "enforced") {
		t.Fatalf("expected active badge, got:\n%s", body)
	}
	if !strings.Contains(body, "Publish") {
		t.Fatalf("expected publish control for the draft, got:\n%s", body)
	}
	if !strings.Contains(body, "Edit draft") {
		t.Fatalf("expected the form to edit the draft, got:\n%s", body)
	}
}

func TestHandlePolicyPage_NoDraft(t *testing.T) {
	backend := &fakeBackend{
		getPolicy: func(ctx context.Context) (*aira.PolicyPair, error) {
			return &aira.PolicyPair{Active: testPolicy()}, nil
		},
	}
	con := newTestConsole(backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/policy", nil)
	rec := httptest.NewRecorder()

	con.handlePolicyPage(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "No pending draft.") {
		t.Fatalf("expected empty draft state, got:\n%s", body)
	}
	if !strings.Contains(body, "Start a draft from the active policy") {
		t.Fatalf("expected the form to start a new draft, got:\n%s", body)
	}
}

func TestHandlePolicyPage_LoadError(t *testing.T) {
	backend := &fakeBackend{
		getPolicy: func(ctx context.Context) (*aira.PolicyPair, error) {
			return nil, context.DeadlineExceeded
		},
	}
	con := newTestConsole(backend, nil)

	req := httptest.NewRequest(http.MethodGet, "/console/policy", nil)
	rec := httptest.NewRecorder()

	con.handlePolicyPage(rec, req)

	if !strings.Contains(rec.Body.String(), "Could not load policy") {
		t.Fatalf("expected error banner, got:\n%s", rec.Body.String())
	}
}

// --- handlePolicyDraft tests ---

func TestHandlePolicyDraft_SavesValidForm(t *testing.T) {
	var saved aira.Policy
	backend := &fakeBackend{
		savePolicyDraft: func(ctx context.Context, draft aira.Policy) (*aira.Policy, error) {
			saved = draft
			return &draft, nil
		},
	}
	con := newTestConsole(backend, nil)

	rec := httptest.NewRecorder()
	con.handlePolicyDraft(rec, formRequest("/console/policy/draft", validPolicyForm()))

	if saved.Retry.MaxAttempts != 3 || saved.Retry.RetryDelayMinutes != 30 {
		t.Fatalf("retry rule not parsed: %+v", saved.Retry)
	}
	if saved.CallingHours.StartHour != 9 || saved.CallingHours.EndHour != 20 {
		t.Fatalf("calling hours not parsed: %+v", saved.CallingHours)
	}
	if !saved.CallingHours.WeekendsAllowed || saved.CallingHours.NewLeadOverride {
		t.Fatalf("checkboxes not parsed: %+v", saved.CallingHours)
	}
	if !strings.Contains(rec.Body.String(), "Draft saved.") {
		t.Fatalf("expected flash, got:\n%s", rec.Body.String())
	}
}

func TestHandlePolicyDraft_RejectsInvertedHours(t *testing.T) {
	saves := 0
	backend := &fakeBackend{
		savePolicyDraft: func(ctx context.Context, draft aira.Policy) (*aira.Policy, error) {
			saves++
			return &draft, nil
		},
	}
	con := newTestConsole(backend, nil)

	form := validPolicyForm()
	form.Set("start_hour", "21")
	form.Set("end_hour", "9")
	rec := httptest.NewRecorder()

	con.handlePolicyDraft(rec, formRequest("/console/policy/draft", form))

	if saves != 0 {
		t.Fatal("invalid hours must not reach the backend")
	}
	if !strings.Contains(rec.Body.String(), "start hour must be before end hour") {
		t.Fatalf("expected validation message, got:\n%s", rec.Body.String())
	}
}

func TestHandlePolicyDraft_RejectsNonNumeric(t *testing.T) {
	saves := 0
	backend := &fakeBackend{
		savePolicyDraft: func(ctx context.Context, draft aira.Policy) (*aira.Policy, error) {
			saves++
			return &draft, nil
		},
	}
	con := newTestConsole(backend, nil)

	form := validPolicyForm()
	form.Set("max_attempts", "lots")
	rec := httptest.NewRecorder()

	con.handlePolicyDraft(rec, formRequest("/console/policy/draft", form))

	if saves != 0 {
		t.Fatal("invalid numbers must not reach the backend")
	}
	if !strings.Contains(rec.Body.String(), "max attempts must be a whole number") {
		t.Fatalf("expected validation message, got:\n%s", rec.Body.String())
	}
}

func TestHandlePolicyDraft_RejectsZeroAttempts(t *testing.T) {
	form := validPolicyForm()
	form.Set("max_attempts", "0")
	con := newTestConsole(nil, nil)

	rec := httptest.NewRecorder()
	con.handlePolicyDraft(rec, formRequest("/console/policy/draft", form))

	if !strings.Contains(rec.Body.String(), "max attempts must be at least 1") {
		t.Fatalf("expected validation message, got:\n%s", rec.Body.String())
	}
}

// --- handlePolicyPublish tests ---

func TestHandlePolicyPublish_Success(t *testing.T) {
	published := 0
	backend := &fakeBackend{
		publishPolicy: func(ctx context.Context) (*aira.PolicyPair, error) {
			published++
			return &aira.PolicyPair{Active: testPolicy()}, nil
		},
	}
	con := newTestConsole(backend, nil)

	rec := httptest.NewRecorder()
	con.handlePolicyPublish(rec, formRequest("/console/policy/publish", url.Values{}))

	if published != 1 {
		t.Fatalf("expected one publish call, got %d", published)
	}
	if !strings.Contains(rec.Body.String(), "Policy published.") {
		t.Fatalf("expected flash, got:\n%s", rec.Body.String())
	}
}

func TestHandlePolicyPublish_NoDraftRejected(t *testing.T) {
	backend := &fakeBackend{
		publishPolicy: func(ctx context.Context) (*aira.PolicyPair, error) {
			return nil, &aira.APIError{StatusCode: 400, Message: "no draft policy to publish"}
		},
	}
	con := newTestConsole(backend, nil)

	rec := httptest.NewRecorder()
	con.handlePolicyPublish(rec, formRequest("/console/policy/publish", url.Values{}))

	if !strings.Contains(rec.Body.String(), "There is no draft to publish.") {
		t.Fatalf("expected no-draft notice, got:\n%s", rec.Body.String())
	}
}
