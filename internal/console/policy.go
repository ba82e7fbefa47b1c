// ABOUTME: Policy editor handlers: draft edits and publish for operational rules
// ABOUTME: The active document is read-only; every change goes through a draft

package console

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2389/aira-console/internal/aira"
)

func (c *Console) handlePolicyPage(w http.ResponseWriter, r *http.Request) {
	data := policyPageData{
		Title:     "Policy",
		ActiveNav: "policy",
		Section:   c.buildPolicySection(r.Context(), "", ""),
	}
	c.renderPolicyPage(w, data)
}

func (c *Console) handlePolicyDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := parsePolicyForm(r)
	if err != nil {
		c.renderPolicySection(w, c.buildPolicySection(r.Context(), "", "Invalid draft: "+err.Error()+"."))
		return
	}

	if _, err := c.backend.SavePolicyDraft(r.Context(), draft); err != nil {
		c.logger.Error("failed to save policy draft", "error", err)
		c.renderPolicySection(w, c.buildPolicySection(r.Context(), "", "Could not save draft: "+err.Error()))
		return
	}

	c.logger.Info("policy draft saved")
	c.renderPolicySection(w, c.buildPolicySection(r.Context(), "Draft saved.", ""))
}

func (c *Console) handlePolicyPublish(w http.ResponseWriter, r *http.Request) {
	if _, err := c.backend.PublishPolicy(r.Context()); err != nil {
		// The backend rejects a publish with 400 when no draft exists.
		if aira.IsValidation(err) {
			c.renderPolicySection(w, c.buildPolicySection(r.Context(), "", "There is no draft to publish."))
			return
		}
		c.logger.Error("failed to publish policy", "error", err)
		c.renderPolicySection(w, c.buildPolicySection(r.Context(), "", "Could not publish policy: "+err.Error()))
		return
	}

	c.logger.Info("policy published")
	c.renderPolicySection(w, c.buildPolicySection(r.Context(), "Policy published.", ""))
}

// buildPolicySection loads the active/draft pair and prefills the edit form
// from the draft when one exists, otherwise from the active document.
func (c *Console) buildPolicySection(ctx context.Context, flash, flashError string) policySectionData {
	section := policySectionData{Flash: flash, FlashError: flashError}

	pair, err := c.backend.GetPolicy(ctx)
	if err != nil {
		c.logger.Error("failed to load policy", "error", err)
		section.Error = "Could not load policy: " + err.Error()
		return section
	}

	section.Active = buildPolicyView(pair.Active)
	if pair.Draft != nil {
		view := buildPolicyView(*pair.Draft)
		section.Draft = &view
		section.Form = *pair.Draft
		section.FormIsDraft = true
	} else {
		section.Form = pair.Active
	}
	return section
}

func buildPolicyView(p aira.Policy) policyView {
	return policyView{
		Retry:        p.Retry,
		CallingHours: p.CallingHours,
		NumberHealth: p.NumberHealth,
		Silence:      p.Silence,
		Updated:      formatTime(p.UpdatedAt),
	}
}

// parsePolicyForm reads and validates the draft form, reporting the first
// invalid field.
func parsePolicyForm(r *http.Request) (aira.Policy, error) {
	var p aira.Policy

	fields := []struct {
		name  string
		label string
		dst   *int
	}{
		{"max_attempts", "max attempts", &p.Retry.MaxAttempts},
		{"retry_delay_minutes", "retry delay", &p.Retry.RetryDelayMinutes},
		{"start_hour", "start hour", &p.CallingHours.StartHour},
		{"end_hour", "end hour", &p.CallingHours.EndHour},
		{"error_threshold", "error threshold", &p.NumberHealth.ErrorThreshold},
		{"quarantine_after_errors", "quarantine after errors", &p.NumberHealth.QuarantineAfterErrors},
		{"silence_timeout_seconds", "silence timeout", &p.Silence.SilenceTimeoutSeconds},
		{"max_silence_strikes", "max silence strikes", &p.Silence.MaxSilenceStrikes},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(r.FormValue(f.name)))
		if err != nil {
			return p, errors.New(f.label + " must be a whole number")
		}
		*f.dst = n
	}

	p.CallingHours.WeekendsAllowed = r.FormValue("weekends_allowed") != ""
	p.CallingHours.NewLeadOverride = r.FormValue("new_lead_override") != ""

	switch {
	case p.Retry.MaxAttempts < 1:
		return p, errors.New("max attempts must be at least 1")
	case p.Retry.RetryDelayMinutes < 0:
		return p, errors.New("retry delay cannot be negative")
	case p.CallingHours.StartHour < 0 || p.CallingHours.StartHour > 23:
		return p, errors.New("start hour must be between 0 and 23")
	case p.CallingHours.EndHour < 0 || p.CallingHours.EndHour > 23:
		return p, errors.New("end hour must be between 0 and 23")
	case p.CallingHours.StartHour >= p.CallingHours.EndHour:
		return p, errors.New("start hour must be before end hour")
	case p.NumberHealth.ErrorThreshold < 1:
		return p, errors.New("error threshold must be at least 1")
	case p.NumberHealth.QuarantineAfterErrors < 1:
		return p, errors.New("quarantine after errors must be at least 1")
	case p.Silence.SilenceTimeoutSeconds < 1:
		return p, errors.New("silence timeout must be at least 1 second")
	case p.Silence.MaxSilenceStrikes < 1:
		return p, errors.New("max silence strikes must be at least 1")
	}

	return p, nil
}
