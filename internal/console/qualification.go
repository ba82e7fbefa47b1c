// ABOUTME: Qualification snapshot viewer: read-only display of captured call data
// ABOUTME: A picker of recent completed calls feeds the snapshot lookup

package console

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/2389/aira-console/internal/aira"
)

// handleQualificationPage renders the qualification snapshot viewer. Without
// a call_id it shows only the picker.
func (c *Console) handleQualificationPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	callID := q.Get("call_id")
	page := parsePage(q)
	data := qualificationPageData{
		Title:     "Qualification",
		ActiveNav: "qualification",
		CallID:    callID,
	}

	// The picker pages through completed calls. It is best effort; a snapshot
	// can still be loaded by pasting a call ID.
	list, err := c.backend.ListCalls(r.Context(), page, c.pageSize, aira.CallFilters{Status: aira.CallStatusCompleted})
	if err != nil {
		c.logger.Error("failed to list calls for qualification picker", "error", err)
	} else {
		for _, item := range list.Calls {
			data.Recent = append(data.Recent, buildCallRow(item))
		}
		base := url.Values{}
		if callID != "" {
			base.Set("call_id", callID)
		}
		data.Pager = buildPager("/console/qualification", list, base)
	}

	if callID != "" {
		// Call context rides the same detail cache as the review panel; a
		// call opened there renders here without a refetch. Best effort.
		call, cerr := c.getCallDetail(r.Context(), callID)
		if cerr != nil {
			c.logger.Debug("no call context for qualification view", "call_id", callID, "error", cerr)
		} else {
			data.Context = &callRow{
				ID:         call.ID,
				Status:     call.Status,
				FSMState:   call.FSMState,
				Language:   call.Language,
				Started:    formatTime(call.StartTime),
				Duration:   formatDuration(call.StartTime, call.EndTime),
				ExitReason: call.ExitReason,
				TurnCount:  len(call.Turns),
			}
		}

		snap, err := c.backend.GetQualification(r.Context(), callID)
		switch {
		case aira.IsNotFound(err):
			data.Error = "No qualification snapshot exists for call " + callID + "."
		case err != nil:
			c.logger.Error("failed to load qualification snapshot", "call_id", callID, "error", err)
			data.Error = "Could not load snapshot: " + err.Error()
		default:
			data.Snapshot = buildQualificationView(snap)
		}
	}

	c.renderQualificationPage(w, data)
}

// buildQualificationView shapes a snapshot for display, with captured answers
// in a stable key order.
func buildQualificationView(snap *aira.QualificationSnapshot) *qualificationView {
	return &qualificationView{
		CallID:        snap.CallID,
		Language:      snap.Language,
		DemoIntent:    snap.DemoIntent,
		DemoConfirmed: snap.DemoConfirmed,
		Objections:    snap.Objections,
		Timestamp:     formatTime(snap.Timestamp),
		Captured:      capturedAnswers(snap.CapturedAnswers),
	}
}

// capturedAnswers flattens a captured-data map into display pairs in stable
// alphabetical key order.
func capturedAnswers(data map[string]interface{}) []capturedAnswer {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	answers := make([]capturedAnswer, 0, len(keys))
	for _, k := range keys {
		answers = append(answers, capturedAnswer{
			Key:   k,
			Value: fmt.Sprintf("%v", data[k]),
		})
	}
	return answers
}
