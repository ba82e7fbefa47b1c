// ABOUTME: Call review handlers: paginated filtered call list and the detail panel
// ABOUTME: Finished call details are cached; active calls are always refetched

package console

import (
	"net/http"

	"github.com/2389/aira-console/internal/aira"
)

// handleCallsPage renders the call review page. Filter submissions carry no
// page parameter, so changing a filter always lands on page one.
func (c *Console) handleCallsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parsePage(q)
	filters, demoRaw := parseCallFilters(q)

	data := callsPageData{
		Title:       "Call Review",
		ActiveNav:   "calls",
		ExitReason:  filters.ExitReason,
		DemoIntent:  demoRaw,
		Status:      filters.Status,
		DateFrom:    filters.DateFrom,
		DateTo:      filters.DateTo,
		ExitReasons: aira.ExitReasons,
		Statuses:    aira.CallStatuses,
	}

	list, err := c.backend.ListCalls(r.Context(), page, c.pageSize, filters)
	if err != nil {
		c.logger.Error("failed to list calls", "error", err)
		data.Table.Error = "Could not load calls: " + err.Error()
	} else {
		data.Table.Pager = buildPager("/console/calls", list, filterQuery(filters, demoRaw))
		for _, item := range list.Calls {
			data.Table.Rows = append(data.Table.Rows, buildCallRow(item))
		}
	}

	// Filter and pager requests arrive via htmx and only need the table.
	if isHTMX(r) {
		c.renderCallsTable(w, data.Table)
		return
	}
	c.renderCallsPage(w, data)
}

// handleCallPanel renders the detail panel partial for one call. Failures
// render an error notice instead of a panel, leaving the panel closed.
func (c *Console) handleCallPanel(w http.ResponseWriter, r *http.Request) {
	callID := r.PathValue("id")
	if callID == "" {
		c.renderCallPanel(w, callPanelData{Error: "Call ID required"})
		return
	}

	call, err := c.getCallDetail(r.Context(), callID)
	if err != nil {
		if aira.IsNotFound(err) {
			c.renderCallPanel(w, callPanelData{Error: "Call " + callID + " was not found."})
			return
		}
		c.logger.Error("failed to load call detail", "call_id", callID, "error", err)
		c.renderCallPanel(w, callPanelData{Error: "Could not load call detail: " + err.Error()})
		return
	}

	c.renderCallPanel(w, callPanelData{Call: c.buildCallDetail(call)})
}

// handleCallPanelClose returns an empty fragment; the swap clears the loaded
// call out of the panel.
func (c *Console) handleCallPanelClose(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// buildCallRow shapes a call list item for table templates.
func buildCallRow(item aira.CallListItem) callRow {
	return callRow{
		ID:            item.ID,
		SessionID:     item.SessionID,
		Status:        item.Status,
		FSMState:      item.FSMState,
		Language:      item.Language,
		Started:       formatTime(item.StartTime),
		Duration:      formatDuration(item.StartTime, item.EndTime),
		ExitReason:    item.ExitReason,
		DemoIntent:    item.DemoIntent,
		DemoConfirmed: item.DemoConfirmed,
		TurnCount:     item.TurnCount,
	}
}

// buildCallDetail shapes a full call record for the detail panel, resolving
// per-turn audio references to playable URLs.
func (c *Console) buildCallDetail(call *aira.Call) *callDetailView {
	view := &callDetailView{
		ID:            call.ID,
		SessionID:     call.SessionID,
		Status:        call.Status,
		FSMState:      call.FSMState,
		Language:      call.Language,
		TestMode:      call.TestMode,
		Started:       formatTime(call.StartTime),
		Ended:         formatTimePtr(call.EndTime),
		Duration:      formatDuration(call.StartTime, call.EndTime),
		ExitReason:    call.ExitReason,
		DemoIntent:    call.DemoIntent,
		DemoConfirmed: call.DemoConfirmed,
		Objections:    call.Objections,
		Captured:      capturedAnswers(call.QualificationData),
	}
	for _, turn := range call.Turns {
		view.Turns = append(view.Turns, turnRow{
			IsUser:   turn.IsUser(),
			Speaker:  turn.Speaker,
			Text:     turn.Text,
			FSMState: turn.FSMState,
			AudioURL: c.backend.ResolveAudio(turn.AudioURL),
			At:       formatTime(turn.Timestamp),
		})
	}
	return view
}
