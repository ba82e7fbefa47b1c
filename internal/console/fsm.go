// ABOUTME: Read-only FSM reference page listing the backend's conversation states
// ABOUTME: State definitions are owned by the backend; the console never edits them

package console

import "net/http"

func (c *Console) handleFSMPage(w http.ResponseWriter, r *http.Request) {
	data := fsmPageData{
		Title:     "FSM States",
		ActiveNav: "fsm",
	}

	states, err := c.backend.ListFSMStates(r.Context())
	if err != nil {
		c.logger.Error("failed to list FSM states", "error", err)
		data.Error = "Could not load FSM states: " + err.Error()
	} else {
		data.States = states
	}

	c.renderFSMPage(w, data)
}
