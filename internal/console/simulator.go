// ABOUTME: Call simulator handlers: start, activity input, end, reset
// ABOUTME: Sessions are keyed by a browser cookie so each operator drives their own call

package console

import (
	"errors"
	"net/http"

	"github.com/2389/aira-console/internal/aira"
	"github.com/2389/aira-console/internal/simulator"
)

var activityLabels = map[string]string{
	aira.ActivityDetected: "Activity detected",
	aira.ActivitySilence:  "Silence",
	aira.ActivityHangup:   "Hang up",
	aira.ActivityTimeout:  "Timeout",
}

// simSession returns the operator's simulator session, setting the session
// cookie when a fresh one is minted.
func (c *Console) simSession(w http.ResponseWriter, r *http.Request) *simulator.Session {
	var id string
	if cookie, err := r.Cookie(SimSessionCookieName); err == nil {
		id = cookie.Value
	}

	session := c.sessions.GetOrCreate(id)
	if session.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SimSessionCookieName,
			Value:    session.ID,
			Path:     "/console/simulator",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return session
}

// handleSimulatorPage renders the simulator page.
func (c *Console) handleSimulatorPage(w http.ResponseWriter, r *http.Request) {
	session := c.simSession(w, r)
	data := simulatorPageData{
		Title:     "Call Simulator",
		ActiveNav: "simulator",
		Panel:     c.buildSimulatorPanel(session.View(), ""),
	}
	c.renderSimulatorPage(w, data)
}

// handleSimulatorStart opens a new simulated call.
func (c *Console) handleSimulatorStart(w http.ResponseWriter, r *http.Request) {
	session := c.simSession(w, r)
	if err := r.ParseForm(); err != nil {
		c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), "Invalid form data"))
		return
	}

	language := r.FormValue("language")
	if !isLanguageToken(language) {
		language = aira.LanguageEnglish
	}
	testMode := r.FormValue("test_mode") != ""

	if err := session.Start(r.Context(), c.backend, language, testMode); err != nil {
		c.logger.Warn("simulator start failed", "session_id", session.ID, "error", err)
		c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), guardMessage(err)))
		return
	}

	c.logger.Info("simulated call started", "session_id", session.ID, "language", language, "test_mode", testMode)
	c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), ""))
}

// handleSimulatorInput submits one activity classification. Only known
// activity tokens reach the backend.
func (c *Console) handleSimulatorInput(w http.ResponseWriter, r *http.Request) {
	session := c.simSession(w, r)
	if err := r.ParseForm(); err != nil {
		c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), "Invalid form data"))
		return
	}

	activity := r.FormValue("activity")
	if !isActivityToken(activity) {
		c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), "Unknown activity classification."))
		return
	}

	if err := session.Submit(r.Context(), c.backend, activity); err != nil {
		c.logger.Warn("simulator input failed", "session_id", session.ID, "activity", activity, "error", err)
		c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), guardMessage(err)))
		return
	}

	c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), ""))
}

// handleSimulatorEnd ends the simulated call.
func (c *Console) handleSimulatorEnd(w http.ResponseWriter, r *http.Request) {
	session := c.simSession(w, r)

	if err := session.End(r.Context(), c.backend); err != nil {
		c.logger.Warn("simulator end failed", "session_id", session.ID, "error", err)
		c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), guardMessage(err)))
		return
	}

	c.logger.Info("simulated call ended", "session_id", session.ID)
	c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), ""))
}

// handleSimulatorReset clears an ended call back to idle.
func (c *Console) handleSimulatorReset(w http.ResponseWriter, r *http.Request) {
	session := c.simSession(w, r)

	if err := session.Reset(); err != nil {
		c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), guardMessage(err)))
		return
	}

	c.renderSimulatorPanel(w, c.buildSimulatorPanel(session.View(), ""))
}

// guardMessage maps session guard errors to operator-facing notices. Backend
// errors pass through verbatim.
func guardMessage(err error) string {
	switch {
	case errors.Is(err, simulator.ErrBusy):
		return "A request is already in flight."
	case errors.Is(err, simulator.ErrNotActive):
		return "The call is not active."
	case errors.Is(err, simulator.ErrNotIdle):
		return "A call is already in progress."
	case errors.Is(err, simulator.ErrNotEnded):
		return "Only an ended call can be reset."
	default:
		return err.Error()
	}
}

// buildSimulatorPanel shapes a session view for the panel template. errMsg
// overrides the session's recorded error for transient guard notices.
func (c *Console) buildSimulatorPanel(view simulator.View, errMsg string) simulatorPanelData {
	if errMsg == "" {
		errMsg = view.LastError
	}

	panel := simulatorPanelData{
		IsIdle:       view.Phase == simulator.PhaseIdle,
		IsConnecting: view.Phase == simulator.PhaseConnecting,
		IsActive:     view.Phase == simulator.PhaseActive,
		IsEnded:      view.Phase == simulator.PhaseEnded,
		CanSubmit:    view.CanSubmit(),
		Language:     view.Language,
		TestMode:     view.TestMode,
		FSMState:     view.FSMState,
		CallID:       view.CallID,
		LastError:    errMsg,
		Languages:    aira.Languages,
		Activities:   activityOptions(),
	}

	for _, turn := range view.Turns {
		text := turn.Text
		if turn.IsUser() {
			if label, ok := activityLabels[turn.Text]; ok {
				text = label
			}
		}
		panel.Turns = append(panel.Turns, turnRow{
			IsUser:   turn.IsUser(),
			Speaker:  turn.Speaker,
			Text:     text,
			FSMState: turn.FSMState,
			AudioURL: turn.AudioURL,
			At:       formatTime(turn.At),
		})
	}
	return panel
}

func activityOptions() []activityOption {
	opts := make([]activityOption, 0, len(aira.Activities))
	for _, token := range aira.Activities {
		opts = append(opts, activityOption{Token: token, Label: activityLabels[token]})
	}
	return opts
}

func isActivityToken(s string) bool {
	for _, token := range aira.Activities {
		if s == token {
			return true
		}
	}
	return false
}

func isLanguageToken(s string) bool {
	for _, token := range aira.Languages {
		if s == token {
			return true
		}
	}
	return false
}
