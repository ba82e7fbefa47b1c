// ABOUTME: Template rendering functions for the operator console
// ABOUTME: Loads templates from the embedded filesystem and renders pages and partials

package console

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/2389/aira-console/internal/aira"
)

// Template data types
type livePageData struct {
	Title     string
	ActiveNav string
	Board     liveBoardData
}

type liveBoardData struct {
	HasData    bool
	CallsStale bool
	StatsStale bool
	FetchedAt  string
	Stats      aira.Stats
	Calls      []liveCallRow
	Error      string
}

type liveCallRow struct {
	ID         string
	SessionID  string
	FSMState   string
	Language   string
	Started    string
	Duration   string
	TurnCount  int
	DemoIntent bool
}

type callsPageData struct {
	Title       string
	ActiveNav   string
	ExitReason  string
	DemoIntent  string
	Status      string
	DateFrom    string
	DateTo      string
	ExitReasons []string
	Statuses    []string
	Table       callsTableData
}

type callsTableData struct {
	Rows  []callRow
	Pager Pager
	Error string
}

type callRow struct {
	ID            string
	SessionID     string
	Status        string
	FSMState      string
	Language      string
	Started       string
	Duration      string
	ExitReason    string
	DemoIntent    bool
	DemoConfirmed bool
	TurnCount     int
}

type callPanelData struct {
	Error string
	Call  *callDetailView
}

type callDetailView struct {
	ID            string
	SessionID     string
	Status        string
	FSMState      string
	Language      string
	TestMode      bool
	Started       string
	Ended         string
	Duration      string
	ExitReason    string
	DemoIntent    bool
	DemoConfirmed bool
	Objections    []string
	Captured      []capturedAnswer
	Turns         []turnRow
}

type turnRow struct {
	IsUser   bool
	Speaker  string
	Text     string
	FSMState string
	AudioURL string
	At       string
}

type promptsPageData struct {
	Title     string
	ActiveNav string
	Board     promptsBoardData
}

type promptsBoardData struct {
	StateFilter    string
	LanguageFilter string
	States         []string
	Languages      []string
	StateInfo      *aira.FSMStateInfo
	Active         []promptCard
	Drafts         []promptCard
	Weak           []promptCard
	Flash          string
	FlashError     string
	Error          string
}

type promptCard struct {
	ID       string
	FSMState string
	Language string
	Status   string
	Version  int
	Updated  string
	Notes    string
	Text     string
	Preview  template.HTML
}

type simulatorPageData struct {
	Title     string
	ActiveNav string
	Panel     simulatorPanelData
}

type simulatorPanelData struct {
	IsIdle       bool
	IsConnecting bool
	IsActive     bool
	IsEnded      bool
	CanSubmit    bool
	Language     string
	TestMode     bool
	FSMState     string
	CallID       string
	Turns        []turnRow
	LastError    string
	Languages    []string
	Activities   []activityOption
}

type activityOption struct {
	Token string
	Label string
}

type qualificationPageData struct {
	Title     string
	ActiveNav string
	CallID    string
	Recent    []callRow
	Pager     Pager
	Context   *callRow
	Snapshot  *qualificationView
	Error     string
}

type qualificationView struct {
	CallID        string
	Language      string
	DemoIntent    bool
	DemoConfirmed bool
	Captured      []capturedAnswer
	Objections    []string
	Timestamp     string
}

type capturedAnswer struct {
	Key   string
	Value string
}

type policyPageData struct {
	Title     string
	ActiveNav string
	Section   policySectionData
}

type policySectionData struct {
	Active      policyView
	Draft       *policyView
	Form        aira.Policy
	FormIsDraft bool
	Flash       string
	FlashError  string
	Error       string
}

type policyView struct {
	Retry        aira.RetryRule
	CallingHours aira.CallingHoursRule
	NumberHealth aira.NumberHealthRule
	Silence      aira.SilenceRule
	Updated      string
}

type fsmPageData struct {
	Title     string
	ActiveNav string
	States    []aira.FSMStateInfo
	Error     string
}

// renderLivePage renders the live monitor page
func (c *Console) renderLivePage(w http.ResponseWriter, data livePageData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html", "templates/live.html", "templates/partials/live_board.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render live page", "error", err)
	}
}

// renderLiveBoard renders the live board partial (htmx response)
func (c *Console) renderLiveBoard(w http.ResponseWriter, data liveBoardData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/partials/live_board.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render live board", "error", err)
	}
}

// liveBoardHTML renders the live board partial to a string for SSE payloads
func (c *Console) liveBoardHTML(data liveBoardData) (string, error) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/partials/live_board.html"))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderCallsPage renders the call review page
func (c *Console) renderCallsPage(w http.ResponseWriter, data callsPageData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html", "templates/calls.html", "templates/partials/calls_table.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render calls page", "error", err)
	}
}

// renderCallsTable renders the call table partial (htmx response)
func (c *Console) renderCallsTable(w http.ResponseWriter, data callsTableData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/partials/calls_table.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render calls table", "error", err)
	}
}

// renderCallPanel renders the call detail panel partial (htmx response)
func (c *Console) renderCallPanel(w http.ResponseWriter, data callPanelData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/partials/call_panel.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render call panel", "error", err)
	}
}

// renderPromptsPage renders the prompt training page
func (c *Console) renderPromptsPage(w http.ResponseWriter, data promptsPageData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html", "templates/prompts.html", "templates/partials/prompts_board.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render prompts page", "error", err)
	}
}

// renderPromptsBoard renders the prompts board partial (htmx response)
func (c *Console) renderPromptsBoard(w http.ResponseWriter, data promptsBoardData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/partials/prompts_board.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render prompts board", "error", err)
	}
}

// renderSimulatorPage renders the call simulator page
func (c *Console) renderSimulatorPage(w http.ResponseWriter, data simulatorPageData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html", "templates/simulator.html", "templates/partials/simulator_panel.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render simulator page", "error", err)
	}
}

// renderSimulatorPanel renders the simulator panel partial (htmx response)
func (c *Console) renderSimulatorPanel(w http.ResponseWriter, data simulatorPanelData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/partials/simulator_panel.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render simulator panel", "error", err)
	}
}

// renderQualificationPage renders the qualification snapshot viewer
func (c *Console) renderQualificationPage(w http.ResponseWriter, data qualificationPageData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html", "templates/qualification.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render qualification page", "error", err)
	}
}

// renderPolicyPage renders the policy page
func (c *Console) renderPolicyPage(w http.ResponseWriter, data policyPageData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html", "templates/policy.html", "templates/partials/policy_section.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render policy page", "error", err)
	}
}

// renderPolicySection renders the policy section partial (htmx response)
func (c *Console) renderPolicySection(w http.ResponseWriter, data policySectionData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/partials/policy_section.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render policy section", "error", err)
	}
}

// renderFSMPage renders the FSM reference page
func (c *Console) renderFSMPage(w http.ResponseWriter, data fsmPageData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html", "templates/fsm.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		c.logger.Error("failed to render fsm page", "error", err)
	}
}

// formatTime formats a timestamp for display.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// formatTimePtr formats an optional timestamp for display.
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// formatDuration renders the span between start and end. Calls still running
// measure against the current time.
func formatDuration(start time.Time, end *time.Time) string {
	if start.IsZero() {
		return ""
	}
	until := time.Now()
	if end != nil {
		until = *end
	}
	d := until.Sub(start)
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}
