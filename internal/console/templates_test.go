// ABOUTME: Smoke tests that every page and partial template parses and executes.
// ABOUTME: Populated datasets exercise the branches the handler tests leave guarded.

package console

import (
	"html/template"
	"io"
	"testing"

	"github.com/2389/aira-console/internal/aira"
)

func sampleTurnRows() []turnRow {
	return []turnRow{
		{Speaker: "aira", Text: "Hello, this is Aira.", FSMState: "greeting", AudioURL: "http://backend.test/a.mp3", At: "2026-03-14 10:30:00"},
		{IsUser: true, Speaker: "user", Text: "detected_activity", FSMState: "greeting", At: "2026-03-14 10:30:05"},
	}
}

func sampleCallRow() callRow {
	return callRow{
		ID: "call-1", SessionID: "sess-1", Status: "completed", FSMState: "closing",
		Language: "en", Started: "2026-03-14 10:30:00", Duration: "2m5s",
		ExitReason: "completed", DemoIntent: true, DemoConfirmed: true, TurnCount: 9,
	}
}

func samplePolicyView() policyView {
	return policyView{
		Retry:        aira.RetryRule{MaxAttempts: 3, RetryDelayMinutes: 30},
		CallingHours: aira.CallingHoursRule{StartHour: 9, EndHour: 20, WeekendsAllowed: true},
		NumberHealth: aira.NumberHealthRule{ErrorThreshold: 5, QuarantineAfterErrors: 10},
		Silence:      aira.SilenceRule{SilenceTimeoutSeconds: 8, MaxSilenceStrikes: 3},
		Updated:      "2026-03-14 10:30:00",
	}
}

func sampleLiveBoard() liveBoardData {
	return liveBoardData{
		HasData:    true,
		CallsStale: true,
		StatsStale: true,
		FetchedAt:  "2026-03-14 10:30:00",
		Stats:      aira.Stats{TotalCalls: 40, ActiveCalls: 2, CompletedCalls: 30, DemoIntents: 8},
		Calls: []liveCallRow{
			{ID: "call-1", SessionID: "sess-1", FSMState: "qualification", Language: "en", Started: "2026-03-14 10:29:00", Duration: "1m0s", TurnCount: 4, DemoIntent: true},
		},
		Error: "Refresh failed: backend down",
	}
}

func sampleCallsTable() callsTableData {
	return callsTableData{
		Rows: []callRow{sampleCallRow()},
		Pager: Pager{
			Page: 2, TotalPages: 3, Total: 45,
			Label: "Page 2 of 3", RangeLabel: "21-40 of 45",
			PrevURL: "/console/calls?page=1", NextURL: "/console/calls?page=3",
		},
	}
}

func samplePromptsBoard() promptsBoardData {
	card := promptCard{
		ID: "p-1", FSMState: "greeting", Language: "en", Status: "active",
		Version: 3, Updated: "2026-03-14 10:30:00", Notes: "warm tone",
		Text: "Say **hello** warmly", Preview: template.HTML("<p>Say <strong>hello</strong> warmly</p>"),
	}
	return promptsBoardData{
		StateFilter:    "greeting",
		LanguageFilter: "en",
		States:         aira.FSMStateNames,
		Languages:      aira.Languages,
		StateInfo:      &aira.FSMStateInfo{State: "greeting", Description: "Opens the call", Transitions: []string{"language_selection"}},
		Active:         []promptCard{card},
		Drafts:         []promptCard{card},
		Weak:           []promptCard{card},
		Flash:          "Draft saved.",
		FlashError:     "Could not publish prompt: conflict",
	}
}

func sampleSimulatorPanels() []simulatorPanelData {
	base := simulatorPanelData{
		Language:   "en",
		TestMode:   true,
		FSMState:   "qualification",
		CallID:     "web-call-1",
		Turns:      sampleTurnRows(),
		Languages:  aira.Languages,
		Activities: []activityOption{{Token: "silence", Label: "Silence"}},
	}
	idle := base
	idle.IsIdle = true
	idle.LastError = "Could not start the call: backend down"
	connecting := base
	connecting.IsConnecting = true
	active := base
	active.IsActive = true
	active.CanSubmit = true
	ended := base
	ended.IsEnded = true
	return []simulatorPanelData{idle, connecting, active, ended}
}

// --- template smoke tests ---

func TestPageTemplatesRender(t *testing.T) {
	pages := []struct {
		name  string
		files []string
		data  []any
	}{
		{
			name:  "live",
			files: []string{"templates/base.html", "templates/live.html", "templates/partials/live_board.html"},
			data: []any{
				livePageData{Title: "Live Calls", ActiveNav: "live", Board: sampleLiveBoard()},
				livePageData{},
			},
		},
		{
			name:  "calls",
			files: []string{"templates/base.html", "templates/calls.html", "templates/partials/calls_table.html"},
			data: []any{
				callsPageData{
					Title: "Calls", ActiveNav: "calls",
					ExitReason: "completed", DemoIntent: "true", Status: "completed",
					DateFrom: "2026-03-01", DateTo: "2026-03-14",
					ExitReasons: aira.ExitReasons, Statuses: aira.CallStatuses,
					Table: sampleCallsTable(),
				},
				callsPageData{},
			},
		},
		{
			name:  "prompts",
			files: []string{"templates/base.html", "templates/prompts.html", "templates/partials/prompts_board.html"},
			data: []any{
				promptsPageData{Title: "Prompts", ActiveNav: "prompts", Board: samplePromptsBoard()},
				promptsPageData{},
			},
		},
		{
			name:  "simulator",
			files: []string{"templates/base.html", "templates/simulator.html", "templates/partials/simulator_panel.html"},
			data: []any{
				simulatorPageData{Title: "Simulator", ActiveNav: "simulator", Panel: sampleSimulatorPanels()[2]},
				simulatorPageData{},
			},
		},
		{
			name:  "qualification",
			files: []string{"templates/base.html", "templates/qualification.html"},
			data: []any{
				qualificationPageData{
					Title: "Qualification", ActiveNav: "qualification", CallID: "call-1",
					Recent: []callRow{sampleCallRow()},
					Pager: Pager{
						Page: 1, TotalPages: 2, Total: 25,
						Label: "Page 1 of 2", RangeLabel: "1-20 of 25",
						PrevDisabled: true,
						NextURL:      "/console/qualification?call_id=call-1&page=2",
					},
					Context: func() *callRow { r := sampleCallRow(); return &r }(),
					Snapshot: &qualificationView{
						CallID: "call-1", Language: "en", DemoIntent: true, DemoConfirmed: true,
						Captured:   []capturedAnswer{{Key: "budget", Value: "50000"}},
						Objections: []string{"price"},
						Timestamp:  "2026-03-14 10:30:00",
					},
					Error: "stale",
				},
				qualificationPageData{},
			},
		},
		{
			name:  "policy",
			files: []string{"templates/base.html", "templates/policy.html", "templates/partials/policy_section.html"},
			data: []any{
				policyPageData{
					Title: "Policy", ActiveNav: "policy",
					Section: policySectionData{
						Active:      samplePolicyView(),
						Draft:       func() *policyView { v := samplePolicyView(); return &v }(),
						Form:        aira.Policy{Retry: aira.RetryRule{MaxAttempts: 3}},
						FormIsDraft: true,
						Flash:       "Draft saved.",
						FlashError:  "Invalid draft: end hour must be between 0 and 23.",
					},
				},
				policyPageData{},
			},
		},
		{
			name:  "fsm",
			files: []string{"templates/base.html", "templates/fsm.html"},
			data: []any{
				fsmPageData{
					Title: "FSM States", ActiveNav: "fsm",
					States: []aira.FSMStateInfo{
						{State: "greeting", Description: "Opens the call", Transitions: []string{"language_selection"}},
						{State: "closing", Description: "Wraps up", IsTerminal: true},
					},
					Error: "stale",
				},
				fsmPageData{},
			},
		},
	}

	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, page.files...)
		if err != nil {
			t.Errorf("failed to parse %s templates: %v", page.name, err)
			continue
		}
		for i, data := range page.data {
			if err := tmpl.Execute(io.Discard, data); err != nil {
				t.Errorf("failed to execute %s templates with dataset %d: %v", page.name, i, err)
			}
		}
	}
}

func TestPartialTemplatesRender(t *testing.T) {
	partials := []struct {
		name string
		file string
		data []any
	}{
		{
			name: "live_board",
			file: "templates/partials/live_board.html",
			data: []any{sampleLiveBoard(), liveBoardData{}},
		},
		{
			name: "calls_table",
			file: "templates/partials/calls_table.html",
			data: []any{sampleCallsTable(), callsTableData{Error: "Could not load calls: backend down"}},
		},
		{
			name: "call_panel",
			file: "templates/partials/call_panel.html",
			data: []any{
				callPanelData{
					Call: &callDetailView{
						ID: "call-1", SessionID: "sess-1", Status: "completed", FSMState: "closing",
						Language: "en", TestMode: true,
						Started: "2026-03-14 10:30:00", Ended: "2026-03-14 10:32:05", Duration: "2m5s",
						ExitReason: "completed", DemoIntent: true, DemoConfirmed: true,
						Objections: []string{"price"},
						Captured:   []capturedAnswer{{Key: "industry", Value: "logistics"}},
						Turns:      sampleTurnRows(),
					},
				},
				callPanelData{Error: "The call was not found."},
			},
		},
		{
			name: "prompts_board",
			file: "templates/partials/prompts_board.html",
			data: []any{samplePromptsBoard(), promptsBoardData{}},
		},
		{
			name: "simulator_panel",
			file: "templates/partials/simulator_panel.html",
			data: func() []any {
				var out []any
				for _, panel := range sampleSimulatorPanels() {
					out = append(out, panel)
				}
				return out
			}(),
		},
		{
			name: "policy_section",
			file: "templates/partials/policy_section.html",
			data: []any{
				policySectionData{Active: samplePolicyView(), Form: aira.Policy{}},
				policySectionData{Error: "Could not load policy: backend down"},
			},
		},
	}

	for _, partial := range partials {
		tmpl, err := template.ParseFS(templateFS, partial.file)
		if err != nil {
			t.Errorf("failed to parse %s: %v", partial.name, err)
			continue
		}
		for i, data := range partial.data {
			if err := tmpl.Execute(io.Discard, data); err != nil {
				t.Errorf("failed to execute %s with dataset %d: %v", partial.name, i, err)
			}
		}
	}
}
