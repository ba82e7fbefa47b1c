// ABOUTME: Deterministic mock dataset substituted for missing backend endpoints in dev mode
// ABOUTME: Shapes mirror the backend contract exactly so views render identically either way

package aira

import (
	"fmt"
	"strings"
	"time"
)

// mockBaseTime anchors all mock timestamps so renders are reproducible.
var mockBaseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// mockCallTotal sizes the mock history: 45 calls at page size 20 gives three
// pages, which exercises both pagination boundaries.
const mockCallTotal = 45

func mockCallID(i int) string {
	return fmt.Sprintf("mock-call-%02d", i)
}

// mockListItem derives one deterministic call summary from its index.
func mockListItem(i int) CallListItem {
	statuses := []string{CallStatusCompleted, CallStatusCompleted, CallStatusFailed, CallStatusCompleted, CallStatusTransferred}
	exits := []string{ExitCompleted, ExitUserHangup, ExitError, ExitCompleted, ExitTransferred}
	langs := []string{LanguageEnglish, LanguageSpanish, LanguageEnglish, LanguageFrench, LanguageGerman}

	start := mockBaseTime.Add(-time.Duration(i) * 37 * time.Minute)
	end := start.Add(time.Duration(2+i%7) * time.Minute)
	return CallListItem{
		ID:            mockCallID(i),
		SessionID:     fmt.Sprintf("mock-session-%02d", i),
		Status:        statuses[i%len(statuses)],
		FSMState:      "closing",
		Language:      langs[i%len(langs)],
		StartTime:     start,
		EndTime:       &end,
		ExitReason:    exits[i%len(exits)],
		DemoIntent:    i%3 == 0,
		DemoConfirmed: i%6 == 0,
		TurnCount:     4 + i%9,
	}
}

func mockLiveCalls() []CallListItem {
	live := make([]CallListItem, 0, 3)
	states := []string{"qualification", "demo_offer", "greeting"}
	for i := 0; i < 3; i++ {
		item := mockListItem(i)
		item.ID = fmt.Sprintf("mock-live-%02d", i)
		item.Status = CallStatusActive
		item.FSMState = states[i]
		item.EndTime = nil
		item.ExitReason = ""
		item.StartTime = mockBaseTime.Add(-time.Duration(i+1) * 2 * time.Minute)
		live = append(live, item)
	}
	return live
}

// mockCallList filters and paginates the deterministic history the same way
// the backend would, so pager behavior is identical against mock data.
func mockCallList(page, pageSize int, filters CallFilters) *CallList {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var matched []CallListItem
	for i := 1; i <= mockCallTotal; i++ {
		item := mockListItem(i)
		if filters.ExitReason != "" && item.ExitReason != filters.ExitReason {
			continue
		}
		if filters.Status != "" && item.Status != filters.Status {
			continue
		}
		if filters.DemoIntent != nil && item.DemoIntent != *filters.DemoIntent {
			continue
		}
		matched = append(matched, item)
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	startIdx := (page - 1) * pageSize
	endIdx := startIdx + pageSize
	if startIdx > total {
		startIdx = total
	}
	if endIdx > total {
		endIdx = total
	}

	return &CallList{
		Calls:      matched[startIdx:endIdx],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// mockCallByID rebuilds the full record for a mock call id, with a short
// deterministic turn timeline.
func mockCallByID(callID string) (*Call, bool) {
	if !strings.HasPrefix(callID, "mock-call-") && !strings.HasPrefix(callID, "mock-live-") {
		return nil, false
	}
	var i int
	if _, err := fmt.Sscanf(callID[strings.LastIndex(callID, "-")+1:], "%d", &i); err != nil {
		return nil, false
	}

	item := mockListItem(i)
	turns := []CallTurn{
		{
			ID:        callID + "-t0",
			Timestamp: item.StartTime,
			Speaker:   SpeakerAira,
			Text:      "Hello! This is Aira calling from TechFlow Solutions. Do you have a moment?",
			FSMState:  "greeting",
			AudioURL:  fmt.Sprintf("/api/audio/%s/0", callID),
		},
		{
			ID:        callID + "-t1",
			Timestamp: item.StartTime.Add(12 * time.Second),
			Speaker:   SpeakerUser,
			Text:      ActivityDetected,
			FSMState:  "greeting",
		},
		{
			ID:        callID + "-t2",
			Timestamp: item.StartTime.Add(25 * time.Second),
			Speaker:   SpeakerAira,
			Text:      "Great. Could you tell me a bit about your company's industry?",
			FSMState:  "qualification",
			AudioURL:  fmt.Sprintf("/api/audio/%s/2", callID),
		},
		{
			ID:        callID + "-t3",
			Timestamp: item.StartTime.Add(41 * time.Second),
			Speaker:   SpeakerUser,
			Text:      ActivityDetected,
			FSMState:  "qualification",
		},
	}

	call := &Call{
		ID:         item.ID,
		SessionID:  item.SessionID,
		Status:     item.Status,
		FSMState:   item.FSMState,
		Language:   item.Language,
		TestMode:   true,
		StartTime:  item.StartTime,
		EndTime:    item.EndTime,
		ExitReason: item.ExitReason,
		Turns:      turns,
		QualificationData: map[string]interface{}{
			"industry":     "software",
			"company_size": "50-200",
		},
		DemoIntent:    item.DemoIntent,
		DemoConfirmed: item.DemoConfirmed,
		Objections:    mockObjections(i),
	}
	return call, true
}

func mockObjections(i int) []string {
	if i%4 == 0 {
		return []string{"too expensive", "already using a competitor"}
	}
	if i%3 == 0 {
		return []string{"not the right time"}
	}
	return []string{}
}

func mockQualificationByID(callID string) (*QualificationSnapshot, bool) {
	call, ok := mockCallByID(callID)
	if !ok {
		return nil, false
	}
	return &QualificationSnapshot{
		CallID:          call.ID,
		CapturedAnswers: call.QualificationData,
		Objections:      call.Objections,
		DemoIntent:      call.DemoIntent,
		DemoConfirmed:   call.DemoConfirmed,
		Language:        call.Language,
		Timestamp:       call.StartTime.Add(90 * time.Second),
	}, true
}

// mockPrompts keeps the backend invariant: at most one active prompt per
// (state, language) pair, plus draft and weak examples to fill all three
// partition groups.
func mockPrompts(filters PromptFilters) []Prompt {
	all := []Prompt{
		mockPrompt("mock-prompt-01", "greeting", LanguageEnglish, PromptActive, 3,
			"Hello! This is **Aira** from TechFlow Solutions. Do you have a quick moment?"),
		mockPrompt("mock-prompt-02", "greeting", LanguageSpanish, PromptActive, 2,
			"¡Hola! Soy **Aira** de TechFlow Solutions. ¿Tiene un momento?"),
		mockPrompt("mock-prompt-03", "qualification", LanguageEnglish, PromptActive, 5,
			"Could you tell me about your company's industry and team size?"),
		mockPrompt("mock-prompt-04", "qualification", LanguageEnglish, PromptDraft, 6,
			"To tailor this call: what industry are you in, and roughly how large is the team?"),
		mockPrompt("mock-prompt-05", "demo_offer", LanguageEnglish, PromptActive, 1,
			"Based on what you shared, a short demo could be valuable. Interested?"),
		mockPrompt("mock-prompt-06", "demo_offer", LanguageEnglish, PromptWeak, 1,
			"Do you want a demo?"),
		mockPrompt("mock-prompt-07", "objection_handling", LanguageEnglish, PromptDraft, 1,
			"I understand the concern. Many teams felt the same before seeing the workflow."),
		mockPrompt("mock-prompt-08", "closing", LanguageEnglish, PromptActive, 2,
			"Thanks for your time today. Have a great day!"),
	}

	var matched []Prompt
	for _, p := range all {
		if filters.FSMState != "" && p.FSMState != filters.FSMState {
			continue
		}
		if filters.Language != "" && p.Language != filters.Language {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func mockPrompt(id, state, language, status string, version int, text string) Prompt {
	return Prompt{
		ID:        id,
		FSMState:  state,
		Language:  language,
		Text:      text,
		Status:    status,
		Version:   version,
		CreatedAt: mockBaseTime.Add(-30 * 24 * time.Hour),
		UpdatedAt: mockBaseTime.Add(-time.Duration(version) * 24 * time.Hour),
		CreatedBy: "admin",
	}
}

func mockPolicyPair() *PolicyPair {
	active := Policy{
		Retry:        RetryRule{MaxAttempts: 3, RetryDelayMinutes: 45},
		CallingHours: CallingHoursRule{StartHour: 9, EndHour: 18, WeekendsAllowed: false, NewLeadOverride: true},
		NumberHealth: NumberHealthRule{ErrorThreshold: 5, QuarantineAfterErrors: 10},
		Silence:      SilenceRule{SilenceTimeoutSeconds: 8, MaxSilenceStrikes: 3},
		UpdatedAt:    mockBaseTime.Add(-14 * 24 * time.Hour),
	}
	draft := active
	draft.Retry.MaxAttempts = 4
	draft.CallingHours.WeekendsAllowed = true
	draft.UpdatedAt = mockBaseTime.Add(-2 * 24 * time.Hour)
	return &PolicyPair{Active: active, Draft: &draft}
}

func mockFSMStates() []FSMStateInfo {
	return []FSMStateInfo{
		{State: "greeting", Description: "Initial greeting and introduction",
			Transitions: []string{"language_selection", "qualification"}},
		{State: "language_selection", Description: "Detect or confirm user's preferred language",
			Transitions: []string{"qualification"}},
		{State: "qualification", Description: "Gather qualification information from the user",
			Transitions: []string{"objection_handling", "demo_offer", "closing"}},
		{State: "objection_handling", Description: "Handle user objections and concerns",
			Transitions: []string{"qualification", "demo_offer", "closing"}},
		{State: "demo_offer", Description: "Offer a product demo to qualified users",
			Transitions: []string{"confirmation", "objection_handling", "closing"}},
		{State: "confirmation", Description: "Confirm demo scheduling details",
			Transitions: []string{"closing", "transfer"}},
		{State: "closing", Description: "End the conversation gracefully",
			Transitions: []string{}, IsTerminal: true},
		{State: "transfer", Description: "Transfer to human agent",
			Transitions: []string{}, IsTerminal: true},
		{State: "fallback", Description: "Handle unrecognized inputs",
			Transitions: []string{"greeting", "qualification"}},
	}
}

func mockStats() *Stats {
	return &Stats{
		TotalCalls:     mockCallTotal,
		ActiveCalls:    3,
		CompletedCalls: 27,
		DemoIntents:    15,
	}
}
