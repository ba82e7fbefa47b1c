// ABOUTME: Wire types and enum tokens for the Aira voice-agent backend API
// ABOUTME: Defines Call, CallTurn, Prompt, Policy and the enums they reference

package aira

import (
	"errors"
	"time"
)

// ErrNotFound is returned when the backend reports a missing entity.
var ErrNotFound = errors.New("not found")

// ErrNoActiveDraft is returned when a policy publish finds nothing to promote.
var ErrNoActiveDraft = errors.New("no policy draft to publish")

// Language tokens accepted by the backend.
const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
	LanguageFrench  = "fr"
	LanguageGerman  = "de"
)

// Languages lists the supported language tokens in display order.
var Languages = []string{LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman}

// CallStatus constants for call lifecycle states.
const (
	CallStatusActive      = "active"
	CallStatusCompleted   = "completed"
	CallStatusFailed      = "failed"
	CallStatusTransferred = "transferred"
)

// CallStatuses lists the call status tokens in display order.
var CallStatuses = []string{CallStatusActive, CallStatusCompleted, CallStatusFailed, CallStatusTransferred}

// ExitReason constants describing how a call ended.
const (
	ExitCompleted   = "completed"
	ExitUserHangup  = "user_hangup"
	ExitTimeout     = "timeout"
	ExitError       = "error"
	ExitTransferred = "transferred"
	ExitNoResponse  = "no_response"
)

// ExitReasons lists the exit reason tokens in display order.
var ExitReasons = []string{ExitCompleted, ExitUserHangup, ExitTimeout, ExitError, ExitTransferred, ExitNoResponse}

// PromptStatus constants for the prompt lifecycle.
const (
	PromptActive   = "active"   // currently served for its (state, language) pair
	PromptDraft    = "draft"    // unpublished edit
	PromptWeak     = "weak"     // flagged for replacement
	PromptArchived = "archived" // superseded by a later publish
)

// FSMStateNames lists the backend's FSM states in conversation order. The
// console renders them read-only; the vocabulary is owned by the backend.
var FSMStateNames = []string{
	"greeting",
	"language_selection",
	"qualification",
	"objection_handling",
	"demo_offer",
	"confirmation",
	"closing",
	"transfer",
	"fallback",
}

// Speaker constants for call turns.
const (
	SpeakerUser = "user"
	SpeakerAira = "aira"
)

// Activity classification tokens. User turns carry one of these instead of
// transcribed speech; the simulator submits them as user_input verbatim.
const (
	ActivityDetected = "detected_activity"
	ActivitySilence  = "silence"
	ActivityHangup   = "hangup"
	ActivityTimeout  = "timeout"
)

// Activities lists the activity tokens offered by the simulator.
var Activities = []string{ActivityDetected, ActivitySilence, ActivityHangup, ActivityTimeout}

// CallTurn is one exchange unit in a call timeline. For user turns Text holds
// an activity classification token, never literal speech.
type CallTurn struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	FSMState  string    `json:"fsm_state"`
	AudioURL  string    `json:"audio_url,omitempty"`
}

// IsUser reports whether the turn belongs to the end user.
func (t CallTurn) IsUser() bool {
	return t.Speaker == SpeakerUser
}

// CallListItem is the summary row returned by list endpoints.
type CallListItem struct {
	ID            string     `json:"id"`
	SessionID     string     `json:"session_id"`
	Status        string     `json:"status"`
	FSMState      string     `json:"fsm_state"`
	Language      string     `json:"language"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	ExitReason    string     `json:"exit_reason,omitempty"`
	DemoIntent    bool       `json:"demo_intent"`
	DemoConfirmed bool       `json:"demo_confirmed"`
	TurnCount     int        `json:"turn_count"`
}

// Call is the full call record with its turn timeline.
type Call struct {
	ID                string                 `json:"id"`
	SessionID         string                 `json:"session_id"`
	Status            string                 `json:"status"`
	FSMState          string                 `json:"fsm_state"`
	Language          string                 `json:"language"`
	TestMode          bool                   `json:"test_mode"`
	StartTime         time.Time              `json:"start_time"`
	EndTime           *time.Time             `json:"end_time"`
	ExitReason        string                 `json:"exit_reason,omitempty"`
	Turns             []CallTurn             `json:"turns"`
	QualificationData map[string]interface{} `json:"qualification_data"`
	DemoIntent        bool                   `json:"demo_intent"`
	DemoConfirmed     bool                   `json:"demo_confirmed"`
	Objections        []string               `json:"objections"`
}

// CallList is the paginated response of GET /api/calls.
type CallList struct {
	Calls      []CallListItem `json:"calls"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// CallFilters are the optional query parameters of GET /api/calls.
// Zero values mean "not filtered"; DemoIntent is a tri-state.
type CallFilters struct {
	ExitReason string
	DemoIntent *bool
	Status     string
	DateFrom   string
	DateTo     string
}

// Prompt is a trainable prompt for one (FSM state, language) pair.
type Prompt struct {
	ID        string    `json:"id"`
	FSMState  string    `json:"fsm_state"`
	Language  string    `json:"language"`
	Text      string    `json:"text"`
	Status    string    `json:"status"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	Notes     string    `json:"notes,omitempty"`
}

// PromptFilters are the optional query parameters of GET /api/prompts.
type PromptFilters struct {
	FSMState string
	Language string
	Status   string
}

// FSMStateInfo describes one backend FSM state. The console renders these
// read-only; it never defines or mutates states.
type FSMStateInfo struct {
	State       string   `json:"state"`
	Description string   `json:"description"`
	Transitions []string `json:"transitions"`
	IsTerminal  bool     `json:"is_terminal"`
}

// QualificationSnapshot is the structured data captured during a call.
type QualificationSnapshot struct {
	CallID          string                 `json:"call_id"`
	CapturedAnswers map[string]interface{} `json:"captured_answers"`
	Objections      []string               `json:"objections"`
	DemoIntent      bool                   `json:"demo_intent"`
	DemoConfirmed   bool                   `json:"demo_confirmed"`
	Language        string                 `json:"language"`
	Timestamp       time.Time              `json:"timestamp"`
}

// RetryRule caps redial attempts for unanswered numbers.
type RetryRule struct {
	MaxAttempts       int `json:"max_attempts"`
	RetryDelayMinutes int `json:"retry_delay_minutes"`
}

// CallingHoursRule bounds when outbound calls may be placed.
type CallingHoursRule struct {
	StartHour       int  `json:"start_hour"`
	EndHour         int  `json:"end_hour"`
	WeekendsAllowed bool `json:"weekends_allowed"`
	NewLeadOverride bool `json:"new_lead_override"`
}

// NumberHealthRule quarantines numbers that keep erroring.
type NumberHealthRule struct {
	ErrorThreshold        int `json:"error_threshold"`
	QuarantineAfterErrors int `json:"quarantine_after_errors"`
}

// SilenceRule bounds dead air before the agent gives up.
type SilenceRule struct {
	SilenceTimeoutSeconds int `json:"silence_timeout_seconds"`
	MaxSilenceStrikes     int `json:"max_silence_strikes"`
}

// Policy is one policy document variant (active or draft).
type Policy struct {
	Retry        RetryRule        `json:"retry"`
	CallingHours CallingHoursRule `json:"calling_hours"`
	NumberHealth NumberHealthRule `json:"number_health"`
	Silence      SilenceRule      `json:"silence"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// PolicyPair is the response of GET /api/policy. Draft is nil when no
// unpublished edit exists; publishing promotes Draft to Active and clears it.
type PolicyPair struct {
	Active Policy  `json:"active"`
	Draft  *Policy `json:"draft"`
}

// Stats are the aggregate counters shown on the live monitor.
type Stats struct {
	TotalCalls     int `json:"total_calls"`
	ActiveCalls    int `json:"active_calls"`
	CompletedCalls int `json:"completed_calls"`
	DemoIntents    int `json:"demo_intents"`
}

// HealthStatus is the backend health probe response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StartWebCallRequest begins a simulated call session.
type StartWebCallRequest struct {
	TestMode bool   `json:"test_mode"`
	Language string `json:"language"`
}

// StartWebCallResponse carries the new session and its opening agent turn.
type StartWebCallResponse struct {
	CallID         string `json:"call_id"`
	SessionID      string `json:"session_id"`
	InitialMessage string `json:"initial_message"`
	FSMState       string `json:"fsm_state"`
	AudioURL       string `json:"audio_url,omitempty"`
}

// WebCallInputRequest submits one user activity classification.
type WebCallInputRequest struct {
	CallID    string `json:"call_id"`
	UserInput string `json:"user_input"`
}

// WebCallInputResponse carries the agent reply for one input.
type WebCallInputResponse struct {
	CallID       string `json:"call_id"`
	AiraResponse string `json:"aira_response"`
	FSMState     string `json:"fsm_state"`
	AudioURL     string `json:"audio_url,omitempty"`
	IsFinal      bool   `json:"is_final"`
}

// EndWebCallResponse acknowledges an explicit session end.
type EndWebCallResponse struct {
	Message string `json:"message"`
	CallID  string `json:"call_id"`
}
