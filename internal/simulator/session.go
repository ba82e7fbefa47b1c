// ABOUTME: Simulated call session state machine: idle, connecting, active, ended
// ABOUTME: Owns the local transcript and the in-flight guard for one operator's test call

package simulator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/2389/aira-console/internal/aira"
)

// Phase of a simulated call session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConnecting Phase = "connecting"
	PhaseActive     Phase = "active"
	PhaseEnded      Phase = "ended"
)

// ErrBusy is returned when a submission arrives while a request is in flight.
var ErrBusy = errors.New("request already in flight")

// ErrNotActive is returned for submissions outside the active phase.
var ErrNotActive = errors.New("call is not active")

// ErrNotIdle is returned when starting a session that is not idle.
var ErrNotIdle = errors.New("call already started")

// ErrNotEnded is returned when resetting a session that has not ended.
var ErrNotEnded = errors.New("call has not ended")

// Caller is the backend surface a session drives.
type Caller interface {
	StartWebCall(ctx context.Context, req aira.StartWebCallRequest) (*aira.StartWebCallResponse, error)
	SendWebCallInput(ctx context.Context, callID, userInput string) (*aira.WebCallInputResponse, error)
	EndWebCall(ctx context.Context, callID string) (*aira.EndWebCallResponse, error)
	ResolveAudio(ref string) string
}

// Turn is one transcript entry. User turns carry an activity classification
// token in Text, never transcribed speech.
type Turn struct {
	Speaker  string
	Text     string
	FSMState string
	AudioURL string
	At       time.Time
}

// IsUser reports whether the turn belongs to the simulated end user.
func (t Turn) IsUser() bool {
	return t.Speaker == aira.SpeakerUser
}

// Session is one operator's simulated call. All mutation goes through the
// phase methods; the in-flight flag serializes submissions the way the UI's
// disabled submit control promises.
type Session struct {
	ID string

	mu        sync.Mutex
	phase     Phase
	callID    string
	sessionID string
	fsmState  string
	language  string
	testMode  bool
	turns     []Turn
	inflight  bool
	lastError string
	createdAt time.Time
	lastUsed  time.Time
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		phase:     PhaseIdle,
		language:  aira.LanguageEnglish,
		testMode:  true,
		createdAt: now,
		lastUsed:  now,
	}
}

// View is an immutable rendering snapshot of a session.
type View struct {
	ID        string
	Phase     Phase
	CallID    string
	SessionID string
	FSMState  string
	Language  string
	TestMode  bool
	Turns     []Turn
	TurnCount int
	InFlight  bool
	LastError string
}

// CanSubmit reports whether the submit controls should be enabled.
func (v View) CanSubmit() bool {
	return v.Phase == PhaseActive && !v.InFlight
}

// View returns a copy safe to render without holding the session lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)

	return View{
		ID:        s.ID,
		Phase:     s.phase,
		CallID:    s.callID,
		SessionID: s.sessionID,
		FSMState:  s.fsmState,
		Language:  s.language,
		TestMode:  s.testMode,
		Turns:     turns,
		TurnCount: len(turns),
		InFlight:  s.inflight,
		LastError: s.lastError,
	}
}

// Start moves idle -> connecting, opens a backend webcall session, and on
// success lands in active with exactly one initial agent turn. On failure the
// session returns to idle with the error recorded for display.
func (s *Session) Start(ctx context.Context, caller Caller, language string, testMode bool) error {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	if s.inflight {
		s.mu.Unlock()
		return ErrBusy
	}
	if language == "" {
		language = aira.LanguageEnglish
	}
	s.phase = PhaseConnecting
	s.inflight = true
	s.language = language
	s.testMode = testMode
	s.lastError = ""
	s.touch()
	s.mu.Unlock()

	resp, err := caller.StartWebCall(ctx, aira.StartWebCallRequest{
		TestMode: testMode,
		Language: language,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = false
	if err != nil {
		s.phase = PhaseIdle
		s.lastError = err.Error()
		return err
	}

	s.phase = PhaseActive
	s.callID = resp.CallID
	s.sessionID = resp.SessionID
	s.fsmState = resp.FSMState
	s.turns = []Turn{{
		Speaker:  aira.SpeakerAira,
		Text:     resp.InitialMessage,
		FSMState: resp.FSMState,
		AudioURL: caller.ResolveAudio(resp.AudioURL),
		At:       time.Now(),
	}}
	return nil
}

// Submit sends one activity classification while active. The user turn is
// appended before the backend call is issued, matching the UI's immediate
// render; the agent reply follows with its own FSM label. A final reply moves
// the session to ended.
func (s *Session) Submit(ctx context.Context, caller Caller, activity string) error {
	s.mu.Lock()
	if s.phase != PhaseActive {
		s.mu.Unlock()
		return ErrNotActive
	}
	if s.inflight {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inflight = true
	s.lastError = ""
	s.turns = append(s.turns, Turn{
		Speaker:  aira.SpeakerUser,
		Text:     activity,
		FSMState: s.fsmState,
		At:       time.Now(),
	})
	callID := s.callID
	s.touch()
	s.mu.Unlock()

	resp, err := caller.SendWebCallInput(ctx, callID, activity)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}

	s.fsmState = resp.FSMState
	s.turns = append(s.turns, Turn{
		Speaker:  aira.SpeakerAira,
		Text:     resp.AiraResponse,
		FSMState: resp.FSMState,
		AudioURL: caller.ResolveAudio(resp.AudioURL),
		At:       time.Now(),
	})
	if resp.IsFinal {
		s.phase = PhaseEnded
	}
	return nil
}

// End closes the backend session and moves to ended. A backend 404 means the
// call is already gone there, so the local session still ends.
func (s *Session) End(ctx context.Context, caller Caller) error {
	s.mu.Lock()
	if s.phase != PhaseActive && s.phase != PhaseConnecting {
		s.mu.Unlock()
		return ErrNotActive
	}
	if s.inflight {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inflight = true
	callID := s.callID
	s.touch()
	s.mu.Unlock()

	_, err := caller.EndWebCall(ctx, callID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = false
	s.phase = PhaseEnded
	if err != nil && !aira.IsNotFound(err) {
		s.lastError = err.Error()
		return err
	}
	return nil
}

// Reset returns ended -> idle, clearing the call identifiers, FSM label,
// counters, and transcript.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEnded {
		return ErrNotEnded
	}
	s.phase = PhaseIdle
	s.callID = ""
	s.sessionID = ""
	s.fsmState = ""
	s.turns = nil
	s.lastError = ""
	s.touch()
	return nil
}

// touch refreshes the idle timer. Callers must hold s.mu.
func (s *Session) touch() {
	s.lastUsed = time.Now()
}

// idleSince returns how long the session has been untouched.
func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed)
}
