// ABOUTME: In-memory fake of the Aira backend API for local console development
// ABOUTME: Usage: fake-aira [-addr localhost:8000] [-history 45]

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/aira-console/internal/aira"
)

func main() {
	addr := flag.String("addr", "localhost:8000", "listen address")
	history := flag.Int("history", 45, "number of seeded historical calls")
	flag.Parse()

	if err := run(*addr, *history); err != nil {
		log.Fatal(err)
	}
}

func run(addr string, history int) error {
	b := newBackend(history)
	mux := http.NewServeMux()
	b.routes(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "fake-aira serving %d calls on http://%s\n", history, addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// script walks the happy path of a simulated call. Each detected_activity
// input advances one step; reaching closing ends the call.
var script = []struct {
	State string
	Reply string
}{
	{"greeting", "Hello! This is Aira calling from TechFlow Solutions. Do you have a quick moment to chat?"},
	{"qualification", "Great. Could you tell me a bit about your company's industry and team size?"},
	{"objection_handling", "That makes sense. Plenty of teams felt the same way before they saw the workflow in action."},
	{"demo_offer", "Based on what you've shared, a short demo could be a good fit. Would you be open to one this week?"},
	{"confirmation", "Excellent. I'll send over a calendar invite with the details."},
	{"closing", "Thanks so much for your time today. Have a great day!"},
}

var openings = map[string]string{
	aira.LanguageEnglish: script[0].Reply,
	aira.LanguageSpanish: "¡Hola! Soy Aira de TechFlow Solutions. ¿Tiene un momento para hablar?",
}

// backend is the whole fake: one mutex around a mutable in-memory dataset.
type backend struct {
	mu       sync.Mutex
	calls    []*aira.Call // newest first
	prompts  []aira.Prompt
	policy   aira.PolicyPair
	sessions map[string]*webSession
}

// webSession tracks one simulated call in progress.
type webSession struct {
	call    *aira.Call
	step    int // index into script
	strikes int // consecutive silences
}

func newBackend(history int) *backend {
	return &backend{
		calls:    seedCalls(history),
		prompts:  seedPrompts(),
		policy:   aira.PolicyPair{Active: seedPolicy()},
		sessions: make(map[string]*webSession),
	}
}

func (b *backend) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", b.handleHealth)
	mux.HandleFunc("GET /api/stats", b.handleStats)

	mux.HandleFunc("GET /api/calls/live", b.handleLiveCalls)
	mux.HandleFunc("GET /api/calls", b.handleListCalls)
	mux.HandleFunc("GET /api/calls/{id}", b.handleGetCall)
	mux.HandleFunc("GET /api/calls/{id}/qualification", b.handleQualification)

	mux.HandleFunc("GET /api/prompts", b.handleListPrompts)
	mux.HandleFunc("POST /api/prompts", b.handleCreatePrompt)
	mux.HandleFunc("PUT /api/prompts/{id}", b.handleUpdatePrompt)
	mux.HandleFunc("POST /api/prompts/{id}/publish", b.handlePublishPrompt)
	mux.HandleFunc("POST /api/prompts/{id}/mark-weak", b.handleMarkWeak)

	mux.HandleFunc("GET /api/policy", b.handleGetPolicy)
	mux.HandleFunc("PUT /api/policy/draft", b.handleSavePolicyDraft)
	mux.HandleFunc("POST /api/policy/publish", b.handlePublishPolicy)

	mux.HandleFunc("GET /api/fsm/states", b.handleListFSMStates)
	mux.HandleFunc("GET /api/fsm/states/{state}", b.handleGetFSMState)

	mux.HandleFunc("POST /api/webcall/start", b.handleWebCallStart)
	mux.HandleFunc("POST /api/webcall/input", b.handleWebCallInput)
	mux.HandleFunc("POST /api/webcall/end", b.handleWebCallEnd)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail reports an error the way FastAPI does, which is the dialect the
// console's client decodes.
func writeDetail(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, map[string]string{"detail": fmt.Sprintf(format, args...)})
}

func (b *backend) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aira.HealthStatus{Status: "healthy", Timestamp: time.Now().UTC()})
}

func (b *backend) handleStats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := aira.Stats{TotalCalls: len(b.calls)}
	for _, c := range b.calls {
		switch c.Status {
		case aira.CallStatusActive:
			stats.ActiveCalls++
		case aira.CallStatusCompleted:
			stats.CompletedCalls++
		}
		if c.DemoIntent {
			stats.DemoIntents++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (b *backend) handleLiveCalls(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	live := []aira.CallListItem{}
	for _, c := range b.calls {
		if c.Status == aira.CallStatusActive {
			live = append(live, listItem(c))
		}
	}
	writeJSON(w, http.StatusOK, live)
}

func (b *backend) handleListCalls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("page_size"), 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var demoIntent *bool
	if raw := q.Get("demo_intent"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "demo_intent must be a boolean, got %q", raw)
			return
		}
		demoIntent = &v
	}
	dateFrom, err := dateParam(q.Get("date_from"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "date_from must be YYYY-MM-DD")
		return
	}
	dateTo, err := dateParam(q.Get("date_to"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "date_to must be YYYY-MM-DD")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	matched := []aira.CallListItem{}
	for _, c := range b.calls {
		if s := q.Get("status"); s != "" && c.Status != s {
			continue
		}
		if e := q.Get("exit_reason"); e != "" && c.ExitReason != e {
			continue
		}
		if demoIntent != nil && c.DemoIntent != *demoIntent {
			continue
		}
		if !dateFrom.IsZero() && c.StartTime.Before(dateFrom) {
			continue
		}
		if !dateTo.IsZero() && !c.StartTime.Before(dateTo.AddDate(0, 0, 1)) {
			continue
		}
		matched = append(matched, listItem(c))
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, aira.CallList{
		Calls:      matched[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func (b *backend) handleGetCall(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	call := b.findCall(r.PathValue("id"))
	if call == nil {
		writeDetail(w, http.StatusNotFound, "call %s not found", r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, call)
}

func (b *backend) handleQualification(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	call := b.findCall(r.PathValue("id"))
	if call == nil {
		writeDetail(w, http.StatusNotFound, "call %s not found", r.PathValue("id"))
		return
	}
	if len(call.QualificationData) == 0 {
		writeDetail(w, http.StatusNotFound, "no qualification captured for call %s", call.ID)
		return
	}
	writeJSON(w, http.StatusOK, aira.QualificationSnapshot{
		CallID:          call.ID,
		CapturedAnswers: call.QualificationData,
		Objections:      call.Objections,
		DemoIntent:      call.DemoIntent,
		DemoConfirmed:   call.DemoConfirmed,
		Language:        call.Language,
		Timestamp:       call.StartTime.Add(90 * time.Second),
	})
}

func (b *backend) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	b.mu.Lock()
	defer b.mu.Unlock()

	matched := []aira.Prompt{}
	for _, p := range b.prompts {
		if s := q.Get("fsm_state"); s != "" && p.FSMState != s {
			continue
		}
		if l := q.Get("language"); l != "" && p.Language != l {
			continue
		}
		if s := q.Get("status"); s != "" && p.Status != s {
			continue
		}
		matched = append(matched, p)
	}
	writeJSON(w, http.StatusOK, matched)
}

func (b *backend) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req aira.CreatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FSMState == "" || req.Language == "" || req.Text == "" {
		writeDetail(w, http.StatusBadRequest, "fsm_state, language and text are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now().UTC()
	prompt := aira.Prompt{
		ID:        uuid.NewString(),
		FSMState:  req.FSMState,
		Language:  req.Language,
		Text:      req.Text,
		Status:    aira.PromptDraft,
		Version:   b.nextVersion(req.FSMState, req.Language),
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: "console",
		Notes:     req.Notes,
	}
	b.prompts = append(b.prompts, prompt)
	log.Printf("created draft %s (%s/%s v%d)", prompt.ID, prompt.FSMState, prompt.Language, prompt.Version)
	writeJSON(w, http.StatusCreated, prompt)
}

func (b *backend) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	var req aira.UpdatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeDetail(w, http.StatusBadRequest, "text is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.findPrompt(r.PathValue("id"))
	if p == nil {
		writeDetail(w, http.StatusNotFound, "prompt %s not found", r.PathValue("id"))
		return
	}
	if p.Status == aira.PromptActive {
		writeDetail(w, http.StatusBadRequest, "cannot edit an active prompt")
		return
	}
	p.Text = req.Text
	p.Notes = req.Notes
	p.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, *p)
}

func (b *backend) handlePublishPrompt(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.findPrompt(r.PathValue("id"))
	if p == nil {
		writeDetail(w, http.StatusNotFound, "prompt %s not found", r.PathValue("id"))
		return
	}
	if p.Status != aira.PromptDraft {
		writeDetail(w, http.StatusBadRequest, "only draft prompts can be published")
		return
	}

	// Publishing archives the previous active prompt for the same pair.
	for i := range b.prompts {
		other := &b.prompts[i]
		if other.Status == aira.PromptActive && other.FSMState == p.FSMState && other.Language == p.Language {
			other.Status = aira.PromptArchived
			other.UpdatedAt = time.Now().UTC()
		}
	}
	p.Status = aira.PromptActive
	p.UpdatedAt = time.Now().UTC()
	log.Printf("published prompt %s (%s/%s v%d)", p.ID, p.FSMState, p.Language, p.Version)
	writeJSON(w, http.StatusOK, *p)
}

func (b *backend) handleMarkWeak(w http.ResponseWriter, r *http.Request) {
	var req aira.MarkWeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ReplacementText == "" {
		writeDetail(w, http.StatusBadRequest, "replacement_text is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.findPrompt(r.PathValue("id"))
	if p == nil {
		writeDetail(w, http.StatusNotFound, "prompt %s not found", r.PathValue("id"))
		return
	}
	if p.Status == aira.PromptWeak {
		writeDetail(w, http.StatusBadRequest, "prompt is already marked weak")
		return
	}

	now := time.Now().UTC()
	p.Status = aira.PromptWeak
	p.UpdatedAt = now
	replacement := aira.Prompt{
		ID:        uuid.NewString(),
		FSMState:  p.FSMState,
		Language:  p.Language,
		Text:      req.ReplacementText,
		Status:    aira.PromptDraft,
		Version:   b.nextVersion(p.FSMState, p.Language),
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: "console",
		Notes:     req.Notes,
	}
	b.prompts = append(b.prompts, replacement)
	log.Printf("marked %s weak, replacement draft %s", p.ID, replacement.ID)
	writeJSON(w, http.StatusOK, map[string]string{"weak_id": p.ID, "replacement_id": replacement.ID})
}

func (b *backend) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.policy)
}

func (b *backend) handleSavePolicyDraft(w http.ResponseWriter, r *http.Request) {
	var draft aira.Policy
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hours := draft.CallingHours
	if hours.StartHour < 0 || hours.EndHour > 23 || hours.StartHour >= hours.EndHour {
		writeDetail(w, http.StatusBadRequest, "calling hours must satisfy 0 <= start < end <= 23")
		return
	}
	draft.UpdatedAt = time.Now().UTC()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.policy.Draft = &draft
	log.Printf("saved policy draft")
	writeJSON(w, http.StatusOK, draft)
}

func (b *backend) handlePublishPolicy(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.policy.Draft == nil {
		writeDetail(w, http.StatusBadRequest, "no draft policy to publish")
		return
	}
	b.policy.Active = *b.policy.Draft
	b.policy.Active.UpdatedAt = time.Now().UTC()
	b.policy.Draft = nil
	log.Printf("published policy")
	writeJSON(w, http.StatusOK, b.policy)
}

func (b *backend) handleListFSMStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fsmCatalog)
}

func (b *backend) handleGetFSMState(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("state")
	for _, s := range fsmCatalog {
		if s.State == name {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "unknown FSM state %s", name)
}

func (b *backend) handleWebCallStart(w http.ResponseWriter, r *http.Request) {
	var req aira.StartWebCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = aira.LanguageEnglish
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now().UTC()
	opening, ok := openings[req.Language]
	if !ok {
		opening = openings[aira.LanguageEnglish]
	}
	call := &aira.Call{
		ID:                uuid.NewString(),
		SessionID:         uuid.NewString(),
		Status:            aira.CallStatusActive,
		FSMState:          script[0].State,
		Language:          req.Language,
		TestMode:          req.TestMode,
		StartTime:         now,
		QualificationData: map[string]interface{}{},
	}
	call.Turns = append(call.Turns, aira.CallTurn{
		ID:        call.ID + "-t0",
		Timestamp: now,
		Speaker:   aira.SpeakerAira,
		Text:      opening,
		FSMState:  call.FSMState,
	})
	b.calls = append([]*aira.Call{call}, b.calls...)
	b.sessions[call.ID] = &webSession{call: call}
	log.Printf("webcall %s started (%s)", call.ID, req.Language)

	writeJSON(w, http.StatusOK, aira.StartWebCallResponse{
		CallID:         call.ID,
		SessionID:      call.SessionID,
		InitialMessage: opening,
		FSMState:       call.FSMState,
	})
}

func (b *backend) handleWebCallInput(w http.ResponseWriter, r *http.Request) {
	var req aira.WebCallInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid := false
	for _, a := range aira.Activities {
		if req.UserInput == a {
			valid = true
			break
		}
	}
	if !valid {
		writeDetail(w, http.StatusBadRequest, "unknown user_input token %q", req.UserInput)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[req.CallID]
	if !ok {
		writeDetail(w, http.StatusBadRequest, "call %s is not active", req.CallID)
		return
	}
	writeJSON(w, http.StatusOK, b.advance(s, req.UserInput))
}

func (b *backend) handleWebCallEnd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CallID string `json:"call_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[req.CallID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "no active call with id %s", req.CallID)
		return
	}
	b.finish(s, aira.ExitCompleted)
	log.Printf("webcall %s ended by operator", req.CallID)
	writeJSON(w, http.StatusOK, aira.EndWebCallResponse{Message: "call ended", CallID: req.CallID})
}

// advance applies one user input to a session and produces the agent reply.
// The caller holds the lock.
func (b *backend) advance(s *webSession, input string) *aira.WebCallInputResponse {
	now := time.Now().UTC()
	call := s.call
	call.Turns = append(call.Turns, aira.CallTurn{
		ID:        fmt.Sprintf("%s-t%d", call.ID, len(call.Turns)),
		Timestamp: now,
		Speaker:   aira.SpeakerUser,
		Text:      input,
		FSMState:  call.FSMState,
	})

	resp := &aira.WebCallInputResponse{CallID: call.ID, FSMState: call.FSMState}
	switch input {
	case aira.ActivityHangup:
		resp.AiraResponse = "Understood. Thanks for your time, goodbye!"
		resp.IsFinal = true
		b.finish(s, aira.ExitUserHangup)
	case aira.ActivityTimeout:
		resp.AiraResponse = "It sounds like now isn't a good time. I'll let you go."
		resp.IsFinal = true
		b.finish(s, aira.ExitTimeout)
	case aira.ActivitySilence:
		s.strikes++
		if s.strikes >= b.policy.Active.Silence.MaxSilenceStrikes {
			resp.AiraResponse = "I seem to have lost you. I'll try again another time, goodbye!"
			resp.IsFinal = true
			b.finish(s, aira.ExitTimeout)
		} else {
			resp.AiraResponse = "Hello? Are you still there?"
		}
	case aira.ActivityDetected:
		s.strikes = 0
		if s.step < len(script)-1 {
			s.step++
		}
		step := script[s.step]
		call.FSMState = step.State
		resp.FSMState = step.State
		resp.AiraResponse = step.Reply
		if step.State == "demo_offer" {
			call.DemoIntent = true
			call.QualificationData["industry"] = "software"
			call.QualificationData["company_size"] = "50-200"
		}
		if step.State == "closing" {
			call.DemoConfirmed = call.DemoIntent
			resp.IsFinal = true
			b.finish(s, aira.ExitCompleted)
		}
	}

	call.Turns = append(call.Turns, aira.CallTurn{
		ID:        fmt.Sprintf("%s-t%d", call.ID, len(call.Turns)),
		Timestamp: now,
		Speaker:   aira.SpeakerAira,
		Text:      resp.AiraResponse,
		FSMState:  resp.FSMState,
	})
	return resp
}

// finish closes a session's call record and drops the session. The caller
// holds the lock.
func (b *backend) finish(s *webSession, exitReason string) {
	now := time.Now().UTC()
	s.call.Status = aira.CallStatusCompleted
	s.call.EndTime = &now
	s.call.ExitReason = exitReason
	delete(b.sessions, s.call.ID)
}

func (b *backend) findCall(id string) *aira.Call {
	for _, c := range b.calls {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (b *backend) findPrompt(id string) *aira.Prompt {
	for i := range b.prompts {
		if b.prompts[i].ID == id {
			return &b.prompts[i]
		}
	}
	return nil
}

func (b *backend) nextVersion(state, language string) int {
	max := 0
	for _, p := range b.prompts {
		if p.FSMState == state && p.Language == language && p.Version > max {
			max = p.Version
		}
	}
	return max + 1
}

func listItem(c *aira.Call) aira.CallListItem {
	return aira.CallListItem{
		ID:            c.ID,
		SessionID:     c.SessionID,
		Status:        c.Status,
		FSMState:      c.FSMState,
		Language:      c.Language,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		ExitReason:    c.ExitReason,
		DemoIntent:    c.DemoIntent,
		DemoConfirmed: c.DemoConfirmed,
		TurnCount:     len(c.Turns),
	}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func dateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

// seedBase anchors the seeded history just before process start so the
// console's relative timestamps look current.
var seedBase = time.Now().UTC().Truncate(time.Minute)

func seedCalls(n int) []*aira.Call {
	calls := make([]*aira.Call, 0, n)
	for i := 0; i < n; i++ {
		calls = append(calls, seedCall(i, n))
	}
	return calls
}

// seedCall derives one deterministic call from its index, newest first. The
// two newest calls are left active so the live monitor has something to show.
func seedCall(i, n int) *aira.Call {
	langs := []string{aira.LanguageEnglish, aira.LanguageEnglish, aira.LanguageSpanish, aira.LanguageFrench, aira.LanguageGerman}
	start := seedBase.Add(-time.Duration(i+1) * 37 * time.Minute)

	call := &aira.Call{
		ID:         fmt.Sprintf("call-%04d", 4200-i),
		SessionID:  fmt.Sprintf("sess-%04d", 4200-i),
		Language:   langs[i%len(langs)],
		StartTime:  start,
		DemoIntent: i%3 == 0,
	}

	if i < 2 {
		call.Status = aira.CallStatusActive
		call.Turns = seedTurns(call.ID, start, 2+i)
		call.FSMState = script[1+i].State
		return call
	}

	steps := 2 + i%4
	call.Turns = seedTurns(call.ID, start, steps)
	call.FSMState = "closing"
	end := start.Add(time.Duration(2+i%6) * time.Minute)
	call.EndTime = &end
	call.DemoConfirmed = i%6 == 0

	switch {
	case i%11 == 5:
		call.Status = aira.CallStatusFailed
		call.ExitReason = aira.ExitError
	case i%7 == 3:
		call.Status = aira.CallStatusTransferred
		call.ExitReason = aira.ExitTransferred
	case i%5 == 4:
		call.Status = aira.CallStatusCompleted
		call.ExitReason = aira.ExitUserHangup
	default:
		call.Status = aira.CallStatusCompleted
		call.ExitReason = aira.ExitCompleted
	}

	if call.Status == aira.CallStatusCompleted && call.DemoIntent {
		sizes := []string{"10-50", "50-200", "200-500"}
		call.QualificationData = map[string]interface{}{
			"industry":     []string{"software", "logistics", "healthcare"}[i%3],
			"company_size": sizes[i%len(sizes)],
			"timeline":     []string{"this quarter", "next quarter", "exploring"}[i%3],
		}
	}
	switch {
	case i%4 == 0:
		call.Objections = []string{"too expensive", "already using a competitor"}
	case i%3 == 0:
		call.Objections = []string{"not the right time"}
	}
	return call
}

// seedTurns walks the first steps entries of the script, one agent and one
// user turn each.
func seedTurns(callID string, start time.Time, steps int) []aira.CallTurn {
	if steps > len(script) {
		steps = len(script)
	}
	turns := make([]aira.CallTurn, 0, steps*2)
	at := start
	for j := 0; j < steps; j++ {
		agent := aira.CallTurn{
			ID:        fmt.Sprintf("%s-t%d", callID, len(turns)),
			Timestamp: at,
			Speaker:   aira.SpeakerAira,
			Text:      script[j].Reply,
			FSMState:  script[j].State,
		}
		if j%2 == 0 {
			agent.AudioURL = fmt.Sprintf("/audio/%s-%d.mp3", callID, j)
		}
		turns = append(turns, agent)
		at = at.Add(14 * time.Second)
		turns = append(turns, aira.CallTurn{
			ID:        fmt.Sprintf("%s-t%d", callID, len(turns)),
			Timestamp: at,
			Speaker:   aira.SpeakerUser,
			Text:      aira.ActivityDetected,
			FSMState:  script[j].State,
		})
		at = at.Add(9 * time.Second)
	}
	return turns
}

func seedPrompts() []aira.Prompt {
	mk := func(id, state, language, status string, version int, text string) aira.Prompt {
		return aira.Prompt{
			ID:        id,
			FSMState:  state,
			Language:  language,
			Text:      text,
			Status:    status,
			Version:   version,
			CreatedAt: seedBase.Add(-45 * 24 * time.Hour),
			UpdatedAt: seedBase.Add(-time.Duration(version) * 24 * time.Hour),
			CreatedBy: "admin",
		}
	}
	return []aira.Prompt{
		mk("prompt-01", "greeting", aira.LanguageEnglish, aira.PromptActive, 4,
			"Hello! This is Aira calling from TechFlow Solutions. Do you have a quick moment to chat?"),
		mk("prompt-02", "greeting", aira.LanguageSpanish, aira.PromptActive, 2,
			"¡Hola! Soy Aira de TechFlow Solutions. ¿Tiene un momento para hablar?"),
		mk("prompt-03", "greeting", aira.LanguageEnglish, aira.PromptArchived, 3,
			"Hi, this is Aira with TechFlow. Got a minute?"),
		mk("prompt-04", "qualification", aira.LanguageEnglish, aira.PromptActive, 6,
			"Could you tell me a bit about your company's industry and team size?"),
		mk("prompt-05", "qualification", aira.LanguageEnglish, aira.PromptDraft, 7,
			"To make this useful: what industry are you in, and roughly how big is the team?"),
		mk("prompt-06", "objection_handling", aira.LanguageEnglish, aira.PromptActive, 2,
			"That makes sense. Plenty of teams felt the same way before they saw the workflow in action."),
		mk("prompt-07", "demo_offer", aira.LanguageEnglish, aira.PromptActive, 3,
			"Based on what you've shared, a short demo could be a good fit. Would you be open to one this week?"),
		mk("prompt-08", "demo_offer", aira.LanguageEnglish, aira.PromptWeak, 2,
			"Do you want a demo?"),
		mk("prompt-09", "closing", aira.LanguageEnglish, aira.PromptActive, 1,
			"Thanks so much for your time today. Have a great day!"),
	}
}

func seedPolicy() aira.Policy {
	return aira.Policy{
		Retry:        aira.RetryRule{MaxAttempts: 3, RetryDelayMinutes: 45},
		CallingHours: aira.CallingHoursRule{StartHour: 9, EndHour: 18, NewLeadOverride: true},
		NumberHealth: aira.NumberHealthRule{ErrorThreshold: 5, QuarantineAfterErrors: 10},
		Silence:      aira.SilenceRule{SilenceTimeoutSeconds: 8, MaxSilenceStrikes: 3},
		UpdatedAt:    seedBase.Add(-10 * 24 * time.Hour),
	}
}

var fsmCatalog = []aira.FSMStateInfo{
	{State: "greeting", Description: "Opens the call and introduces the agent",
		Transitions: []string{"language_selection", "qualification"}},
	{State: "language_selection", Description: "Detects or confirms the caller's language",
		Transitions: []string{"qualification"}},
	{State: "qualification", Description: "Gathers qualification answers from the caller",
		Transitions: []string{"objection_handling", "demo_offer", "closing"}},
	{State: "objection_handling", Description: "Responds to caller objections",
		Transitions: []string{"qualification", "demo_offer", "closing"}},
	{State: "demo_offer", Description: "Offers a product demo to qualified callers",
		Transitions: []string{"confirmation", "objection_handling", "closing"}},
	{State: "confirmation", Description: "Confirms demo scheduling details",
		Transitions: []string{"closing", "transfer"}},
	{State: "closing", Description: "Wraps up the conversation",
		Transitions: []string{}, IsTerminal: true},
	{State: "transfer", Description: "Hands the caller to a human agent",
		Transitions: []string{}, IsTerminal: true},
	{State: "fallback", Description: "Recovers from unrecognized input",
		Transitions: []string{"greeting", "qualification"}},
}
