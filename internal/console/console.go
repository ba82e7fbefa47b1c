// ABOUTME: Operator console for the Aira voice-agent backend
// ABOUTME: Wires view handlers, the live monitor, and simulator sessions onto a mux

package console

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/2389/aira-console/internal/aira"
	"github.com/2389/aira-console/internal/monitor"
	"github.com/2389/aira-console/internal/simulator"
)

const (
	// SimSessionCookieName keys the operator's simulator session.
	SimSessionCookieName = "aira_sim_session"

	// detailCacheSize bounds the call detail cache.
	detailCacheSize = 256

	// detailCacheTTL is how long a finished call's detail stays cached.
	detailCacheTTL = 5 * time.Minute
)

// Backend is the slice of the Aira API the console consumes.
type Backend interface {
	// Review and qualification
	ListCalls(ctx context.Context, page, pageSize int, filters aira.CallFilters) (*aira.CallList, error)
	GetCall(ctx context.Context, callID string) (*aira.Call, error)
	GetQualification(ctx context.Context, callID string) (*aira.QualificationSnapshot, error)

	// Prompt training
	ListPrompts(ctx context.Context, filters aira.PromptFilters) ([]aira.Prompt, error)
	CreatePrompt(ctx context.Context, req aira.CreatePromptRequest) (*aira.Prompt, error)
	UpdatePrompt(ctx context.Context, promptID string, req aira.UpdatePromptRequest) (*aira.Prompt, error)
	PublishPrompt(ctx context.Context, promptID string) error
	MarkPromptWeak(ctx context.Context, promptID string, req aira.MarkWeakRequest) error

	// Policy
	GetPolicy(ctx context.Context) (*aira.PolicyPair, error)
	SavePolicyDraft(ctx context.Context, draft aira.Policy) (*aira.Policy, error)
	PublishPolicy(ctx context.Context) (*aira.PolicyPair, error)

	// FSM reference
	ListFSMStates(ctx context.Context) ([]aira.FSMStateInfo, error)
	GetFSMState(ctx context.Context, state string) (*aira.FSMStateInfo, error)

	// Simulator
	StartWebCall(ctx context.Context, req aira.StartWebCallRequest) (*aira.StartWebCallResponse, error)
	SendWebCallInput(ctx context.Context, callID, userInput string) (*aira.WebCallInputResponse, error)
	EndWebCall(ctx context.Context, callID string) (*aira.EndWebCallResponse, error)
	ResolveAudio(ref string) string

	// Probes
	Health(ctx context.Context) (*aira.HealthStatus, error)
}

// Config carries the console's dependencies.
type Config struct {
	Backend  Backend
	Monitor  *monitor.Monitor
	Sessions *simulator.Hub

	// PageSize is the call review page size.
	PageSize int

	Logger *slog.Logger
}

// Console handles all operator-facing routes.
type Console struct {
	backend  Backend
	monitor  *monitor.Monitor
	sessions *simulator.Hub
	detail   *expirable.LRU[string, *aira.Call]
	pageSize int
	logger   *slog.Logger
}

// New creates a Console.
func New(cfg Config) *Console {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Console{
		backend:  cfg.Backend,
		monitor:  cfg.Monitor,
		sessions: cfg.Sessions,
		detail:   expirable.NewLRU[string, *aira.Call](detailCacheSize, nil, detailCacheTTL),
		pageSize: pageSize,
		logger:   logger.With("component", "console"),
	}
}

// Close releases console resources.
func (c *Console) Close() {
	if c.sessions != nil {
		c.sessions.Close()
	}
}

// getCallDetail fetches a call through the detail cache shared by the review
// panel and the qualification viewer. Active calls are still changing, so
// only finished calls are cached.
func (c *Console) getCallDetail(ctx context.Context, callID string) (*aira.Call, error) {
	if call, ok := c.detail.Get(callID); ok {
		return call, nil
	}

	call, err := c.backend.GetCall(ctx, callID)
	if err != nil {
		return nil, err
	}
	if call.Status != aira.CallStatusActive {
		c.detail.Add(callID, call)
	}
	return call, nil
}

// RegisterRoutes registers all console routes on the given mux.
func (c *Console) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET /console", c.handleIndex)
	mux.HandleFunc("GET /console/{$}", c.handleIndex)

	// Live call monitor
	mux.HandleFunc("GET /console/live", c.handleLivePage)
	mux.HandleFunc("GET /console/live/stream", c.handleLiveStream)
	mux.HandleFunc("POST /console/live/refresh", c.handleLiveRefresh)

	// Call review
	mux.HandleFunc("GET /console/calls", c.handleCallsPage)
	mux.HandleFunc("GET /console/calls/{id}/panel", c.handleCallPanel)
	mux.HandleFunc("GET /console/calls/panel/close", c.handleCallPanelClose)

	// Prompt training
	mux.HandleFunc("GET /console/prompts", c.handlePromptsPage)
	mux.HandleFunc("POST /console/prompts/draft", c.handlePromptDraft)
	mux.HandleFunc("POST /console/prompts/{id}/publish", c.handlePromptPublish)
	mux.HandleFunc("POST /console/prompts/{id}/weak", c.handlePromptWeak)

	// Call simulator
	mux.HandleFunc("GET /console/simulator", c.handleSimulatorPage)
	mux.HandleFunc("POST /console/simulator/start", c.handleSimulatorStart)
	mux.HandleFunc("POST /console/simulator/input", c.handleSimulatorInput)
	mux.HandleFunc("POST /console/simulator/end", c.handleSimulatorEnd)
	mux.HandleFunc("POST /console/simulator/reset", c.handleSimulatorReset)

	// Qualification snapshots
	mux.HandleFunc("GET /console/qualification", c.handleQualificationPage)

	// Policy
	mux.HandleFunc("GET /console/policy", c.handlePolicyPage)
	mux.HandleFunc("POST /console/policy/draft", c.handlePolicyDraft)
	mux.HandleFunc("POST /console/policy/publish", c.handlePolicyPublish)

	// FSM reference
	mux.HandleFunc("GET /console/fsm", c.handleFSMPage)

	// Probes
	mux.HandleFunc("GET /healthz", c.handleHealthz)
	mux.HandleFunc("GET /readyz", c.handleReadyz)

	// Static assets
	mux.Handle("GET /static/", c.staticHandler())

	c.logger.Info("console routes registered")
}

// handleIndex redirects to the live monitor, the console's home view.
func (c *Console) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/console/live", http.StatusSeeOther)
}

// staticHandler serves embedded static assets with a short cache lifetime.
func (c *Console) staticHandler() http.Handler {
	fileServer := http.FileServerFS(staticFS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(w, r)
	})
}

// isHTMX reports whether the request came from an htmx-driven element.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// handleHealthz returns 200 OK if the console process is alive.
func (c *Console) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReadyz returns 200 OK once the backend answers its health probe.
func (c *Console) handleReadyz(w http.ResponseWriter, r *http.Request) {
	health, err := c.backend.Health(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("backend unreachable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready (backend " + health.Status + ")"))
}
