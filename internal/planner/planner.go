// Package planner implements the model-backed features: routine generation,
// project breakdown and the chat assistant. Results are applied to the state
// store through actions; failures are logged and leave state untouched.
package planner

import (
	"sync"
	"time"

	"github.com/julianstephens/harmony/internal/ai"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/state"
)

// Config selects the models used per feature. Empty fields take the defaults.
type Config struct {
	RoutineModel   string
	BreakdownModel string
	ChatModel      string
	// Now is the clock used for today's date and chat timestamps.
	Now func() time.Time
}

type Planner struct {
	store *state.Store
	svc   ai.Service
	cfg   Config

	mu             sync.Mutex
	routineLoading bool
	chatTyping     bool
	breakingDown   map[string]int
}

func New(store *state.Store, svc ai.Service, cfg Config) *Planner {
	if cfg.RoutineModel == "" {
		cfg.RoutineModel = constants.DefaultRoutineModel
	}
	if cfg.BreakdownModel == "" {
		cfg.BreakdownModel = constants.DefaultBreakdownModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = constants.DefaultChatModel
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Planner{
		store:        store,
		svc:          svc,
		cfg:          cfg,
		breakingDown: make(map[string]int),
	}
}

// RoutineLoading reports whether a routine generation is in flight.
func (p *Planner) RoutineLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.routineLoading
}

// ChatTyping reports whether the assistant is composing a reply.
func (p *Planner) ChatTyping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chatTyping
}

// IsBreakingDown reports whether a breakdown of projectID is in flight.
func (p *Planner) IsBreakingDown(projectID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.breakingDown[projectID] > 0
}

func (p *Planner) setFlag(flag *bool, v bool) {
	p.mu.Lock()
	*flag = v
	p.mu.Unlock()
}

// markBreakdown counts overlapping calls so the marker clears only when the
// last one finishes.
func (p *Planner) markBreakdown(projectID string, delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.breakingDown[projectID] += delta
	if p.breakingDown[projectID] <= 0 {
		delete(p.breakingDown, projectID)
	}
}

func (p *Planner) today() string {
	return p.cfg.Now().Format(constants.DateFormat)
}
