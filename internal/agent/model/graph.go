package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Intent is the closed classification of an utterance.
type Intent string

const (
	IntentUnset         Intent = ""
	IntentProductAssist Intent = "product_assist"
	IntentOrderHelp     Intent = "order_help"
	IntentOther         Intent = "other"
)

// Valid reports whether i is one of the routable intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentProductAssist, IntentOrderHelp, IntentOther:
		return true
	default:
		return false
	}
}

// MarshalJSON renders the unset intent as null.
func (i Intent) MarshalJSON() ([]byte, error) {
	if i == IntentUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(i))
}

func (i *Intent) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*i = IntentUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*i = Intent(s)
	return nil
}

var (
	ErrIntentAlreadySet   = errors.New("intent already set")
	ErrInvalidIntent      = errors.New("invalid intent")
	ErrDecisionAlreadySet = errors.New("policy decision already set")
	ErrDecisionNotAllowed = errors.New("policy decision is only valid for order_help")
	ErrMessageAlreadySet  = errors.New("final message already set")
	ErrIntentMissing      = errors.New("intent not set")
	ErrDecisionMissing    = errors.New("policy decision missing for order_help")
	ErrMessageMissing     = errors.New("final message is empty")
)

// Request is the pipeline input. Now is the reference time for the
// cancellation window and is never read from the wall clock inside the
// pipeline.
type Request struct {
	RequestID string    `json:"request_id"`
	UserInput string    `json:"user_input"`
	Now       time.Time `json:"now"`
}

// State is the request-scoped record passed between stages. Stages never
// mutate a State; they return a Delta that Merge folds into a new value.
// The serialised form is the trace returned to callers.
type State struct {
	UserInput      string     `json:"user_input"`
	Intent         Intent     `json:"intent"`
	ToolsCalled    []string   `json:"tools_called"`
	Evidence       []Evidence `json:"evidence"`
	PolicyDecision *Decision  `json:"policy_decision"`
	FinalMessage   string     `json:"final_message"`

	Now time.Time `json:"-"`
}

// NewState builds the initial state for a request.
func NewState(req Request) State {
	return State{
		UserInput:   req.UserInput,
		ToolsCalled: []string{},
		Evidence:    []Evidence{},
		Now:         req.Now.UTC(),
	}
}

// Delta is the output of a single stage.
type Delta struct {
	Intent         Intent
	ToolsCalled    []string
	Evidence       []Evidence
	PolicyDecision *Decision
	FinalMessage   string
}

// Merge returns a new State with d applied. Set-once fields may not be
// overwritten and tools/evidence are append-only.
func (s State) Merge(d Delta) (State, error) {
	out := s.clone()

	if d.Intent != IntentUnset {
		if s.Intent != IntentUnset {
			return s, fmt.Errorf("%w: %s", ErrIntentAlreadySet, s.Intent)
		}
		if !d.Intent.Valid() {
			return s, fmt.Errorf("%w: %q", ErrInvalidIntent, d.Intent)
		}
		out.Intent = d.Intent
	}

	out.ToolsCalled = append(out.ToolsCalled, d.ToolsCalled...)
	for _, e := range d.Evidence {
		out.Evidence = append(out.Evidence, e.Clone())
	}

	if d.PolicyDecision != nil {
		if s.PolicyDecision != nil {
			return s, ErrDecisionAlreadySet
		}
		if out.Intent != IntentOrderHelp {
			return s, fmt.Errorf("%w (intent %s)", ErrDecisionNotAllowed, out.Intent)
		}
		dec := *d.PolicyDecision
		out.PolicyDecision = &dec
	}

	if d.FinalMessage != "" {
		if s.FinalMessage != "" {
			return s, ErrMessageAlreadySet
		}
		out.FinalMessage = d.FinalMessage
	}

	return out, nil
}

// Validate checks the invariants of a completed pipeline run.
func (s State) Validate() error {
	if !s.Intent.Valid() {
		return ErrIntentMissing
	}
	if (s.Intent == IntentOrderHelp) != (s.PolicyDecision != nil) {
		if s.PolicyDecision == nil {
			return ErrDecisionMissing
		}
		return ErrDecisionNotAllowed
	}
	if s.FinalMessage == "" {
		return ErrMessageMissing
	}
	return nil
}

func (s State) clone() State {
	out := s
	out.ToolsCalled = make([]string, len(s.ToolsCalled), len(s.ToolsCalled)+4)
	copy(out.ToolsCalled, s.ToolsCalled)
	out.Evidence = make([]Evidence, 0, len(s.Evidence)+2)
	for _, e := range s.Evidence {
		out.Evidence = append(out.Evidence, e.Clone())
	}
	if s.PolicyDecision != nil {
		dec := *s.PolicyDecision
		out.PolicyDecision = &dec
	}
	return out
}

// AppState stores per-invocation bookkeeping for the eino graph.
// It is registered via compose.WithGenLocalState and only touched inside
// state handlers or compose.ProcessState, which eino serialises.
// Pipeline semantics never depend on it; it feeds logging only.
type AppState struct {
	RequestID string
	Stages    []string
}
