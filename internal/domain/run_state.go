package domain

import "fmt"

// RunState is a step of the reclaim state machine
type RunState string

// Run states
const (
	RunStateNotStarted     RunState = "not_started"
	RunStateValidating     RunState = "validating"
	RunStateShortCircuited RunState = "short_circuited"
	RunStateIterating      RunState = "iterating"
	RunStateGoalMet        RunState = "goal_met"
	RunStateExhausted      RunState = "exhausted"
	RunStateFailed         RunState = "failed"
	RunStateDone           RunState = "done"
)

var runStateTransitions = map[RunState][]RunState{
	RunStateNotStarted:     {RunStateValidating},
	RunStateValidating:     {RunStateShortCircuited, RunStateIterating, RunStateFailed},
	RunStateIterating:      {RunStateGoalMet, RunStateExhausted, RunStateFailed},
	RunStateShortCircuited: {RunStateDone},
	RunStateGoalMet:        {RunStateDone},
	RunStateExhausted:      {RunStateDone},
	RunStateFailed:         {RunStateDone},
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s RunState) CanTransitionTo(next RunState) bool {
	for _, allowed := range runStateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Outcome maps a terminal state to its outcome
func (s RunState) Outcome() Outcome {
	switch s {
	case RunStateShortCircuited:
		return OutcomeAlreadySatisfied
	case RunStateGoalMet:
		return OutcomeGoalMet
	case RunStateExhausted:
		return OutcomeExhausted
	default:
		return OutcomeFailed
	}
}

// RunMachine tracks the state of a single run
type RunMachine struct {
	state   RunState
	history []RunState
}

// NewRunMachine creates a machine in the NotStarted state
func NewRunMachine() *RunMachine {
	return &RunMachine{state: RunStateNotStarted, history: []RunState{RunStateNotStarted}}
}

// State returns the current state
func (m *RunMachine) State() RunState {
	return m.state
}

// History returns every state visited, in order
func (m *RunMachine) History() []RunState {
	out := make([]RunState, len(m.history))
	copy(out, m.history)
	return out
}

// Transition moves to next or returns ErrInvalidStateTransition
func (m *RunMachine) Transition(next RunState) error {
	if !m.state.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, m.state, next)
	}
	m.state = next
	m.history = append(m.history, next)
	return nil
}
