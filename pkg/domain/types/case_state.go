package types

import "fmt"

// CaseState is a step of the case state machine
type CaseState string

const (
	CaseStateRouting      CaseState = "ROUTING"
	CaseStateChat         CaseState = "CHAT"
	CaseStatePreparing    CaseState = "PREPARING"
	CaseStateSynthesizing CaseState = "SYNTHESIZING"
	CaseStateDone         CaseState = "DONE"
	CaseStateError        CaseState = "ERROR"
)

// AllCaseStates returns all valid case states
func AllCaseStates() []CaseState {
	return []CaseState{
		CaseStateRouting,
		CaseStateChat,
		CaseStatePreparing,
		CaseStateSynthesizing,
		CaseStateDone,
		CaseStateError,
	}
}

// IsValid checks if the case state is valid
func (s CaseState) IsValid() bool {
	switch s {
	case CaseStateRouting,
		CaseStateChat,
		CaseStatePreparing,
		CaseStateSynthesizing,
		CaseStateDone,
		CaseStateError:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s.
// CHAT is terminal: a chat request completes without synthesis.
func (s CaseState) IsTerminal() bool {
	return s == CaseStateDone || s == CaseStateError || s == CaseStateChat
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s CaseState) CanTransitionTo(next CaseState) bool {
	if next == CaseStateError {
		return s != CaseStateError && s != CaseStateDone
	}
	switch s {
	case CaseStateRouting:
		return next == CaseStateChat || next == CaseStatePreparing
	case CaseStatePreparing:
		return next == CaseStateSynthesizing
	case CaseStateSynthesizing:
		return next == CaseStateDone
	default:
		return false
	}
}

// String returns the string representation of the case state
func (s CaseState) String() string {
	return string(s)
}

// ParseCaseState parses a string into a CaseState
func ParseCaseState(s string) (CaseState, error) {
	state := CaseState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid case state: %s", s)
	}
	return state, nil
}
