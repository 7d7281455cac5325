package grantview

import (
	"encoding/json"
	"fmt"
)

// Decision is the backend's verdict on a proposal.
type Decision string

// Decision constants.
const (
	DecisionAccept              Decision = "ACCEPT"
	DecisionReject              Decision = "REJECT"
	DecisionRevise              Decision = "REVISE"
	DecisionConditionallyAccept Decision = "CONDITIONALLY ACCEPT"
)

// Decisions returns every valid decision.
func Decisions() []Decision {
	return []Decision{
		DecisionAccept,
		DecisionReject,
		DecisionRevise,
		DecisionConditionallyAccept,
	}
}

// Valid reports whether d is one of the known decisions.
func (d Decision) Valid() bool {
	switch d {
	case DecisionAccept, DecisionReject, DecisionRevise, DecisionConditionallyAccept:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the known set so that a decoded
// Evaluation always carries a valid decision.
func (d *Decision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Decision(s).Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDecision, s)
	}
	*d = Decision(s)
	return nil
}

// Severity ranks an Issue. It orders presentation only.
type Severity string

// Severity constants.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s == SeverityHigh || s == SeverityMedium || s == SeverityLow
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLevel(data, "severity")
	if err != nil {
		return err
	}
	*s = Severity(v)
	return nil
}

// Priority ranks a Recommendation. It orders presentation only.
type Priority string

// Priority constants.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLevel(data, "priority")
	if err != nil {
		return err
	}
	*p = Priority(v)
	return nil
}

func unmarshalLevel(data []byte, kind string) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	switch s {
	case "high", "medium", "low":
		return s, nil
	}
	return "", fmt.Errorf("unknown %s %q", kind, s)
}

// FlagType classifies a BudgetFlag.
type FlagType string

// FlagType constants.
const (
	FlagWarning FlagType = "warning"
	FlagError   FlagType = "error"
	FlagInfo    FlagType = "info"
)

// Valid reports whether f is a known flag type.
func (f FlagType) Valid() bool {
	return f == FlagWarning || f == FlagError || f == FlagInfo
}

func (f *FlagType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !FlagType(s).Valid() {
		return fmt.Errorf("unknown flag type %q", s)
	}
	*f = FlagType(s)
	return nil
}
