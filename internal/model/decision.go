package model

import "time"

// PolicyV1RuleBased is the only decision policy currently in scope.
const PolicyV1RuleBased = "v1_rule_based"

// InitialDecision is the pure rule-based decision before any reflection.
type InitialDecision struct {
	Approved  bool      `json:"approved"`
	Reasons   []string  `json:"reasons"`
	Timestamp time.Time `json:"timestamp"`
}

// ReflectionResult records the contradiction-triggered revision step.
type ReflectionResult struct {
	CritiqueNotes  string   `json:"critique_notes"`            // Semicolon-joined contradiction description
	Revised        bool     `json:"revised"`                   // Whether the backend asked for a revision
	Backend        string   `json:"backend"`                   // Which reasoning backend answered
	RevisedReasons []string `json:"revised_reasons,omitempty"` // Replacement reason set, if revised
}

// ApprovalDecision is the final output of the decision engine. The only
// way it can differ from the initial decision is a revised reflection.
type ApprovalDecision struct {
	Approved        bool              `json:"approved"`
	Policy          string            `json:"decision_policy"`
	Reasons         []string          `json:"reasons"`
	SeveritySummary map[Severity]int  `json:"severity_summary"`
	InitialDecision InitialDecision   `json:"initial_decision"`
	Reflection      *ReflectionResult `json:"reflection,omitempty"`
	DecidedAt       time.Time         `json:"final_decision_timestamp"`
}
