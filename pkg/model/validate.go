package model

import (
	"fmt"
	"math"
	"strings"
)

// probabilityTolerance bounds how far a per-activity outgoing probability sum
// may sit from 1.0 before the model is rejected.
const probabilityTolerance = 1e-9

// Severity ranks a violation: errors block construction, warnings are
// attached to the constructed model.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationKind classifies a finding of the routing validation.
type ViolationKind string

const (
	ViolationUnknownSource   ViolationKind = "unknown-source"
	ViolationUnknownTarget   ViolationKind = "unknown-target"
	ViolationMissingOutgoing ViolationKind = "missing-outgoing-transitions"
	ViolationBadSum          ViolationKind = "bad-probability-sum"
	ViolationDuplicateName   ViolationKind = "duplicate-activity-name"
	ViolationDuplicateEdge   ViolationKind = "duplicate-transition"
	ViolationReservedName    ViolationKind = "reserved-sink-name"
	ViolationNoEntryPoint    ViolationKind = "no-entry-point"
)

// Violation is a single finding of the routing validation.
type Violation struct {
	Kind     ViolationKind
	Severity Severity
	Node     string  // offending activity name, where one applies
	Target   string  // offending transition target, for edge findings
	Sum      float64 // accumulated outgoing probability, for bad-probability-sum
	Message  string
}

// ValidationError reports every routing violation in a model at once, so a
// single correction pass can fix them all.
type ValidationError struct {
	Model      string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "model %q is not a valid process network (%d violation(s)):", e.Model, len(e.Violations))
	for _, v := range e.Violations {
		sb.WriteString("\n  - ")
		sb.WriteString(v.Message)
	}
	return sb.String()
}

// validateRouting enforces the network-level invariant: every transition
// endpoint must name a real node, every activity must route its entities
// somewhere with certainty, and activity names must index uniquely. All
// error-severity violations are collected before failing; warnings are
// returned for the caller to attach to the model.
func validateRouting(m *ProcessModel) ([]Violation, error) {
	var errs, warnings []Violation

	// Activity-name set; the allowed transition targets are this set plus the
	// sink literal.
	names := make(map[string]bool, len(m.Activities))
	for _, act := range m.Activities {
		if act.Name == SinkName {
			errs = append(errs, Violation{
				Kind:     ViolationReservedName,
				Severity: Error,
				Node:     act.Name,
				Message:  fmt.Sprintf("activity %q: name collides with the reserved sink literal", SinkName),
			})
		}
		if names[act.Name] {
			errs = append(errs, Violation{
				Kind:     ViolationDuplicateName,
				Severity: Error,
				Node:     act.Name,
				Message:  fmt.Sprintf("activity %q: duplicate name, node indexing needs activity names to be unique", act.Name),
			})
			continue
		}
		names[act.Name] = true
	}

	// Endpoint checks plus the per-source probability accumulation. The sum
	// counts every outgoing transition of a source, valid target or not.
	sums := make(map[string]float64, len(m.Activities))
	edges := make(map[[2]string]bool, len(m.Transitions))
	for _, t := range m.Transitions {
		if !names[t.Source] {
			errs = append(errs, Violation{
				Kind:     ViolationUnknownSource,
				Severity: Error,
				Node:     t.Source,
				Target:   t.Target,
				Message:  fmt.Sprintf("transition %q -> %q: source %q is not an activity", t.Source, t.Target, t.Source),
			})
		}
		if t.Target != SinkName && !names[t.Target] {
			errs = append(errs, Violation{
				Kind:     ViolationUnknownTarget,
				Severity: Error,
				Node:     t.Source,
				Target:   t.Target,
				Message:  fmt.Sprintf("transition %q -> %q: target %q is neither an activity nor %q", t.Source, t.Target, t.Target, SinkName),
			})
		}
		edge := [2]string{t.Source, t.Target}
		if edges[edge] {
			errs = append(errs, Violation{
				Kind:     ViolationDuplicateEdge,
				Severity: Error,
				Node:     t.Source,
				Target:   t.Target,
				Message:  fmt.Sprintf("transition %q -> %q: declared more than once, the routing matrix holds a single probability per node pair", t.Source, t.Target),
			})
		}
		edges[edge] = true
		sums[t.Source] += t.Probability
	}

	// Conservation of probability mass, per activity: a sum of exactly zero
	// means the activity routes nowhere at all; anything else must reach 1.0
	// within tolerance.
	seen := make(map[string]bool, len(m.Activities))
	for _, act := range m.Activities {
		if seen[act.Name] {
			continue
		}
		seen[act.Name] = true

		sum := sums[act.Name]
		switch {
		case sum == 0:
			errs = append(errs, Violation{
				Kind:     ViolationMissingOutgoing,
				Severity: Error,
				Node:     act.Name,
				Message:  fmt.Sprintf("activity %q: no outgoing transitions", act.Name),
			})
		case math.Abs(sum-1.0) > probabilityTolerance:
			errs = append(errs, Violation{
				Kind:     ViolationBadSum,
				Severity: Error,
				Node:     act.Name,
				Sum:      sum,
				Message:  fmt.Sprintf("activity %q: outgoing probabilities sum to %.10g, want 1.0", act.Name, sum),
			})
		}
	}

	// A network nothing can enter is structurally sound but will simulate an
	// empty system; worth flagging, not worth rejecting.
	if len(m.EntryPoints()) == 0 {
		warnings = append(warnings, Violation{
			Kind:     ViolationNoEntryPoint,
			Severity: Warning,
			Message:  "model has no entry point: no activity declares an arrival distribution",
		})
	}

	if len(errs) > 0 {
		return warnings, &ValidationError{Model: m.Name, Violations: errs}
	}
	return warnings, nil
}
