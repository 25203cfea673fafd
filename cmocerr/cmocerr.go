// Package cmocerr collects the fatal error taxonomy shared by the
// scheduler, interpolation, agent and coupling packages, plus the single
// recoverable case (predictor-corrector non-convergence). Each error
// carries the context its failure has (scheduler, action, attribute and
// index for scheduling and missing-dataitem errors; agent, action or path
// for the others), so a caller aborting the process can print a useful
// diagnostic without guessing.
package cmocerr

import "fmt"

// ConfigurationError reports a malformed coupling definition discovered
// before scheduling: an incompatible redefinition of a dataitem, or a
// missing module library.
type ConfigurationError struct {
	Agent string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: agent=%q: %s", e.Agent, e.Msg)
}

// SchedulingKind enumerates the ways Scheduler.Schedule can fail.
type SchedulingKind int

const (
	UnresolvedInput SchedulingKind = iota
	UnresolvedOutput
	DuplicateProducer
	DuplicateConsumer
	DanglingPort
	CycleDetected
	AlreadyScheduled
)

func (k SchedulingKind) String() string {
	switch k {
	case UnresolvedInput:
		return "UnresolvedInput"
	case UnresolvedOutput:
		return "UnresolvedOutput"
	case DuplicateProducer:
		return "DuplicateProducer"
	case DuplicateConsumer:
		return "DuplicateConsumer"
	case DanglingPort:
		return "DanglingPort"
	case CycleDetected:
		return "CycleDetected"
	case AlreadyScheduled:
		return "AlreadyScheduled"
	default:
		return fmt.Sprintf("SchedulingKind(%d)", int(k))
	}
}

// SchedulingError is raised by Scheduler.Schedule. Attr/Idx are the zero
// value when the failure (CycleDetected) is not port-specific.
type SchedulingError struct {
	Kind      SchedulingKind
	Scheduler string
	Action    string
	Attr      string
	Idx       int
}

func (e *SchedulingError) Error() string {
	if e.Attr == "" {
		return fmt.Sprintf("scheduling error [%s]: scheduler=%q action=%q",
			e.Kind, e.Scheduler, e.Action)
	}
	return fmt.Sprintf("scheduling error [%s]: scheduler=%q action=%q attr=%q idx=%d",
		e.Kind, e.Scheduler, e.Action, e.Attr, e.Idx)
}

// MissingDataItemError is raised when a non-optional port handle resolves
// to registry.HandleAbsent.
type MissingDataItemError struct {
	Scheduler string
	Action    string
	Attr      string
	Idx       int
}

func (e *MissingDataItemError) Error() string {
	return fmt.Sprintf("missing dataitem: scheduler=%q action=%q attr=%q idx=%d",
		e.Scheduler, e.Action, e.Attr, e.Idx)
}

// InterpolationKind enumerates the ways an InterpolateAction can fail.
type InterpolationKind int

const (
	MissingOldValue InterpolationKind = iota
	UnsupportedAnchor
	InvalidAlpha
	// LegacyAnchorReserved is the explicit rejection of the t_old = -1
	// anchor. It is kept distinct from UnsupportedAnchor (the catch-all
	// for anchors nobody ever defined) because -1 is a known, reserved
	// legacy convention that must never be implemented silently.
	LegacyAnchorReserved
)

func (k InterpolationKind) String() string {
	switch k {
	case MissingOldValue:
		return "MissingOldValue"
	case UnsupportedAnchor:
		return "UnsupportedAnchor"
	case InvalidAlpha:
		return "InvalidAlpha"
	case LegacyAnchorReserved:
		return "LegacyAnchorReserved"
	default:
		return fmt.Sprintf("InterpolationKind(%d)", int(k))
	}
}

// InterpolationError is raised by the extrapolate_linear kernel or its
// callers.
type InterpolationError struct {
	Kind   InterpolationKind
	Action string
	Attr   string
}

func (e *InterpolationError) Error() string {
	return fmt.Sprintf("interpolation error [%s]: action=%q attr=%q",
		e.Kind, e.Action, e.Attr)
}

// RestartError is raised by Coupling restart-info I/O.
type RestartError struct {
	Path string
	Err  error
}

func (e *RestartError) Error() string {
	return fmt.Sprintf("restart error: path=%q: %v", e.Path, e.Err)
}

func (e *RestartError) Unwrap() error { return e.Err }

// NonConvergence is the one recoverable condition: predictor-corrector
// iteration failed to meet tolerance within the step. It is returned as an
// ordinary value, never treated as a fatal error by callers.
type NonConvergence struct {
	Agent string
	Iter  int
}

func (e *NonConvergence) Error() string {
	return fmt.Sprintf("predictor-corrector non-convergence: agent=%q iter=%d", e.Agent, e.Iter)
}
