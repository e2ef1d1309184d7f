package dispatch

// Control is an observer's decision about a routing attempt in progress.
type Control int

const (
	// Cancel stops the attempt.
	Cancel Control = iota
	// Allow lets the attempt continue.
	Allow
	// Defer parks the attempt until HandleDeferredRoute is called. Only one
	// attempt can be parked at a time.
	Defer
)

// String returns the control name
func (c Control) String() string {
	switch c {
	case Cancel:
		return "cancel"
	case Allow:
		return "allow"
	case Defer:
		return "defer"
	default:
		return "unknown"
	}
}

// Stage is the point of the pipeline a deferred attempt resumes from.
type Stage int

const (
	// AtGeneration resumes by asking whether the action may be generated.
	AtGeneration Stage = iota
	// AtPresentation resumes by asking whether the action may be presented.
	AtPresentation
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case AtGeneration:
		return "generation"
	case AtPresentation:
		return "presentation"
	default:
		return "unknown"
	}
}

// State is the position of an attempt in the routing state machine.
type State int

const (
	Idle State = iota
	ResolvingGenerator
	AwaitingGenerationApproval
	Generating
	AwaitingPresentationApproval
	AwaitingPresentationReadiness
	Presented

	// Terminal failures.
	NoMatch
	GenerationCancelled
	GenerationFailed
	PresentationCancelled

	// Deferred parks the attempt in the deferred slot.
	Deferred
)

var stateNames = map[State]string{
	Idle:                          "idle",
	ResolvingGenerator:            "resolving_generator",
	AwaitingGenerationApproval:    "awaiting_generation_approval",
	Generating:                    "generating",
	AwaitingPresentationApproval:  "awaiting_presentation_approval",
	AwaitingPresentationReadiness: "awaiting_presentation_readiness",
	Presented:                     "presented",
	NoMatch:                       "no_match",
	GenerationCancelled:           "generation_cancelled",
	GenerationFailed:              "generation_failed",
	PresentationCancelled:         "presentation_cancelled",
	Deferred:                      "deferred",
}

// String returns the state name
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition follows s within the
// same run of the pipeline. Deferred counts as terminal: the attempt only
// continues through HandleDeferredRoute.
func (s State) IsTerminal() bool {
	switch s {
	case Presented, NoMatch, GenerationCancelled, GenerationFailed, PresentationCancelled, Deferred:
		return true
	}
	return false
}
