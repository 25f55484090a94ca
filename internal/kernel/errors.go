package kernel

import "errors"

// Error kinds per §7.
var (
	// ErrUnknownScenario is fatal to the match; surfaced to the caller.
	ErrUnknownScenario = errors.New("kernel: unknown scenario")

	// ErrAgentLoadFailed marks a ship's agent as inert (no intents ever
	// produced) rather than aborting the match.
	ErrAgentLoadFailed = errors.New("kernel: agent compile/load failure")

	// ErrAgentFault is recorded per-ship on a runtime fault (budget
	// exceeded, sandbox violation, malformed argument); only that ship is
	// destroyed, the match continues.
	ErrAgentFault = errors.New("kernel: agent runtime fault")

	// ErrInvalidIntent covers a clamped/ignored intent (bad gun index,
	// width <= 0, ...); never fatal, recorded as a warning event.
	ErrInvalidIntent = errors.New("kernel: invalid intent")

	// ErrPoisoned is raised once by the panic-recovery hook on an internal
	// invariant violation; all subsequent ticks become no-ops.
	ErrPoisoned = errors.New("kernel: internal invariant violation, simulation poisoned")
)

// FaultKind classifies a per-ship agent fault for the event stream.
type FaultKind int

const (
	FaultBudgetExceeded FaultKind = iota
	FaultSandboxViolation
	FaultMalformedArgument
	FaultLoadFailure
)

func (k FaultKind) String() string {
	switch k {
	case FaultBudgetExceeded:
		return "budget_exceeded"
	case FaultSandboxViolation:
		return "sandbox_violation"
	case FaultMalformedArgument:
		return "malformed_argument"
	case FaultLoadFailure:
		return "load_failure"
	default:
		return "unknown_fault"
	}
}
