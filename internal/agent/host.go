package agent

import (
	"context"
	"fmt"
	"time"

	"orbitsim/internal/kernel"
)

// Agent is implemented by in-process (trusted) agents: the reference
// behaviors shipped with the kernel. It runs directly in the host process,
// no subprocess, no framing (§9: reference agents are not sandboxed).
type Agent interface {
	Tick(ctx *Context)
}

// DefaultBudget is the per-ship per-tick deadline; exceeding it is a fatal
// per-ship fault (§7), not a suspended/resumed call.
const DefaultBudget = 5 * time.Millisecond

// binding is one ship's agent backing, either in-process or out-of-process.
type binding interface {
	tick(snap kernel.Ship, h kernel.Handle, budget time.Duration) (kernel.Intent, []string, *kernel.FaultKind)
}

// Host drives the per-tick agent dispatch loop: for every live ship, in
// ascending handle order (§4.4, §5), produce that ship's Intent for the
// tick about to be applied.
type Host struct {
	bindings map[uint32]binding
	Budget   time.Duration
}

// NewHost creates an empty dispatch host with the default per-ship budget.
func NewHost() *Host {
	return &Host{bindings: make(map[uint32]binding), Budget: DefaultBudget}
}

// BindInProcess attaches a trusted reference agent to a ship index.
func (h *Host) BindInProcess(shipIndex uint32, a Agent) {
	h.bindings[shipIndex] = inProcessBinding{agent: a}
}

// BindSubprocess attaches an out-of-process guest agent to a ship index.
func (h *Host) BindSubprocess(shipIndex uint32, proc *Subprocess) {
	h.bindings[shipIndex] = &subprocessBinding{proc: proc}
}

// Unbind drops a ship's agent binding, e.g. once its ship is garbage
// collected by the kernel.
func (h *Host) Unbind(shipIndex uint32) { delete(h.bindings, shipIndex) }

// RunTick dispatches every bound ship's agent against its frozen state in
// world, in ascending handle-index order, and returns the intents to apply.
// A per-ship fault (budget exceeded, sandbox violation, load failure) is
// recorded in events and that ship's binding is removed; the match
// continues without it (§7).
func (h *Host) RunTick(w *kernel.World, events *kernel.EventLog) map[uint32]*kernel.Intent {
	intents := make(map[uint32]*kernel.Intent)

	w.Ships.Each(func(hdl kernel.Handle, ship *kernel.Ship) {
		b, ok := h.bindings[hdl.Index]
		if !ok || ship.Faulted {
			return
		}
		in, warnings, fault := b.tick(*ship, hdl, h.Budget)
		for _, warn := range warnings {
			events.Emit(w.TickCount, kernel.EventInvalidIntent, hdl, warn)
		}
		if fault != nil {
			ship.Faulted = true
			delete(h.bindings, hdl.Index)
			events.Emit(w.TickCount, kernel.EventAgentFault, hdl, fault.String())
			return
		}
		intents[hdl.Index] = &in
	})

	return intents
}

// --- in-process binding ---

type inProcessBinding struct{ agent Agent }

func (b inProcessBinding) tick(snap kernel.Ship, h kernel.Handle, budget time.Duration) (out kernel.Intent, warnings []string, fault *kernel.FaultKind) {
	ctx := NewContext(h, snap)
	done := make(chan struct{})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				f := kernel.FaultSandboxViolation
				fault = &f
			}
			close(done)
		}()
		ctx.Tick(b.agent)
	}()

	select {
	case <-done:
		if fault != nil {
			return kernel.Intent{}, nil, fault
		}
		return ctx.Intent(), ctx.Warnings(), nil
	case <-time.After(budget):
		f := kernel.FaultBudgetExceeded
		return kernel.Intent{}, nil, &f
	}
}

// --- subprocess binding ---

type subprocessBinding struct{ proc *Subprocess }

func (b *subprocessBinding) tick(snap kernel.Ship, h kernel.Handle, budget time.Duration) (kernel.Intent, []string, *kernel.FaultKind) {
	cctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	result := make(chan struct {
		in       kernel.Intent
		warnings []string
		fault    *kernel.FaultKind
	}, 1)

	go func() {
		in, warnings, err := b.runWire(snap, h, budget)
		if err != nil {
			f := kernel.FaultSandboxViolation
			result <- struct {
				in       kernel.Intent
				warnings []string
				fault    *kernel.FaultKind
			}{kernel.Intent{}, nil, &f}
			return
		}
		result <- struct {
			in       kernel.Intent
			warnings []string
			fault    *kernel.FaultKind
		}{in, warnings, nil}
	}()

	select {
	case r := <-result:
		return r.in, r.warnings, r.fault
	case <-cctx.Done():
		b.proc.Reconnect()
		f := kernel.FaultBudgetExceeded
		return kernel.Intent{}, nil, &f
	}
}

// runWire drives one ship's tick over the framed wire protocol: send
// BeginTick, service Call/Result round-trips until the guest sends
// MsgEndTick.
func (b *subprocessBinding) runWire(snap kernel.Ship, h kernel.Handle, budget time.Duration) (kernel.Intent, []string, error) {
	conn := b.proc.Conn()

	begin := BeginTick{
		ShipIndex:       h.Index,
		Seed:            snap.Seed,
		Orders:          snap.Orders,
		Class:           int(snap.Data.Class),
		Position:        [2]float64{snap.Position.X, snap.Position.Y},
		Velocity:        [2]float64{snap.Velocity.X, snap.Velocity.Y},
		Heading:         snap.Heading,
		AngularVelocity: snap.AngularVelocity,
		Health:          snap.Health,
		BudgetMillis:    budget.Milliseconds(),
	}
	if err := WriteMessage(conn, MsgBeginTick, begin); err != nil {
		return kernel.Intent{}, nil, err
	}

	wireCtx := NewContext(h, snap)
	var warnings []string

	for {
		msgType, body, err := ReadMessage(conn)
		if err != nil {
			return kernel.Intent{}, nil, err
		}
		switch msgType {
		case MsgEndTick:
			warnings = append(warnings, wireCtx.Warnings()...)
			return wireCtx.Intent(), warnings, nil
		case MsgCall:
			var call Call
			if err := DecodePayload(body, &call); err != nil {
				return kernel.Intent{}, nil, err
			}
			res := dispatchCall(wireCtx, call)
			if err := WriteMessage(conn, MsgResult, res); err != nil {
				return kernel.Intent{}, nil, err
			}
		default:
			return kernel.Intent{}, nil, fmt.Errorf("agent: unexpected message type %d mid-tick", msgType)
		}
	}
}
