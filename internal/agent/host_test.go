package agent

import (
	"sync"
	"testing"
	"time"

	"orbitsim/internal/kernel"
)

type fakeAgent struct {
	fn func(ctx *Context)
}

func (f fakeAgent) Tick(ctx *Context) { f.fn(ctx) }

// TestHostRunTickDispatchesInAscendingHandleOrder checks every bound
// ship's agent runs in ascending handle-index order (§4.4, §5).
func TestHostRunTickDispatchesInAscendingHandleOrder(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	var handles []kernel.Handle
	for i := 0; i < 4; i++ {
		handles = append(handles, w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, 1, 0)))
	}

	host := NewHost()
	var mu sync.Mutex
	var order []uint32
	for _, h := range handles {
		idx := h.Index
		host.BindInProcess(idx, fakeAgent{fn: func(ctx *Context) {
			mu.Lock()
			order = append(order, idx)
			mu.Unlock()
		}})
	}

	host.RunTick(w, w.Events)

	for i := 1; i < len(order); i++ {
		if order[i] <= order[i-1] {
			t.Fatalf("dispatch order not ascending: %v", order)
		}
	}
}

// TestHostRunTickProducesIntent checks a bound agent's write calls are
// returned as that ship's intent.
func TestHostRunTickProducesIntent(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	h := w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, 1, 0))

	host := NewHost()
	host.BindInProcess(h.Index, fakeAgent{fn: func(ctx *Context) {
		ctx.Accelerate(kernel.Vec2{X: 1, Y: 0})
	}})

	intents := host.RunTick(w, w.Events)
	in, ok := intents[h.Index]
	if !ok || !in.HasAccel {
		t.Fatalf("expected an accelerate intent for ship %d, got %+v", h.Index, intents)
	}
}

// TestHostRunTickBudgetExceededFaultsShip checks an agent that overruns
// its per-tick budget is faulted and unbound rather than blocking the
// tick loop (§7).
func TestHostRunTickBudgetExceededFaultsShip(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	h := w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, 1, 0))

	host := NewHost()
	host.Budget = 2 * time.Millisecond
	host.BindInProcess(h.Index, fakeAgent{fn: func(ctx *Context) {
		time.Sleep(50 * time.Millisecond)
	}})

	host.RunTick(w, w.Events)

	ship := w.Ships.GetPtr(h)
	if !ship.Faulted {
		t.Error("ship should be marked Faulted after a budget overrun")
	}
	if _, stillBound := host.bindings[h.Index]; stillBound {
		t.Error("a faulted ship's binding should be removed")
	}
}

// TestHostRunTickSandboxViolationFaultsShip checks a panicking agent is
// recovered and faulted as a sandbox violation rather than crashing the
// host process.
func TestHostRunTickSandboxViolationFaultsShip(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	h := w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, 1, 0))

	host := NewHost()
	host.BindInProcess(h.Index, fakeAgent{fn: func(ctx *Context) {
		panic("guest misbehavior")
	}})

	host.RunTick(w, w.Events)

	ship := w.Ships.GetPtr(h)
	if !ship.Faulted {
		t.Error("ship should be marked Faulted after the agent panicked")
	}
}

// TestHostRunTickSkipsAlreadyFaultedShips checks a ship marked Faulted
// from a previous tick is not dispatched again.
func TestHostRunTickSkipsAlreadyFaultedShips(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	h := w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, 1, 0))
	w.Ships.GetPtr(h).Faulted = true

	called := false
	host := NewHost()
	host.BindInProcess(h.Index, fakeAgent{fn: func(ctx *Context) { called = true }})

	host.RunTick(w, w.Events)
	if called {
		t.Error("an already-faulted ship's agent should not be dispatched")
	}
}

// TestHostUnbindRemovesBinding checks Unbind drops a ship's agent so a
// subsequent RunTick no longer dispatches it.
func TestHostUnbindRemovesBinding(t *testing.T) {
	w := kernel.NewWorld(kernel.DefaultWorldSize, 1)
	h := w.AddShip(kernel.NewShip(kernel.ClassFighter, 0, kernel.Vec2{}, 0, 1, 0))

	called := false
	host := NewHost()
	host.BindInProcess(h.Index, fakeAgent{fn: func(ctx *Context) { called = true }})
	host.Unbind(h.Index)

	host.RunTick(w, w.Events)
	if called {
		t.Error("an unbound ship's agent should not be dispatched")
	}
}
