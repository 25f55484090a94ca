package kernel

import "testing"

// TestArenaInsertGet verifies a freshly inserted value is retrievable
// through its handle.
func TestArenaInsertGet(t *testing.T) {
	a := NewArena[string]()
	h := a.Insert("hello")
	if !h.Valid() {
		t.Fatal("handle from Insert should be valid")
	}
	got, ok := a.Get(h)
	if !ok || got != "hello" {
		t.Errorf("Get(%v) = (%q, %v), want (\"hello\", true)", h, got, ok)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

// TestArenaRemoveInvalidatesHandle checks that a removed slot's old
// handle no longer resolves, even after the slot is recycled (I1).
func TestArenaRemoveInvalidatesHandle(t *testing.T) {
	a := NewArena[int]()
	h1 := a.Insert(1)

	if ok := a.Remove(h1); !ok {
		t.Fatal("Remove of a live handle should report true")
	}
	if ok := a.Remove(h1); ok {
		t.Error("Remove of an already-freed handle should report false")
	}
	if _, ok := a.Get(h1); ok {
		t.Error("Get of a freed handle should fail")
	}

	// Recycling the slot must bump the generation so h1 still fails.
	h2 := a.Insert(2)
	if h2.Index != h1.Index {
		t.Fatalf("expected slot reuse at index %d, got %d", h1.Index, h2.Index)
	}
	if h2.Generation == h1.Generation {
		t.Error("recycled slot must have a new generation")
	}
	if _, ok := a.Get(h1); ok {
		t.Error("stale handle into a recycled slot must still fail")
	}
	if v, ok := a.Get(h2); !ok || v != 2 {
		t.Errorf("Get(h2) = (%v, %v), want (2, true)", v, ok)
	}
}

// TestArenaGetPtrMutatesInPlace verifies GetPtr lets callers mutate a
// stored value without a separate Insert round-trip.
func TestArenaGetPtrMutatesInPlace(t *testing.T) {
	a := NewArena[int]()
	h := a.Insert(10)
	if p := a.GetPtr(h); p != nil {
		*p = 20
	}
	got, _ := a.Get(h)
	if got != 20 {
		t.Errorf("after GetPtr mutation, Get = %v, want 20", got)
	}

	if p := a.GetPtr(Handle{Index: 99, Generation: 1}); p != nil {
		t.Error("GetPtr of an out-of-range handle should return nil")
	}
}

// TestArenaEachAscendingOrder checks Each visits live entries in
// ascending index order, matching the agent host's required dispatch
// order.
func TestArenaEachAscendingOrder(t *testing.T) {
	a := NewArena[int]()
	for i := 0; i < 5; i++ {
		a.Insert(i)
	}
	// Free slot 2 then reinsert so it's recycled but still sorted by index.
	handles := a.Handles()
	a.Remove(handles[2])
	a.Insert(5)

	var seen []uint32
	a.Each(func(h Handle, v *int) {
		seen = append(seen, h.Index)
	})
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Fatalf("Each did not visit in ascending index order: %v", seen)
		}
	}
}

// TestZeroHandleInvalid checks the zero Handle is reserved as "no handle".
func TestZeroHandleInvalid(t *testing.T) {
	if (Handle{}).Valid() {
		t.Error("zero Handle should be invalid")
	}
}
