package kernel

// Handle is a stable, opaque reference to an entity in an arena. It is only
// valid for the generation it was issued in; once an entity is freed and its
// slot reused, old handles no longer resolve (I1).
type Handle struct {
	Index      uint32
	Generation uint32
}

// Valid reports whether h refers to any slot at all (the zero Handle is
// reserved as "no handle").
func (h Handle) Valid() bool { return h.Generation != 0 }

// slot is one arena cell: either live (holding a T) or free.
type slot[T any] struct {
	generation uint32
	live       bool
	value      T
}

// Arena is a generational slot table. Handles issued by Insert remain valid
// until the corresponding Remove, even if the backing slice grows or other
// slots are recycled.
type Arena[T any] struct {
	slots    []slot[T]
	freeList []uint32
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores value and returns a handle to it.
func (a *Arena[T]) Insert(value T) Handle {
	var idx uint32
	if n := len(a.freeList); n > 0 {
		idx = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.slots[idx].generation++
		a.slots[idx].live = true
		a.slots[idx].value = value
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{generation: 1, live: true, value: value})
	}
	return Handle{Index: idx, Generation: a.slots[idx].generation}
}

// Get returns the value for h and whether h is still valid.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	var zero T
	if int(h.Index) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[h.Index]
	if !s.live || s.generation != h.Generation {
		return zero, false
	}
	return s.value, true
}

// GetPtr returns a pointer to the stored value for in-place mutation, or nil
// if h is stale.
func (a *Arena[T]) GetPtr(h Handle) *T {
	if int(h.Index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.Index]
	if !s.live || s.generation != h.Generation {
		return nil
	}
	return &s.value
}

// Remove frees h's slot, bumping its generation so stale handles fail Get.
// Reports whether h was live.
func (a *Arena[T]) Remove(h Handle) bool {
	if int(h.Index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.Index]
	if !s.live || s.generation != h.Generation {
		return false
	}
	s.live = false
	var zero T
	s.value = zero
	a.freeList = append(a.freeList, h.Index)
	return true
}

// Each calls fn for every live entry in ascending handle (index) order,
// matching the agent host's required dispatch order (§4.4/§5).
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			fn(Handle{Index: uint32(i), Generation: s.generation}, &s.value)
		}
	}
}

// Len returns the number of live entries.
func (a *Arena[T]) Len() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n++
		}
	}
	return n
}

// Handles returns all live handles in ascending order.
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, len(a.slots))
	for i := range a.slots {
		if a.slots[i].live {
			out = append(out, Handle{Index: uint32(i), Generation: a.slots[i].generation})
		}
	}
	return out
}
