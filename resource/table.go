package resource

import "sync"

// Handle is an opaque reference to a value in a Table. It packs a slot
// index in the low 32 bits and the slot generation in the high 32 bits.
// Handle 0 is reserved and always invalid.
type Handle uint64

// Index returns the slot index encoded in the handle.
func (h Handle) Index() uint32 { return uint32(h) }

// Generation returns the slot generation encoded in the handle.
func (h Handle) Generation() uint32 { return uint32(h >> 32) }

func pack(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

// Event describes a handle lifecycle transition.
type Event struct {
	Handle Handle
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer func(Event)

// Table is a generational handle table. The zero value is not usable;
// construct with NewTable.
type Table[T any] struct {
	entries   []entry[T]
	freeList  []uint32
	observers []Observer
	mu        sync.RWMutex
	closed    bool
}

type entry[T any] struct {
	value T
	gen   uint32
	live  bool
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		entries:  make([]entry[T], 0, 16),
		freeList: make([]uint32, 0, 8),
	}
}

// Subscribe adds an observer for lifecycle events. Observers are invoked
// synchronously from Insert and Remove.
func (t *Table[T]) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// Insert stores a value and returns its handle. Returns 0 if the table
// is closed.
func (t *Table[T]) Insert(value T) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}

	var h Handle
	if n := len(t.freeList); n > 0 {
		idx := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		e := &t.entries[idx-1]
		e.value = value
		e.live = true
		h = pack(idx, e.gen)
	} else {
		// Generation starts at 1 so a handle is never all zero bits.
		t.entries = append(t.entries, entry[T]{value: value, gen: 1, live: true})
		h = pack(uint32(len(t.entries)), 1)
	}
	obs := t.observers
	t.mu.Unlock()

	for _, o := range obs {
		o(Event{Handle: h, Type: EventCreated})
	}
	return h
}

// Get retrieves a value by handle. A handle whose generation does not
// match the slot's current generation resolves to (zero, false).
func (t *Table[T]) Get(h Handle) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.resolve(h)
	if e == nil {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Contains reports whether the handle resolves to a live value.
func (t *Table[T]) Contains(h Handle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolve(h) != nil
}

// Remove drops a value and returns (value, true) if the handle was live.
// The slot's generation is bumped so the handle, and any copy of it,
// becomes permanently stale.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	t.mu.Lock()

	e := t.resolve(h)
	if e == nil {
		t.mu.Unlock()
		var zero T
		return zero, false
	}

	value := e.value
	var zero T
	e.value = zero
	e.live = false
	e.gen++
	t.freeList = append(t.freeList, h.Index())
	obs := t.observers
	t.mu.Unlock()

	for _, o := range obs {
		o(Event{Handle: h, Type: EventDropped})
	}
	return value, true
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for i := range t.entries {
		if t.entries[i].live {
			count++
		}
	}
	return count
}

// Each iterates over all live values. The callback must not mutate the
// table. Iteration stops when the callback returns false.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.entries {
		e := &t.entries[i]
		if e.live {
			if !fn(pack(uint32(i+1), e.gen), e.value) {
				break
			}
		}
	}
}

// Clear drops every live value in one operation. All previously issued
// handles become stale.
func (t *Table[T]) Clear() {
	t.mu.Lock()
	var dropped []Handle
	for i := range t.entries {
		e := &t.entries[i]
		if e.live {
			dropped = append(dropped, pack(uint32(i+1), e.gen))
			var zero T
			e.value = zero
			e.live = false
			e.gen++
			t.freeList = append(t.freeList, uint32(i+1))
		}
	}
	obs := t.observers
	t.mu.Unlock()

	for _, h := range dropped {
		for _, o := range obs {
			o(Event{Handle: h, Type: EventDropped})
		}
	}
}

// Close drops every value and stops accepting inserts. Close is
// idempotent.
func (t *Table[T]) Close() error {
	t.Clear()

	t.mu.Lock()
	t.closed = true
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()
	return nil
}

// resolve returns the live entry for h, or nil. Caller holds t.mu.
func (t *Table[T]) resolve(h Handle) *entry[T] {
	idx := h.Index()
	if idx == 0 || int(idx) > len(t.entries) {
		return nil
	}
	e := &t.entries[idx-1]
	if !e.live || e.gen != h.Generation() {
		return nil
	}
	return e
}
