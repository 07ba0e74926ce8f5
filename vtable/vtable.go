// Package vtable resolves and invokes native functions through the
// host's virtual dispatch tables.
//
// An object's first machine word points at its table; the table is an
// array of function-pointer slots. Slot indices are layout knowledge
// supplied by the gamedata package. The host owns the underlying code,
// so a resolved binding lives for the process's lifetime and is never
// torn down.
package vtable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/schwarper/cs2helper/mem"
)

var (
	// ErrNullObject is returned when resolution is attempted on a zero
	// object pointer. Callers must validate pointers before resolving;
	// hitting this is a programming error, not a transient condition.
	ErrNullObject = errors.New("vtable: null object pointer")

	// ErrNullEntry is returned when the table base or the slot itself
	// holds a zero pointer.
	ErrNullEntry = errors.New("vtable: null table entry")
)

// Invoker calls a native function entry with integer-register arguments.
// It is injectable so tests can substitute a fake for real dispatch.
type Invoker interface {
	Call(fn mem.Address, args ...uintptr) (uintptr, error)
}

// BoundCall is a resolved native entry bound to an invoker. It is
// immutable after creation; invoking it any number of times against
// unchanged host memory yields identical results.
type BoundCall struct {
	fn  mem.Address
	inv Invoker
}

// Entry returns the resolved function entry address.
func (c *BoundCall) Entry() mem.Address {
	return c.fn
}

// Invoke calls the bound entry. For the host's thiscall-style methods the
// first argument is the object pointer.
func (c *BoundCall) Invoke(args ...uintptr) (uintptr, error) {
	return c.inv.Call(c.fn, args...)
}

// Registry caches BoundCalls process-wide, one per binding site. Each
// binding is resolved at most once: the first caller resolves under the
// write lock, later callers hit the read-locked fast path.
type Registry struct {
	mu    sync.RWMutex
	calls map[string]*BoundCall
}

func NewRegistry() *Registry {
	return &Registry{
		calls: make(map[string]*BoundCall),
	}
}

// Resolve returns the BoundCall for key, resolving it from object's
// virtual table on first use. object must be a validated non-zero
// pointer; slot is the platform-correct index into the table.
func (reg *Registry) Resolve(key string, r mem.Reader, inv Invoker, object mem.Address, slot int) (*BoundCall, error) {
	reg.mu.RLock()
	call, ok := reg.calls[key]
	reg.mu.RUnlock()
	if ok {
		return call, nil
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	// Another caller may have resolved while we waited for the lock.
	if call, ok := reg.calls[key]; ok {
		return call, nil
	}

	if object == 0 {
		return nil, ErrNullObject
	}

	table, err := mem.ReadPointer(r, object)
	if err != nil {
		return nil, fmt.Errorf("vtable: read table base of %q at %s: %w", key, object.ToString(), err)
	}
	if table == 0 {
		return nil, fmt.Errorf("vtable: %q table base: %w", key, ErrNullEntry)
	}

	entry := table + mem.Address(slot*mem.PointerSize)
	fn, err := mem.ReadPointer(r, entry)
	if err != nil {
		return nil, fmt.Errorf("vtable: read %q slot %d at %s: %w", key, slot, entry.ToString(), err)
	}
	if fn == 0 {
		return nil, fmt.Errorf("vtable: %q slot %d: %w", key, slot, ErrNullEntry)
	}

	call = &BoundCall{fn: fn, inv: inv}
	reg.calls[key] = call
	return call, nil
}
