// Package chain walks fixed pointer chains through host structures.
//
// A chain encodes layout knowledge as data: an ordered list of
// (byte offset, dereference?) steps applied from a root address. Keeping
// chains declarative lets them be validated against synthetic byte images
// without a live host.
package chain

import (
	"fmt"

	"github.com/schwarper/cs2helper/mem"
)

// Step is one hop of a chain: advance by Offset, then optionally read a
// pointer at the resulting address and continue from its target.
type Step struct {
	Offset mem.Size
	Deref  bool
}

// Chain is a fixed sequence of steps. Chains are built once and never
// mutated at runtime.
type Chain []Step

// Deref returns a step that follows the pointer stored at current+offset.
func Deref(offset mem.Size) Step {
	return Step{Offset: offset, Deref: true}
}

// At returns a step that only advances the address, without reading.
func At(offset mem.Size) Step {
	return Step{Offset: offset}
}

// Navigate walks c from root and returns the final address.
//
// A zero root returns mem.ErrNullAddress before any read. If any
// dereferencing step observes a zero pointer the walk stops immediately:
// no later step's address is computed or read, and the error wraps
// mem.ErrNullAddress so callers can treat it as "absent".
func Navigate(r mem.Reader, root mem.Address, c Chain) (mem.Address, error) {
	if root == 0 {
		return 0, mem.ErrNullAddress
	}

	current := root
	for i, step := range c {
		addr := current + mem.Address(step.Offset)
		if !step.Deref {
			current = addr
			continue
		}

		ptr, err := mem.ReadPointer(r, addr)
		if err != nil {
			return 0, fmt.Errorf("chain: read pointer at step %d (addr=%#x + off=%#x): %w",
				i, uint64(current), uint64(step.Offset), err)
		}
		if ptr == 0 {
			return 0, fmt.Errorf("chain: NULL pointer at step %d (addr=%#x + off=%#x): %w",
				i, uint64(current), uint64(step.Offset), mem.ErrNullAddress)
		}
		current = ptr
	}

	return current, nil
}
