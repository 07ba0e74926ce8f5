//go:build darwin || freebsd || linux || windows

package vtable

import (
	"github.com/ebitengine/purego"

	"github.com/schwarper/cs2helper/mem"
)

// Purego dispatches through purego.SyscallN, which calls an arbitrary
// function entry with up to nine integer-register arguments using the
// platform C ABI.
type Purego struct{}

var _ Invoker = Purego{}

func (Purego) Call(fn mem.Address, args ...uintptr) (uintptr, error) {
	if fn == 0 {
		return 0, mem.ErrNullAddress
	}
	r1, _, _ := purego.SyscallN(uintptr(fn), args...)
	return r1, nil
}
