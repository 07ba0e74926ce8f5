package mem

import (
	"unsafe"
)

// Local reads the helper's own address space. The helper is loaded into
// the game server, so host structures are directly addressable.
//
// Reading a non-zero invalid address faults the process; the zero check
// is the only defense this layer can offer. Addresses must come from the
// host's interface system or from a validated pointer hop.
type Local struct{}

var _ Reader = Local{}

func (Local) ReadBytes(addr Address, size Size) ([]byte, error) {
	if addr == 0 {
		return nil, ErrNullAddress
	}
	buf := make([]byte, size)
	copy(buf, unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), int(size)))
	return buf, nil
}
