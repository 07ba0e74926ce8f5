package mem

import (
	"fmt"
)

// Address represents a memory address within the host process
type Address uint64

func (a Address) ToString() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Size represents a size of memory region
type Size uint

func (s Size) ToString() string {
	return fmt.Sprintf("%d bytes", uint(s))
}

// PointerSize is the width of a host pointer in bytes. The host only
// ships 64-bit builds.
const PointerSize = 8
