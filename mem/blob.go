package mem

import (
	"sync/atomic"
)

// Blob is a bounds-checked Reader over a captured byte image, addressed
// as if the image were still mapped at its original base. It backs
// offline inspection of saved dumps and serves as the simulated memory
// image in tests; Reads reports how many raw accesses were performed.
type Blob struct {
	base  Address
	data  []byte
	reads atomic.Int64
}

var _ Reader = (*Blob)(nil)

func NewBlob(base Address, data []byte) *Blob {
	return &Blob{
		base: base,
		data: data,
	}
}

// Data returns the raw image bytes.
func (b *Blob) Data() []byte {
	return b.data
}

// Reads returns the number of ReadBytes calls that reached the image.
func (b *Blob) Reads() int64 {
	return b.reads.Load()
}

func (b *Blob) ReadBytes(addr Address, size Size) ([]byte, error) {
	if addr == 0 {
		return nil, ErrNullAddress
	}
	if addr < b.base || uint64(addr)+uint64(size) > uint64(b.base)+uint64(len(b.data)) {
		return nil, ErrOutOfBounds
	}
	b.reads.Add(1)
	offset := addr - b.base
	out := make([]byte, size)
	copy(out, b.data[offset:uint64(offset)+uint64(size)])
	return out, nil
}
