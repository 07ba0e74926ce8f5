package mem

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	// ErrNullAddress is returned for any operation on address zero. The
	// zero address never denotes a valid object; it means "absent".
	ErrNullAddress = errors.New("null address")

	// ErrOutOfBounds is returned by bounded readers when a read would
	// leave the captured image.
	ErrOutOfBounds = errors.New("address out of bounds")
)

// Reader is the single point of raw memory access. Every other package
// composes its typed reads from ReadBytes rather than touching memory
// directly.
//
// Implementations must return ErrNullAddress for addr == 0 without
// performing any access. A non-zero invalid address is not detectable
// here: callers must only pass addresses derived from validated hops.
type Reader interface {
	ReadBytes(addr Address, size Size) ([]byte, error)
}

// ReadUint8 reads an unsigned 8-bit integer from the specified address
func ReadUint8(r Reader, addr Address) (uint8, error) {
	if addr == 0 {
		return 0, ErrNullAddress
	}
	data, err := r.ReadBytes(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer from the specified address
func ReadUint16(r Reader, addr Address) (uint16, error) {
	if addr == 0 {
		return 0, ErrNullAddress
	}
	data, err := r.ReadBytes(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUint32 reads an unsigned 32-bit integer from the specified address
func ReadUint32(r Reader, addr Address) (uint32, error) {
	if addr == 0 {
		return 0, ErrNullAddress
	}
	data, err := r.ReadBytes(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUint64 reads an unsigned 64-bit integer from the specified address
func ReadUint64(r Reader, addr Address) (uint64, error) {
	if addr == 0 {
		return 0, ErrNullAddress
	}
	data, err := r.ReadBytes(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadFloat32 reads a 32-bit floating point number from the specified address
func ReadFloat32(r Reader, addr Address) (float32, error) {
	bits, err := ReadUint32(r, addr)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadFloat64 reads a 64-bit floating point number from the specified address
func ReadFloat64(r Reader, addr Address) (float64, error) {
	bits, err := ReadUint64(r, addr)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadPointer reads a pointer-sized value from the specified address
func ReadPointer(r Reader, addr Address) (Address, error) {
	v, err := ReadUint64(r, addr)
	if err != nil {
		return 0, err
	}
	return Address(v), nil
}

// ReadNTS reads a null-terminated string from the specified address with
// a maximum length. A terminator inside the window ends the string; a
// full window with no terminator is returned whole.
func ReadNTS(r Reader, addr Address, maxLength Size) (string, error) {
	if addr == 0 {
		return "", ErrNullAddress
	}
	if maxLength == 0 {
		return "", nil
	}
	data, err := r.ReadBytes(addr, maxLength)
	if err != nil {
		return "", err
	}
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), nil
		}
	}
	return string(data), nil
}
