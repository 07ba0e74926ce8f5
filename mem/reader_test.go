package mem

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestReadBytesNullAddress(t *testing.T) {
	b := NewBlob(0x1000, make([]byte, 64))

	if _, err := b.ReadBytes(0, 8); !errors.Is(err, ErrNullAddress) {
		t.Fatalf("ReadBytes(0) error = %v, want ErrNullAddress", err)
	}
	if b.Reads() != 0 {
		t.Errorf("reads = %d, want 0", b.Reads())
	}
}

func TestTypedReadsNullAddress(t *testing.T) {
	b := NewBlob(0x1000, make([]byte, 64))

	if _, err := ReadUint8(b, 0); !errors.Is(err, ErrNullAddress) {
		t.Errorf("ReadUint8(0) error = %v, want ErrNullAddress", err)
	}
	if _, err := ReadUint32(b, 0); !errors.Is(err, ErrNullAddress) {
		t.Errorf("ReadUint32(0) error = %v, want ErrNullAddress", err)
	}
	if _, err := ReadUint64(b, 0); !errors.Is(err, ErrNullAddress) {
		t.Errorf("ReadUint64(0) error = %v, want ErrNullAddress", err)
	}
	if _, err := ReadFloat32(b, 0); !errors.Is(err, ErrNullAddress) {
		t.Errorf("ReadFloat32(0) error = %v, want ErrNullAddress", err)
	}
	if _, err := ReadPointer(b, 0); !errors.Is(err, ErrNullAddress) {
		t.Errorf("ReadPointer(0) error = %v, want ErrNullAddress", err)
	}
	if _, err := ReadNTS(b, 0, 16); !errors.Is(err, ErrNullAddress) {
		t.Errorf("ReadNTS(0) error = %v, want ErrNullAddress", err)
	}

	if b.Reads() != 0 {
		t.Errorf("reads = %d, want 0", b.Reads())
	}
}

func TestTypedReads(t *testing.T) {
	const base = Address(0x1000)
	img := make([]byte, 64)
	img[0] = 0x7F
	binary.LittleEndian.PutUint16(img[2:], 0xBEEF)
	binary.LittleEndian.PutUint32(img[8:], 0xDEADBEEF)
	binary.LittleEndian.PutUint64(img[16:], 0x0102030405060708)
	binary.LittleEndian.PutUint32(img[24:], math.Float32bits(1.5))
	binary.LittleEndian.PutUint64(img[32:], math.Float64bits(-2.25))
	binary.LittleEndian.PutUint64(img[40:], 0x2000)
	b := NewBlob(base, img)

	if v, err := ReadUint8(b, base); err != nil || v != 0x7F {
		t.Errorf("ReadUint8 = %v, %v; want 0x7F", v, err)
	}
	if v, err := ReadUint16(b, base+2); err != nil || v != 0xBEEF {
		t.Errorf("ReadUint16 = %#x, %v; want 0xBEEF", v, err)
	}
	if v, err := ReadUint32(b, base+8); err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadUint32 = %#x, %v; want 0xDEADBEEF", v, err)
	}
	if v, err := ReadUint64(b, base+16); err != nil || v != 0x0102030405060708 {
		t.Errorf("ReadUint64 = %#x, %v; want 0x0102030405060708", v, err)
	}
	if v, err := ReadFloat32(b, base+24); err != nil || v != 1.5 {
		t.Errorf("ReadFloat32 = %v, %v; want 1.5", v, err)
	}
	if v, err := ReadFloat64(b, base+32); err != nil || v != -2.25 {
		t.Errorf("ReadFloat64 = %v, %v; want -2.25", v, err)
	}
	if v, err := ReadPointer(b, base+40); err != nil || v != 0x2000 {
		t.Errorf("ReadPointer = %s, %v; want 0x2000", v.ToString(), err)
	}
}

func TestReadNTS(t *testing.T) {
	const base = Address(0x1000)
	img := []byte("123456,extra\x00garbage!")
	b := NewBlob(base, img)

	tests := []struct {
		name string
		addr Address
		max  Size
		want string
	}{
		{"terminated", base, 20, "123456,extra"},
		{"window before terminator", base, 6, "123456"},
		{"empty at terminator", base + 12, 8, ""},
		{"zero max length", base, 0, ""},
	}

	for _, tc := range tests {
		got, err := ReadNTS(b, tc.addr, tc.max)
		if err != nil {
			t.Errorf("%s: ReadNTS failed: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: ReadNTS = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestBlobOutOfBounds(t *testing.T) {
	b := NewBlob(0x1000, make([]byte, 16))

	cases := []struct {
		addr Address
		size Size
	}{
		{0x0FF8, 8},  // below base
		{0x1010, 1},  // past end
		{0x100C, 8},  // straddles end
	}
	for _, tc := range cases {
		if _, err := b.ReadBytes(tc.addr, tc.size); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ReadBytes(%s, %d) error = %v, want ErrOutOfBounds", tc.addr.ToString(), tc.size, err)
		}
	}
	if b.Reads() != 0 {
		t.Errorf("reads = %d, want 0", b.Reads())
	}
}

func TestBlobReadCounter(t *testing.T) {
	b := NewBlob(0x1000, make([]byte, 16))

	for i := 0; i < 3; i++ {
		if _, err := b.ReadBytes(0x1000, 8); err != nil {
			t.Fatalf("ReadBytes failed: %v", err)
		}
	}
	if b.Reads() != 3 {
		t.Errorf("reads = %d, want 3", b.Reads())
	}
}
