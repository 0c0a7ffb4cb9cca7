package bitutil

import (
	"errors"
	"testing"

	"github.com/ldnrds/goqr/qrerr"
)

func TestBitBufferPutAndRead(t *testing.T) {
	b := NewBitBuffer()
	b.Put(0b101, 3)
	b.Put(0xFF, 8)
	if got := b.GetLength(); got != 11 {
		t.Fatalf("GetLength() = %d, want 11", got)
	}
	if got, err := b.Read(3); err != nil || got != 0b101 {
		t.Fatalf("Read(3) = %d, %v; want 5, nil", got, err)
	}
	if got, err := b.Read(8); err != nil || got != 0xFF {
		t.Fatalf("Read(8) = %d, %v; want 255, nil", got, err)
	}
	if b.Available() != 0 {
		t.Fatalf("Available() = %d, want 0", b.Available())
	}
}

func TestBitBufferReadDoesNotBlockWrite(t *testing.T) {
	b := NewBitBuffer()
	b.Put(0b11, 2)
	if _, err := b.Read(2); err != nil {
		t.Fatalf("Read: %v", err)
	}
	b.Put(0b1010, 4)
	if got := b.GetLength(); got != 6 {
		t.Fatalf("GetLength() = %d, want 6", got)
	}
	if got, err := b.Read(4); err != nil || got != 0b1010 {
		t.Fatalf("Read(4) = %d, %v; want 10, nil", got, err)
	}
}

func TestBitBufferNotEnoughBits(t *testing.T) {
	b := NewBitBuffer()
	b.Put(1, 1)
	if _, err := b.Read(5); !errors.Is(err, qrerr.NotEnoughBits) {
		t.Fatalf("Read(5) error = %v, want qrerr.NotEnoughBits", err)
	}
}

func TestBitBufferRewind(t *testing.T) {
	b := NewBitBuffer()
	b.Put(0b1100, 4)
	if _, err := b.Read(4); err != nil {
		t.Fatalf("Read: %v", err)
	}
	b.Rewind()
	if got, err := b.Read(4); err != nil || got != 0b1100 {
		t.Fatalf("Read after Rewind = %d, %v; want 12, nil", got, err)
	}
}

func TestBitBufferGetBuffer(t *testing.T) {
	b := NewBitBuffer()
	b.Put(0xAB, 8)
	b.Put(0b10, 2)
	buf := b.GetBuffer()
	if len(buf) != 2 {
		t.Fatalf("GetBuffer() len = %d, want 2", len(buf))
	}
	if buf[0] != 0xAB {
		t.Fatalf("GetBuffer()[0] = %#x, want 0xab", buf[0])
	}
	if buf[1] != 0b10000000 {
		t.Fatalf("GetBuffer()[1] = %#x, want 0x80", buf[1])
	}
}

func TestNewBitBufferFromBytes(t *testing.T) {
	b := NewBitBufferFromBytes([]byte{0x12, 0x34})
	if got, err := b.Read(16); err != nil || got != 0x1234 {
		t.Fatalf("Read(16) = %#x, %v; want 0x1234, nil", got, err)
	}
	b.Put(0xFF, 8)
	if b.GetLength() != 24 {
		t.Fatalf("GetLength() = %d, want 24", b.GetLength())
	}
}

func TestBitBufferClear(t *testing.T) {
	b := NewBitBuffer()
	b.Put(0b111, 3)
	b.Read(1)
	b.Clear()
	if b.GetLength() != 0 || b.Available() != 0 {
		t.Fatalf("Clear did not reset buffer: length=%d available=%d", b.GetLength(), b.Available())
	}
}
