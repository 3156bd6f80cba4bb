package bitstream

import (
	"testing"

	"github.com/go-zdeflate/zdeflate/internal"
)

func TestAddBitsLSBFirst(t *testing.T) {
	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)

	// Write the 3-bit header for BFINAL=1, BTYPE=01 (fixed): bits are
	// 1,1,0 in transmission order, which is value 0b011 = 3 sent LSB
	// first with AddBits(3, 3).
	s.AddBits(3, 3)
	s.FlushToByte()

	if out.Contents() != 1 {
		t.Fatalf("expected 1 byte written, got %d", out.Contents())
	}

	if buf[0] != 0x03 {
		t.Fatalf("expected 0x03, got 0x%02X", buf[0])
	}
}

func TestAddBitsAcrossByteBoundary(t *testing.T) {
	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)

	s.AddBits(0x1F, 5) // 5 bits: 11111
	s.AddBits(0x3, 2)  // 2 bits: 11
	s.AddBits(0x1, 1)  // 1 bit: 1 -> completes byte 0 = 0xFF
	s.AddBits(0x5A, 8)
	s.FlushToByte()

	if out.Contents() != 2 {
		t.Fatalf("expected 2 bytes, got %d", out.Contents())
	}

	if buf[0] != 0xFF {
		t.Fatalf("byte 0: expected 0xFF, got 0x%02X", buf[0])
	}

	if buf[1] != 0x5A {
		t.Fatalf("byte 1: expected 0x5A, got 0x%02X", buf[1])
	}
}

func TestFlushToBytePads(t *testing.T) {
	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)

	s.AddBits(0x1, 3)
	s.FlushToByte()

	if s.BitCount() != 0 {
		t.Fatalf("expected bit count 0 after flush, got %d", s.BitCount())
	}

	if out.Contents() != 1 {
		t.Fatalf("expected 1 byte, got %d", out.Contents())
	}

	if buf[0] != 0x01 {
		t.Fatalf("expected padded byte 0x01, got 0x%02X", buf[0])
	}
}

func TestFlushToByteNoOpWhenAligned(t *testing.T) {
	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)
	s.FlushToByte()

	if out.Contents() != 0 {
		t.Fatalf("expected no bytes written, got %d", out.Contents())
	}
}

func TestPutByteRequiresAlignment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for unaligned PutByte")
		}
	}()

	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)
	s.AddBits(1, 3)
	s.PutByte(0x11)
}

func TestPutShortLittleEndian(t *testing.T) {
	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)
	s.PutShort(0x1234)

	if buf[0] != 0x34 || buf[1] != 0x12 {
		t.Fatalf("expected LE 34 12, got %02X %02X", buf[0], buf[1])
	}
}

func TestPutShortMSBBigEndian(t *testing.T) {
	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)
	s.PutShortMSB(0x1234)

	if buf[0] != 0x12 || buf[1] != 0x34 {
		t.Fatalf("expected BE 12 34, got %02X %02X", buf[0], buf[1])
	}
}

func TestNeedBits(t *testing.T) {
	buf := make([]byte, 16)
	out := internal.NewOutputView(buf)
	out.Flush(16)
	s := New(out)

	if s.NeedBits(8) != 1 {
		t.Fatalf("expected 1 byte needed for 8 fresh bits, got %d", s.NeedBits(8))
	}

	s.AddBits(1, 3)

	if s.NeedBits(4) != 0 {
		t.Fatalf("expected 0 bytes needed (3+4=7 bits), got %d", s.NeedBits(4))
	}

	if s.NeedBits(5) != 1 {
		t.Fatalf("expected 1 byte needed (3+5=8 bits), got %d", s.NeedBits(5))
	}
}
