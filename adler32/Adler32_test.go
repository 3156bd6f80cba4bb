package adler32

import (
	"hash/adler32"
	"testing"
)

func TestEmpty(t *testing.T) {
	c := New()
	hi, lo := c.Finalize()

	if hi != 0 || lo != 1 {
		t.Fatalf("expected (0,1) for empty input, got (%d,%d)", hi, lo)
	}

	if c.Sum32() != 1 {
		t.Fatalf("expected sum32 1, got %d", c.Sum32())
	}
}

func TestSingleByte(t *testing.T) {
	c := New()
	c.Update([]byte{0x61}, 0, 1)

	if c.Sum32() != 0x00620062 {
		t.Fatalf("expected 0x00620062, got 0x%08X", c.Sum32())
	}
}

func TestMatchesStdlib(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("a"),
		[]byte("hello, world"),
		make([]byte, 10000),
		make([]byte, 6000),
	}

	for i := range inputs[3] {
		inputs[3][i] = byte(i)
	}

	for _, in := range inputs {
		c := New()
		c.Update(in, 0, len(in))
		want := adler32.Checksum(in)

		if c.Sum32() != want {
			t.Fatalf("mismatch for len %d: got 0x%08X want 0x%08X", len(in), c.Sum32(), want)
		}
	}
}

func TestChunkedUpdatesMatchSinglePass(t *testing.T) {
	data := make([]byte, 20000)

	for i := range data {
		data[i] = byte(i * 7)
	}

	whole := New()
	whole.Update(data, 0, len(data))

	chunked := New()
	chunkSizes := []int{1, 3, 97, 4096, 8191}
	pos := 0
	ci := 0

	for pos < len(data) {
		n := chunkSizes[ci%len(chunkSizes)]
		ci++

		if pos+n > len(data) {
			n = len(data) - pos
		}

		chunked.Update(data, pos, n)
		pos += n
	}

	if whole.Sum32() != chunked.Sum32() {
		t.Fatalf("chunked update diverged: whole=0x%08X chunked=0x%08X", whole.Sum32(), chunked.Sum32())
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.Update([]byte("abc"), 0, 3)
	c.Reset()
	hi, lo := c.Finalize()

	if hi != 0 || lo != 1 {
		t.Fatalf("reset did not restore initial state: (%d,%d)", hi, lo)
	}
}
