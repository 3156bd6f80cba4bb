package zdeflate

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"math/rand"
	"testing"
)

func TestCompressAllRunsIndependentJobsConcurrently(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	payloads := make([][]byte, 6)
	for i := range payloads {
		payloads[i] = make([]byte, 2000+i*500)
		rng.Read(payloads[i])
	}

	outputs := make([]*bytes.Buffer, len(payloads))
	jobs := make([]Job, len(payloads))

	for i, payload := range payloads {
		payload := payload
		pos := 0
		outputs[i] = &bytes.Buffer{}
		out := outputs[i]

		jobs[i] = Job{
			WindowBits: 15,
			Mode:       DynamicHuffman,
			Refill: func(buf []byte) (int, bool) {
				n := copy(buf, payload[pos:])
				pos += n
				return n, pos >= len(payload)
			},
			Flush: func(buf []byte) int {
				n, _ := out.Write(buf)
				return n
			},
		}
	}

	errs := CompressAll(jobs, 3)

	for i, err := range errs {
		if err != nil {
			t.Fatalf("job %d: unexpected error: %v", i, err)
		}

		r, zerr := zlib.NewReader(bytes.NewReader(outputs[i].Bytes()))
		if zerr != nil {
			t.Fatalf("job %d: zlib.NewReader: %v", i, zerr)
		}

		got, rerr := io.ReadAll(r)
		r.Close()
		if rerr != nil {
			t.Fatalf("job %d: zlib read: %v", i, rerr)
		}

		if !bytes.Equal(got, payloads[i]) {
			t.Fatalf("job %d: round trip mismatch", i)
		}
	}
}

func TestCompressAllSurfacesPerJobErrors(t *testing.T) {
	good := Job{
		WindowBits: 15,
		Mode:       Stored,
		Refill:     func(buf []byte) (int, bool) { return 0, true },
		Flush:      func(buf []byte) int { return len(buf) },
	}

	failing := Job{
		WindowBits: 15,
		Mode:       Stored,
		Refill:     func(buf []byte) (int, bool) { return 0, true },
		// Claims to have drained 0 of the n bytes Compress() handed it:
		// Compress's own written != n check (ERR_INVALID_STATE), distinct
		// from the BudgetUnderflow an oversized Flush(n) call triggers.
		Flush: func(buf []byte) int { return 0 },
	}

	errs := CompressAll([]Job{good, failing}, 0)

	if errs[0] != nil {
		t.Fatalf("expected the first job to succeed, got %v", errs[0])
	}
	if errs[1] == nil {
		t.Fatalf("expected the second job to report a flush-callback error")
	}

	var coreErr *CoreError
	if !errors.As(errs[1], &coreErr) || coreErr.Code() != ERR_INVALID_STATE {
		t.Fatalf("errs[1] = %v, want a CoreError with code ERR_INVALID_STATE", errs[1])
	}
}
