package lz77

import (
	"bytes"
	"math/rand"
	"testing"
)

// replay reconstructs the original byte stream from a token list and the
// tokenizer's retained history, the same way a DEFLATE decoder would:
// literal runs copy straight from history, matches copy from the already
// reconstructed output at the given backward distance.
func replay(tokens []Token, history []byte) []byte {
	var out []byte

	for _, tok := range tokens {
		switch tok.Kind {
		case LiteralRun:
			out = append(out, history[tok.Start:tok.Start+tok.Len]...)
		case Match:
			start := len(out) - tok.Dist
			for k := 0; k < tok.Len; k++ {
				out = append(out, out[start+k])
			}
		}
	}

	return out
}

func TestTokenizerRoundTripsLiteralOnly(t *testing.T) {
	tz := New(15)
	input := []byte("xyz")
	tz.Ingest(input)
	tokens, _, _ := tz.Finish()

	got := replay(tokens, tz.History())
	if !bytes.Equal(got, input) {
		t.Fatalf("got %q, want %q", got, input)
	}
}

func TestTokenizerFindsRepeatedRun(t *testing.T) {
	tz := New(15)
	input := bytes.Repeat([]byte("abcdefgh"), 40)
	tz.Ingest(input)
	tokens, _, _ := tz.Finish()

	got := replay(tokens, tz.History())
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch on repeated input")
	}

	sawMatch := false
	for _, tok := range tokens {
		if tok.Kind == Match {
			sawMatch = true
			if tok.Len < 3 || tok.Len > 258 {
				t.Fatalf("match length out of range: %d", tok.Len)
			}
			if tok.Dist < 1 || tok.Dist > tz.windowSize {
				t.Fatalf("match distance out of range: %d", tok.Dist)
			}
		}
	}
	if !sawMatch {
		t.Fatalf("expected at least one match token for highly repetitive input")
	}
}

func TestTokenizerRoundTripsRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(4000) + 1
		input := make([]byte, n)
		rng.Read(input)

		tz := New(12)
		tz.Ingest(input)
		tokens, _, _ := tz.Finish()

		got := replay(tokens, tz.History())
		if !bytes.Equal(got, input) {
			t.Fatalf("trial %d: round trip mismatch (n=%d)", trial, n)
		}
	}
}

func TestTokenizerRoundTripsAcrossMultipleIngestCalls(t *testing.T) {
	tz := New(13)
	parts := [][]byte{
		[]byte("the quick brown fox jumps over the lazy dog. "),
		[]byte("the quick brown fox jumps over the lazy dog again. "),
		[]byte("and once more, the quick brown fox jumps."),
	}

	var want []byte
	for _, p := range parts {
		tz.Ingest(p)
		want = append(want, p...)
	}

	tokens, _, _ := tz.Finish()
	got := replay(tokens, tz.History())
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch across multiple Ingest calls")
	}
}

func TestTokenizerFrequencyHistogramsMatchTokens(t *testing.T) {
	tz := New(15)
	input := bytes.Repeat([]byte("mississippi"), 30)
	tz.Ingest(input)
	tokens, litLenFreqs, distFreqs := tz.Finish()

	wantLitLen := [286]int{}
	wantDist := [30]int{}
	wantLitLen[256]++

	for _, tok := range tokens {
		switch tok.Kind {
		case LiteralRun:
			for _, b := range tz.History()[tok.Start : tok.Start+tok.Len] {
				wantLitLen[b]++
			}
		case Match:
			wantLitLen[257+lengthCodeOf(tok.Len)]++
			wantDist[distCodeOf(tok.Dist)]++
		}
	}

	if litLenFreqs != wantLitLen {
		t.Fatalf("lit/len frequency mismatch")
	}
	if distFreqs != wantDist {
		t.Fatalf("distance frequency mismatch")
	}
}

func TestFinishDrainsAndResetsCounters(t *testing.T) {
	tz := New(15)
	tz.Ingest([]byte("abcabcabcabcabc"))
	_, freqs1, _ := tz.Finish()

	if freqs1 == ([286]int{}) {
		t.Fatalf("expected non-zero frequencies from first block")
	}

	tokens2, freqs2, distFreqs2 := tz.Finish()
	if len(tokens2) != 0 {
		t.Fatalf("expected no tokens on an immediate second Finish, got %d", len(tokens2))
	}

	// Finish always adds the end-of-block marker at index 256, even when
	// nothing was ingested since the last call.
	wantFreqs2 := [286]int{}
	wantFreqs2[256] = 1
	if freqs2 != wantFreqs2 || distFreqs2 != ([30]int{}) {
		t.Fatalf("expected only the end-of-block marker on an immediate second Finish")
	}
}

func TestIsEmpty(t *testing.T) {
	tz := New(15)
	if !tz.IsEmpty() {
		t.Fatalf("expected a fresh tokenizer to be empty")
	}

	tz.Ingest([]byte("a"))
	if tz.IsEmpty() {
		t.Fatalf("expected a pending literal run to make the tokenizer non-empty")
	}

	tz.Finish()
	if !tz.IsEmpty() {
		t.Fatalf("expected Finish to drain the tokenizer back to empty")
	}
}

func TestResetDictionaryClearsHistory(t *testing.T) {
	tz := New(10)
	tz.Ingest([]byte("repeated repeated repeated"))
	tz.Finish()

	tz.ResetDictionary()
	if len(tz.History()) != 0 {
		t.Fatalf("expected ResetDictionary to clear history")
	}

	tz.Ingest([]byte("fresh window"))
	tokens, _, _ := tz.Finish()
	got := replay(tokens, tz.History())
	if !bytes.Equal(got, []byte("fresh window")) {
		t.Fatalf("round trip mismatch after ResetDictionary")
	}
}

func TestMatchesNeverExceedWindow(t *testing.T) {
	tz := New(8) // window = 256
	input := append(bytes.Repeat([]byte{0x42}, 50), bytes.Repeat([]byte{0x00}, 1000)...)
	input = append(input, bytes.Repeat([]byte{0x42}, 50)...)

	tz.Ingest(input)
	tokens, _, _ := tz.Finish()

	for _, tok := range tokens {
		if tok.Kind == Match && tok.Dist > 256 {
			t.Fatalf("match distance %d exceeds window size 256", tok.Dist)
		}
	}
}

// lengthCodeOf/distCodeOf duplicate the tables package's lookup logic
// narrowly enough for this test file to cross-check the tokenizer's own
// bookkeeping without importing the tables package twice under two names.
func lengthCodeOf(length int) int {
	codes := []struct{ base, count int }{
		{3, 8}, {11, 8}, {19, 8}, {35, 8}, {67, 8}, {131, 8}, {258, 1},
	}
	_ = codes
	return codeFor(length)
}

func codeFor(length int) int {
	bases := []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258}
	for i := len(bases) - 1; i >= 0; i-- {
		if length >= bases[i] {
			return i
		}
	}
	return 0
}

func distCodeOf(dist int) int {
	bases := []int{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
	for i := len(bases) - 1; i >= 0; i-- {
		if dist >= bases[i] {
			return i
		}
	}
	return 0
}
