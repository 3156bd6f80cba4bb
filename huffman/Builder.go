/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package huffman builds canonical Huffman code tables for the dynamic
// DEFLATE block type, and compresses a code-length vector into the 0-18
// meta-symbol alphabet used to transmit it. It is a pure function library:
// no bitstream, no I/O, just frequencies and lengths in, lengths and codes
// out.
package huffman

import (
	"fmt"
	"sort"
)

// MaxSymbols is the largest alphabet this builder supports in one call
// (the literal/length alphabet, the largest of the three DEFLATE
// alphabets, has 286 entries).
const MaxSymbols = 286

// BuildLengths computes a code-length vector for freqs such that every
// length is in [0, maxLen], len[i] == 0 iff freqs[i] == 0, and the
// resulting multiset of lengths is a valid prefix code (Kraft sum <= 1).
// maxLen must be 15 (literal/length and distance alphabets) or 7
// (code-length alphabet). freqs with a zero total produce an all-zero
// length vector.
//
// The algorithm is Moffat & Katajainen's in-place minimum-redundancy
// construction, the same one the teacher's Huffman codec uses (see
// entropy/HuffmanCodec.go in the retrieval pack), generalized here from a
// 256-symbol, single-maxLen special case to an arbitrary alphabet size and
// caller-supplied maxLen. When the natural Huffman tree would exceed
// maxLen, the frequency vector is renormalized (smallest frequencies
// boosted) and the computation is retried, mirroring the teacher's retry
// loop in HuffmanEncoder.updateFrequencies.
func BuildLengths(freqs []int, maxLen int) ([]byte, error) {
	if maxLen != 15 && maxLen != 7 {
		return nil, fmt.Errorf("huffman: maxLen must be 7 or 15, got %d", maxLen)
	}

	n := len(freqs)
	lens := make([]byte, n)

	total := 0
	count := 0

	for _, f := range freqs {
		if f > 0 {
			total++
		}

		count += f
	}

	if total == 0 {
		return lens, nil
	}

	if total == 1 {
		for i, f := range freqs {
			if f > 0 {
				lens[i] = 1
				break
			}
		}

		return lens, nil
	}

	work := make([]int, len(freqs))
	copy(work, freqs)

	for retries := 0; ; retries++ {
		symbols := make([]int, 0, total)

		for i, f := range work {
			if f > 0 {
				symbols = append(symbols, i)
			}
		}

		sort.Slice(symbols, func(i, j int) bool {
			fi, fj := work[symbols[i]], work[symbols[j]]

			if fi != fj {
				return fi < fj
			}

			return symbols[i] < symbols[j]
		})

		sizes := make([]int, len(symbols))

		for i, s := range symbols {
			sizes[i] = work[s]
		}

		computeInPlaceSizesPhase1(sizes)
		maxCodeLen := computeInPlaceSizesPhase2(sizes)

		if maxCodeLen <= maxLen {
			for i, s := range symbols {
				lens[s] = byte(sizes[i])
			}

			return lens, nil
		}

		if retries >= 8 {
			return nil, fmt.Errorf("huffman: could not bound code length to %d bits after renormalizing", maxLen)
		}

		// Squeeze the frequency distribution so that rare symbols stop
		// dominating the tree depth, then try again.
		scale := count
		if scale > (1 << 15) {
			scale = 1 << 15
		}

		scale >>= uint(retries + 1)

		if scale < 256 {
			scale = 256
		}

		normalizeFrequencies(work, scale)
	}
}

// normalizeFrequencies scales every non-zero entry of freqs down so their
// sum is close to scale, never letting a non-zero frequency collapse to
// zero. This is a simplified form of the teacher's
// entropy/EntropyUtils.go NormalizeFrequencies, adapted in place rather
// than via a separate alphabet/frequency pair since the caller here always
// owns the full-width slice.
func normalizeFrequencies(freqs []int, scale int) {
	total := 0

	for _, f := range freqs {
		total += f
	}

	if total == 0 || total == scale {
		return
	}

	for i, f := range freqs {
		if f == 0 {
			continue
		}

		sf := int64(f) * int64(scale)
		scaled := int(sf / int64(total))

		if scaled < 1 {
			scaled = 1
		}

		freqs[i] = scaled
	}
}

// computeInPlaceSizesPhase1 and computeInPlaceSizesPhase2 implement
// in-place calculation of minimum-redundancy code lengths, per Moffat &
// Katajainen, "In-Place Calculation of Minimum-Redundancy Codes". data
// holds ascending frequencies on entry and ascending code lengths on
// exit from phase2. Ported from the teacher's entropy/HuffmanCodec.go.
func computeInPlaceSizesPhase1(data []int) {
	n := len(data)

	for s, r, t := 0, 0, 0; t < n-1; t++ {
		sum := 0

		for i := 0; i < 2; i++ {
			if s >= n || (r < t && data[r] < data[s]) {
				sum += data[r]
				data[r] = t
				r++
				continue
			}

			sum += data[s]

			if s > t {
				data[s] = 0
			}

			s++
		}

		data[t] = sum
	}
}

// computeInPlaceSizesPhase2 requires len(data) >= 2.
func computeInPlaceSizesPhase2(data []int) int {
	if len(data) < 2 {
		if len(data) == 1 {
			data[0] = 1
			return 1
		}

		return 0
	}

	levelTop := len(data) - 2
	depth := 1
	i := len(data)
	totalNodesAtLevel := 2

	for i > 0 {
		k := levelTop

		for k > 0 && data[k-1] >= levelTop {
			k--
		}

		internalNodesAtLevel := levelTop - k
		leavesAtLevel := totalNodesAtLevel - internalNodesAtLevel

		for j := 0; j < leavesAtLevel; j++ {
			i--
			data[i] = depth
		}

		totalNodesAtLevel = internalNodesAtLevel << 1
		levelTop = k
		depth++
	}

	return depth - 1
}

// reverseBits reverses the low 'width' bits of code.
func reverseBits(code uint16, width byte) uint16 {
	var r uint16

	for i := byte(0); i < width; i++ {
		r = (r << 1) | (code & 1)
		code >>= 1
	}

	return r
}

// CanonicalCodes assigns canonical codes to the symbols of lens: symbols
// with a shorter length sort first, symbols of equal length sort in
// ascending symbol-index order, and within that order codes are assigned
// consecutively, the first code of each length being the code after the
// previous length's last one, shifted left by one bit (RFC 1951
// §3.2.2's bl_count/next_code construction — equivalent to, and checked
// against, the sorted-symbol assignment in the teacher's
// entropy/HuffmanCodec.go generateCanonicalCodes). The returned codes are
// pre-reversed so they can be handed directly to a bit sink that packs
// bits LSB-first (the DEFLATE convention) — see bitstream.Sink.
func CanonicalCodes(lens []byte) []uint16 {
	codes := make([]uint16, len(lens))

	maxLen := byte(0)

	for _, l := range lens {
		if l > maxLen {
			maxLen = l
		}
	}

	if maxLen == 0 {
		return codes
	}

	blCount := make([]int, maxLen+1)

	for _, l := range lens {
		if l > 0 {
			blCount[l]++
		}
	}

	nextCode := make([]uint16, maxLen+2)
	code := uint16(0)

	for bits := byte(1); bits <= maxLen; bits++ {
		code = (code + uint16(blCount[bits-1])) << 1
		nextCode[bits] = code
	}

	for sym, l := range lens {
		if l == 0 {
			continue
		}

		codes[sym] = reverseBits(nextCode[l], l)
		nextCode[l]++
	}

	return codes
}
