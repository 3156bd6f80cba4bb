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

package zdeflate

import (
	"github.com/go-zdeflate/zdeflate/huffman"
	"github.com/go-zdeflate/zdeflate/lz77"
	"github.com/go-zdeflate/zdeflate/tables"
)

// writeLitLenSymbol emits the code for a literal/length symbol (0-287)
// in the table the current mode uses, returning false (without writing
// anything) if the output budget can't absorb it yet.
func (this *Encoder) writeLitLenSymbol(sym int) bool {
	var code uint16
	var length byte

	if this.blockFixed {
		code, length = tables.FixedLitLenCodes[sym], tables.FixedLitLenLengths[sym]
	} else {
		code, length = this.dyn.litLenCodes[sym], this.dyn.litLenLengths[sym]
	}

	if !this.canAddBits(uint(length)) {
		return false
	}

	this.sink.AddBits(uint32(code), uint(length))
	return true
}

// writeDistSymbol emits the code for a distance symbol (0-29).
func (this *Encoder) writeDistSymbol(sym int) bool {
	var code uint16
	var length byte

	if this.blockFixed {
		code, length = tables.FixedDistCodes[sym], tables.FixedDistLengths[sym]
	} else {
		code, length = this.dyn.distCodes[sym], this.dyn.distLengths[sym]
	}

	if !this.canAddBits(uint(length)) {
		return false
	}

	this.sink.AddBits(uint32(code), uint(length))
	return true
}

// writeExtraBits emits n raw (non-Huffman) bits, LSB first — used for
// the extra-bits suffix of a length or distance code, and for a
// code-length-alphabet symbol's repeat count.
func (this *Encoder) writeExtraBits(value uint16, n byte) bool {
	if n == 0 {
		return true
	}

	if !this.canAddBits(uint(n)) {
		return false
	}

	this.sink.AddBits(uint32(value), uint(n))
	return true
}

// writeTreeSymbols streams the C4 code-length alphabet symbols (the
// combined lit/len+dist length vector, RLE-compressed) through the
// code-length Huffman tree, resuming at this.treeSymIdx/this.treeSymBit
// across suspensions.
func (this *Encoder) writeTreeSymbols() bool {
	symbols := this.dyn.treeSymbols

	for this.treeSymIdx < len(symbols) {
		sym := symbols[this.treeSymIdx]

		if !this.treeSymBit {
			length := this.dyn.treeLengths[sym.Code]
			code := this.dyn.treeCodes[sym.Code]

			if !this.canAddBits(uint(length)) {
				return false
			}

			this.sink.AddBits(uint32(code), uint(length))

			if sym.ExtraBits == 0 {
				this.treeSymIdx++
				continue
			}

			this.treeSymBit = true
			continue
		}

		if !this.writeExtraBits(sym.Extra, sym.ExtraBits) {
			return false
		}

		this.treeSymBit = false
		this.treeSymIdx++
	}

	return true
}

// writeTokens streams the LZ77 token list, resuming at this.tokenIdx
// (and, inside a literal run, this.literalPos; inside a match,
// this.tokSub) across suspensions.
func (this *Encoder) writeTokens() bool {
	history := this.tok.History()

	for this.tokenIdx < len(this.tokens) {
		tok := this.tokens[this.tokenIdx]

		switch tok.Kind {
		case lz77.LiteralRun:
			for this.literalPos < tok.Len {
				b := history[tok.Start+this.literalPos]

				if !this.writeLitLenSymbol(int(b)) {
					return false
				}

				this.literalPos++
			}

			this.literalPos = 0
			this.tokenIdx++

		case lz77.Match:
			if !this.writeMatchToken(tok) {
				return false
			}

			this.tokSub = subLenCode
			this.tokenIdx++
		}
	}

	return true
}

func (this *Encoder) writeMatchToken(tok lz77.Token) bool {
	lenCode := tables.LengthCode(tok.Len)
	distCode := tables.DistanceCode(tok.Dist)

	for {
		switch this.tokSub {
		case subLenCode:
			if !this.writeLitLenSymbol(257 + lenCode) {
				return false
			}
			this.tokSub = subLenExtra

		case subLenExtra:
			extra := uint16(tok.Len) - tables.BaseLength[lenCode]
			if !this.writeExtraBits(extra, tables.ExtraLengthBits[lenCode]) {
				return false
			}
			this.tokSub = subDistCode

		case subDistCode:
			if !this.writeDistSymbol(distCode) {
				return false
			}
			this.tokSub = subDistExtra

		case subDistExtra:
			extra := uint16(tok.Dist) - tables.BaseDist[distCode]
			if !this.writeExtraBits(extra, tables.ExtraDistBits[distCode]) {
				return false
			}
			this.tokSub = subDone
			return true
		}
	}
}

// buildDynamicTables computes everything a dynamic-Huffman block's
// header needs from the frequency histograms the tokenizer handed back:
// the lit/len and distance canonical codes, the RLE-compressed
// transmission stream for their concatenated length vector, and that
// vector's own code-length Huffman tree. It returns a non-nil
// *CoreError, rather than panicking, if huffman.BuildLengths exhausts
// its renormalization retries — §7's "internal bug" InvariantViolation
// case, surfaced through Eval's Error result instead of crashing the
// process.
func (this *Encoder) buildDynamicTables() *CoreError {
	this.dyn.reset()

	litLenLens, err := huffman.BuildLengths(this.litLenFreqs[:], 15)
	if err != nil {
		return invalidState("zdeflate: building literal/length code lengths: %s", err)
	}

	distLens, err := huffman.BuildLengths(this.distFreqs[:], 15)
	if err != nil {
		return invalidState("zdeflate: building distance code lengths: %s", err)
	}

	hlit := lastNonZero(litLenLens) + 1
	if hlit < 257 {
		hlit = 257
	}

	hdist := lastNonZero(distLens) + 1
	if hdist < 1 {
		// RFC 1951 still requires at least one distance code even when
		// no match ever used one; give symbol 0 a one-bit code.
		distLens[0] = 1
		hdist = 1
	}

	litLenCodes := huffman.CanonicalCodes(litLenLens)
	distCodes := huffman.CanonicalCodes(distLens)

	copy(this.dyn.litLenLengths[:], litLenLens)
	copy(this.dyn.litLenCodes[:], litLenCodes)
	copy(this.dyn.distLengths[:], distLens)
	copy(this.dyn.distCodes[:], distCodes)
	this.dyn.hlit = hlit
	this.dyn.hdist = hdist

	combined := make([]byte, 0, hlit+hdist)
	combined = append(combined, litLenLens[:hlit]...)
	combined = append(combined, distLens[:hdist]...)

	treeSymbols, clFreq := huffman.CompressLengths(combined)
	this.dyn.treeSymbols = treeSymbols

	treeLens, err := huffman.BuildLengths(clFreq, 7)
	if err != nil {
		return invalidState("zdeflate: building code-length tree: %s", err)
	}

	treeCodes := huffman.CanonicalCodes(treeLens)
	copy(this.dyn.treeLengths[:], treeLens)
	copy(this.dyn.treeCodes[:], treeCodes)

	for i, sym := range clOrder {
		this.dyn.transLengths[i] = this.dyn.treeLengths[sym]
	}

	hclen := 19
	for hclen > 4 && this.dyn.transLengths[hclen-1] == 0 {
		hclen--
	}
	this.dyn.hclen = hclen

	return nil
}

func lastNonZero(lens []byte) int {
	for i := len(lens) - 1; i >= 0; i-- {
		if lens[i] != 0 {
			return i
		}
	}
	return -1
}
