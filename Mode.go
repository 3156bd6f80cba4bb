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

import "github.com/go-zdeflate/zdeflate/huffman"

// BlockMode selects which of the three disjoint block encodings the
// encoder drives. The three variants carry different state (a raw
// buffer for Stored, nothing but the shared LZ77 tokenizer for the two
// Huffman modes) so it is modeled as an explicit tag plus the one state
// blob that tag makes valid, rather than as an interface with dispatch
// methods — there is no behavior attached to the state itself, only data
// the driver in Encoder.go switches on.
type BlockMode int

const (
	// Stored emits BTYPE=00 blocks: raw bytes, no LZ77, no Huffman coding.
	Stored BlockMode = iota
	// FixedHuffman emits BTYPE=01 blocks using the standard fixed tables.
	FixedHuffman
	// DynamicHuffman emits BTYPE=10 blocks using per-block computed tables.
	DynamicHuffman
)

// storedState is the state Stored mode carries: a raw accumulation
// buffer that auto-closes into a block once it reaches twice the window
// size, per §4.7's block-selection rule.
type storedState struct {
	buffer []byte
	filled int
}

func newStoredState(windowBits int) *storedState {
	return &storedState{buffer: make([]byte, 2*(1<<uint(windowBits)))}
}

func (this *storedState) capacity() int {
	return len(this.buffer)
}

func (this *storedState) full() bool {
	return this.filled == len(this.buffer)
}

// append copies as much of data as fits before the buffer is full,
// returning the number of bytes consumed.
func (this *storedState) append(data []byte) int {
	n := copy(this.buffer[this.filled:], data)
	this.filled += n
	return n
}

func (this *storedState) reset() {
	this.filled = 0
}

// dynamicScratch holds the per-block working tables a dynamic-Huffman
// block needs: the two code tables LZ77 frequencies feed, the
// code-length tree built over their concatenated length vector, and the
// RLE-compressed transmission stream for that tree. Allocated once and
// reused, zero-filled, per block, per §9's "shared scratch arrays" note.
type dynamicScratch struct {
	litLenLengths [286]byte
	litLenCodes   [286]uint16
	distLengths   [30]byte
	distCodes     [30]uint16

	// treeSymbols is the C4 output: the combined lit/len+dist length
	// vector condensed into the 0-18 code-length alphabet.
	treeSymbols []huffman.Symbol

	// treeLengths/treeCodes are the code-length alphabet's own canonical
	// code, indexed by code-length symbol (0-18).
	treeLengths [19]byte
	treeCodes   [19]uint16

	// transLengths is treeLengths permuted into the fixed transmission
	// order clOrder defines, truncated to hclen entries when emitted.
	transLengths [19]byte

	hlit  int
	hdist int
	hclen int
}

func newDynamicScratch() *dynamicScratch {
	return &dynamicScratch{}
}

func (this *dynamicScratch) reset() {
	this.litLenLengths = [286]byte{}
	this.litLenCodes = [286]uint16{}
	this.distLengths = [30]byte{}
	this.distCodes = [30]uint16{}
	this.treeSymbols = this.treeSymbols[:0]
	this.treeLengths = [19]byte{}
	this.treeCodes = [19]uint16{}
	this.transLengths = [19]byte{}
	this.hlit = 0
	this.hdist = 0
	this.hclen = 0
}

// clOrder is the fixed permutation RFC 1951 §3.2.7 transmits code-length
// code lengths in.
var clOrder = [19]byte{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}
