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

// Package tables holds the static DEFLATE tables (RFC 1951 §3.2.5) shared
// by the LZ77 tokenizer (frequency bookkeeping) and the block emitter
// (length/distance-code and extra-bits emission), kept in their own leaf
// package so both can import it without creating a cycle through the root
// encoder package.
package tables

// ExtraLengthBits holds the number of extra bits following each of the 29
// length codes (257-285).
var ExtraLengthBits = [29]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// BaseLength holds the smallest match length each of the 29 length codes
// represents.
var BaseLength = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

// ExtraDistBits holds the number of extra bits following each of the 30
// distance codes.
var ExtraDistBits = [30]byte{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// BaseDist holds the smallest distance each of the 30 distance codes
// represents.
var BaseDist = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

// lengthCodeTable maps a match length in [3,257] to its length-code
// index (0-27). Indexed directly by length for length < 256, and by
// 256+(length>>7) for length >= 256 — the same two-region split the
// distance table uses, which collapses lengths 256 and 257 onto the
// single slot their shared code (27) covers. Length 258 has a code of
// its own (28, no extra bits), which LengthCode returns without
// consulting the table.
var lengthCodeTable [259]byte

// distanceCodeTable maps a distance in [1,32768] to its distance-code
// index (0-29), using the same two-region split as lengthCodeTable, with
// the large-distance region indexed by (distance-1)>>7.
var distanceCodeTable [512]byte

func init() {
	length := 0

	for code := 0; code < len(BaseLength)-1; code++ {
		for n := 0; n < (1 << ExtraLengthBits[code]); n++ {
			matchLen := 3 + length
			setLengthCode(matchLen, byte(code))
			length++
		}
	}

	dist := 0

	for code := 0; code < 16; code++ {
		for n := 0; n < (1 << ExtraDistBits[code]); n++ {
			distanceCodeTable[dist] = byte(code)
			dist++
		}
	}

	dist >>= 7

	for code := 16; code < len(BaseDist); code++ {
		for n := 0; n < (1 << (ExtraDistBits[code] - 7)); n++ {
			distanceCodeTable[256+dist] = byte(code)
			dist++
		}
	}
}

func setLengthCode(matchLen int, code byte) {
	if matchLen < 256 {
		lengthCodeTable[matchLen] = code
	} else {
		lengthCodeTable[256+(matchLen>>7)] = code
	}
}

// LengthCode returns the length-code index (0-28) for a match length in
// [3,258].
func LengthCode(length int) int {
	if length == 258 {
		return len(BaseLength) - 1
	}

	if length < 256 {
		return int(lengthCodeTable[length])
	}

	return int(lengthCodeTable[256+(length>>7)])
}

// DistanceCode returns the distance-code index (0-29) for a distance in
// [1,32768].
func DistanceCode(dist int) int {
	d := dist - 1

	if d < 256 {
		return int(distanceCodeTable[d])
	}

	return int(distanceCodeTable[256+(d>>7)])
}

// FixedLitLenLengths and FixedDistLengths are the code-length vectors
// RFC 1951 §3.2.6 assigns for BTYPE=01 (fixed Huffman) blocks.
var FixedLitLenLengths = buildFixedLitLenLengths()
var FixedDistLengths = buildFixedDistLengths()

func buildFixedLitLenLengths() []byte {
	lens := make([]byte, 288)

	for i := 0; i <= 143; i++ {
		lens[i] = 8
	}

	for i := 144; i <= 255; i++ {
		lens[i] = 9
	}

	for i := 256; i <= 279; i++ {
		lens[i] = 7
	}

	for i := 280; i <= 287; i++ {
		lens[i] = 8
	}

	return lens
}

func buildFixedDistLengths() []byte {
	lens := make([]byte, 30)

	for i := range lens {
		lens[i] = 5
	}

	return lens
}
