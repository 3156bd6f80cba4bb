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

// Package bitstream implements the variable-length bit accumulator the
// DEFLATE block emitters pack their output through. It is grounded on the
// teacher's bitstream/DefaultOutputBitStream.go (same accumulator-register
// design, same panic-on-misuse discipline) but inverted to DEFLATE's
// LSB-first-within-a-byte bit order and rebuilt around the spec's
// caller-owned output view instead of an io.WriteCloser.
package bitstream

import (
	"github.com/go-zdeflate/zdeflate/internal"
)

// Sink accumulates bits LSB-first and drains whole bytes into an
// OutputView as they complete. It never allocates; the caller supplies
// the view and must guarantee enough write budget before every call (the
// suspension contract lives one level up, in the encoder driver).
type Sink struct {
	out       *internal.OutputView
	bitBuffer uint32
	bitCount  uint
}

// New creates a Sink writing into out.
func New(out *internal.OutputView) *Sink {
	return &Sink{out: out}
}

// Reset rebinds the sink to a fresh output view without touching the
// pending bit buffer — used when the caller swaps in a newly-flushed
// view between Eval calls.
func (this *Sink) Reset(out *internal.OutputView) {
	this.out = out
}

// BitCount returns the number of bits pending in the accumulator (always
// < 8 between block emissions, per invariant 1).
func (this *Sink) BitCount() uint {
	return this.bitCount
}

// NeedBytes reports whether the output view currently holds enough budget
// to accept n more whole bytes. Callers must check this (or the
// byte-equivalent of a partial accumulator flush) before writing.
func (this *Sink) NeedBytes(n int) bool {
	return this.out.Needed() >= n
}

// AddBit appends the least significant bit of b.
func (this *Sink) AddBit(b int) {
	this.AddBits(uint32(b&1), 1)
}

// AddBits appends the low n bits of code to the stream, least-significant
// bit first. n must be in (0, 16]. Panics if the output view lacks the
// budget to drain the bytes this call produces — callers must verify
// budget first (see NeedBits).
func (this *Sink) AddBits(code uint32, n uint) {
	if n == 0 || n > 16 {
		panic("bitstream: AddBits n must be in (0, 16]")
	}

	this.bitBuffer |= (code & ((1 << n) - 1)) << this.bitCount
	this.bitCount += n

	for this.bitCount >= 8 {
		this.out.PutByte(byte(this.bitBuffer))
		this.bitBuffer >>= 8
		this.bitCount -= 8
	}
}

// NeedBits reports the number of whole bytes AddBits(_, n) would need to
// drain given the bits already pending, so the driver can check output
// budget before calling AddBits.
func (this *Sink) NeedBits(n uint) int {
	return int(this.bitCount+n) / 8
}

// FlushToByte pads the accumulator with zero bits up to the next byte
// boundary and drains it. A no-op if the accumulator is already empty.
func (this *Sink) FlushToByte() {
	if this.bitCount == 0 {
		return
	}

	this.out.PutByte(byte(this.bitBuffer))
	this.bitBuffer = 0
	this.bitCount = 0
}

// PutByte writes a single raw byte. Callable only when the accumulator is
// byte-aligned (BitCount() == 0); panics otherwise.
func (this *Sink) PutByte(b byte) {
	this.mustBeAligned()
	this.out.PutByte(b)
}

// PutShort writes v as two raw bytes, little-endian. Callable only when
// byte-aligned.
func (this *Sink) PutShort(v uint16) {
	this.mustBeAligned()
	this.out.PutByte(byte(v))
	this.out.PutByte(byte(v >> 8))
}

// PutShortMSB writes v as two raw bytes, big-endian. Callable only when
// byte-aligned.
func (this *Sink) PutShortMSB(v uint16) {
	this.mustBeAligned()
	this.out.PutByte(byte(v >> 8))
	this.out.PutByte(byte(v))
}

func (this *Sink) mustBeAligned() {
	if this.bitCount != 0 {
		panic("bitstream: byte-aligned operation called with a non-empty bit buffer")
	}
}
