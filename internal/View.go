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

package internal

// InputView and OutputView are the caller-owned byte regions the encoder
// borrows across calls to Eval, Refill and Flush. Neither type allocates
// its backing slice: the caller supplies it and keeps ownership, the view
// only tracks a cursor and a remaining-bytes counter. This is the fixed-
// buffer counterpart of the teacher's growable, io.Reader/Writer-backed
// BufferStream — the core here never owns or grows a buffer itself.

// InputView is the region the encoder reads fresh input from.
type InputView struct {
	Buf       []byte
	pos       int
	available int
}

// NewInputView wraps buf as an initially-empty input region; call Refill
// to hand it bytes.
func NewInputView(buf []byte) *InputView {
	return &InputView{Buf: buf}
}

// Refill tells the view that n fresh bytes are available starting at
// offset 0, resetting the read cursor.
func (this *InputView) Refill(n int) {
	this.pos = 0
	this.available += n
}

// Available returns the number of unread bytes remaining in the view.
func (this *InputView) Available() int {
	return this.available
}

// Pos returns the current read cursor.
func (this *InputView) Pos() int {
	return this.pos
}

// Peek returns the next n unread bytes without consuming them. The caller
// must ensure Available() >= n.
func (this *InputView) Peek(n int) []byte {
	return this.Buf[this.pos : this.pos+n]
}

// Advance consumes n bytes from the front of the unread region.
func (this *InputView) Advance(n int) {
	this.pos += n
	this.available -= n
}

// OutputView is the region the encoder writes compressed bytes into.
type OutputView struct {
	Buf    []byte
	pos    int
	needed int
}

// NewOutputView wraps buf as an initially-full (zero budget) output
// region; call Flush to hand it write budget.
func NewOutputView(buf []byte) *OutputView {
	return &OutputView{Buf: buf}
}

// Flush tells the view that n bytes starting at offset 0 were drained by
// the caller, resetting the write cursor and adding n to the budget. It
// reports false, without mutating any state, if n is negative or would
// raise the budget past len(Buf) — the caller is expected to treat that
// as a budget-underflow fault rather than let it surface later as an
// index-out-of-range panic from PutByte.
func (this *OutputView) Flush(n int) bool {
	if n < 0 || this.needed+n > len(this.Buf) {
		return false
	}
	this.pos = 0
	this.needed += n
	return true
}

// Needed returns the remaining write budget.
func (this *OutputView) Needed() int {
	return this.needed
}

// Contents returns the number of bytes written since the last Flush.
func (this *OutputView) Contents() int {
	return this.pos
}

// PutByte appends b to the view. The caller must ensure Needed() > 0.
func (this *OutputView) PutByte(b byte) {
	this.Buf[this.pos] = b
	this.pos++
	this.needed--
}
