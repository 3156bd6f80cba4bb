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
	"time"

	"github.com/go-zdeflate/zdeflate/adler32"
	"github.com/go-zdeflate/zdeflate/bitstream"
	"github.com/go-zdeflate/zdeflate/internal"
	"github.com/go-zdeflate/zdeflate/lz77"
)

var timeZero time.Time

// Result is the outcome of one Eval call: the caller's cue for what to
// do before calling Eval again.
type Result int

const (
	// Ok means the stream is complete: the trailer has been written and
	// no further Eval calls are needed.
	Ok Result = iota
	// Flush means the output view's budget is exhausted; the caller must
	// drain Contents() bytes and call Flush(n) before calling Eval again.
	Flush
	// Wait means the encoder has consumed all available input and needs
	// more; the caller must call Refill(n) (or Last(true) with n=0 to
	// close the stream) before calling Eval again.
	Wait
	// Error is terminal; the encoder will not make further progress.
	Error
)

// continuation is the state-machine label resumed on the next Eval call,
// matching §4.7's continuation-passing design: a systems-language stand-
// in for the higher-order "k" field, implemented as an enum switched on
// inside Eval instead of a heap-allocated closure.
type continuation int

const (
	cWriteHeader0 continuation = iota
	cWriteHeader1
	cRead
	cFlushingMethod
	cSyncFlush
	cEndFlush
	cNewBlock
	cWriteBlock
	cLen
	cNlen
	cWriteFlat
	cInitializeFixed
	cInitializeDynamic
	cWriteHlit
	cWriteHdist
	cWriteHclen
	cWriteTrans
	cWriteSymbols
	cWrite
	cEndOfBlock
	cAlignWriting
	cWriteCrc1
	cWriteCrc2
	cOk
	cError
)

// tokenSub enumerates the four sub-fields a Match token writes, in
// order, so a suspend between any two of them is resumable.
type tokenSub int

const (
	subLenCode tokenSub = iota
	subLenExtra
	subDistCode
	subDistExtra
	subDone
)

// Encoder is the pull-based DEFLATE/zlib encoder driver. One instance
// handles one stream; it is not safe for concurrent use (§5: single-
// threaded cooperative scheduling, eval is the only suspension point).
type Encoder struct {
	in   *internal.InputView
	out  *internal.OutputView
	sink *bitstream.Sink

	windowBits int
	mode       BlockMode
	stored     *storedState
	tok        Tokenizer
	adler      *adler32.Checksum

	lastRequested bool
	flushRequest  FlushMode

	state continuation

	// set while closing the current block to satisfy a pending flush
	// request (as opposed to a stored-buffer-full or final-block close).
	closingForFlush bool
	// set once the block being closed is the terminal one.
	closingFinal bool
	// set for the current block only: true when this block is being
	// written with the fixed Huffman tables. Equal to this.mode ==
	// FixedHuffman, except that a DynamicHuffman block with no literal
	// or match tokens at all (nothing to encode but the end-of-block
	// marker) also takes this path — building and transmitting a
	// dynamic header for a single known symbol is pure overhead.
	blockFixed bool

	dyn *dynamicScratch

	tokens      []lz77.Token
	litLenFreqs [286]int
	distFreqs   [30]int

	tokenIdx   int
	literalPos int
	tokSub     tokenSub

	treeSymIdx int
	treeSymBit bool // false = emit code, true = emit extra bits
	transIdx   int

	err *CoreError

	listener   Listener
	blockNum   int
	blockStart int64
	bytesIn    int64
	bytesOut   int64
	started    bool
	ended      bool
}

// AddListener attaches a Listener that receives an Event at each block
// boundary, flush and at stream start/end. Listeners are optional; nil
// checks are cheap enough to leave on the hot path rather than branch
// the whole encoder on whether one is attached.
func (this *Encoder) AddListener(l Listener) {
	this.listener = l
}

func (this *Encoder) notify(evt *Event) {
	if this.listener != nil {
		this.listener.ProcessEvent(evt)
	}
}

func (this *Encoder) blockMode() BlockMode {
	if this.blockFixed {
		return FixedHuffman
	}
	return this.mode
}

func (this *Encoder) endBlock() {
	this.notify(NewEvent(EVT_BLOCK_END, this.blockNum, this.blockMode(), this.bytesIn-this.blockStart, timeZero))
	this.blockNum++
	this.blockStart = this.bytesIn
}

// New creates an Encoder over input/output views the caller owns,
// compressing with the given window size and initial block mode.
func New(windowBits int, mode BlockMode, in *internal.InputView, out *internal.OutputView) *Encoder {
	if windowBits < 8 || windowBits > 15 {
		panic("zdeflate: windowBits out of range")
	}

	e := &Encoder{
		in:         in,
		out:        out,
		sink:       bitstream.New(out),
		windowBits: windowBits,
		mode:       mode,
		adler:      adler32.New(),
		state:      cWriteHeader0,
		dyn:        newDynamicScratch(),
	}

	if mode == Stored {
		e.stored = newStoredState(windowBits)
	} else {
		e.tok = lz77.New(windowBits)
	}

	return e
}

// Contents returns the number of bytes written to the output view since
// the last Flush call.
func (this *Encoder) Contents() int {
	return this.out.Contents()
}

// Flush tells the encoder that n bytes of output were drained by the
// caller; resets the write cursor and adds n to the write budget. An n
// that would leave the output view with more write budget than its
// buffer holds is caller misuse (§7's BudgetUnderflow): instead of
// silently corrupting the write budget and panicking later from inside
// PutByte, it's latched here and returned as an Error from the next Eval
// call.
func (this *Encoder) Flush(n int) {
	drained := this.out.Contents()
	if !this.out.Flush(n) {
		this.latchFault(budgetUnderflow("zdeflate: Flush(%d) exceeds the output buffer's capacity (%d bytes)", n, len(this.out.Buf)))
		return
	}
	this.bytesOut += int64(drained)
}

// Refill tells the encoder that n fresh bytes are available at the
// input view; resets the read cursor and adds n to the read budget.
func (this *Encoder) Refill(n int) {
	this.in.Refill(n)
}

// Last marks the next refill as terminal: once its bytes are consumed,
// the encoder closes the current block with BFINAL=1 and appends the
// Adler-32 trailer.
func (this *Encoder) Last(last bool) {
	this.lastRequested = last
}

// RequestFlush asks the encoder to close the current block and emit the
// appropriate sentinel at the next convenient point, per mode. A mode
// outside the FlushMode range is caller misuse; it's latched and
// surfaced as an Error from the next Eval call rather than accepted
// silently.
func (this *Encoder) RequestFlush(mode FlushMode) {
	if mode < NoFlush || mode > FullFlush {
		this.latchFault(invalidParam("zdeflate: RequestFlush(%d) is not a valid FlushMode", int(mode)))
		return
	}

	this.flushRequest = mode
}

// Err returns the fault that drove Eval to return Error, or nil.
func (this *Encoder) Err() *CoreError {
	return this.err
}

func (this *Encoder) fail(err *CoreError) Result {
	this.latchFault(err)
	return Error
}

// latchFault records a fault for the next Eval call to surface. It
// exists for call sites (Flush, RequestFlush) that learn of a caller
// misuse outside of Eval itself and so have no Result to return it
// through right away.
func (this *Encoder) latchFault(err *CoreError) {
	this.err = err
	this.state = cError
}

// Eval runs the state machine until it must suspend (Flush, Wait),
// fails (Error) or completes (Ok). Every branch either makes forward
// progress or returns without mutating state beyond the continuation
// label, per the suspension contract in §5.
func (this *Encoder) Eval() Result {
	for {
		switch this.state {

		case cWriteHeader0:
			if !this.started {
				this.started = true
				this.notify(NewEventFromString(EVT_COMPRESSION_START, -1, "", timeZero))
			}

			if !this.sink.NeedBytes(1) {
				return Flush
			}
			this.sink.PutByte(this.cmf())
			this.state = cWriteHeader1

		case cWriteHeader1:
			if !this.sink.NeedBytes(1) {
				return Flush
			}
			this.sink.PutByte(this.flg())
			this.state = cRead

		case cRead:
			if this.flushRequest != NoFlush {
				this.state = cFlushingMethod
				continue
			}

			if this.in.Available() == 0 {
				if this.lastRequested {
					this.state = cEndFlush
					continue
				}
				return Wait
			}

			this.consumeInput()

			if this.mode == Stored && this.stored.full() {
				this.closingForFlush = false
				this.closingFinal = false
				this.state = cNewBlock
			}

		case cFlushingMethod:
			if this.currentBlockNonEmpty() {
				this.closingForFlush = true
				this.closingFinal = false
				this.state = cNewBlock
			} else {
				this.state = cSyncFlush
			}

		case cSyncFlush:
			if !this.writeEmptyStoredBlock() {
				return Flush
			}

			if this.flushRequest == FullFlush && this.tok != nil {
				this.tok.ResetDictionary()
			}

			this.notify(NewEventFromString(EVT_FLUSH, -1, "", timeZero))
			this.flushRequest = NoFlush
			this.closingForFlush = false
			this.state = cRead

		case cEndFlush:
			this.closingForFlush = false
			this.closingFinal = true
			this.state = cNewBlock

		case cNewBlock:
			this.tokenIdx = 0
			this.literalPos = 0
			this.tokSub = subLenCode
			this.treeSymIdx = 0
			this.treeSymBit = false
			this.transIdx = 0

			if this.mode != Stored {
				this.blockFixed = this.mode == FixedHuffman || this.tok.IsEmpty()
			}

			this.notify(NewEvent(EVT_BLOCK_START, this.blockNum, this.blockMode(), this.bytesIn-this.blockStart, timeZero))

			this.state = cWriteBlock

		case cWriteBlock:
			if !this.canAddBits(3) {
				return Flush
			}

			bfinal := uint32(0)
			if this.closingFinal {
				bfinal = 1
			}

			this.sink.AddBits(bfinal|(uint32(this.btype())<<1), 3)

			switch {
			case this.mode == Stored:
				this.state = cLen
			case this.blockFixed:
				this.tokens, this.litLenFreqs, this.distFreqs = this.tok.Finish()
				this.state = cInitializeFixed
			default:
				this.tokens, this.litLenFreqs, this.distFreqs = this.tok.Finish()
				this.state = cInitializeDynamic
			}

		case cLen:
			if this.sink.BitCount() != 0 {
				if !this.sink.NeedBytes(1) {
					return Flush
				}
				this.sink.FlushToByte()
			}
			if !this.sink.NeedBytes(2) {
				return Flush
			}
			this.sink.PutShort(uint16(this.stored.filled))
			this.state = cNlen

		case cNlen:
			if !this.sink.NeedBytes(2) {
				return Flush
			}
			this.sink.PutShort(^uint16(this.stored.filled))
			this.state = cWriteFlat

		case cWriteFlat:
			for this.literalPos < this.stored.filled {
				if !this.sink.NeedBytes(1) {
					return Flush
				}
				this.sink.PutByte(this.stored.buffer[this.literalPos])
				this.literalPos++
			}

			this.stored.reset()
			this.endBlock()

			if this.closingFinal {
				this.state = cAlignWriting
			} else if this.closingForFlush {
				this.state = cSyncFlush
			} else {
				this.state = cRead
			}

		case cInitializeFixed:
			this.state = cWrite

		case cInitializeDynamic:
			if err := this.buildDynamicTables(); err != nil {
				return this.fail(err)
			}
			this.state = cWriteHlit

		case cWriteHlit:
			if !this.canAddBits(5) {
				return Flush
			}
			this.sink.AddBits(uint32(this.dyn.hlit-257), 5)
			this.state = cWriteHdist

		case cWriteHdist:
			if !this.canAddBits(5) {
				return Flush
			}
			this.sink.AddBits(uint32(this.dyn.hdist-1), 5)
			this.state = cWriteHclen

		case cWriteHclen:
			if !this.canAddBits(4) {
				return Flush
			}
			this.sink.AddBits(uint32(this.dyn.hclen-4), 4)
			this.state = cWriteTrans

		case cWriteTrans:
			for this.transIdx < this.dyn.hclen {
				if !this.canAddBits(3) {
					return Flush
				}
				this.sink.AddBits(uint32(this.dyn.transLengths[this.transIdx]), 3)
				this.transIdx++
			}
			this.state = cWriteSymbols

		case cWriteSymbols:
			if !this.writeTreeSymbols() {
				return Flush
			}
			this.state = cWrite

		case cWrite:
			if !this.writeTokens() {
				return Flush
			}
			this.state = cEndOfBlock

		case cEndOfBlock:
			if !this.writeLitLenSymbol(256) {
				return Flush
			}

			this.endBlock()

			if this.closingFinal {
				this.state = cAlignWriting
			} else if this.closingForFlush {
				this.state = cSyncFlush
			} else {
				this.state = cRead
			}

		case cAlignWriting:
			if this.sink.BitCount() != 0 {
				if !this.sink.NeedBytes(1) {
					return Flush
				}
				this.sink.FlushToByte()
			}
			this.state = cWriteCrc1

		case cWriteCrc1:
			if !this.sink.NeedBytes(2) {
				return Flush
			}
			hi, _ := this.adler.Finalize()
			this.sink.PutShortMSB(hi)
			this.state = cWriteCrc2

		case cWriteCrc2:
			if !this.sink.NeedBytes(2) {
				return Flush
			}
			_, lo := this.adler.Finalize()
			this.sink.PutShortMSB(lo)
			this.state = cOk

		case cOk:
			if !this.ended {
				this.ended = true
				this.notify(NewEvent(EVT_COMPRESSION_END, -1, this.mode, this.bytesOut+int64(this.out.Contents()), timeZero))
			}
			return Ok

		case cError:
			return Error
		}
	}
}

// Compress is the convenience orchestration §6 describes: it drives
// refillFn/flushFn around Eval until the stream reaches Ok or Error.
func (this *Encoder) Compress(refillFn func(buf []byte) (n int, last bool), flushFn func(buf []byte) int) error {
	for {
		result := this.Eval()

		switch result {
		case Ok:
			if n := this.Contents(); n > 0 {
				if written := flushFn(this.out.Buf[:n]); written != n {
					return invalidState("zdeflate: flush callback drained %d of %d bytes", written, n)
				}
			}
			return nil
		case Error:
			return this.err
		case Flush:
			n := this.Contents()
			written := flushFn(this.out.Buf[:n])
			if written != n {
				return invalidState("zdeflate: flush callback drained %d of %d bytes", written, n)
			}
			// Top the budget back up to the full buffer, counting what the
			// view still had unused.
			this.Flush(len(this.out.Buf) - this.out.Needed())
		case Wait:
			n, last := refillFn(this.in.Buf)
			if last {
				this.Last(true)
			}
			this.Refill(n)
		}
	}
}

func (this *Encoder) consumeInput() {
	n := this.in.Available()

	if this.mode == Stored {
		room := this.stored.capacity() - this.stored.filled
		if n > room {
			n = room
		}
	}

	if n == 0 {
		return
	}

	data := this.in.Peek(n)
	this.adler.Update(data, 0, len(data))
	this.bytesIn += int64(len(data))

	if this.mode == Stored {
		this.stored.append(data)
	} else {
		this.tok.Ingest(data)
	}

	this.in.Advance(n)
}

func (this *Encoder) currentBlockNonEmpty() bool {
	if this.mode == Stored {
		return this.stored.filled > 0
	}

	return !this.tok.IsEmpty()
}

// writeEmptyStoredBlock emits the synchronous-closure sentinel
// `00 00 00 00 FF FF`: a non-final stored-block header, byte alignment,
// then LEN=0, NLEN=0xFFFF. It does not mutate the continuation label
// itself; callers retry the whole call on insufficient budget.
func (this *Encoder) writeEmptyStoredBlock() bool {
	// Conservative worst case: the 3-bit header and the alignment pad
	// each drain at most one already-pending byte, plus the four literal
	// bytes of LEN/NLEN — six bytes of budget covers every case without
	// ever writing part of the sentinel and stalling mid-field.
	if !this.sink.NeedBytes(6) {
		return false
	}

	this.sink.AddBits(0, 3) // BFINAL=0, BTYPE=00
	this.sink.FlushToByte()
	this.sink.PutShort(0)
	this.sink.PutShort(0xFFFF)
	return true
}

func (this *Encoder) cmf() byte {
	return 0x08 | byte((this.windowBits-8)<<4)
}

func (this *Encoder) flg() byte {
	const flevel = 2 << 6
	header := uint16(this.cmf())<<8 | flevel
	fcheck := (31 - (header % 31)) % 31
	return byte(flevel) | byte(fcheck)
}

func (this *Encoder) btype() int {
	switch {
	case this.mode == Stored:
		return 0
	case this.blockFixed:
		return 1
	default:
		return 2
	}
}

func (this *Encoder) canAddBits(n uint) bool {
	return this.sink.NeedBytes(this.sink.NeedBits(n))
}
