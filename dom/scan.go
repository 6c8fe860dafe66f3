// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dom

import (
	"bufio"

	"github.com/bufbuild/prettyprint/internal/ring"
)

// sizeInfinity is the size of anything that can never fit on a line, such as
// a hard break. [Options.MaxWidth] must be smaller than it.
const sizeInfinity = 0xffff

// entry is a token in the printer's ring buffer, along with its size.
//
// While the scanner has not yet seen far enough ahead to know the size of a
// group or break, its size is negative: minus the value of rightTotal at the
// time it was pushed. Once the matching end (or next break) is scanned,
// adding rightTotal produces the real size.
type entry struct {
	token
	size int
}

// printer holds state for laying out a stream of tokens.
//
// The scanning half (this file) decides sizes; the printing half (print.go)
// consumes the buffer from the left and writes output.
type printer struct {
	Options
	out    *bufio.Writer
	margin margin

	buf ring.Buffer[entry]

	// Running totals of the flat widths of every token that has been printed
	// (leftTotal) and scanned (rightTotal). Their difference is the width of
	// what is sitting in buf.
	leftTotal, rightTotal int

	// Absolute buf indices of the Begin, End and Break entries whose sizes are
	// not yet known, innermost last. Entries fall off the front when the
	// buffered width grows so large that they can no longer fit.
	scanStack ring.Buffer[int]

	printStack []frame
	indents    []int

	pendingSpaces   int
	pendingNewlines int
	pendingBlank    bool
	started         bool // Whether any text was written.

	peak int // Largest value of buf.Len() seen; used by tests.
}

func newPrinter(options Options, out *bufio.Writer) *printer {
	return &printer{
		Options: options,
		out:     out,
		margin:  newMargin(options),
	}
}

// scan feeds one token to the printer.
func (p *printer) scan(t token) {
	switch t.kind {
	case tokBegin:
		p.scanBegin(t)
	case tokEnd:
		p.scanEnd(t)
	case tokBreak:
		p.scanBreak(t)
	case tokText:
		p.scanText(t)
	case tokIndent, tokDedent:
		p.scanIndent(t)
	}
}

func (p *printer) scanBegin(t token) {
	if p.scanStack.Len() == 0 {
		p.leftTotal = 1
		p.rightTotal = 1
		p.buf.Clear()
	}
	idx := p.push(entry{token: t, size: -p.rightTotal})
	p.scanStack.PushBack(idx)
}

func (p *printer) scanEnd(t token) {
	if p.scanStack.Len() == 0 {
		p.printEnd()
		return
	}
	idx := p.push(entry{token: t, size: -1})
	p.scanStack.PushBack(idx)
}

func (p *printer) scanBreak(t token) {
	if p.scanStack.Len() == 0 {
		p.leftTotal = 1
		p.rightTotal = 1
		p.buf.Clear()
	} else {
		p.checkStack(0)
	}
	idx := p.push(entry{token: t, size: -p.rightTotal})
	p.scanStack.PushBack(idx)
	p.rightTotal += t.flatWidth()
}

func (p *printer) scanText(t token) {
	if p.scanStack.Len() == 0 {
		p.printText(t)
		return
	}
	p.push(entry{token: t, size: t.flatWidth()})
	p.rightTotal += t.flatWidth()
	p.checkStream()
}

func (p *printer) scanIndent(t token) {
	if p.scanStack.Len() == 0 {
		p.printIndent(t)
		return
	}
	p.push(entry{token: t})
}

// push appends an entry to the buffer and returns its index.
func (p *printer) push(e entry) int {
	idx := p.buf.PushBack(e)
	p.peak = max(p.peak, p.buf.Len())
	return idx
}

// checkStream prints from the left of the buffer for as long as the buffered
// width does not fit on the current line.
//
// The oldest pending group or break cannot possibly fit once that happens, so
// it is given an infinite size, which lets the printer make progress.
func (p *printer) checkStream() {
	for !p.margin.fits(p.rightTotal - p.leftTotal) {
		if idx := p.scanStack.Front(); idx != nil && *idx == p.buf.First() {
			p.scanStack.PopFront()
			p.buf.Front().size = sizeInfinity
		}

		p.advanceLeft()

		if p.buf.Len() == 0 {
			break
		}
	}
}

// advanceLeft prints every entry at the front of the buffer whose size is
// known.
func (p *printer) advanceLeft() {
	for {
		e := p.buf.Front()
		if e == nil || e.size < 0 {
			return
		}
		left, _ := p.buf.PopFront()
		p.leftTotal += left.flatWidth()

		switch left.kind {
		case tokText:
			p.printText(left.token)
		case tokBreak:
			p.printBreak(left.token, left.size)
		case tokBegin:
			p.printBegin(left.token, left.size)
		case tokEnd:
			p.printEnd()
		case tokIndent, tokDedent:
			p.printIndent(left.token)
		}
	}
}

// checkStack resolves the sizes of pending entries at the top of the scan
// stack, down to and including the most recent break at the given depth.
//
// Every End passed over increases the depth and every Begin decreases it, so
// that a call with depth zero stops at the innermost still-open group.
func (p *printer) checkStack(depth int) {
	for {
		idx := p.scanStack.Back()
		if idx == nil {
			return
		}
		e := p.buf.At(*idx)

		switch e.kind {
		case tokBegin:
			if depth == 0 {
				return
			}
			p.scanStack.PopBack()
			e.size += p.rightTotal
			depth--

		case tokEnd:
			p.scanStack.PopBack()
			e.size = 1
			depth++

		case tokBreak:
			p.scanStack.PopBack()
			e.size += p.rightTotal
			if depth == 0 {
				return
			}

		default:
			panic("dom: unexpected token on scan stack")
		}
	}
}

// eof flushes everything still pending once the token stream has ended.
func (p *printer) eof() {
	if p.scanStack.Len() > 0 {
		p.checkStack(0)
		p.advanceLeft()
	}
	if p.buf.Len() > 0 || len(p.printStack) > 0 {
		malformed("document ends inside of a group")
	}
	if len(p.indents) > 0 {
		malformed("document ends inside of an indentation scope")
	}
	if p.started {
		p.out.WriteByte('\n')
	}
}
