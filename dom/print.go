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
	"errors"
	"io"
	"strings"
)

// frame is an entry in the printer's stack of open groups.
type frame struct {
	broken bool
	breaks Breaks
}

// Print lays out a document and returns the resulting text.
//
// Returns an error if options are out of range or the document is malformed.
func Print(options Options, doc *Document) (string, error) {
	var out strings.Builder
	if err := Fprint(&out, options, doc); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Fprint lays out a document and writes the resulting text to w.
//
// Output is produced incrementally as the layout of each line is decided; at
// no point is the whole document held in memory in laid-out form. On error,
// some output may already have been written.
func Fprint(w io.Writer, options Options, doc *Document) (err error) {
	options = options.WithDefaults()
	if err := options.Validate(); err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var me *MalformedError
		if e, ok := r.(error); ok && errors.As(e, &me) {
			err = me
			return
		}
		panic(r)
	}()

	if options.HTML {
		if _, err := out.WriteString(dumpHTML(doc)); err != nil {
			return err
		}
		return out.Flush()
	}

	p := newPrinter(options, out)
	for t := range doc.tokens(options) {
		p.scan(t)
	}
	p.eof()
	return out.Flush()
}

// top returns the innermost open group. The top level behaves as a broken,
// inconsistent group.
func (p *printer) top() frame {
	if len(p.printStack) == 0 {
		return frame{broken: true, breaks: Inconsistent}
	}
	return p.printStack[len(p.printStack)-1]
}

func (p *printer) printBegin(t token, size int) {
	p.printStack = append(p.printStack, frame{
		broken: !p.margin.fits(size),
		breaks: t.breaks,
	})
}

func (p *printer) printEnd() {
	if len(p.printStack) == 0 {
		malformed("group end without a matching beginning")
	}
	p.printStack = p.printStack[:len(p.printStack)-1]
}

func (p *printer) printBreak(t token, size int) {
	top := p.top()
	fits := t.brk != BreakHard &&
		(!top.broken || (top.breaks == Inconsistent && p.margin.fits(size)))

	if fits {
		w := t.flatWidth()
		p.pendingSpaces += w
		p.margin.consume(w)
		return
	}

	p.pendingNewlines++
	if t.brk == BreakBlank {
		p.pendingBlank = true
	}

	indent := t.offset
	if n := len(p.indents); n > 0 {
		indent += p.indents[n-1]
	}
	indent = max(indent, 0)

	p.pendingSpaces = indent
	p.margin.newline(indent)
}

func (p *printer) printText(t token) {
	cond := Flat
	if p.top().broken {
		cond = Broken
	}
	if !t.renderIf(cond) {
		return
	}

	text := strings.TrimRight(t.text, " ")
	trailing := len(t.text) - len(text)
	p.margin.consume(t.width)
	if text == "" {
		p.pendingSpaces += trailing
		return
	}

	if p.started && p.pendingNewlines > 0 {
		n := p.pendingNewlines
		if p.pendingBlank {
			n = max(n, 2)
		}
		for range n {
			p.out.WriteByte('\n')
		}
	}
	p.pendingNewlines = 0
	p.pendingBlank = false

	for range p.pendingSpaces {
		p.out.WriteByte(' ')
	}
	p.out.WriteString(text)
	p.pendingSpaces = trailing
	p.started = true
}

func (p *printer) printIndent(t token) {
	if t.kind == tokDedent {
		if len(p.indents) == 0 {
			malformed("indentation scope end without a matching beginning")
		}
		p.indents = p.indents[:len(p.indents)-1]
		return
	}

	var indent int
	if n := len(p.indents); n > 0 {
		indent = p.indents[n-1]
	}
	next := indent + t.offset
	if (t.offset > 0 && next < indent) || (t.offset < 0 && next > indent) {
		malformed("indentation overflows")
	}
	p.indents = append(p.indents, next)
}
