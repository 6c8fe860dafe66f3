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
	"fmt"
	"iter"
)

const (
	tokText   tokenKind = iota // A text fragment.
	tokBreak                   // A potential line break.
	tokBegin                   // Start of a group.
	tokEnd                     // End of a group.
	tokIndent                  // Start of an indentation scope.
	tokDedent                  // End of an indentation scope.
)

// tokenKind is a kind of [token].
type tokenKind byte

// token is a single element of the linearized form of a [Document] that the
// scanner and printer operate on.
type token struct {
	text   string
	width  int // Used by tokText.
	offset int // Used by tokBreak and tokIndent.

	kind   tokenKind
	cond   Cond      // Used by tokText.
	brk    BreakKind // Used by tokBreak.
	breaks Breaks    // Used by tokBegin.
}

// flatWidth returns how many columns this token is counted as when sizing
// the groups and breaks around it.
//
// Conditional text is always counted, whether or not it will render: a
// fragment that renders only in a broken group belongs to the group that
// encloses it, but sits on the same line as whatever nested group precedes
// it, which must leave room for it.
func (t token) flatWidth() int {
	switch t.kind {
	case tokText:
		return t.width
	case tokBreak:
		return t.brk.flatWidth()
	default:
		return 0
	}
}

// renderIf returns whether a text token renders in a group in the given state.
func (t token) renderIf(cond Cond) bool {
	return t.cond == Always || t.cond == cond
}

// Format implements [fmt.Formatter].
func (t token) Format(out fmt.State, _ rune) {
	switch t.kind {
	case tokText:
		if t.cond != Always {
			fmt.Fprintf(out, "%q(if %v)", t.text, t.cond)
		} else {
			fmt.Fprintf(out, "%q", t.text)
		}
	case tokBreak:
		fmt.Fprintf(out, "<br %v%+d>", t.brk, t.offset)
	case tokBegin:
		fmt.Fprintf(out, "<%v>", t.breaks)
	case tokEnd:
		fmt.Fprint(out, "</>")
	case tokIndent:
		fmt.Fprintf(out, "<indent %+d>", t.offset)
	case tokDedent:
		fmt.Fprint(out, "</indent>")
	}
}

// tokens lowers this document into a stream of tokens.
//
// The stream is produced lazily, so the tokens of a document are never all
// materialized at once.
func (d *Document) tokens(options Options) iter.Seq[token] {
	return func(yield func(token) bool) {
		l := lowering{Options: options, yield: yield}
		l.lower(d.cursor())
	}
}

// lowering holds state for converting a [Document] into tokens.
type lowering struct {
	Options
	yield func(token) bool
	done  bool
}

func (l *lowering) emit(t token) {
	if !l.done && !l.yield(t) {
		l.done = true
	}
}

func (l *lowering) lower(cursor cursor) {
	for n, children := range cursor {
		if l.done {
			return
		}

		switch n.kind {
		case kindText:
			l.emit(token{
				kind:  tokText,
				text:  n.text,
				cond:  n.cond,
				width: l.Measure.width(n.text),
			})

		case kindBreak:
			l.emit(token{kind: tokBreak, brk: n.brk, offset: n.offset})

		case kindGroup:
			switch {
			case n.children == 0:
				// Nothing to print.
			case !n.breakable:
				// A group with no breaks can never be broken, so there is
				// nothing for the scanner to decide.
				l.lowerFlat(children)
			default:
				l.emit(token{kind: tokBegin, breaks: n.breaks})
				l.lower(children)
				l.emit(token{kind: tokEnd})
			}

		case kindIndent:
			delta := indentDelta(n, l.IndentUnit)
			if delta == 0 {
				l.lower(children)
				break
			}
			l.emit(token{kind: tokIndent, offset: delta})
			l.lower(children)
			l.emit(token{kind: tokDedent})
		}
	}
}

// lowerFlat lowers the contents of an atomic group, which is always flat.
func (l *lowering) lowerFlat(cursor cursor) {
	for n, children := range cursor {
		if l.done {
			return
		}

		switch n.kind {
		case kindText:
			if !n.renderIf(Flat) {
				continue
			}
			l.emit(token{
				kind:  tokText,
				text:  n.text,
				width: l.Measure.width(n.text),
			})
		case kindGroup, kindIndent:
			l.lowerFlat(children)
		}
	}
}

// indentDelta computes the number of columns an indentation node adds.
func indentDelta(n *node, unit int) int {
	return n.offset + n.levels*unit
}
