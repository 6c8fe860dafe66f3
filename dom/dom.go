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
	"iter"
)

const (
	kindNone kind = iota //nolint:unused

	kindText   // Ordinary text.
	kindBreak  // See [Break].
	kindGroup  // See [Group].
	kindIndent // See [IndentBy].
)

// kind is a kind of [node].
type kind byte

// Document is a tree of formatting nodes, ready to be printed.
//
// A Document is built once with [New] and is immutable afterwards, so it may
// be printed any number of times, concurrently, with different [Options].
type Document struct {
	nodes  []node
	breaks int // Number of break nodes in nodes.
}

// cursor is a recursive iterator over a slice of nodes.
//
// See [Document.cursor].
type cursor iter.Seq2[*node, cursor]

// node is a single node within a [Document].
//
// The tree is stored in pre-order: a node is followed by its children, and
// children records how many of the nodes that follow belong to it.
type node struct {
	text string

	kind   kind
	cond   Cond      // Used by kindText.
	brk    BreakKind // Used by kindBreak.
	breaks Breaks    // Used by kindGroup.

	// For kindBreak, the indentation offset of a taken break. For kindIndent,
	// the delta in columns.
	offset int
	levels int // Used by kindIndent; multiples of Options.IndentUnit.

	breakable bool // Used by kindGroup.
	children  int
}

// New builds a new document out of the tags pushed by content.
func New(content func(push Sink)) *Document {
	b := new(builder)
	if content != nil {
		content(b.add)
	}
	return &Document{nodes: b.nodes, breaks: b.breaks}
}

// Len returns the number of nodes in this document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.nodes)
}

// Tag returns a tag that splices the contents of this document into another
// document.
func (d *Document) Tag() Tag {
	return func(b *builder) {
		if d == nil {
			return
		}
		b.nodes = append(b.nodes, d.nodes...)
		b.breaks += d.breaks
	}
}

// String returns a pseudo-HTML rendering of this document's structure.
func (d *Document) String() string {
	return dumpHTML(d)
}

// cursor returns an iterator over the top-level nodes of this document.
func (d *Document) cursor() cursor {
	if d == nil {
		return func(func(*node, cursor) bool) {}
	}
	return nodes(d.nodes).cursor()
}

type nodes []node

// cursor returns an iterator over the top-level nodes of a slice.
//
// The iterator yields nodes along with another iterator over that node's
// children.
func (ns nodes) cursor() cursor {
	return func(yield func(*node, cursor) bool) {
		for i := 0; i < len(ns); i++ {
			n := &ns[i]
			children := ns[i+1 : i+n.children+1]
			i += len(children)

			if !yield(n, children.cursor()) {
				return
			}
		}
	}
}

// renderIf returns whether a text node renders in a group in the given state.
func (n *node) renderIf(cond Cond) bool {
	return n.cond == Always || n.cond == cond
}

// builder accumulates nodes for [New].
type builder struct {
	nodes  []node
	breaks int
}

// add applies a set of tag funcs to this builder.
func (b *builder) add(tags ...Tag) {
	for _, tag := range tags {
		if tag != nil {
			tag(b)
		}
	}
}

// push appends a node with children.
func (b *builder) push(n node, body func(Sink)) {
	b.nodes = append(b.nodes, n)
	if n.kind == kindBreak {
		b.breaks++
	}

	if body != nil {
		idx := len(b.nodes)
		breaks := b.breaks
		body(b.add)

		parent := &b.nodes[idx-1]
		parent.children = len(b.nodes) - idx
		if parent.kind == kindGroup {
			parent.breakable = b.breaks > breaks
		}
	}
}
