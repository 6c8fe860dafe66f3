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

// Package dom is a line-breaking layout engine for source code.
//
// A producer, typically an AST visitor, describes the text it wants printed
// as a [Document]: a tree of text fragments, breaks, groups and indentation
// scopes. [Print] then decides which breaks become newlines so that, wherever
// possible, no line exceeds [Options.MaxWidth].
//
// The algorithm is Oppen's pretty printer. The document is lowered into a
// stream of tokens; a scanner runs ahead of a printer, computing for every
// group and break the width it would occupy if left unbroken, and the printer
// commits to a decision as soon as that width is known or as soon as it
// exceeds the space left on the line. Only a window of tokens about as wide
// as a line is ever buffered, regardless of the document's length.
//
// The [Group] tag controls how breaks are chosen. In a [Consistent] group,
// either every break directly inside it is taken or none is. In an
// [Inconsistent] group, each break is taken only if the text up to the next
// break would not fit on the current line.
package dom

import (
	"strings"
)

// DefaultMaxWidth is the line width used when [Options.MaxWidth] is zero.
const DefaultMaxWidth = 80

// Render builds a document from content and prints it.
//
// Panics with a [*MalformedError] if the document is malformed.
func Render(options Options, content func(push Sink)) string {
	out, err := Print(options, New(content))
	if err != nil {
		panic(err)
	}
	return out
}

// Options specifies configuration for [Print].
//
// Options is passed by value into each print job; the engine keeps no global
// state.
type Options struct {
	// The maximum number of columns to render before triggering a break.
	// A value of zero selects [DefaultMaxWidth].
	MaxWidth int

	// The number of columns that each level of [Indent] adds. Unlike the
	// other options, zero is a meaningful value: Indent then has no effect.
	IndentUnit int

	// Every line is allowed at least this many columns, no matter how deeply
	// it is indented. Zero means that the space on a line is always exactly
	// MaxWidth minus the line's indentation.
	MinSpace int

	// How the width of text is measured. Defaults to [MeasureGraphemes].
	Measure Measure

	// If true, prints the structure of the document in an HTML-like format
	// instead of laying it out. Intended for debugging.
	HTML bool
}

// WithDefaults replaces any unset (read: zero value) fields of an Options which
// specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Measure == MeasureDefault {
		o.Measure = MeasureGraphemes
	}
	return o
}

// Validate checks that every field of o is within range.
func (o Options) Validate() error {
	switch {
	case o.MaxWidth < 0:
		return &OptionError{Field: "MaxWidth", Value: o.MaxWidth, Reason: "must be positive"}
	case o.MaxWidth >= sizeInfinity:
		return &OptionError{Field: "MaxWidth", Value: o.MaxWidth, Reason: "is too large"}
	case o.IndentUnit < 0:
		return &OptionError{Field: "IndentUnit", Value: o.IndentUnit, Reason: "must not be negative"}
	case o.MinSpace < 0:
		return &OptionError{Field: "MinSpace", Value: o.MinSpace, Reason: "must not be negative"}
	case o.Measure > MeasureEastAsian:
		return &OptionError{Field: "Measure", Value: int(o.Measure), Reason: "is not a known measure"}
	}
	return nil
}

// Tag is data passed to a rendering function.
//
// The various factory functions in this package can be used to construct tags.
// See their documentation for more information on what tags are available.
//
// The nil tag is equivalent to Text("").
type Tag func(*builder)

// Sink is a place to append tags. The given tags will be appended to whatever
// context the sink was created for.
//
// Many functions in this package take a func(push Sink) as an argument. This
// callback is executed in the context of that tag, and must not be used after
// the callback returns.
type Sink func(...Tag)

const (
	Always Cond = iota
	Flat        // Render only in a flat group.
	Broken      // Render only in a broken group.
)

// Cond is a condition for a tag.
//
// Text can be conditioned on whether the group it is rendered in ends up
// flat or broken.
type Cond byte

// String implements [fmt.Stringer].
func (c Cond) String() string {
	switch c {
	case Always:
		return "always"
	case Flat:
		return "flat"
	case Broken:
		return "broken"
	default:
		return "cond(?)"
	}
}

const (
	Consistent   Breaks = iota // All breaks are taken, or none.
	Inconsistent               // Each break is taken only when needed.
)

// Breaks is the breaking discipline of a [Group].
type Breaks byte

// String implements [fmt.Stringer].
func (b Breaks) String() string {
	switch b {
	case Consistent:
		return "consistent"
	case Inconsistent:
		return "inconsistent"
	default:
		return "breaks(?)"
	}
}

const (
	BreakSpace BreakKind = iota // A single space when not taken.
	BreakNone                   // Nothing when not taken.
	BreakBlank                  // Nothing when not taken; a blank line when taken.
	BreakHard                   // Always taken.
)

// BreakKind is the kind of a [Break].
type BreakKind byte

// String implements [fmt.Stringer].
func (k BreakKind) String() string {
	switch k {
	case BreakSpace:
		return "space"
	case BreakNone:
		return "none"
	case BreakBlank:
		return "blank"
	case BreakHard:
		return "hard"
	default:
		return "break(?)"
	}
}

// flatWidth is the number of columns a break occupies when not taken.
func (k BreakKind) flatWidth() int {
	switch k {
	case BreakSpace:
		return 1
	case BreakHard:
		return sizeInfinity
	default:
		return 0
	}
}

// Text returns a tag that emits its text exactly.
//
// Text must not contain a newline; use a [Break] instead. Trailing spaces are
// emitted only if more text follows on the same line.
func Text(text string) Tag {
	return TextIf(Always, text)
}

// TextIf is like [Text], but with a condition attached.
//
// If the condition does not hold for the innermost [Group] containing this
// tag, it expands to nothing. The outermost level is treated as broken.
//
// This is useful for punctuation that should only appear in one layout, such
// as a trailing comma that is only printed when a list is broken over
// several lines.
func TextIf(cond Cond, text string) Tag {
	if strings.ContainsRune(text, '\n') {
		malformed("text %q contains a newline", text)
	}
	return func(b *builder) {
		if text == "" {
			return
		}
		b.push(node{kind: kindText, text: text, cond: cond}, nil)
	}
}

// Break returns a tag for a point at which the printer may start a new line.
//
// If the break is taken, the new line is indented by offset columns more than
// the indentation of the surrounding [IndentBy] scopes. The offset may be
// negative; indentation never goes below zero.
func Break(kind BreakKind, offset int) Tag {
	return func(b *builder) {
		b.push(node{kind: kindBreak, brk: kind, offset: offset}, nil)
	}
}

// Space is a [BreakSpace] break: one space if not taken.
func Space(offset int) Tag { return Break(BreakSpace, offset) }

// Soft is a [BreakNone] break: nothing if not taken.
func Soft(offset int) Tag { return Break(BreakNone, offset) }

// Blank is a [BreakBlank] break: nothing if not taken, but followed by a blank
// line if taken.
func Blank(offset int) Tag { return Break(BreakBlank, offset) }

// Hard is a [BreakHard] break, which is always taken. Any group containing a
// hard break, no matter how deeply, is broken.
func Hard() Tag { return Break(BreakHard, 0) }

// Group returns a tag that groups together a collection of child tags.
//
// Each group is printed either flat, with none of its breaks taken, or
// broken. A group is broken when its flat width does not fit in the space
// remaining on the current line, which is always the case if it contains a
// [Hard] break. What a broken group does with its breaks is determined by
// breaks.
//
// A group that contains no breaks at all is atomic: it is printed as-is.
func Group(breaks Breaks, content func(push Sink)) Tag {
	return func(b *builder) {
		b.push(node{kind: kindGroup, breaks: breaks}, content)
	}
}

// Indent increases the indentation of all of the given tags by one
// [Options.IndentUnit].
//
// The indentation is applied to every line started by a break inside of
// content; it has no effect on breaks that are not taken.
func Indent(content func(push Sink)) Tag {
	return func(b *builder) {
		b.push(node{kind: kindIndent, levels: 1}, content)
	}
}

// IndentBy is like [Indent], but indents by an explicit number of columns.
// The delta may be negative to outdent; indentation never goes below zero.
func IndentBy(columns int, content func(push Sink)) Tag {
	return func(b *builder) {
		if columns == 0 {
			if content != nil {
				content(b.add)
			}
			return
		}
		b.push(node{kind: kindIndent, offset: columns}, content)
	}
}

// Tags returns content that pushes the given tags, for use with [Group],
// [Indent] and friends.
func Tags(tags ...Tag) func(push Sink) {
	return func(push Sink) { push(tags...) }
}

// Join returns a tag that pushes each of tags, separated by sep.
func Join(sep Tag, tags ...Tag) Tag {
	return func(b *builder) {
		for i, tag := range tags {
			if i > 0 {
				b.add(sep)
			}
			b.add(tag)
		}
	}
}
