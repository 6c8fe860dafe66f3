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

// Package printer renders a [syntax.File] as formatted source text.
//
// The printer only decides what may be broken and how; the layout itself is
// chosen by [dom].
package printer

import (
	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/syntax"
)

// Options configures [PrintFile].
//
// The zero value prints without indentation; [DefaultOptions] returns the
// conventional settings.
type Options struct {
	// The maximum line width. Zero selects [dom.DefaultMaxWidth].
	MaxWidth int
	// The number of spaces per level of indentation.
	IndentUnit int
	// See [dom.Options.MinSpace].
	MinSpace int
	// How text width is measured.
	Measure dom.Measure
}

// DefaultOptions returns the options used when nothing is configured: lines
// of [dom.DefaultMaxWidth] columns, indented by four spaces per level.
func DefaultOptions() Options {
	return Options{
		MaxWidth:   dom.DefaultMaxWidth,
		IndentUnit: 4,
	}
}

func (o Options) domOptions() dom.Options {
	return dom.Options{
		MaxWidth:   o.MaxWidth,
		IndentUnit: o.IndentUnit,
		MinSpace:   o.MinSpace,
		Measure:    o.Measure,
	}
}

// Format parses src and prints it.
func Format(opts Options, filename, src string) (string, error) {
	file, err := syntax.Parse(filename, src)
	if err != nil {
		return "", err
	}
	return PrintFile(opts, file)
}

// PrintFile renders a file to source text.
func PrintFile(opts Options, file *syntax.File) (string, error) {
	return dom.Print(opts.domOptions(), Document(file))
}

// Document builds the document for a file, without laying it out.
func Document(file *syntax.File) *dom.Document {
	return dom.New(func(push dom.Sink) {
		p := printer{push: push}
		p.printFile(file)
	})
}

// printer is the state for building the document of a file.
type printer struct {
	push dom.Sink
}

// text pushes text.
func (p *printer) text(s string) {
	p.push(dom.Text(s))
}

// withSink returns content that runs body with p temporarily pushing to the
// sink of that content.
func (p *printer) withSink(body func()) func(dom.Sink) {
	return func(push dom.Sink) {
		outer := p.push
		p.push = push
		defer func() { p.push = outer }()
		body()
	}
}

// group pushes a group whose contents are printed by body.
func (p *printer) group(breaks dom.Breaks, body func()) {
	p.push(dom.Group(breaks, p.withSink(body)))
}

// indent pushes an indentation scope whose contents are printed by body.
func (p *printer) indent(body func()) {
	p.push(dom.Indent(p.withSink(body)))
}

// delimited prints a bracketed, comma-separated list that is either entirely
// on one line or has one element per line, with a trailing comma.
func delimited[T any](p *printer, open, close string, items []T, print func(T)) {
	if len(items) == 0 {
		p.text(open + close)
		return
	}

	p.group(dom.Consistent, func() {
		p.text(open)
		p.indent(func() {
			p.push(dom.Soft(0))
			for i, item := range items {
				if i > 0 {
					p.text(",")
					p.push(dom.Space(0))
				}
				print(item)
			}
			p.push(dom.TextIf(dom.Broken, ","))
		})
		p.push(dom.Soft(0))
		p.text(close)
	})
}
