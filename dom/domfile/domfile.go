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

// Package domfile is a serialized form of [dom.Document], so that documents
// can be produced by other programs, stored as test cases, and rendered by
// the prettyfmt tool.
//
// A file is a list of nodes, written either as YAML or as MessagePack. Each
// node sets exactly one of the fields that select its kind:
//
//	- text: "fn"           # dom.Text; add `if: flat` or `if: broken` for dom.TextIf
//	- break: space         # space, none, blank or hard; `offset` is optional
//	- group: consistent    # consistent or inconsistent, with a `body`
//	  body: [...]
//	- indent: 4            # dom.IndentBy, with a `body`
//	  body: [...]
//	- levels: 1            # dom.Indent, applied `levels` times, with a `body`
//	  body: [...]
//
// Documents produced by token-stream printers can instead bracket groups and
// indentation with markers, which are paired up when the file is built:
//
//	- begin: inconsistent  # opens a group, closed by `end: true`
//	- begin_indent: 4      # opens an indentation scope, closed by `dedent: true`
package domfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/prettyprint/dom"
)

// maxLevels bounds the levels field of a single node.
const maxLevels = 64

// File is a serialized document along with the options to print it with.
type File struct {
	Options  Options `yaml:"options,omitempty" msgpack:"options,omitempty"`
	Document []Node  `yaml:"document" msgpack:"document"`
}

// Options is the serialized form of [dom.Options]. Nil fields, and an empty
// measure, are unset.
type Options struct {
	MaxWidth   *int64 `yaml:"max_width,omitempty" msgpack:"max_width,omitempty"`
	IndentUnit *int64 `yaml:"indent_unit,omitempty" msgpack:"indent_unit,omitempty"`
	MinSpace   *int64 `yaml:"min_space,omitempty" msgpack:"min_space,omitempty"`
	Measure    string `yaml:"measure,omitempty" msgpack:"measure,omitempty"`
}

// Node is a single serialized node. See the package documentation for the
// meaning of each field.
type Node struct {
	Text *string `yaml:"text,omitempty" msgpack:"text,omitempty"`
	If   string  `yaml:"if,omitempty" msgpack:"if,omitempty"`

	Break  string `yaml:"break,omitempty" msgpack:"break,omitempty"`
	Offset int64  `yaml:"offset,omitempty" msgpack:"offset,omitempty"`

	Group  string `yaml:"group,omitempty" msgpack:"group,omitempty"`
	Indent *int64 `yaml:"indent,omitempty" msgpack:"indent,omitempty"`
	Levels int64  `yaml:"levels,omitempty" msgpack:"levels,omitempty"`
	Body   []Node `yaml:"body,omitempty" msgpack:"body,omitempty"`

	Begin       string `yaml:"begin,omitempty" msgpack:"begin,omitempty"`
	End         bool   `yaml:"end,omitempty" msgpack:"end,omitempty"`
	BeginIndent *int64 `yaml:"begin_indent,omitempty" msgpack:"begin_indent,omitempty"`
	Dedent      bool   `yaml:"dedent,omitempty" msgpack:"dedent,omitempty"`
}

// Read parses a file, choosing the format from the extension of name: .msgpack
// and .mpk files are MessagePack, anything else is YAML.
func Read(name string, data []byte) (*File, error) {
	switch filepath.Ext(name) {
	case ".msgpack", ".mpk":
		return ReadMsgpack(data)
	}
	return ReadYAML(data)
}

// ReadYAML parses a YAML file.
//
// The file is either a mapping with options and document keys, or just the
// list of nodes.
func ReadYAML(data []byte) (*File, error) {
	file := new(File)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("domfile: %w", err)
	}
	if root.Kind == 0 {
		return file, nil
	}

	var into any = file
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		into = &file.Document
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(into); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("domfile: %w", err)
	}
	return file, nil
}

// ReadMsgpack parses a MessagePack file, as written by [File.Msgpack].
func ReadMsgpack(data []byte) (*File, error) {
	file := new(File)
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(file); err != nil {
		return nil, fmt.Errorf("domfile: %w", err)
	}
	return file, nil
}

// Msgpack serializes this file as MessagePack.
func (f *File) Msgpack() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetOmitEmpty(true)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("domfile: %w", err)
	}
	return buf.Bytes(), nil
}

// YAML serializes this file as YAML.
func (f *File) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("domfile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("domfile: %w", err)
	}
	return buf.Bytes(), nil
}

// Build converts this file's nodes into a document.
func (f *File) Build() (*dom.Document, error) {
	return Build(f.Document)
}

// DecodeYAML parses a YAML file and builds its document.
func DecodeYAML(data []byte) (*dom.Document, error) {
	file, err := ReadYAML(data)
	if err != nil {
		return nil, err
	}
	return file.Build()
}

// DecodeMsgpack parses a MessagePack file and builds its document.
func DecodeMsgpack(data []byte) (*dom.Document, error) {
	file, err := ReadMsgpack(data)
	if err != nil {
		return nil, err
	}
	return file.Build()
}

// EncodeMsgpack serializes a list of nodes as a MessagePack file.
func EncodeMsgpack(nodes []Node) ([]byte, error) {
	return (&File{Document: nodes}).Msgpack()
}

// Apply overrides the fields of base with every field of o that is set.
func (o Options) Apply(base dom.Options) (dom.Options, error) {
	var err error
	narrow := func(field string, v *int64, into *int) {
		if v == nil || err != nil {
			return
		}
		n, cerr := safecast.Conv[int](*v)
		if cerr != nil {
			err = fmt.Errorf("domfile: option %s: %w", field, cerr)
			return
		}
		*into = n
	}
	narrow("max_width", o.MaxWidth, &base.MaxWidth)
	narrow("indent_unit", o.IndentUnit, &base.IndentUnit)
	narrow("min_space", o.MinSpace, &base.MinSpace)
	if err != nil {
		return base, err
	}
	// dom treats a zero width as unset; an explicit zero is never valid.
	if o.MaxWidth != nil && *o.MaxWidth == 0 {
		return base, fmt.Errorf("domfile: option max_width: %w",
			&dom.OptionError{Field: "MaxWidth", Value: 0, Reason: "must be positive"})
	}

	if o.Measure != "" {
		m, err := dom.ParseMeasure(o.Measure)
		if err != nil {
			return base, fmt.Errorf("domfile: option measure: %w", err)
		}
		base.Measure = m
	}
	return base, nil
}
