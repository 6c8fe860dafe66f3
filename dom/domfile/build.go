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

package domfile

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/bufbuild/prettyprint/dom"
)

// Build converts a list of nodes into a document.
//
// Returns a [*dom.MalformedError] if the nodes do not describe a valid
// document, such as when begin and end markers do not pair up.
func Build(nodes []Node) (*dom.Document, error) {
	tags, err := build(nodes, "")
	if err != nil {
		return nil, err
	}
	return dom.New(dom.Tags(tags...)), nil
}

// scope is a group or indentation scope opened by a marker node and not yet
// closed.
type scope struct {
	path   string // Of the opening marker, for errors.
	dedent bool   // Whether this scope is closed by dedent rather than end.
	wrap   func(content func(dom.Sink)) dom.Tag
	tags   []dom.Tag
}

func build(nodes []Node, prefix string) ([]dom.Tag, error) {
	stack := []*scope{{}}
	for i := range nodes {
		n := &nodes[i]
		path := fmt.Sprintf("%s[%d]", prefix, i)
		top := stack[len(stack)-1]

		kind, err := n.kind()
		if err != nil {
			return nil, malformed(path, "%v", err)
		}

		switch kind {
		case "text":
			tag, err := n.text(path)
			if err != nil {
				return nil, err
			}
			top.tags = append(top.tags, tag)

		case "break":
			tag, err := n.brk(path)
			if err != nil {
				return nil, err
			}
			top.tags = append(top.tags, tag)

		case "group":
			breaks, err := parseBreaks(n.Group)
			if err != nil {
				return nil, malformed(path, "%v", err)
			}
			body, err := build(n.Body, path+".body")
			if err != nil {
				return nil, err
			}
			top.tags = append(top.tags, dom.Group(breaks, dom.Tags(body...)))

		case "indent":
			wrap, err := n.indent(path)
			if err != nil {
				return nil, err
			}
			body, err := build(n.Body, path+".body")
			if err != nil {
				return nil, err
			}
			top.tags = append(top.tags, wrap(dom.Tags(body...)))

		case "begin":
			breaks, err := parseBreaks(n.Begin)
			if err != nil {
				return nil, malformed(path, "%v", err)
			}
			stack = append(stack, &scope{
				path: path,
				wrap: func(content func(dom.Sink)) dom.Tag { return dom.Group(breaks, content) },
			})

		case "begin_indent":
			by, err := narrow(path, *n.BeginIndent)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &scope{
				path:   path,
				dedent: true,
				wrap:   func(content func(dom.Sink)) dom.Tag { return dom.IndentBy(by, content) },
			})

		case "end", "dedent":
			if len(stack) == 1 {
				return nil, malformed(path, "%s without a matching beginning", kind)
			}
			if top.dedent != (kind == "dedent") {
				return nil, malformed(path, "%s does not match the scope opened at %s", kind, top.path)
			}
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.tags = append(parent.tags, top.wrap(dom.Tags(top.tags...)))
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return nil, malformed(open.path, "scope is never closed")
	}
	return stack[0].tags, nil
}

// kind returns which kind of node this is.
func (n *Node) kind() (string, error) {
	var kinds []string
	set := func(ok bool, kind string) {
		if ok {
			kinds = append(kinds, kind)
		}
	}
	set(n.Text != nil, "text")
	set(n.Break != "", "break")
	set(n.Group != "", "group")
	set(n.Indent != nil || n.Levels != 0, "indent")
	set(n.Begin != "", "begin")
	set(n.End, "end")
	set(n.BeginIndent != nil, "begin_indent")
	set(n.Dedent, "dedent")

	switch len(kinds) {
	case 0:
		return "", fmt.Errorf("node has no kind")
	case 1:
	default:
		return "", fmt.Errorf("node has more than one kind: %s", strings.Join(kinds, ", "))
	}

	kind := kinds[0]
	switch {
	case n.If != "" && kind != "text":
		return "", fmt.Errorf("if is only valid on text")
	case n.Offset != 0 && kind != "break":
		return "", fmt.Errorf("offset is only valid on break")
	case n.Body != nil && kind != "group" && kind != "indent":
		return "", fmt.Errorf("body is only valid on group and indent")
	}
	return kind, nil
}

func (n *Node) text(path string) (dom.Tag, error) {
	if strings.ContainsRune(*n.Text, '\n') {
		return nil, malformed(path, "text %q contains a newline", *n.Text)
	}

	var cond dom.Cond
	switch n.If {
	case "", "always":
		cond = dom.Always
	case "flat":
		cond = dom.Flat
	case "broken":
		cond = dom.Broken
	default:
		return nil, malformed(path, "unknown condition %q", n.If)
	}
	return dom.TextIf(cond, *n.Text), nil
}

func (n *Node) brk(path string) (dom.Tag, error) {
	var kind dom.BreakKind
	switch n.Break {
	case "space":
		kind = dom.BreakSpace
	case "none":
		kind = dom.BreakNone
	case "blank":
		kind = dom.BreakBlank
	case "hard":
		kind = dom.BreakHard
	default:
		return nil, malformed(path, "unknown break kind %q", n.Break)
	}

	offset, err := narrow(path, n.Offset)
	if err != nil {
		return nil, err
	}
	return dom.Break(kind, offset), nil
}

// indent returns a function that wraps content in this node's indentation.
func (n *Node) indent(path string) (func(func(dom.Sink)) dom.Tag, error) {
	var by int
	if n.Indent != nil {
		var err error
		if by, err = narrow(path, *n.Indent); err != nil {
			return nil, err
		}
	}
	if n.Levels < 0 || n.Levels > maxLevels {
		return nil, malformed(path, "levels must be between 0 and %d", maxLevels)
	}
	levels := int(n.Levels)

	return func(content func(dom.Sink)) dom.Tag {
		for range levels {
			content = dom.Tags(dom.Indent(content))
		}
		return dom.IndentBy(by, content)
	}, nil
}

func parseBreaks(name string) (dom.Breaks, error) {
	switch name {
	case "consistent":
		return dom.Consistent, nil
	case "inconsistent":
		return dom.Inconsistent, nil
	}
	return 0, fmt.Errorf("unknown group kind %q", name)
}

// narrow converts a serialized column count to an int.
func narrow(path string, v int64) (int, error) {
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 0, malformed(path, "%v", err)
	}
	return n, nil
}

func malformed(path, format string, args ...any) error {
	return &dom.MalformedError{
		Reason: fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...)),
	}
}
