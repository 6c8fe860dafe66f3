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

package printer

import (
	"slices"
	"strings"

	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/syntax"
)

// printFile prints all items of a file.
//
// Each run of consecutive use declarations is sorted, and separated from
// other items by a blank line.
func (p *printer) printFile(file *syntax.File) {
	items := slices.Clone(file.Items)
	for i := 0; i < len(items); {
		j := i
		for j < len(items) && items[j].Decl.Use != nil {
			j++
		}
		slices.SortStableFunc(items[i:j], func(a, b *syntax.Item) int {
			return strings.Compare(useKey(a.Decl.Use.Tree), useKey(b.Decl.Use.Tree))
		})
		i = max(j, i+1)
	}

	// Blank breaks are only taken in a broken group.
	p.group(dom.Consistent, func() {
		for i, item := range items {
			if i > 0 {
				p.push(dom.Hard())
				if item.Decl.Use == nil || items[i-1].Decl.Use == nil {
					p.push(dom.Blank(0))
				}
			}
			p.printItem(item)
		}
	})
}

func (p *printer) printItem(item *syntax.Item) {
	if item.Pub {
		p.text("pub ")
	}

	switch decl := item.Decl; {
	case decl.Use != nil:
		p.text("use ")
		p.printUseTree(decl.Use.Tree)
		p.text(";")
	case decl.Struct != nil:
		p.printStruct(decl.Struct)
	case decl.Fn != nil:
		p.printFn(decl.Fn)
	}
}

func (p *printer) printUseTree(tree *syntax.UseTree) {
	p.text(tree.Name)
	if tree.Next == nil {
		return
	}

	p.text("::")
	if tree.Next.Tree != nil {
		p.printUseTree(tree.Next.Tree)
		return
	}

	group := slices.Clone(tree.Next.Group)
	slices.SortStableFunc(group, func(a, b *syntax.UseTree) int {
		// self always comes first.
		if (a.Name == "self") != (b.Name == "self") {
			if a.Name == "self" {
				return -1
			}
			return 1
		}
		return strings.Compare(useKey(a), useKey(b))
	})
	delimited(p, "{", "}", group, p.printUseTree)
}

// useKey is the key that use trees are sorted by.
func useKey(tree *syntax.UseTree) string {
	var out strings.Builder
	for tree != nil {
		out.WriteString(tree.Name)
		if tree.Next == nil {
			break
		}
		out.WriteString("::")
		if tree.Next.Group != nil {
			out.WriteString("{")
			for i, t := range tree.Next.Group {
				if i > 0 {
					out.WriteString(", ")
				}
				out.WriteString(useKey(t))
			}
			out.WriteString("}")
		}
		tree = tree.Next.Tree
	}
	return out.String()
}

func (p *printer) printStruct(s *syntax.Struct) {
	p.text("struct " + s.Name + " ")
	p.printBraces(len(s.Fields), func(i int) {
		field := s.Fields[i]
		if field.Pub {
			p.text("pub ")
		}
		p.text(field.Name + ": " + typeString(field.Type) + ",")
	})
}

func (p *printer) printFn(fn *syntax.Fn) {
	p.text("fn " + fn.Name)
	delimited(p, "(", ")", fn.Params, func(param *syntax.Param) {
		p.text(param.Name + ": " + typeString(param.Type))
	})
	if fn.Return != nil {
		p.text(" -> " + typeString(fn.Return))
	}
	p.text(" ")
	p.printBraces(len(fn.Body.Stmts), func(i int) {
		p.printStmt(fn.Body.Stmts[i])
	})
}

// printBraces prints a braced body of n lines, each printed by line.
func (p *printer) printBraces(n int, line func(int)) {
	if n == 0 {
		p.text("{}")
		return
	}

	p.text("{")
	p.indent(func() {
		for i := range n {
			p.push(dom.Hard())
			line(i)
		}
	})
	p.push(dom.Hard())
	p.text("}")
}

// typeString prints a type. Types are never broken.
func typeString(ty *syntax.Type) string {
	var out strings.Builder
	if ty.Ref {
		out.WriteString("&")
	}
	if ty.Mut {
		out.WriteString("mut ")
	}
	out.WriteString(strings.Join(ty.Path, "::"))
	if len(ty.Args) > 0 {
		out.WriteString("<")
		for i, arg := range ty.Args {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(typeString(arg))
		}
		out.WriteString(">")
	}
	return out.String()
}
