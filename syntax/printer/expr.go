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
	"strings"

	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/syntax"
)

func (p *printer) printStmt(stmt *syntax.Stmt) {
	switch {
	case stmt.Let != nil:
		p.printLet(stmt.Let)

	case stmt.Return != nil:
		if stmt.Return.Value == nil {
			p.text("return;")
			return
		}
		p.text("return ")
		p.printExpr(stmt.Return.Value)
		p.text(";")

	case stmt.Expr != nil:
		p.printExpr(stmt.Expr.Expr)
		if stmt.Expr.Semi {
			p.text(";")
		}
	}
}

func (p *printer) printLet(let *syntax.Let) {
	head := "let "
	if let.Mut {
		head += "mut "
	}
	head += let.Name
	if let.Type != nil {
		head += ": " + typeString(let.Type)
	}

	if let.Value == nil {
		p.text(head + ";")
		return
	}

	p.group(dom.Inconsistent, func() {
		p.text(head + " =")
		p.indent(func() {
			p.push(dom.Space(0))
			p.printExpr(let.Value)
		})
		p.text(";")
	})
}

// printExpr prints a chain of binary operations, breaking before operators
// as needed.
func (p *printer) printExpr(expr *syntax.Expr) {
	if len(expr.Rest) == 0 {
		p.printUnary(expr.Left)
		return
	}

	p.group(dom.Inconsistent, func() {
		p.printUnary(expr.Left)
		for _, op := range expr.Rest {
			p.indent(func() {
				p.push(dom.Space(0))
				p.text(op.Op + " ")
				p.printUnary(op.Right)
			})
		}
	})
}

func (p *printer) printUnary(unary *syntax.Unary) {
	p.text(unary.Op)
	p.printPrimary(unary.Value)
}

// printPrimary prints an operand and its suffixes. A chain of two or more
// method calls is broken one call per line.
func (p *printer) printPrimary(primary *syntax.Primary) {
	p.printOperand(primary.Operand)

	var calls int
	for _, suffix := range primary.Chain {
		if suffix.Call != nil {
			calls++
		}
	}
	if calls < 2 {
		for _, suffix := range primary.Chain {
			p.printSuffix(suffix)
		}
		return
	}

	p.group(dom.Consistent, func() {
		p.indent(func() {
			for _, suffix := range primary.Chain {
				if suffix.Call != nil {
					p.push(dom.Soft(0))
				}
				p.printSuffix(suffix)
			}
		})
	})
}

func (p *printer) printSuffix(suffix *syntax.Suffix) {
	p.text("." + suffix.Name)
	if suffix.Call != nil {
		p.printArgs(suffix.Call)
	}
}

func (p *printer) printOperand(operand *syntax.Operand) {
	switch {
	case operand.Int != nil:
		p.text(*operand.Int)
	case operand.Str != nil:
		p.text(*operand.Str)
	case operand.Paren != nil:
		p.text("(")
		p.printExpr(operand.Paren)
		p.text(")")
	case operand.Path != nil:
		p.text(strings.Join(operand.Path.Segments, "::"))
		if operand.Path.Call != nil {
			p.printArgs(operand.Path.Call)
		}
	}
}

func (p *printer) printArgs(args *syntax.Args) {
	delimited(p, "(", ")", args.Values, p.printExpr)
}
