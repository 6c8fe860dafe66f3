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

// Package syntax parses a small subset of Rust: use declarations, structs,
// and functions whose bodies are made of let bindings, returns, and
// expression statements.
//
// It exists to drive [github.com/bufbuild/prettyprint/syntax/printer] from
// real source text. Comments are not preserved.
package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	rustLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
		{Name: "Int", Pattern: `[0-9][0-9_]*`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `::|->|==|!=|<=|>=|&&|\|\||[-+*/%<>=!&|(){}\[\],;:.]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(rustLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
)

// Parse parses a source file.
//
// filename is only used for error positions.
func Parse(filename, src string) (*File, error) {
	file, err := fileParser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("syntax: %w", err)
	}
	return file, nil
}

// File is the root of a parsed source file.
type File struct {
	Items []*Item `parser:"@@*"`
}

// Item is a top-level declaration.
type Item struct {
	Pub  bool  `parser:"@'pub'?"`
	Decl *Decl `parser:"@@"`
}

// Decl is the declaration of an [Item]. Exactly one field is set.
type Decl struct {
	Use    *Use    `parser:"  @@"`
	Struct *Struct `parser:"| @@"`
	Fn     *Fn     `parser:"| @@"`
}

// Use is a use declaration, such as `use std::io::{self, Write};`.
type Use struct {
	Tree *UseTree `parser:"'use' @@ ';'"`
}

// UseTree is one path in a use declaration.
type UseTree struct {
	Name string   `parser:"@( Ident | '*' )"`
	Next *UseNext `parser:"( '::' @@ )?"`
}

// UseNext is whatever follows a :: in a [UseTree].
type UseNext struct {
	Group []*UseTree `parser:"  '{' ( @@ ','? )* '}'"`
	Tree  *UseTree   `parser:"| @@"`
}

// Struct is a struct declaration with named fields.
type Struct struct {
	Name   string   `parser:"'struct' @Ident"`
	Fields []*Field `parser:"'{' ( @@ ','? )* '}'"`
}

// Field is a field of a [Struct].
type Field struct {
	Pub  bool   `parser:"@'pub'?"`
	Name string `parser:"@Ident ':'"`
	Type *Type  `parser:"@@"`
}

// Fn is a function declaration.
type Fn struct {
	Name   string   `parser:"'fn' @Ident"`
	Params []*Param `parser:"'(' ( @@ ','? )* ')'"`
	Return *Type    `parser:"( '->' @@ )?"`
	Body   *Block   `parser:"@@"`
}

// Param is a parameter of a [Fn].
type Param struct {
	Name string `parser:"@Ident ':'"`
	Type *Type  `parser:"@@"`
}

// Type is a type, such as `&mut Vec<u8>`.
type Type struct {
	Ref  bool     `parser:"@'&'?"`
	Mut  bool     `parser:"@'mut'?"`
	Path []string `parser:"@Ident ( '::' @Ident )*"`
	Args []*Type  `parser:"( '<' ( @@ ','? )* '>' )?"`
}

// Block is a braced list of statements.
type Block struct {
	Stmts []*Stmt `parser:"'{' @@* '}'"`
}

// Stmt is a statement.
type Stmt struct {
	Let    *Let      `parser:"  @@"`
	Return *Return   `parser:"| @@"`
	Expr   *ExprStmt `parser:"| @@"`
}

// Let is a let binding.
type Let struct {
	Mut   bool   `parser:"'let' @'mut'?"`
	Name  string `parser:"@Ident"`
	Type  *Type  `parser:"( ':' @@ )?"`
	Value *Expr  `parser:"( '=' @@ )? ';'"`
}

// Return is a return statement.
type Return struct {
	Value *Expr `parser:"'return' @@? ';'"`
}

// ExprStmt is an expression used as a statement. The final expression of a
// block may omit its semicolon.
type ExprStmt struct {
	Expr *Expr `parser:"@@"`
	Semi bool  `parser:"@';'?"`
}

// Expr is a chain of binary operations, including assignment. Operators are
// kept in source order; precedence does not matter for printing.
type Expr struct {
	Left *Unary   `parser:"@@"`
	Rest []*BinOp `parser:"@@*"`
}

// BinOp is an operator and its right-hand operand.
type BinOp struct {
	Op    string `parser:"@( '==' | '!=' | '<=' | '>=' | '&&' | '||' | '+' | '-' | '*' | '/' | '%' | '<' | '>' | '=' )"`
	Right *Unary `parser:"@@"`
}

// Unary is a primary expression with an optional prefix operator.
type Unary struct {
	Op    string   `parser:"@( '-' | '!' | '&' )?"`
	Value *Primary `parser:"@@"`
}

// Primary is an operand followed by field accesses and method calls.
type Primary struct {
	Operand *Operand  `parser:"@@"`
	Chain   []*Suffix `parser:"@@*"`
}

// Suffix is a .name or .name(args) following an operand.
type Suffix struct {
	Name string `parser:"'.' @Ident"`
	Call *Args  `parser:"@@?"`
}

// Operand is a literal, a parenthesized expression, or a path.
type Operand struct {
	Int   *string   `parser:"  @Int"`
	Str   *string   `parser:"| @String"`
	Paren *Expr     `parser:"| '(' @@ ')'"`
	Path  *PathExpr `parser:"| @@"`
}

// PathExpr is a path, such as `Vec::new`, that may be called.
type PathExpr struct {
	Segments []string `parser:"@Ident ( '::' @Ident )*"`
	Call     *Args    `parser:"@@?"`
}

// Args is a parenthesized list of call arguments.
type Args struct {
	Values []*Expr `parser:"'(' ( @@ ','? )* ')'"`
}
