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

package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/prettyprint/syntax"
)

const sample = `
use std::collections::{HashMap, HashSet};
use std::io::*;

// A point in space.
pub struct Point {
    pub x: i64,
    y: &mut Vec<Option<i64>>
}

fn add(a: i32, b: i32) -> i32 {
    let mut total: i32 = a + b * 2;
    total = -total;
    return total;
}

fn main() {
    let map = HashMap::new();
    map.insert("one", (1 + 2)).unwrap();
    add(1, 2)
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	file, err := syntax.Parse("sample.rs", sample)
	require.NoError(t, err)
	require.Len(t, file.Items, 5)

	use := file.Items[0].Decl.Use
	require.NotNil(t, use)
	assert.Equal(t, "std", use.Tree.Name)
	assert.Equal(t, "collections", use.Tree.Next.Tree.Name)
	group := use.Tree.Next.Tree.Next.Group
	require.Len(t, group, 2)
	assert.Equal(t, "HashMap", group[0].Name)
	assert.Equal(t, "HashSet", group[1].Name)
	assert.Equal(t, "*", file.Items[1].Decl.Use.Tree.Next.Tree.Next.Tree.Name)

	point := file.Items[2]
	assert.True(t, point.Pub)
	require.NotNil(t, point.Decl.Struct)
	require.Len(t, point.Decl.Struct.Fields, 2)
	assert.True(t, point.Decl.Struct.Fields[0].Pub)
	y := point.Decl.Struct.Fields[1].Type
	assert.True(t, y.Ref)
	assert.True(t, y.Mut)
	assert.Equal(t, []string{"Vec"}, y.Path)
	require.Len(t, y.Args, 1)
	assert.Equal(t, []string{"Option"}, y.Args[0].Path)

	add := file.Items[3].Decl.Fn
	require.NotNil(t, add)
	assert.Equal(t, "add", add.Name)
	require.Len(t, add.Params, 2)
	assert.Equal(t, []string{"i32"}, add.Return.Path)
	require.Len(t, add.Body.Stmts, 3)
	let := add.Body.Stmts[0].Let
	require.NotNil(t, let)
	assert.True(t, let.Mut)
	assert.Equal(t, "total", let.Name)
	require.Len(t, let.Value.Rest, 2)
	assert.Equal(t, "+", let.Value.Rest[0].Op)
	assert.Equal(t, "*", let.Value.Rest[1].Op)
	assert.Equal(t, "-", add.Body.Stmts[1].Expr.Expr.Rest[0].Right.Op)
	require.NotNil(t, add.Body.Stmts[2].Return)

	main := file.Items[4].Decl.Fn
	require.Len(t, main.Body.Stmts, 3)
	call := main.Body.Stmts[1].Expr
	assert.True(t, call.Semi)
	chain := call.Expr.Left.Value.Chain
	require.Len(t, chain, 2)
	assert.Equal(t, "insert", chain[0].Name)
	require.Len(t, chain[0].Call.Values, 2)
	assert.Equal(t, `"one"`, *chain[0].Call.Values[0].Left.Value.Operand.Str)
	assert.NotNil(t, chain[0].Call.Values[1].Left.Value.Operand.Paren)
	assert.False(t, main.Body.Stmts[2].Expr.Semi)
}

func TestParseError(t *testing.T) {
	t.Parallel()

	_, err := syntax.Parse("bad.rs", "fn main( {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.rs:1:")
}
