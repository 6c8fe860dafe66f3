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
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	t.Parallel()

	doc := New(Tags(
		Group(Consistent, Tags(
			Text("a"),
			Space(2),
			Group(Inconsistent, Tags(Text("b"), TextIf(Broken, ","), TextIf(Flat, "!"))),
			Group(Consistent, Tags()),
		)),
		Indent(Tags(Hard(), Text("c"))),
		IndentBy(0, Tags(Text("d"))),
	))

	got := slices.Collect(doc.tokens(Options{IndentUnit: 4}.WithDefaults()))
	want := []token{
		{kind: tokBegin, breaks: Consistent},
		{kind: tokText, text: "a", width: 1},
		{kind: tokBreak, brk: BreakSpace, offset: 2},
		{kind: tokText, text: "b", width: 1},
		{kind: tokText, text: "!", width: 1},
		{kind: tokEnd},
		{kind: tokIndent, offset: 4},
		{kind: tokBreak, brk: BreakHard},
		{kind: tokText, text: "c", width: 1},
		{kind: tokDedent},
		{kind: tokText, text: "d", width: 1},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(token{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t,
		`[<consistent> "a" <br space+2> "b" "!" </> <indent +4> <br hard+0> "c" </indent> "d"]`,
		fmt.Sprint(got))
}

func TestSplice(t *testing.T) {
	t.Parallel()

	inner := New(Tags(Text("x"), Space(0), Text("y")))
	assert.Equal(t, 3, inner.Len())

	outer := New(Tags(Group(Consistent, Tags(Text("["), inner.Tag(), Text("]")))))
	assert.Equal(t, 6, outer.Len())
	assert.Equal(t, "[x y]\n", Render(Options{}, Tags(outer.Tag())))
	assert.Equal(t, "[x\ny]\n", Render(Options{MaxWidth: 4}, Tags(outer.Tag())))

	var empty *Document
	assert.Zero(t, empty.Len())
	assert.Equal(t, "", Render(Options{}, Tags(empty.Tag())))
}

func TestJoin(t *testing.T) {
	t.Parallel()

	list := Tags(Group(Inconsistent, Tags(Join(
		Join(nil, Text(","), Space(0)),
		Text("one"), Text("two"), Text("three"),
	))))
	assert.Equal(t, "one, two, three\n", Render(Options{}, list))
	assert.Equal(t, "one, two,\nthree\n", Render(Options{MaxWidth: 10}, list))
}

func TestHTML(t *testing.T) {
	t.Parallel()

	doc := New(Tags(
		Group(Consistent, Tags(Text("a"), Space(0), TextIf(Broken, ","))),
		IndentBy(-2, Tags(Soft(3))),
		Indent(Tags(Text("b"))),
		Group(Inconsistent, Tags(Text("c"))),
	))

	want := `<group consistent>
    "a"
    <br kind=space>
    <p if=broken>","</p>
</group>
<indent by=-2>
    <br kind=none offset=3>
</indent>
<indent levels=1>
    "b"
</indent>
<group inconsistent atomic>
    "c"
</group>
`
	assert.Equal(t, want, doc.String())

	out, err := Print(Options{HTML: true}, doc)
	assert.NoError(t, err)
	assert.Equal(t, want, out)
}
