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

package printer_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/prettyprint/internal/golden"
	"github.com/bufbuild/prettyprint/syntax"
	"github.com/bufbuild/prettyprint/syntax/printer"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata",
		Refresh:    "PRETTYPRINT_REFRESH",
		Extensions: []string{"rs"},
		Outputs: []golden.Output{
			{Extension: "fmt"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		// A test case may pick its width with a leading comment.
		opts := printer.DefaultOptions()
		if rest, ok := strings.CutPrefix(text, "// width: "); ok {
			width, _, _ := strings.Cut(rest, "\n")
			var err error
			opts.MaxWidth, err = strconv.Atoi(width)
			require.NoError(t, err)
		}

		out, err := printer.Format(opts, path, text)
		require.NoError(t, err)
		outputs[0] = out

		again, err := printer.Format(opts, path, out)
		require.NoError(t, err)
		assert.Equal(t, out, again, "formatting is not idempotent")
	})
}

func TestPrintFile(t *testing.T) {
	t.Parallel()

	file, err := syntax.Parse("f.rs", "fn f(a: i32, b: i32) -> i32 { a + b }")
	require.NoError(t, err)

	out, err := printer.PrintFile(printer.DefaultOptions(), file)
	require.NoError(t, err)
	assert.Equal(t, "fn f(a: i32, b: i32) -> i32 {\n    a + b\n}\n", out)

	out, err = printer.PrintFile(printer.Options{}, file)
	require.NoError(t, err)
	assert.Equal(t, "fn f(a: i32, b: i32) -> i32 {\na + b\n}\n", out)

	out, err = printer.PrintFile(printer.Options{MaxWidth: 16, IndentUnit: 2}, file)
	require.NoError(t, err)
	assert.Equal(t, "fn f(\n  a: i32,\n  b: i32,\n) -> i32 {\n  a + b\n}\n", out)

	assert.Positive(t, printer.Document(file).Len())
}

func TestNestedTrailingComma(t *testing.T) {
	t.Parallel()

	// The trailing comma after inner(...) must fit on its line, so inner's
	// arguments are broken as well.
	opts := printer.DefaultOptions()
	opts.MaxWidth = 34
	out, err := printer.Format(opts, "nested.rs", "fn f() { let v = outer(inner(aaaa, bbbbbbbbb)); }")
	require.NoError(t, err)
	for line := range strings.Lines(out) {
		assert.LessOrEqual(t, len(strings.TrimSuffix(line, "\n")), opts.MaxWidth, "%q", out)
	}
	assert.Contains(t, out, "            inner(\n")
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	_, err := printer.Format(printer.Options{}, "broken.rs", "struct {")
	require.Error(t, err)
}
