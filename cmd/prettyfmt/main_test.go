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


package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/syntax/printer"
)

const unformatted = "fn f() { let value = compute(first_argument, second_argument); }\n"

const signature = `
options:
  max_width: 10
document:
  - begin: consistent
  - text: "fn f("
  - break: none
    offset: 4
  - text: "a: i32,"
  - break: space
    offset: 4
  - text: "b: i32,"
  - break: none
  - text: ")"
  - end: true
`

// run executes the command line with an empty config, so that no config
// file above the test directory is picked up.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config := filepath.Join(t.TempDir(), configName)
	require.NoError(t, os.WriteFile(config, nil, 0o644))

	cmd := newRootCommand()
	var out, stderr bytes.Buffer
	cmd.SetArgs(append([]string{"--config", config, "--color", "off"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return out.String(), err
}

func format(t *testing.T, opts printer.Options, src string) string {
	t.Helper()
	out, err := printer.Format(opts, "test.rs", src)
	require.NoError(t, err)
	return out
}

func TestFmtStdin(t *testing.T) {
	t.Parallel()

	out, err := run(t, unformatted, "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, format(t, printer.DefaultOptions(), unformatted), out)

	out, err = run(t, unformatted, "fmt", "--width", "30", "-")
	require.NoError(t, err)
	assert.Equal(t, format(t, printer.Options{MaxWidth: 30, IndentUnit: 4}, unformatted), out)
	assert.Contains(t, out, "        compute(\n")

	_, err = run(t, unformatted, "fmt", "-", "other.rs")
	assert.Error(t, err)
}

func TestFmtInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "nested", "a.rs")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, []byte(unformatted), 0o644))
	require.NoError(t, os.WriteFile(other, []byte(unformatted), 0o644))

	out, err := run(t, "", "fmt", "--jobs", "2", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, format(t, printer.DefaultOptions(), unformatted), string(got))

	got, err = os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, unformatted, string(got))

	out, err = run(t, "", "fmt", "--check", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFmtCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.rs")
	require.NoError(t, os.WriteFile(src, []byte(unformatted), 0o644))

	out, err := run(t, "", "fmt", "--check", src)
	require.ErrorContains(t, err, "1 of 1 files are not formatted")
	assert.Contains(t, out, "--- "+src)
	assert.Contains(t, out, "+++ "+src+" (formatted)")
	assert.Contains(t, out, "-"+unformatted)
	assert.NotContains(t, out, "\x1b[")

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, unformatted, string(got))

	out, err = run(t, "", "fmt", "--stdout", src)
	require.NoError(t, err)
	assert.Equal(t, format(t, printer.DefaultOptions(), unformatted), out)
}

func TestFmtParseError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "bad.rs")
	require.NoError(t, os.WriteFile(src, []byte("fn {"), 0o644))

	_, err := run(t, "", "fmt", src)
	assert.ErrorContains(t, err, "bad.rs:1:")
}

func TestRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "signature.yaml")
	require.NoError(t, os.WriteFile(path, []byte(signature), 0o644))

	out, err := run(t, "", "render", path)
	require.NoError(t, err)
	assert.Equal(t, "fn f(\n    a: i32,\n    b: i32,\n)\n", out)

	out, err = run(t, signature, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "fn f(\n    a: i32,\n    b: i32,\n)\n", out)

	out, err = run(t, "", "render", "--html", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<group consistent>\n"), out)

	_, err = run(t, "- text: a\n  break: space\n", "render", "-")
	assert.ErrorContains(t, err, "more than one kind")
}

func TestConvert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "signature.yaml")
	msgpackPath := filepath.Join(dir, "signature.msgpack")
	backPath := filepath.Join(dir, "back.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(signature), 0o644))

	_, err := run(t, "", "convert", yamlPath, msgpackPath)
	require.NoError(t, err)
	_, err = run(t, "", "convert", msgpackPath, backPath)
	require.NoError(t, err)

	for _, path := range []string{msgpackPath, backPath} {
		out, err := run(t, "", "render", path)
		require.NoError(t, err)
		assert.Equal(t, "fn f(\n    a: i32,\n    b: i32,\n)\n", out, path)
	}
}

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	enabled, err := colorEnabled("on", nil)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = colorEnabled("auto", new(bytes.Buffer))
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = colorEnabled("sometimes", nil)
	assert.Error(t, err)

	_, err = run(t, "", "--color", "sometimes", "fmt", "-")
	assert.Error(t, err)
}

func TestOptionFlags(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "--width", "-1", "fmt", "-")
	var optErr *dom.OptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "MaxWidth", optErr.Field)

	_, err = run(t, "", "--width", "0", "fmt", "-")
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "MaxWidth", optErr.Field)

	_, err = run(t, "", "--measure", "furlongs", "fmt", "-")
	assert.ErrorContains(t, err, "unknown measure")

	out, err := run(t, "fn f() { a }\n", "--indent", "0", "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, "fn f() {\na\n}\n", out)

	out, err = run(t, "fn f() { a }\n", "--indent", "2", "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, "fn f() {\n  a\n}\n", out)
}
