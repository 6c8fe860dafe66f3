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
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/prettyprint/dom"
)

func TestFindConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := filepath.Join(root, "a", configName)
	require.NoError(t, os.WriteFile(want, []byte("max_width = 40\n"), 0o644))

	got, ok, err := findConfig(nested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	cfg, err := loadConfig(got)
	require.NoError(t, err)
	assert.Equal(t, config{MaxWidth: ptr(40)}, cfg)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), configName)
	require.NoError(t, os.WriteFile(path, []byte("max_width = 40\ntabs = true\n"), 0o644))

	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "unknown keys: tabs")
}

func TestConfigPrecedence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), configName)
	require.NoError(t, os.WriteFile(path, []byte(`
max_width = 40
indent_unit = 2
measure = "bytes"
`), 0o644))

	load := func(args ...string) *app {
		t.Helper()
		cmd := newRootCommand()
		a := &app{}
		cmd.RunE = func(*cobra.Command, []string) error { return nil }
		cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
			var err error
			a.logger = slog.New(slog.DiscardHandler)
			a.options, err = a.loadOptions(cmd)
			return err
		}
		cmd.SetArgs(append([]string{"--config", path}, args...))
		cmd.SetOut(new(bytes.Buffer))
		require.NoError(t, cmd.Execute())
		return a
	}

	opts := load().options
	assert.Equal(t, 40, opts.MaxWidth)
	assert.Equal(t, 2, opts.IndentUnit)
	assert.Equal(t, dom.MeasureBytes, opts.Measure)

	opts = load("--width", "100", "--measure", "graphemes").options
	assert.Equal(t, 100, opts.MaxWidth)
	assert.Equal(t, 2, opts.IndentUnit)
	assert.Equal(t, dom.MeasureGraphemes, opts.Measure)

	opts = load("--indent", "0").options
	assert.Equal(t, 0, opts.IndentUnit)
}

func TestConfigZeroValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, configName)
	require.NoError(t, os.WriteFile(path, []byte("indent_unit = 0\n"), 0o644))

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetArgs([]string{"--config", path, "--color", "off", "fmt", "-"})
	cmd.SetIn(strings.NewReader("fn f() { a }\n"))
	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "fn f() {\na\n}\n", out.String())

	require.NoError(t, os.WriteFile(path, []byte("max_width = 0\n"), 0o644))
	cmd = newRootCommand()
	cmd.SetArgs([]string{"--config", path, "fmt", "-"})
	cmd.SetIn(strings.NewReader("fn f() { a }\n"))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	var optErr *dom.OptionError
	require.ErrorAs(t, cmd.Execute(), &optErr)
	assert.Equal(t, "MaxWidth", optErr.Field)
}

func ptr[T any](v T) *T { return &v }
