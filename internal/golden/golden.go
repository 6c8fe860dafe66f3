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

// Package golden provides a mechanism for managing golden test corpora: a
// directory of input files, each with some number of expected output files
// next to it.
//
// Setting the corpus's refresh variable to a glob, such as
// PRETTYPRINT_REFRESH=**, rewrites the matching expected outputs from the
// current behavior instead of comparing against them.
package golden

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus. This is essentially a way of doing
// table-driven tests where the "table" is in the file system.
type Corpus struct {
	// The root of the test data directory. This path is relative to the file
	// that calls [Corpus.Run].
	Root string

	// An environment variable holding a glob of test cases to refresh.
	Refresh string

	// The file extensions (without a dot) of files which define a test case,
	// e.g. "yaml".
	Extensions []string

	// The outputs of each test case. If the file for an output is missing,
	// the expected output is the empty string.
	Outputs []Output
}

// Output represents one output of a test case.
type Output struct {
	// The extension of the output. This is a suffix to the name of the test
	// case's file: for a test "foo.yaml" and an extension "out", the runner
	// looks for "foo.yaml.out".
	Extension string

	// The comparison function for this output. If nil, outputs are compared
	// byte for byte.
	Compare Compare
}

// Compare compares two strings, used in [Output].
//
// Returns the empty string if they match, otherwise an error message.
type Compare func(got, want string) string

// Run executes test on every test case in the corpus.
//
// test receives the path of the case relative to the calling test's
// directory, the contents of the file, and a slice with one element per
// entry in Outputs, which it should fill in.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	t.Helper()

	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := strings.TrimPrefix(filepath.Ext(p), ".")
		if !d.IsDir() && slices.Contains(c.Extensions, ext) {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatal("golden: error while walking test data:", err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no test cases found in %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing test data because %s=%s", c.Refresh, refresh)
	}

	for _, path := range cases {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading input file %q: %v", path, err)
			}

			results := make([]string, len(c.Outputs))
			test(t, name, string(input), results)

			refresh := refresh != "" && doublestar.MatchUnvalidated(refresh, name)
			for i, output := range c.Outputs {
				path := path + "." + output.Extension
				if refresh {
					c.write(t, path, results[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: error while loading output file %q: %v", path, err)
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", path, msg)
				}
			}
		})
	}
}

// write replaces an expected output file.
func (c Corpus) write(t *testing.T, path, result string) {
	if result == "" {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("golden: error while deleting output file %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(result), 0o644); err != nil {
		t.Errorf("golden: error while writing output file %q: %v", path, err)
	}
}

// Diff is the default [Compare]: it returns a colored unified diff of want
// against got.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	added := color.New(color.FgHiGreen, color.Bold)
	removed := color.New(color.FgHiRed, color.Bold)
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
