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
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// writeDiff writes a unified diff between the original and formatted
// contents of path.
func (a *app) writeDiff(w io.Writer, path, src, out string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(src),
		B:        difflib.SplitLines(out),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
	if err != nil {
		return err
	}

	var b strings.Builder
	for line := range strings.Lines(diff) {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			b.WriteString(a.header.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(a.removed.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(a.added.Sprint(line))
		default:
			b.WriteString(line)
		}
	}
	_, err = fmt.Fprint(w, b.String())
	return err
}
