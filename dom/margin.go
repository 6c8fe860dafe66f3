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

// margin tracks the space left on the line currently being printed.
//
// It is the single source of truth for whether something fits: the scanner
// consults it to decide how far ahead it may buffer, and the printer consults
// it to decide whether to take a break.
type margin struct {
	width    int // Options.MaxWidth.
	minSpace int // Options.MinSpace.

	// Columns left on the current line. May be negative once a line has
	// overflowed.
	space int
}

func newMargin(options Options) margin {
	return margin{
		width:    options.MaxWidth,
		minSpace: options.MinSpace,
		space:    options.MaxWidth,
	}
}

// fits returns whether size more columns fit on the current line.
func (m *margin) fits(size int) bool {
	return size <= m.space
}

// consume records that n columns were printed on the current line.
func (m *margin) consume(n int) {
	m.space -= n
}

// newline records that a new line was started with the given indentation.
func (m *margin) newline(indent int) {
	m.space = max(m.width-indent, m.minSpace)
}
