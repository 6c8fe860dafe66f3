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

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	MeasureDefault   Measure = iota // Selects MeasureGraphemes.
	MeasureGraphemes                // Terminal cells per grapheme cluster.
	MeasureBytes                    // UTF-8 bytes.
	MeasureEastAsian                // Terminal cells, ambiguous-width runes counted as wide.
)

// Measure selects how the width of a text fragment is computed.
type Measure byte

// eastAsian is shared by all print jobs; it is never mutated after init.
var eastAsian = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = true
	return c
}()

// ParseMeasure parses the name of a [Measure], as returned by
// [Measure.String].
func ParseMeasure(name string) (Measure, error) {
	switch name {
	case "", "default":
		return MeasureDefault, nil
	case "graphemes":
		return MeasureGraphemes, nil
	case "bytes":
		return MeasureBytes, nil
	case "east-asian":
		return MeasureEastAsian, nil
	}
	return MeasureDefault, fmt.Errorf("dom: unknown measure %q", name)
}

// String implements [fmt.Stringer].
func (m Measure) String() string {
	switch m {
	case MeasureDefault:
		return "default"
	case MeasureGraphemes:
		return "graphemes"
	case MeasureBytes:
		return "bytes"
	case MeasureEastAsian:
		return "east-asian"
	default:
		return fmt.Sprintf("measure(%d)", int(m))
	}
}

// width returns the number of columns text occupies.
func (m Measure) width(text string) int {
	switch m {
	case MeasureBytes:
		return len(text)
	case MeasureEastAsian:
		return eastAsian.StringWidth(text)
	default:
		return uniseg.StringWidth(text)
	}
}
