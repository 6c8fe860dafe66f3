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
	"strings"
)

// dumpHTML renders the structure of a document as pseudo-HTML.
func dumpHTML(d *Document) string {
	var out strings.Builder
	htmlTo(&out, 0, d.cursor())
	return out.String()
}

func htmlTo(out *strings.Builder, depth int, cursor cursor) {
	for n, children := range cursor {
		for range depth {
			out.WriteString("    ")
		}

		var cond string
		switch n.cond {
		case Flat:
			cond = " if=flat"
		case Broken:
			cond = " if=broken"
		}

		switch n.kind {
		case kindText:
			if cond != "" {
				fmt.Fprintf(out, "<p%v>%q</p>\n", cond, n.text)
			} else {
				fmt.Fprintf(out, "%q\n", n.text)
			}

		case kindBreak:
			if n.offset != 0 {
				fmt.Fprintf(out, "<br kind=%v offset=%v>\n", n.brk, n.offset)
			} else {
				fmt.Fprintf(out, "<br kind=%v>\n", n.brk)
			}

		case kindGroup:
			var atomic string
			if !n.breakable {
				atomic = " atomic"
			}
			fmt.Fprintf(out, "<group %v%v>\n", n.breaks, atomic)
			htmlTo(out, depth+1, children)
			closeTag(out, depth, "group")

		case kindIndent:
			if n.levels != 0 {
				fmt.Fprintf(out, "<indent levels=%v>\n", n.levels)
			} else {
				fmt.Fprintf(out, "<indent by=%v>\n", n.offset)
			}
			htmlTo(out, depth+1, children)
			closeTag(out, depth, "indent")
		}
	}
}

func closeTag(out *strings.Builder, depth int, name string) {
	for range depth {
		out.WriteString("    ")
	}
	fmt.Fprintf(out, "</%v>\n", name)
}
