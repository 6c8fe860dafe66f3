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

package dom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/dom/domfile"
	"github.com/bufbuild/prettyprint/internal/golden"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata",
		Refresh:    "PRETTYPRINT_REFRESH",
		Extensions: []string{"yaml"},
		Outputs: []golden.Output{
			{Extension: "out"},
			{Extension: "html"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		file, err := domfile.ReadYAML([]byte(text))
		require.NoError(t, err)
		options, err := file.Options.Apply(dom.Options{})
		require.NoError(t, err)
		doc, err := file.Build()
		require.NoError(t, err)

		outputs[0], err = dom.Print(options, doc)
		require.NoError(t, err)

		options.HTML = true
		outputs[1], err = dom.Print(options, doc)
		require.NoError(t, err)
	})
}
