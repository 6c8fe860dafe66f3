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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/dom/domfile"
)

func (a *app) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] <file>",
		Short: "Lay out a serialized document",
		Long: `Lay out a document stored as YAML or MessagePack (.msgpack, .mpk).
Options stored in the document take precedence over the configuration.
A path of "-" reads YAML from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runRender,
	}
	cmd.Flags().Bool("html", false, "dump the document tree as HTML instead of laying it out")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	html, err := cmd.Flags().GetBool("html")
	if err != nil {
		return err
	}
	file, err := a.readDocument(cmd, args[0])
	if err != nil {
		return err
	}

	options, err := file.Options.Apply(dom.Options{
		MaxWidth:   a.options.MaxWidth,
		IndentUnit: a.options.IndentUnit,
		MinSpace:   a.options.MinSpace,
		Measure:    a.options.Measure,
		HTML:       html,
	})
	if err != nil {
		return err
	}
	doc, err := file.Build()
	if err != nil {
		return err
	}
	a.logger.Debug("built document", "path", args[0], "nodes", doc.Len(), "width", options.MaxWidth)
	return dom.Fprint(cmd.OutOrStdout(), options, doc)
}

func (a *app) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a serialized document between YAML and MessagePack",
		Long: `Convert a serialized document between YAML and MessagePack. The
format of each file is chosen by its extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			file, err := a.readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if _, err := file.Build(); err != nil {
				return err
			}

			var data []byte
			switch filepath.Ext(args[1]) {
			case ".msgpack", ".mpk":
				data, err = file.Msgpack()
			default:
				data, err = file.YAML()
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return err
			}
			a.logger.Info("converted", "from", args[0], "to", args[1], "bytes", len(data))
			return nil
		},
	}
}

func (a *app) readDocument(cmd *cobra.Command, path string) (*domfile.File, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	file, err := domfile.Read(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}
