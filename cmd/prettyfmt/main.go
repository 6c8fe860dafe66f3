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


// Command prettyfmt lays out documents and source files with the dom printer.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/syntax/printer"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by all subcommands.
type app struct {
	logger  *slog.Logger
	options printer.Options

	added, removed, header *color.Color
}

func newRootCommand() *cobra.Command {
	a := &app{
		logger:  slog.New(slog.DiscardHandler),
		added:   color.New(color.FgHiGreen),
		removed: color.New(color.FgHiRed),
		header:  color.New(color.Bold),
	}
	root := &cobra.Command{
		Use:   "prettyfmt",
		Short: "Width-aware pretty printer",
		Long: `prettyfmt formats source files and renders document trees
using a bounded-width layout engine.`,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a "+configName+" file (default: search upward)")
	flags.Int("width", dom.DefaultMaxWidth, "maximum line width")
	flags.Int("indent", 4, "spaces per indentation level")
	flags.Int("min-space", 0, "minimum width left to content after indentation")
	flags.String("measure", "default", "text width measure (default|graphemes|bytes|east-asian)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.BoolP("verbose", "v", false, "log progress to stderr")

	root.AddCommand(a.fmtCommand())
	root.AddCommand(a.renderCommand())
	root.AddCommand(a.convertCommand())
	return root
}

// setup configures logging, colors and layout options before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	enabled, err := colorEnabled(mode, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	for _, c := range []*color.Color{a.added, a.removed, a.header} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	a.options, err = a.loadOptions(cmd)
	return err
}

func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q: want auto, on or off", mode)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
