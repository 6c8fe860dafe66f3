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
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/prettyprint/syntax/printer"
)

const sourceExt = ".rs"

func (a *app) fmtCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path>...",
		Short: "Format source files in place",
		Long: `Format source files in place. Directories are searched recursively
for ` + sourceExt + ` files. A path of "-" formats standard input to standard output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runFmt,
	}
	cmd.Flags().Bool("check", false, "report files that are not formatted instead of rewriting them")
	cmd.Flags().Bool("stdout", false, "write formatted output to stdout instead of rewriting files")
	cmd.Flags().Int("jobs", 0, "maximum number of files to format in parallel (0 = GOMAXPROCS)")
	return cmd
}

// formatted is the result of formatting one file.
type formatted struct {
	path     string
	mode     fs.FileMode
	src, out string
}

func (r formatted) changed() bool { return r.src != r.out }

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	stdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if slices.Contains(args, "-") {
		if len(args) != 1 {
			return fmt.Errorf("\"-\" cannot be combined with other paths")
		}
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		text, err := printer.Format(a.options, "<stdin>", string(src))
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, text)
		return err
	}

	files, err := collectSources(args)
	if err != nil {
		return err
	}
	a.logger.Debug("collected sources", "count", len(files))

	results, err := a.formatAll(cmd.Context(), files, jobs)
	if err != nil {
		return err
	}

	var unformatted int
	for _, r := range results {
		switch {
		case stdout:
			if _, err := io.WriteString(out, r.out); err != nil {
				return err
			}
		case check:
			if r.changed() {
				unformatted++
				if err := a.writeDiff(out, r.path, r.src, r.out); err != nil {
					return err
				}
			}
		case r.changed():
			if err := os.WriteFile(r.path, []byte(r.out), r.mode.Perm()); err != nil {
				return err
			}
			a.logger.Info("formatted", "path", r.path)
		default:
			a.logger.Debug("unchanged", "path", r.path)
		}
	}
	if unformatted > 0 {
		return fmt.Errorf("%d of %d files are not formatted", unformatted, len(results))
	}
	return nil
}

// formatAll formats files concurrently. Results are in the order of files.
func (a *app) formatAll(ctx context.Context, files []string, jobs int) ([]formatted, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]formatted, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			text, err := printer.Format(a.options, path, string(src))
			if err != nil {
				return err
			}
			results[i] = formatted{path: path, mode: info.Mode(), src: string(src), out: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// collectSources expands directories into the source files they contain.
// Explicitly named files are kept regardless of extension.
func collectSources(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == sourceExt {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
