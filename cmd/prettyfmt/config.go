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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/bufbuild/prettyprint/dom"
	"github.com/bufbuild/prettyprint/syntax/printer"
)

const configName = ".prettyfmt.toml"

// config is the contents of a .prettyfmt.toml file. Keys that are absent
// are nil.
type config struct {
	MaxWidth   *int    `toml:"max_width"`
	IndentUnit *int    `toml:"indent_unit"`
	MinSpace   *int    `toml:"min_space"`
	Measure    *string `toml:"measure"`
}

// findConfig searches startDir and its parents for a config file.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (config, error) {
	var cfg config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return cfg, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// loadOptions resolves layout options. Flags given on the command line win
// over the config file, which wins over flag defaults.
func (a *app) loadOptions(cmd *cobra.Command) (printer.Options, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return printer.Options{}, err
	}
	if path == "" {
		var ok bool
		path, ok, err = findConfig(".")
		if err != nil {
			return printer.Options{}, err
		}
		if !ok {
			path = ""
		}
	}

	var cfg config
	if path != "" {
		cfg, err = loadConfig(path)
		if err != nil {
			return printer.Options{}, err
		}
		a.logger.Debug("loaded config", "path", path)
	}

	// A flag wins if it was given, then the config, then the flag's default.
	resolve := func(name string, fromConfig *int) (int, error) {
		if fromConfig != nil && !flags.Changed(name) {
			return *fromConfig, nil
		}
		return flags.GetInt(name)
	}
	var opts printer.Options
	if opts.MaxWidth, err = resolve("width", cfg.MaxWidth); err != nil {
		return printer.Options{}, err
	}
	if opts.IndentUnit, err = resolve("indent", cfg.IndentUnit); err != nil {
		return printer.Options{}, err
	}
	if opts.MinSpace, err = resolve("min-space", cfg.MinSpace); err != nil {
		return printer.Options{}, err
	}

	measure, err := flags.GetString("measure")
	if err != nil {
		return printer.Options{}, err
	}
	if cfg.Measure != nil && !flags.Changed("measure") {
		measure = *cfg.Measure
	}
	if opts.Measure, err = dom.ParseMeasure(measure); err != nil {
		return printer.Options{}, err
	}

	// dom treats a zero width as unset; an explicit zero is never valid.
	if opts.MaxWidth == 0 {
		return printer.Options{}, &dom.OptionError{Field: "MaxWidth", Value: 0, Reason: "must be positive"}
	}
	if err := (dom.Options{
		MaxWidth:   opts.MaxWidth,
		IndentUnit: opts.IndentUnit,
		MinSpace:   opts.MinSpace,
	}).Validate(); err != nil {
		return printer.Options{}, err
	}
	return opts, nil
}
