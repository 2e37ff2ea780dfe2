// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the linetok command line.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/linetok/base/logx"
	"cogentcore.org/linetok/config"
	"cogentcore.org/linetok/text/highlighting"
	"cogentcore.org/linetok/text/languages"
	"cogentcore.org/linetok/text/syntax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app is the state shared by the commands of one run.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	reg     *languages.Registry

	vv, verbose, quiet bool
}

// NewRootCmd returns the linetok command with all its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "linetok",
		Short: "Tokenize and highlight source files with line-resumable syntax rules",
		Long: `linetok tokenizes source files one line at a time with declarative
syntax rules, carrying a small state from each line to the next.

Languages are defined in TOML or YAML files; the built-in ones can be
extended or overridden with --lang-dir. Files without a rule-based
language are highlighted with the chroma lexers.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.init() },
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ~/.config/linetok/config.yaml)")
	pf.String("style", "", "highlighting style")
	pf.StringSlice("lang-dir", nil, "directory of language definition files (repeatable)")
	pf.StringSlice("style-file", nil, "chroma xml style file (repeatable)")
	pf.Int("step-budget", 0, "matcher steps allowed per line: 0 for the default, negative for no limit")
	pf.Bool("quick", false, "tokenize for the end states only")
	pf.BoolVar(&a.vv, "vv", false, "log debugging messages")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log informational messages")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")

	// Bind flags to viper
	_ = a.v.BindPFlag("style", pf.Lookup("style"))
	_ = a.v.BindPFlag("language_dirs", pf.Lookup("lang-dir"))
	_ = a.v.BindPFlag("style_files", pf.Lookup("style-file"))
	_ = a.v.BindPFlag("step_budget", pf.Lookup("step-budget"))
	_ = a.v.BindPFlag("quick", pf.Lookup("quick"))

	root.AddCommand(
		newTokenizeCmd(a),
		newHighlightCmd(a),
		newLangsCmd(a),
		newStylesCmd(a),
		newCheckCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}

func (a *app) init() error {
	logx.UserLevel = logx.LevelFromFlags(a.vv, a.verbose, a.quiet)
	logx.SetDefaultLogger()
	if err := a.loadConfig(); err != nil {
		return err
	}
	return a.loadLanguages()
}

// loadConfig reads the configuration from, in order of precedence, the
// flags, LINETOK_ environment variables, the config file and the
// defaults.
func (a *app) loadConfig() error {
	defaults := config.Defaults()
	a.v.SetDefault("style", defaults.Style)
	a.v.SetDefault("format", defaults.Format)
	a.v.SetDefault("tab_size", defaults.TabSize)
	a.v.SetDefault("step_budget", defaults.StepBudget)
	a.v.SetDefault("quick", defaults.Quick)
	a.v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	a.v.SetEnvPrefix("LINETOK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(filepath.Dir(config.DefaultPath()))
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	} else {
		slog.Debug("using config file", "path", a.v.ConfigFileUsed())
	}
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// loadLanguages makes the registry of the built-in languages plus
// those of the configured directories, and opens the style files.
func (a *app) loadLanguages() error {
	a.reg = languages.Builtin()
	dirs, err := a.cfg.Dirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := a.reg.LoadDir(dir); err != nil {
			return fmt.Errorf("loading languages from %s: %w", dir, err)
		}
		slog.Debug("loaded languages", "dir", dir)
	}
	files, err := a.cfg.Styles()
	if err != nil {
		return err
	}
	for _, file := range files {
		name, err := highlighting.OpenStyle(file)
		if err != nil {
			return err
		}
		slog.Debug("opened style", "name", name, "file", file)
	}
	return nil
}

// syntaxFor returns the syntax for a language name, or else for the
// file name.
func (a *app) syntaxFor(lang, filename string) (*syntax.Syntax, error) {
	switch {
	case lang != "":
		return a.reg.Syntax(lang)
	case filename != "":
		return a.reg.ForFile(filename)
	}
	return nil, errors.New("no language for standard input: use --lang")
}

// readInput returns the name and contents of the file argument, or of
// standard input when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return "", data, err
	}
	data, err := os.ReadFile(args[0])
	return args[0], data, err
}

// splitLines splits src into lines, without a last empty line for a
// final newline.
func splitLines(src []byte) [][]byte {
	src = bytes.TrimSuffix(src, []byte("\n"))
	if len(src) == 0 {
		return nil
	}
	lines := bytes.Split(src, []byte("\n"))
	for i, ln := range lines {
		lines[i] = bytes.TrimSuffix(ln, []byte("\r"))
	}
	return lines
}
