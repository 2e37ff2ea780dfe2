// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the configuration of the linetok command:
// its types, defaults, validation and the default config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatANSI   = "ansi"
	FormatHTML   = "html"
	FormatMarkup = "markup"
)

// Formats are the valid values of [Config.Format].
var Formats = []string{FormatANSI, FormatHTML, FormatMarkup}

// Config holds all configuration options for linetok.
type Config struct {

	// Style is the name of the highlighting style.
	Style string `mapstructure:"style" yaml:"style"`

	// Format is the output format of the highlight command.
	Format string `mapstructure:"format" yaml:"format"`

	// LanguageDirs are directories of language definition files, loaded
	// after the built-in languages. A leading ~ is the home directory.
	LanguageDirs []string `mapstructure:"language_dirs" yaml:"language_dirs,omitempty"`

	// StyleFiles are chroma xml style files to add to the styles.
	StyleFiles []string `mapstructure:"style_files" yaml:"style_files,omitempty"`

	// StepBudget bounds the matcher work per line: 0 is the default
	// budget and a negative value is unlimited.
	StepBudget int `mapstructure:"step_budget" yaml:"step_budget"`

	// Quick tokenizes for states only, without spans.
	Quick bool `mapstructure:"quick" yaml:"quick"`

	// TabSize is the tab width of html output.
	TabSize int `mapstructure:"tab_size" yaml:"tab_size"`

	// Watch configures the reloading of language directories.
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// WatchConfig holds the options of the language directory watcher.
type WatchConfig struct {

	// Debounce is how long file events settle before a reload.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Style:   "emacs",
		Format:  FormatANSI,
		TabSize: 4,
		Watch:   WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// Validate returns an error describing every invalid option.
func (c *Config) Validate() error {
	var errs []error
	if c.Style == "" {
		errs = append(errs, errors.New("style: must not be empty"))
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("format: %q is not one of %v", c.Format, Formats))
	}
	if c.TabSize < 1 {
		errs = append(errs, fmt.Errorf("tab_size: %d must be positive", c.TabSize))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: %v must not be negative", c.Watch.Debounce))
	}
	if slices.Contains(c.LanguageDirs, "") {
		errs = append(errs, errors.New("language_dirs: empty directory name"))
	}
	if slices.Contains(c.StyleFiles, "") {
		errs = append(errs, errors.New("style_files: empty file name"))
	}
	return errors.Join(errs...)
}

// Dirs returns the language directories with ~ expanded.
func (c *Config) Dirs() ([]string, error) {
	return expand("language_dirs", c.LanguageDirs)
}

// Styles returns the style files with ~ expanded.
func (c *Config) Styles() ([]string, error) {
	return expand("style_files", c.StyleFiles)
}

func expand(field string, paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		ex, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out = append(out, filepath.Clean(ex))
	}
	return out, nil
}

// DefaultPath returns the path of the user config file,
// ~/.config/linetok/config.yaml.
func DefaultPath() string {
	home := errors.Log1(homedir.Dir())
	return filepath.Join(home, ".config", "linetok", "config.yaml")
}

// WriteDefaultConfig writes the default configuration as yaml to the
// given path, making its directory as needed.
func WriteDefaultConfig(configPath string) error {
	slog.Debug("writing default config", "path", configPath)
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	slog.Info("created default config", "path", configPath)
	return nil
}
