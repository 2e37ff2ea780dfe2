// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"cogentcore.org/linetok/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config [--write [file]]",
		Short: "Print the effective configuration, or write the default one",
		Long: `Print the configuration in effect after the config file, the LINETOK_
environment variables and the flags are applied. With --write, write the
default configuration to the given file instead (default:
~/.config/linetok/config.yaml).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if write {
				file := config.DefaultPath()
				if len(args) > 0 {
					file = args[0]
				}
				if err := config.WriteDefaultConfig(file); err != nil {
					return err
				}
				_, err := fmt.Fprintln(w, file)
				return err
			}
			if len(args) > 0 {
				return fmt.Errorf("config: unexpected argument %q without --write", args[0])
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the default configuration")
	return cmd
}
