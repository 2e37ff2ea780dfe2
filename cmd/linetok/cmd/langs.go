// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"strings"

	"cogentcore.org/linetok/text/highlighting"
	"github.com/spf13/cobra"
)

func newLangsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the languages with their file globs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range a.reg.Names() {
				def, ok := a.reg.Definition(name)
				if !ok {
					continue
				}
				src := "builtin"
				if !strings.HasPrefix(def.Path, "builtin/") {
					src = def.Path
				}
				if _, err := fmt.Fprintf(w, "%-12s %-28s %s\n", def.Name, strings.Join(def.Files, " "), src); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newStylesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the highlighting styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range highlighting.StyleNames() {
				mark := " "
				if name == a.cfg.Style {
					mark = "*"
				}
				if _, err := fmt.Fprintf(w, "%s %s\n", mark, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
