// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/linetok/text/languages"
	"cogentcore.org/linetok/text/syntax"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var watch, tree bool
	cmd := &cobra.Command{
		Use:   "check [dir...]",
		Short: "Load and build language definitions, reporting errors",
		Long: `Load the language definition files of the given directories (default:
the configured language directories) and build every language, printing
one line per language. With --tree, also list the sub-syntaxes of each
language, indented by nesting level. With --watch, keep reloading the directories as
their files change until interrupted.

Examples:
  linetok check ~/.config/linetok/languages
  linetok check --tree
  linetok check --watch ./languages`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				var err error
				if dirs, err = a.cfg.Dirs(); err != nil {
					return err
				}
			}
			w := cmd.OutOrStdout()
			var errs []error
			for _, dir := range dirs {
				if err := a.reg.LoadDir(dir); err != nil {
					fmt.Fprintf(w, "FAIL %s: %v\n", dir, err)
					errs = append(errs, err)
				}
			}
			for _, name := range a.reg.Names() {
				errs = append(errs, a.checkLanguage(w, name, tree))
			}
			if !watch {
				return errors.Join(errs...)
			}
			if len(dirs) == 0 {
				return errors.New("check --watch: no directories to watch")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, w, dirs, tree)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload and check again when files change")
	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "list the nested sub-syntaxes of each language")
	return cmd
}

// checkLanguage builds one language and prints the outcome, and with
// tree its sub-syntaxes.
func (a *app) checkLanguage(w io.Writer, name string, tree bool) error {
	syn, err := a.reg.Syntax(name)
	if err != nil {
		fmt.Fprintf(w, "FAIL %s: %v\n", name, err)
		return err
	}
	fmt.Fprintf(w, "ok   %s: %d rules, %d symbols, %d levels\n", name, len(syn.Rules), len(syn.Symbols), syn.Height())
	if !tree {
		return nil
	}
	syn.Walk(func(level int, sub *syntax.Syntax) {
		if level == 0 {
			return
		}
		fmt.Fprintf(w, "     %s%s: %d rules, %d symbols\n", strings.Repeat("  ", level), sub.Name, len(sub.Rules), len(sub.Symbols))
	})
	return nil
}

// watch checks the languages of each reloaded file until ctx is done.
func (a *app) watch(ctx context.Context, w io.Writer, dirs []string, tree bool) error {
	wt, err := languages.NewWatcher(a.reg, dirs...)
	if err != nil {
		return err
	}
	wt.Debounce = a.cfg.Watch.Debounce
	fmt.Fprintf(w, "watching %s\n", strings.Join(dirs, ", "))
	err = wt.Run(ctx, func(rl languages.Reload) {
		switch {
		case rl.Err != nil:
			fmt.Fprintf(w, "FAIL %s: %v\n", rl.Path, rl.Err)
		case rl.Removed:
			fmt.Fprintf(w, "gone %s\n", strings.Join(rl.Names, ", "))
		default:
			for _, name := range rl.Names {
				a.checkLanguage(w, name, tree)
			}
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
