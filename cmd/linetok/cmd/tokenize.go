// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"cogentcore.org/linetok/text/tokenizer"
	"github.com/spf13/cobra"
)

func newTokenizeCmd(a *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Print the spans and end state of each line",
		Long: `Tokenize a file, or standard input, one line at a time and print for
each line its number, the packed state at its end and its spans as
class:length pairs.

Examples:
  linetok tokenize main.c
  echo 'local x = 1 --[[ open' | linetok tokenize --lang lua
  linetok tokenize --quick big.js`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			syn, err := a.syntaxFor(lang, name)
			if err != nil {
				return err
			}
			tk := tokenizer.Tokenizer{Syntax: syn, StepBudget: a.cfg.StepBudget}
			w := cmd.OutOrStdout()
			var st tokenizer.State
			for i, line := range splitLines(src) {
				res := tk.Line(line, st, a.cfg.Quick)
				st = res.State
				suffix := ""
				if res.Exhausted {
					suffix = "\texhausted"
				}
				if _, err := fmt.Fprintf(w, "%d\t%#x\t%v%s\n", i+1, st.Uint64(), res.Spans, suffix); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language name (default: by file name)")
	return cmd
}
