// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"log/slog"

	"cogentcore.org/linetok/config"
	"cogentcore.org/linetok/text/highlighting"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newHighlightCmd(a *app) *cobra.Command {
	var (
		lang    string
		css     bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Print a file with syntax highlighting",
		Long: `Highlight a file, or standard input, as colored terminal text (ansi),
a chroma html block (html), or lines of html class markup (markup).

Examples:
  linetok highlight main.c
  linetok highlight --format html --css page.html > page.out.html
  cat notes.lua | linetok highlight --lang lua --style monokai`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			hi := &highlighting.Highlighter{
				StyleName:  highlighting.StyleName(a.cfg.Style),
				TabSize:    a.cfg.TabSize,
				StepBudget: a.cfg.StepBudget,
			}
			if !highlighting.HasStyle(hi.StyleName) {
				slog.Warn("unknown style, using the default", "style", a.cfg.Style, "default", highlighting.DefaultStyle)
			}
			if lang != "" {
				if err := hi.SetLanguage(a.reg, lang); err != nil {
					return err
				}
			} else {
				hi.Init(a.reg, name)
			}
			if !hi.Has {
				slog.Warn("no language found, output is plain text", "file", name)
			}
			slog.Debug("highlighting", "language", hi.Language, "rules", hi.UsingRules())

			lines := splitLines(src)
			spans := hi.SpansAll(lines)
			w := cmd.OutOrStdout()
			switch a.cfg.Format {
			case config.FormatHTML:
				if css {
					fmt.Fprintln(w, "<style>")
					if err := hi.WriteCSS(w); err != nil {
						return err
					}
					fmt.Fprintln(w, "</style>")
				}
				return hi.FormatHTML(w, lines, spans)
			case config.FormatMarkup:
				for i, ln := range lines {
					if _, err := fmt.Fprintf(w, "%s\n", highlighting.MarkupLineHTML(ln, spans[i], highlighting.EscapeHTML)); err != nil {
						return err
					}
				}
			default:
				profile := termenv.NewOutput(w).EnvColorProfile()
				if noColor {
					profile = termenv.Ascii
				}
				for i, ln := range lines {
					if _, err := fmt.Fprintln(w, highlighting.MarkupLineANSI(profile, hi.Style, ln, spans[i])); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&lang, "lang", "l", "", "language name (default: by file name)")
	f.StringP("format", "f", "", "output format: ansi, html or markup")
	f.Int("tab-size", 0, "tab width of html output")
	f.BoolVar(&css, "css", false, "write the style sheet before html output")
	f.BoolVar(&noColor, "no-color", false, "no terminal colors")
	_ = a.v.BindPFlag("format", f.Lookup("format"))
	_ = a.v.BindPFlag("tab_size", f.Lookup("tab-size"))
	return cmd
}
