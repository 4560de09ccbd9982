package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/evanschultz/pseudo-refine/pkg/syntax"
	"github.com/evanschultz/pseudo-refine/pkg/theme"
)

// errNotFormatted is returned by format --check.
var errNotFormatted = errors.New("not formatted")

func newFormatCmd(a *app) *cobra.Command {
	var (
		color string
		check bool
	)

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Re-indent pseudocode from a file or stdin",
		Example: `  pseudo-refine format algoritmo.txt
  cat algoritmo.txt | pseudo-refine format --color=never
  pseudo-refine format --check algoritmo.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				in   io.Reader = cmd.InOrStdin()
				name           = "stdin"
			)
			if len(args) > 0 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				in, name = f, args[0]
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			src := string(data)
			out := a.formatter().Format(src)

			if check {
				if out != src {
					fmt.Fprintln(cmd.OutOrStdout(), name)
					return fmt.Errorf("%s: %w", name, errNotFormatted)
				}
				return nil
			}

			colorize, err := wantColor(color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if colorize {
				th, err := a.loadTheme()
				if err != nil {
					return err
				}
				if color == "always" {
					lipgloss.SetColorProfile(termenv.ANSI256)
				}
				out = highlight(out, th)
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			if !strings.HasSuffix(out, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "auto", "colour output: auto, always or never")
	cmd.Flags().BoolVar(&check, "check", false, "only report whether the input is already formatted")
	return cmd
}

func (a *app) loadTheme() (theme.Theme, error) {
	if a.cfg.ThemeFile != "" {
		return theme.LoadFile(a.cfg.ThemeFile)
	}
	return theme.Load(a.cfg.Theme)
}

// wantColor resolves the --color flag. auto colours only terminals.
func wantColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("invalid --color %q (expected auto|always|never)", mode)
}

func highlight(text string, th theme.Theme) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = th.Render(syntax.Tokenize(line))
	}
	return strings.Join(lines, "\n")
}
