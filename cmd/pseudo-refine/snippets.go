package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evanschultz/pseudo-refine/pkg/snippets"
)

func newSnippetsCmd() *cobra.Command {
	var (
		output   string
		prefix   string
		keywords bool
	)

	cmd := &cobra.Command{
		Use:   "snippets [key]",
		Short: "List the snippet catalog or print one template",
		Example: `  pseudo-refine snippets
  pseudo-refine snippets mientras
  pseudo-refine snippets --keywords
  pseudo-refine snippets --prefix mi --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), format)
			out := cmd.OutOrStdout()
			cat := snippets.Default()

			switch {
			case len(args) > 0:
				tmpl, ok := cat.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown snippet %q (available: %s)", args[0], strings.Join(cat.Keys(), ", "))
				}
				if p.structured() {
					return p.print(snippets.Snippet{Key: args[0], Template: tmpl})
				}
				fmt.Fprint(out, tmpl)
				if !strings.HasSuffix(tmpl, "\n") {
					fmt.Fprintln(out)
				}

			case cmd.Flags().Changed("prefix"):
				sugg := cat.Suggest(prefix)
				if p.structured() {
					return p.print(sugg)
				}
				for _, s := range sugg {
					fmt.Fprintf(out, "%-8s %s\n", s.Kind, s.Label)
				}

			case keywords:
				if p.structured() {
					return p.print(cat.Keywords())
				}
				fmt.Fprintln(out, strings.Join(cat.Keywords(), "\n"))

			default:
				if p.structured() {
					return p.print(cat.Snippets())
				}
				fmt.Fprintln(out, strings.Join(cat.Keys(), "\n"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&prefix, "prefix", "", "show completion suggestions for a typed word")
	cmd.Flags().BoolVar(&keywords, "keywords", false, "list the reserved words instead of snippets")
	return cmd
}
