package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evanschultz/pseudo-refine/pkg/config"
	"github.com/evanschultz/pseudo-refine/pkg/formatter"
	"github.com/evanschultz/pseudo-refine/pkg/logging"
	"github.com/evanschultz/pseudo-refine/pkg/session"
	"github.com/evanschultz/pseudo-refine/pkg/tui"
)

// app carries state shared by all commands.
type app struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pseudo-refine [file]",
		Short: "A terminal editor for Spanish-keyword pseudocode with refinement levels",
		Long: `pseudo-refine is a terminal editor for structured pseudocode written with
Spanish keywords (SI, MIENTRAS, PARA, ...). It re-indents the text as you type and
lets you split a design into named refinement levels that link to each other.

A level named "Nivel 2 - Calcular Promedio" is linked from any text that mentions
"Calcular Promedio". Ctrl+click a link to jump to that level.

If a file is given, its contents seed the general design level.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: a.runEditor,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pseudo-refine/config.yaml)")
	flags.String("theme", "dracula", "syntax theme (dracula, monokai)")
	flags.String("theme-file", "", "load the syntax theme from a Monaco theme JSON file")
	flags.String("ui-theme", "light", "interface colours: light or dark")
	flags.String("export-file", "algoritmo.txt", "file written by the export action")
	flags.Int("indent-width", 4, "spaces per indentation level")
	flags.Bool("case-fold", false, "match keywords regardless of case")
	flags.String("log-file", "", "append structured logs to this file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newFormatCmd(a), newSnippetsCmd())
	return rootCmd
}

// formatter builds the formatter described by the config.
func (a *app) formatter() *formatter.Formatter {
	opts := []formatter.Option{formatter.WithIndentWidth(a.cfg.IndentWidth)}
	if a.cfg.CaseFold {
		opts = append(opts, formatter.WithCaseFolding())
	}
	return formatter.New(opts...)
}

func (a *app) runEditor(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		text = string(data)
	}

	log, err := logging.New().
		FromPath(a.cfg.LogFile).
		WithLevel(a.cfg.LogLevel).
		Make()
	if err != nil {
		return err
	}
	defer log.Close()

	sess := session.New(
		session.WithFormatter(a.formatter()),
		session.WithLogger(log.Logger),
		session.WithText(text),
	)
	if err := tui.Run(tui.New(sess, a.cfg, log.Logger)); err != nil {
		log.Logger.Error().Err(err).Msg("editor exited")
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
