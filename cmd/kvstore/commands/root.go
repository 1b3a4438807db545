package commands

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kvstore/internal/app"
)

var (
	configPath string
	dbPath     string
	logFile    string
	verbose    bool
	appCtx     *app.Wire
)

// Execute runs the CLI. Errors are printed to stderr.
func Execute() error {
	err := execute(newRootCmd())
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
	}
	return err
}

// execute runs root and tears down the wiring whether or not the command
// failed; cobra skips post-run hooks when RunE returns an error.
func execute(root *cobra.Command) error {
	defer func() {
		if appCtx != nil {
			_ = appCtx.Close()
			appCtx = nil
		}
	}()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kvstore",
		Short:         "A tiny key/value database backed by a flat text file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.PrintErr(cmd.UsageString())
			return errors.New("a subcommand is required")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DB = dbPath
			}
			if cmd.Flags().Changed("log-file") {
				cfg.Log.File = logFile
			}
			if verbose {
				cfg.Log.Debug = true
			}

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&dbPath, "db", app.DefaultDB, "database file")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write a rotating log to this file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		getCmd(),
		setCmd(),
		removeCmd(),
		initCmd(),
		listCmd(),
		importCmd(),
		fingerprintCmd(),
		serveCmd(),
	)
	return root
}
