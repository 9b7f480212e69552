package cli

import (
	"io"
	"log/slog"
	"os"

	"expense-manager/internal/config"

	"github.com/spf13/cobra"
)

// App is the expensectl command tree.
type App struct {
	rootCmd    *cobra.Command
	out        io.Writer
	loadConfig func() *config.Config
}

// NewApp builds the root command and its subcommands.
func NewApp(version string) *App {
	app := &App{
		out:        os.Stdout,
		loadConfig: config.Load,
	}

	rootCmd := &cobra.Command{
		Use:           "expensectl",
		Short:         "Operate the expense manager database and inspect reports",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "expensectl version: %s\n" .Version}}`)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		app.newMigrateCommand(),
		app.newReportCommand(),
		app.newPurgeTokensCommand(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the command selected by the process arguments.
func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// SetOutput redirects command output, used by tests.
func (app *App) SetOutput(w io.Writer) {
	app.out = w
	app.rootCmd.SetOut(w)
	app.rootCmd.SetErr(w)
}

// SetArgs overrides the process arguments, used by tests.
func (app *App) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}
