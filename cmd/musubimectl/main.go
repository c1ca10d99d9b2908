package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"musubime/internal/app/bootstrap"

	"github.com/spf13/cobra"
)

// operatorID tags CLI-issued writes in the logs.
var operatorID string

// rootCmd is the ops entry point. Every subcommand acts as an admin.
var rootCmd = &cobra.Command{
	Use:           "musubimectl",
	Short:         "Operate Musubime campaigns from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&operatorID, "operator", "musubimectl", "Admin id recorded for CLI actions")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp builds the runtime for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(app *bootstrap.CLIApp) error) error {
	app, err := bootstrap.BuildCLI(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		_ = app.Close()
	}()
	return fn(app)
}
