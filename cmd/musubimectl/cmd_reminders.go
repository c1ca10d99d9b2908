package main

import (
	"fmt"

	"musubime/internal/app/bootstrap"

	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Deadline reminders",
}

var remindersSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Queue reminders for every campaign whose deadline is near",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(app *bootstrap.CLIApp) error {
			sweep, relay, err := app.SweepReminders(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"scanned=%d sent=%d failed=%d delivered=%d skipped=%d retried=%d\n",
				sweep.Scanned, sweep.Sent, sweep.Failed, relay.Delivered, relay.Skipped, relay.Retried,
			)
			return err
		})
	},
}

func init() {
	remindersCmd.AddCommand(remindersSweepCmd)
	rootCmd.AddCommand(remindersCmd)
}
