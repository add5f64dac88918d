package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the sportsday CLI
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sportsday",
		Short: "Sportsday - schedule and join sports sessions",
		Long: `Sportsday is a web application for scheduling sports sessions:
admins manage a sport catalog, players create and join sessions, and a
reports page aggregates session counts per sport.`,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
