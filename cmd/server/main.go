package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "hirehub",
		Short: "Applicant tracking API",
		Long: `hirehub serves the job board, application tracking and resume API.

Configuration is read from the environment, optionally seeded from a .env file.

Examples:
  hirehub serve                      # run migrations and start the HTTP server
  hirehub migrate                    # apply pending migrations and exit
  hirehub create-admin --email ...   # bootstrap the first admin account`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newCreateAdminCommand())
	return root
}
