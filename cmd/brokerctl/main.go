// Command brokerctl routes, schedules and processes submissions from the
// command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"submission-routing-engine/internal/utils"
)

var version = "dev"

type rootOptions struct {
	underwritersFile string
	useDatabase      bool
	now              string
	timezone         string
	logLevel         string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "brokerctl",
		Short: "Route and schedule insurance submissions",
		Long: `brokerctl runs the submission routing engine locally.

It ranks underwriters for a mapped form, picks the next contact slot for a
client, and processes discovery-call extractions end to end.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.logLevel == "" {
				return nil
			}
			return utils.InitLogger(opts.logLevel)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.underwritersFile, "underwriters", "", "underwriter JSON file (default: built-in roster or UNDERWRITERS_FILE)")
	flags.BoolVar(&opts.useDatabase, "db", false, "read underwriters and store submissions in PostgreSQL")
	flags.StringVar(&opts.now, "now", "", "reference time in RFC 3339 (default: current time)")
	flags.StringVar(&opts.timezone, "timezone", "", "timezone for business hours (default: SCHEDULE_TIMEZONE)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); silent when empty")

	cmd.AddCommand(routeCmd(opts))
	cmd.AddCommand(scheduleCmd(opts))
	cmd.AddCommand(processCmd(opts))
	cmd.AddCommand(underwritersCmd(opts))
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "brokerctl", version)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	utils.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
