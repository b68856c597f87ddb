package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"submission-routing-engine/internal/models"
)

func scheduleCmd(root *rootOptions) *cobra.Command {
	var (
		sc     models.SocialContext
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Pick the next contact time for a client",
		Example: `  brokerctl schedule --availability "unavailable until 1:00 PM Tuesday" \
      --restrictions "don't call tomorrow morning" --now 2025-01-06T10:00:00Z`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context(), root, 0)
			if err != nil {
				return err
			}
			defer a.Close()

			action := a.Scheduler.Schedule(sc)

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, action)
			}

			fmt.Fprintf(out, "Send at:    %s\n", action.ScheduledTime.Format("Monday, Jan 02 2006 15:04 MST"))
			fmt.Fprintf(out, "Reason:     %s\n", action.Reason)
			fmt.Fprintf(out, "Constraint: %s\n", action.RespectedConstraint)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sc.AvailabilityNotes, "availability", "", "client availability notes")
	flags.StringVar(&sc.ContactRestrictions, "restrictions", "", "contact restrictions")
	flags.StringVar(&sc.PreferredContactTime, "preferred", "", "preferred contact time")
	flags.StringVar(&sc.PersonalConstraints, "personal", "", "personal constraints")
	flags.BoolVar(&asJSON, "json", false, "print the scheduled action as JSON")

	return cmd
}
