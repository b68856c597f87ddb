package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/mapper"
)

func routeCmd(root *rootOptions) *cobra.Command {
	var (
		formFile       string
		extractionFile string
		topN           int
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Rank underwriters for a submission",
		Long: `Rank underwriters for a mapped form (--form) or for a discovery-call
extraction (--extraction), which is mapped first. Use "-" to read stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (formFile == "") == (extractionFile == "") {
				return errors.New("exactly one of --form or --extraction is required")
			}

			var form *models.MappedForm
			if formFile != "" {
				form = models.NewMappedForm()
				if err := readJSONFile(formFile, cmd.InOrStdin(), form); err != nil {
					return err
				}
			} else {
				var ext models.DiscoveryCallExtraction
				if err := readJSONFile(extractionFile, cmd.InOrStdin(), &ext); err != nil {
					return err
				}
				form = mapper.Map(&ext)
			}

			a, err := buildApp(cmd.Context(), root, topN)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Router.Route(cmd.Context(), form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, result)
			}

			if len(result.Recommendations) == 0 {
				fmt.Fprintln(out, "No underwriters available.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tUNDERWRITER\tSCORE\tJUSTIFICATION")
			for i, rec := range result.Recommendations {
				fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\n", i+1, rec.Underwriter.Name, rec.Score, rec.Justification)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&formFile, "form", "", "mapped form JSON file")
	cmd.Flags().StringVar(&extractionFile, "extraction", "", "discovery-call extraction JSON file")
	cmd.Flags().IntVar(&topN, "top", 0, "number of recommendations (default: ROUTING_TOP_N)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full routing result as JSON")

	return cmd
}
