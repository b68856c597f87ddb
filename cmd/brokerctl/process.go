package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"submission-routing-engine/internal/models"
)

func processCmd(root *rootOptions) *cobra.Command {
	var (
		extractionFile string
		transcriptFile string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run a submission through mapping, routing and scheduling",
		Long: `Process a discovery-call extraction (--extraction) or a raw transcript
(--transcript, requires GEMINI_API_KEY). Prints the executive summary, or
the whole submission package with --json.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (extractionFile == "") == (transcriptFile == "") {
				return errors.New("exactly one of --extraction or --transcript is required")
			}

			a, err := buildApp(cmd.Context(), root, 0)
			if err != nil {
				return err
			}
			defer a.Close()

			var pkg *models.SubmissionPackage
			if extractionFile != "" {
				var ext models.DiscoveryCallExtraction
				if err := readJSONFile(extractionFile, cmd.InOrStdin(), &ext); err != nil {
					return err
				}
				pkg, err = a.Engine.ProcessSubmission(cmd.Context(), &ext)
			} else {
				var transcript string
				transcript, err = readText(transcriptFile, cmd.InOrStdin())
				if err != nil {
					return err
				}
				pkg, err = a.Engine.ProcessTranscript(cmd.Context(), transcript)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, pkg)
			}
			printSummary(out, pkg)
			return nil
		},
	}

	cmd.Flags().StringVar(&extractionFile, "extraction", "", "discovery-call extraction JSON file")
	cmd.Flags().StringVar(&transcriptFile, "transcript", "", "discovery-call transcript text file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full submission package as JSON")

	return cmd
}

func readText(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func printSummary(w io.Writer, pkg *models.SubmissionPackage) {
	fmt.Fprintf(w, "Submission %s (%s)\n\n", pkg.Status.SubmissionID, pkg.Status.CurrentState)

	s := pkg.Summary
	if s == nil {
		return
	}
	fmt.Fprintln(w, s.Headline)
	fmt.Fprintln(w, strings.Repeat("=", len(s.Headline)))
	fmt.Fprintf(w, "\nBusiness: %s\n", s.BusinessSnapshot)
	fmt.Fprintf(w, "Routing:  %s\n", s.RoutingRationale)
	fmt.Fprintf(w, "Next:     %s\n", s.NextAction)
	fmt.Fprintf(w, "Client:   %s\n", s.ClientContextNote)

	if len(s.BrokerTasks) > 0 {
		fmt.Fprintln(w, "\nBroker tasks:")
		for _, task := range s.BrokerTasks {
			fmt.Fprintf(w, "  - %s\n", task)
		}
	}
}
