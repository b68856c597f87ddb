package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/handlers"
	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/database"
	"submission-routing-engine/internal/services/underwriters"
	"submission-routing-engine/internal/utils"
)

func underwritersCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "underwriters",
		Aliases: []string{"uw"},
		Short:   "Inspect and manage the underwriter roster",
	}

	cmd.AddCommand(underwritersListCmd(root))
	cmd.AddCommand(underwritersValidateCmd())
	cmd.AddCommand(underwritersImportCmd())
	cmd.AddCommand(underwritersWorkloadCmd())

	return cmd
}

func underwritersListCmd(root *rootOptions) *cobra.Command {
	var (
		regionFilter   string
		naicsFilter    string
		appetiteFilter string
		maxWorkload    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List underwriters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context(), root, 0)
			if err != nil {
				return err
			}
			defer a.Close()

			all, err := a.Underwriters.ListUnderwriters(cmd.Context())
			if err != nil {
				return err
			}
			store, err := underwriters.NewStore(all)
			if err != nil {
				return err
			}

			list := store.All()
			if regionFilter != "" {
				list = intersect(list, store.ByRegion(models.Region(regionFilter)))
			}
			if naicsFilter != "" {
				list = intersect(list, store.ByNAICS(naicsFilter))
			}
			if appetiteFilter != "" {
				list = intersect(list, store.ByAppetite(appetiteFilter))
			}
			if maxWorkload != "" {
				w := models.Workload(strings.ToLower(maxWorkload))
				if !w.IsValid() {
					return fmt.Errorf("invalid --max-workload %q: want low, medium or high", maxWorkload)
				}
				list = intersect(list, store.Available(w))
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No underwriters found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREGIONS\tNAICS\tTURNAROUND\tACCEPTANCE\tWORKLOAD")
			for _, u := range list {
				regions := make([]string, len(u.Regions))
				for i, r := range u.Regions {
					regions[i] = string(r)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1fd\t%.0f%%\t%s\n",
					u.Name,
					strings.Join(regions, ","),
					strings.Join(u.NAICSSpecialties, ","),
					u.AvgTurnaroundDays,
					u.AcceptanceRate*100,
					u.CurrentWorkload,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&regionFilter, "region", "", "only underwriters covering the region (e.g. Southeast)")
	cmd.Flags().StringVar(&naicsFilter, "naics", "", "only underwriters with the NAICS specialty")
	cmd.Flags().StringVar(&appetiteFilter, "appetite", "", "only underwriters whose appetite mentions the text")
	cmd.Flags().StringVar(&maxWorkload, "max-workload", "", "only underwriters at or below the workload")

	return cmd
}

// intersect keeps the entries of list whose name appears in keep.
func intersect(list, keep []*models.Underwriter) []*models.Underwriter {
	names := make(map[string]bool, len(keep))
	for _, u := range keep {
		names[u.Name] = true
	}
	out := make([]*models.Underwriter, 0, len(list))
	for _, u := range list {
		if names[u.Name] {
			out = append(out, u)
		}
	}
	return out
}

func underwritersValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate an underwriter JSON or CSV roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			out := cmd.OutOrStdout()

			if strings.EqualFold(filepath.Ext(path), ".csv") {
				result, err := utils.ValidateCSVStructure(string(data))
				if err != nil {
					return err
				}
				if !result.Valid {
					return fmt.Errorf("invalid roster CSV: missing columns %v, %d rows, errors %v",
						result.MissingColumns, result.RowCount, result.Errors)
				}
				list, rowErrs := utils.NewCSVParser().ParseUnderwriters(string(data))
				for _, e := range rowErrs {
					fmt.Fprintf(out, "  skipped: %v\n", e)
				}
				fmt.Fprintf(out, "%s: %d of %d rows valid\n", path, len(list), result.RowCount)
				if len(list) == 0 {
					return errors.New("no valid underwriters")
				}
				return nil
			}

			store, err := underwriters.Load(strings.NewReader(string(data)))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d underwriters valid\n", path, store.Len())
			return nil
		},
	}
}

func underwritersImportCmd() *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV roster into PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if csvFile == "" {
				return errors.New("--csv is required")
			}
			data, err := os.ReadFile(csvFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", csvFile, err)
			}

			db, err := connectDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			importer := handlers.NewUnderwriterImportHandler(nil, database.NewUnderwriterRepository(db))
			result, err := importer.Import(cmd.Context(), string(data))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d imported, %d skipped\n", result.Message, result.Imported, result.Skipped)
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  %s\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvFile, "csv", "", "roster CSV file")

	return cmd
}

func underwritersWorkloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workload NAME LEVEL",
		Short: "Set an underwriter's current workload in PostgreSQL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := models.Workload(strings.ToLower(args[1]))

			db, err := connectDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.NewUnderwriterRepository(db).UpdateWorkload(cmd.Context(), args[0], level); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s workload set to %s\n", args[0], level)
			return nil
		},
	}
}

func connectDatabase(cmd *cobra.Command) (*database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(cmd.Context()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
