package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/seatsync/internal/plan"
	"github.com/mmynk/seatsync/internal/seating"
)

// PlanReport summarizes a validated seating plan.
type PlanReport struct {
	Valid    bool     `json:"valid"`
	Tables   int      `json:"tables"`
	Guests   int      `json:"guests"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// NewPlanCommand creates the plan command group.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Work with seating plans",
	}
	cmd.AddCommand(newPlanValidateCommand(rootOpts))
	return cmd
}

func newPlanValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan.yaml]",
		Short: "Check a seating plan",
		Long: `Parse a seating plan and report its table and guest counts and any
tables seated beyond capacity. Without an argument the configured plan
(or the built-in one) is checked.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.Config.Plan.Path
			if len(args) == 1 {
				path = args[0]
			}
			return runPlanValidate(cmd.OutOrStdout(), rootOpts.Format, path)
		},
	}
}

func runPlanValidate(w io.Writer, format, path string) error {
	report := PlanReport{}
	p, err := plan.Load(path)
	if err != nil {
		report.Error = err.Error()
	} else {
		report.Valid = true
		report.Tables = len(p.Tables)
		report.Guests = p.GuestCount()
		for _, warning := range seating.CapacityWarnings(p.Snapshot("check")) {
			report.Warnings = append(report.Warnings, warning.String())
		}
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
	} else if report.Valid {
		fmt.Fprintf(w, "✓ plan valid: %d tables, %d guests\n", report.Tables, report.Guests)
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
	} else {
		fmt.Fprintf(w, "✗ plan invalid: %s\n", report.Error)
	}

	if err != nil {
		return fmt.Errorf("plan invalid: %w", err)
	}
	return nil
}
