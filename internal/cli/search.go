package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/search"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "search <query>",
		Short:        "Find guests by name",
		Long:         "Loads the current seating data once and prints every guest whose name contains the query, ignoring case.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := openSession(ctx, rootOpts.Config, rootOpts.Logger, nil)
			if err != nil {
				return err
			}
			defer sess.Close(context.Background())

			snap := sess.engine.Snapshot()
			results := search.Search(snap, strings.Join(args, " "))
			return writeResults(cmd.OutOrStdout(), rootOpts.Format, snap, results)
		},
	}
	return cmd
}

func writeResults(w io.Writer, format string, snap models.Snapshot, results []models.SearchResult) error {
	if format == "json" {
		if results == nil {
			results = []models.SearchResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No guests found")
		return err
	}
	for _, r := range results {
		line := fmt.Sprintf("table %-4s  %-28s  %s", r.TableID, r.GuestName, r.Category)
		if r.IsPlusOne {
			line += "  (plus-one)"
		} else if n := search.PlusOneCount(snap, r.TableID, r.GuestID); n > 0 {
			line += fmt.Sprintf("  +%d", n)
		}
		if r.IsCheckedIn {
			line += "  checked in"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
