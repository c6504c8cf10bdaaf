package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/seatsync/internal/storage"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Print the current seating document as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), rootOpts.Config, rootOpts.Logger, nil)
			if err != nil {
				return err
			}
			defer sess.Close(context.Background())

			data, err := storage.Encode(sess.engine.Snapshot())
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output != "" {
				return os.WriteFile(output, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
