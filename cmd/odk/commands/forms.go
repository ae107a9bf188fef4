package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// NewFormsCommand creates the forms command.
func NewFormsCommand() *cobra.Command {
	var (
		projectID int
		extended  bool
	)

	cmd := &cobra.Command{
		Use:   "forms",
		Short: "List the forms of a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			forms, err := client.Forms().List(ctx, projectID, &odk.FormListOptions{ExtendedMetadata: extended})
			if err != nil {
				return fmt.Errorf("failed to list forms: %w", err)
			}

			return renderOutput(forms, func() error {
				if len(forms) == 0 {
					fmt.Println("No forms found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)

				if extended {
					table.Header("Form ID", "Name", "State", "Version", "Submissions", "Last Submission")

					for _, form := range forms {
						_ = table.Append(form.XMLFormID, form.Name, form.State, form.Version,
							strconv.Itoa(form.Submissions), formatTimePtr(form.LastSubmission))
					}
				} else {
					table.Header("Form ID", "Name", "State", "Version", "Created")

					for _, form := range forms {
						_ = table.Append(form.XMLFormID, form.Name, form.State, form.Version, formatTime(form.CreatedAt))
					}
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().BoolVar(&extended, "extended", false, "request extended metadata (submission counts)")

	return cmd
}
