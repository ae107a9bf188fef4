package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDatasetsCommand creates the datasets command.
func NewDatasetsCommand() *cobra.Command {
	var projectID int

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the entity lists of a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			datasets, err := client.Datasets().List(ctx, projectID)
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}

			return renderOutput(datasets, func() error {
				if len(datasets) == 0 {
					fmt.Println("No datasets found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Approval Required", "Entities", "Last Entity", "Created")

				for _, dataset := range datasets {
					approval := ""
					if dataset.ApprovalRequired {
						approval = "yes"
					}

					_ = table.Append(dataset.Name, approval, strconv.Itoa(dataset.Entities),
						formatTimePtr(dataset.LastEntity), formatTime(dataset.CreatedAt))
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")

	return cmd
}
