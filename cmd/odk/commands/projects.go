package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewProjectsCommand creates the projects command.
func NewProjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			projects, err := client.Projects(ctx)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return renderOutput(projects, func() error {
				if len(projects) == 0 {
					fmt.Println("No projects found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Archived", "Created")

				for _, project := range projects {
					archived := ""
					if project.Archived {
						archived = "yes"
					}

					_ = table.Append(strconv.Itoa(project.ID), project.Name, archived, formatTime(project.CreatedAt))
				}

				_ = table.Render()

				return nil
			})
		},
	}
}
