package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// NewSubmissionsCommand creates the submissions command group.
func NewSubmissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Browse form submissions",
	}

	cmd.AddCommand(newSubmissionsListCommand())
	cmd.AddCommand(newSubmissionsAllCommand())

	return cmd
}

func buildQueryParams(top, skip int, count bool, filter, selectCols, orderBy string) *odk.QueryParams {
	params := odk.NewQueryParams()

	if top > 0 {
		params.WithTop(top)
	}

	if skip > 0 {
		params.WithSkip(skip)
	}

	if count {
		params.WithCount()
	}

	if filter != "" {
		params.WithFilter(filter)
	}

	if selectCols != "" {
		params.WithSelect(selectCols)
	}

	if orderBy != "" {
		params.WithOrderBy(orderBy)
	}

	return params
}

func newSubmissionsListCommand() *cobra.Command {
	var (
		projectID  int
		formID     string
		top        int
		skip       int
		count      bool
		filter     string
		selectCols string
		orderBy    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the submissions of one form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			if formID == "" {
				return ErrFormRequired
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			params := buildQueryParams(top, skip, count, filter, selectCols, orderBy)

			list, err := client.Submissions().List(ctx, projectID, formID, params)
			if err != nil {
				return fmt.Errorf("failed to list submissions: %w", err)
			}

			return renderOutput(list, func() error {
				if count {
					fmt.Printf("Total submissions: %d\n", list.Count)
				}

				return renderSubmissionRows(list.Value)
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringVarP(&formID, "form", "f", "", "form ID")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of rows ($top)")
	cmd.Flags().IntVar(&skip, "skip", 0, "rows to skip ($skip)")
	cmd.Flags().BoolVar(&count, "count", false, "request the total count ($count)")
	cmd.Flags().StringVar(&filter, "filter", "", "OData filter expression ($filter)")
	cmd.Flags().StringVar(&selectCols, "select", "", "columns to return ($select)")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "sort columns ($orderby)")

	return cmd
}

func newSubmissionsAllCommand() *cobra.Command {
	var (
		projectID int
		formIDs   []string
		filter    string
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "List submissions across several forms",
		Long: `Fetch the submissions of several forms concurrently and concatenate the
rows. Forms that fail to respond are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			if len(formIDs) == 0 {
				return ErrFormRequired
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			params := odk.NewQueryParams()
			if filter != "" {
				params.WithFilter(filter)
			}

			rows, err := client.Submissions().ListAll(ctx, projectID, formIDs, params)
			if err != nil {
				return fmt.Errorf("failed to list submissions: %w", err)
			}

			return renderOutput(rows, func() error {
				return renderSubmissionRows(rows)
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringSliceVarP(&formIDs, "form", "f", nil, "form ID (repeatable)")
	cmd.Flags().StringVar(&filter, "filter", "", "OData filter expression ($filter)")

	return cmd
}

// renderSubmissionRows prints the shared columns of form-shaped rows.
func renderSubmissionRows(rows []map[string]any) error {
	if len(rows) == 0 {
		fmt.Println("No submissions found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Instance ID", "Submission Date", "Submitter")

	for _, row := range rows {
		_ = table.Append(stringField(row, "__id"), systemField(row, "submissionDate"), systemField(row, "submitterName"))
	}

	_ = table.Render()

	return nil
}

func stringField(row map[string]any, key string) string {
	if value, ok := row[key].(string); ok {
		return value
	}

	return ""
}

func systemField(row map[string]any, key string) string {
	system, ok := row["__system"].(map[string]any)
	if !ok {
		return ""
	}

	return stringField(system, key)
}
