package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// NewEntitiesCommand creates the entities command group.
func NewEntitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Manage the entities of a dataset",
	}

	cmd.AddCommand(newEntitiesListCommand())
	cmd.AddCommand(newEntitiesDataCommand())
	cmd.AddCommand(newEntitiesCreateCommand())
	cmd.AddCommand(newEntitiesImportCommand())
	cmd.AddCommand(newEntitiesUpdateCommand())
	cmd.AddCommand(newEntitiesDeleteCommand())

	return cmd
}

func newEntitiesListCommand() *cobra.Command {
	var (
		projectID int
		dataset   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entity metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			if dataset == "" {
				return ErrDatasetRequired
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			entities, err := client.Entities().List(ctx, projectID, dataset)
			if err != nil {
				return fmt.Errorf("failed to list entities: %w", err)
			}

			return renderOutput(entities, func() error {
				if len(entities) == 0 {
					fmt.Println("No entities found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("UUID", "Label", "Version", "Created", "Updated")

				for _, entity := range entities {
					_ = table.Append(entity.UUID, entity.CurrentVersion.Label,
						strconv.Itoa(entity.CurrentVersion.Version),
						formatTime(entity.CreatedAt), formatTimePtr(entity.UpdatedAt))
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name")

	return cmd
}

func newEntitiesDataCommand() *cobra.Command {
	var (
		projectID int
		dataset   string
		top       int
		skip      int
		filter    string
	)

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Fetch the flattened entity rows of a dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			if dataset == "" {
				return ErrDatasetRequired
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			params := buildQueryParams(top, skip, false, filter, "", "")

			rows, err := client.Entities().Data(ctx, projectID, dataset, params)
			if err != nil {
				return fmt.Errorf("failed to fetch entity data: %w", err)
			}

			return renderOutput(rows, func() error {
				if len(rows) == 0 {
					fmt.Println("No entities found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Label", "Version", "Updates")

				for _, row := range rows {
					_ = table.Append(row.ID, row.Label,
						strconv.Itoa(row.System.Version), strconv.Itoa(row.System.Updates))
				}

				_ = table.Render()

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of rows ($top)")
	cmd.Flags().IntVar(&skip, "skip", 0, "rows to skip ($skip)")
	cmd.Flags().StringVar(&filter, "filter", "", "OData filter expression ($filter)")

	return cmd
}

func newEntitiesCreateCommand() *cobra.Command {
	var (
		projectID int
		dataset   string
		label     string
		dataPairs []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create one entity",
		Long: `Create an entity in a dataset. The data must include a geometry value,
e.g. --data "geometry=POINT(0.5 51.3)".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			if dataset == "" {
				return ErrDatasetRequired
			}

			if label == "" {
				return ErrLabelRequired
			}

			data, err := parseDataFlags(dataPairs)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			entity, err := client.Entities().Create(ctx, projectID, dataset, label, data)
			if err != nil {
				return fmt.Errorf("failed to create entity: %w", err)
			}

			return renderOutput(entity, func() error {
				fmt.Printf("Created entity %s (%s)\n", entity.CurrentVersion.Label, entity.UUID)

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name")
	cmd.Flags().StringVarP(&label, "label", "l", "", "entity label")
	cmd.Flags().StringArrayVar(&dataPairs, "data", nil, "entity data as key=value (repeatable)")

	return cmd
}

func newEntitiesImportCommand() *cobra.Command {
	var (
		projectID int
		dataset   string
		fromFile  string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create many entities from a file",
		Long: `Create entities in bulk from a YAML (or JSON) file mapping labels to data,
for example:

    Oak:
      geometry: POINT(0 0)
      species: quercus
    Birch:
      geometry: POINT(1 1)

Creations run concurrently; labels that fail are skipped and the rest are
still created.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			if dataset == "" {
				return ErrDatasetRequired
			}

			content, err := os.ReadFile(fromFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", fromFile, err)
			}

			var labelData map[string]map[string]string
			if err := yaml.Unmarshal(content, &labelData); err != nil {
				return fmt.Errorf("parsing %s: %w", fromFile, err)
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			entities, err := client.Entities().CreateMany(ctx, projectID, dataset, labelData)
			if err != nil {
				return fmt.Errorf("failed to create entities: %w", err)
			}

			return renderOutput(entities, func() error {
				fmt.Printf("Created %d of %d entities\n", len(entities), len(labelData))

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "YAML or JSON file mapping labels to data")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newEntitiesUpdateCommand() *cobra.Command {
	var (
		projectID   int
		dataset     string
		entityUUID  string
		label       string
		dataPairs   []string
		baseVersion int
	)

	cmd := &cobra.Command{
		Use:   "update UUID",
		Short: "Update an entity",
		Long: `Update the label and/or data of an entity. With --base-version the update
is submitted against that version and rejected with a conflict if the entity
has been modified since; without it the update overwrites unconditionally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityUUID = args[0]

			if projectID <= 0 {
				return ErrProjectRequired
			}

			if dataset == "" {
				return ErrDatasetRequired
			}

			data, err := parseDataFlags(dataPairs)
			if err != nil {
				return err
			}

			req := &odk.EntityUpdateRequest{Label: label}
			if len(data) > 0 {
				req.Data = data
			}

			if baseVersion > 0 {
				newVersion := baseVersion + 1
				req.NewVersion = &newVersion
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			entity, err := client.Entities().Update(ctx, projectID, dataset, entityUUID, req)
			if err != nil {
				return fmt.Errorf("failed to update entity: %w", err)
			}

			return renderOutput(entity, func() error {
				fmt.Printf("Updated entity %s to version %d\n", entity.UUID, entity.CurrentVersion.Version)

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name")
	cmd.Flags().StringVarP(&label, "label", "l", "", "new entity label")
	cmd.Flags().StringArrayVar(&dataPairs, "data", nil, "entity data as key=value (repeatable)")
	cmd.Flags().IntVar(&baseVersion, "base-version", 0, "expected current version (omit to force)")

	return cmd
}

func newEntitiesDeleteCommand() *cobra.Command {
	var (
		projectID int
		dataset   string
	)

	cmd := &cobra.Command{
		Use:   "delete UUID",
		Short: "Delete (archive) an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID <= 0 {
				return ErrProjectRequired
			}

			if dataset == "" {
				return ErrDatasetRequired
			}

			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			ok, err := client.Entities().Delete(ctx, projectID, dataset, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete entity: %w", err)
			}

			if !ok {
				return fmt.Errorf("failed to delete entity %s: %w", args[0], ErrDeleteUnsuccessful)
			}

			fmt.Printf("Deleted entity %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().IntVarP(&projectID, "project", "p", 0, "project ID")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset name")

	return cmd
}
