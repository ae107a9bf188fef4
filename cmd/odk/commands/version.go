package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := struct {
				Version   string `json:"version"   yaml:"version"`
				Commit    string `json:"commit"    yaml:"commit"`
				Date      string `json:"date"      yaml:"date"`
				GoVersion string `json:"goVersion" yaml:"goVersion"`
				Platform  string `json:"platform"  yaml:"platform"`
			}{
				Version:   version,
				Commit:    commit,
				Date:      date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			return renderOutput(info, func() error {
				fmt.Printf("odk version %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
				fmt.Printf("%s %s\n", info.GoVersion, info.Platform)

				return nil
			})
		},
	}
}
