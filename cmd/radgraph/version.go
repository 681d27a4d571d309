package main

import (
	"github.com/spf13/cobra"

	"radgraph/internal/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit and build date. --short prints only the
version and abbreviated commit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		render(newVersionResponse(versionShort))
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version and short commit")
	rootCmd.AddCommand(versionCmd)
}

func newVersionResponse(short bool) *VersionResponseCLI {
	return &VersionResponseCLI{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		Summary:   version.Info(),
		short:     short,
	}
}

// VersionResponseCLI is the version command output.
type VersionResponseCLI struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	Summary   string `json:"summary"`

	short bool
}
