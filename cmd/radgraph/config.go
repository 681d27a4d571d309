package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"radgraph/internal/config"
	"radgraph/internal/paths"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage radgraph configuration",
	Long: `View and create the configuration stored in .radgraph/config.toml.

Every key can be overridden from the environment, e.g.
RADGRAPH_CANONICAL_MAXPERMUTATIONS=720 or RADGRAPH_LOGGING_LEVEL=debug.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Create .radgraph/config.toml in the current directory with default values.",
	Args:  cobra.NoArgs,
	Run:   runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string         `json:"configPath"`
	UsedDefaults bool           `json:"usedDefaults"`
	Config       *config.Config `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		fail(err)
	}
	base, err := paths.FindBase(cwd)
	if err != nil {
		fail(err)
	}
	cfg, err := loadSettings(base)
	if err != nil {
		fail(err)
	}

	resp := &ConfigShowResponse{ConfigPath: configFlag, Config: cfg}
	if resp.ConfigPath == "" {
		resp.ConfigPath = paths.ConfigFile(base)
		if _, err := os.Stat(resp.ConfigPath); os.IsNotExist(err) {
			resp.UsedDefaults = true
		}
	}

	if OutputFormat(formatFlag) == FormatJSON {
		render(resp)
		return
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		fail(err)
	}
	source := resp.ConfigPath
	if resp.UsedDefaults {
		source += " (not found, defaults)"
	}
	fmt.Printf("# %s\n%s", source, data)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	base, err := os.Getwd()
	if err != nil {
		fail(err)
	}
	path := paths.ConfigFile(base)
	if _, err := os.Stat(path); err == nil && !configInitForce {
		fmt.Fprintf(os.Stderr, "Config already exists at %s (use --force to overwrite)\n", path)
		os.Exit(1)
	}
	if err := config.DefaultConfig().Save(base); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", path)
}
