package cli

import (
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docpack/pkg/docpack"
)

var (
	// Global flags
	jsonOutput bool
	configPath string
	verbose    bool
)

// rootCmd is the root command for docpack.
var rootCmd = &cobra.Command{
	Use:     "docpack",
	Version: "dev",
	Short:   "Inspect and reclassify OPC document packages",
	Long: `docpack inspects and transforms compound document packages (.docx, .docm).

It models a package as a graph of typed parts and relationships, verifies the
graph's structural consistency, and converts macro-enabled documents to plain
ones by removing the macro payload subtree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := docpack.ConfigFromEnvironment()
		if configPath != "" {
			loaded, err := docpack.LoadConfigFile(configPath)
			if err != nil {
				return err
			}
			config = loaded
		}
		if verbose {
			config.LogLevel = "debug"
		}
		docpack.SetGlobalConfig(config)
		return nil
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
