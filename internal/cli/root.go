// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhcraft/histdem/internal/config"
)

var (
	// Global flags
	configPath   string
	basePathFlag string
	templateFlag string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "histdem",
	Short: "histdem - metadata tools for the historical demography archive",
	Long: `histdem converts the archive's dataset metadata spreadsheet into
TEI documents and validates the raw input before conversion.

Each dataset column of the input table becomes one TEI file; the fixed
project boilerplate comes from a template file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		// The config commands resolve the file themselves; init must run
		// even when it does not exist yet.
		case "completion", "help", "config", "init":
			return nil
		}

		var err error
		if strings.TrimSpace(configPath) != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("%s: failed to load config: %w", ErrConfigInvalid, err)
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&basePathFlag, "base-path", "", "Directory holding the dataset folders")
	rootCmd.PersistentFlags().StringVar(&templateFlag, "template", "", "Path to the boilerplate template")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// effectiveBasePath resolves the dataset folder root: flag > config > cwd.
func effectiveBasePath() string {
	if basePathFlag != "" {
		return basePathFlag
	}
	return cfg.EffectiveBasePath()
}

// effectiveTemplate resolves the template path: flag > config > default name.
func effectiveTemplate() string {
	if templateFlag != "" {
		return templateFlag
	}
	if cfg.Template != "" {
		return cfg.Template
	}
	return "histdem-template.yaml"
}
