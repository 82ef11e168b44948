package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhcraft/histdem/internal/config"
)

// resolveConfigPath returns the --config flag value or the default location.
func resolveConfigPath() string {
	if strings.TrimSpace(configPath) != "" {
		return configPath
	}
	return config.DefaultPath()
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the histdem configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := resolveConfigPath()
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil

		createdPath, err := config.CreateDefaultAt(targetPath)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrFileWriteError, err)
		}

		if existed {
			fmt.Printf("Config already exists: %s\n", createdPath)
		} else {
			fmt.Printf("Created config: %s\n", createdPath)
		}
		return nil
	},
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := resolveConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Config file does not exist: %s\n", path)
		fmt.Println("Run 'histdem config init' to create it.")
		return nil
	}

	c, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}

	fmt.Printf("config: %s\n", path)
	if v := strings.TrimSpace(c.Template); v != "" {
		fmt.Printf("template: %s\n", v)
	}
	fmt.Printf("output_dir: %s\n", c.EffectiveOutputDir())
	fmt.Printf("base_path: %s\n", c.EffectiveBasePath())

	folders := c.FolderMap()
	ids := make([]string, 0, len(folders))
	for id := range folders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	fmt.Println("folders:")
	for _, id := range ids {
		fmt.Printf("  %s = %s\n", id, folders[id])
	}

	if len(c.Gazetteer) > 0 {
		names := make([]string, 0, len(c.Gazetteer))
		for name := range c.Gazetteer {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("gazetteer:")
		for _, name := range names {
			fmt.Printf("  %s = %s\n", name, c.Gazetteer[name])
		}
	}

	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
