package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/datepick/internal/cli"
	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/locale"
	"github.com/xolan/datepick/internal/service"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for datepick.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with sensible defaults.

By default, datepick works without any configuration file. All settings have defaults:
  - locale: en-US
  - week_start_day: monday
  - timezone: Local (system timezone)
  - mode: range
  - style: medium

Examples:
  datepick config                  Show all current settings
  datepick config --output yaml    Show the settings as YAML
  datepick config init             Create a commented sample config file
  datepick config path             Print the config file location

Configuration file location:
  ~/.config/datepick/config.toml     Linux
  %APPDATA%\datepick\config.toml     Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig(cmd)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig(cmd)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, ok := resolveConfigPath()
		if ok {
			_, _ = fmt.Fprintln(deps.Stdout, configPath)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolP("yes", "y", false, "overwrite an existing file without asking")
}

func resolveConfigPath() (string, bool) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		fail("Failed to determine config file location", err, "Check that your home directory is accessible")
		return "", false
	}
	return configPath, true
}

// showConfig displays the current effective configuration
func showConfig(cmd *cobra.Command) {
	format, ok := outputFormat(cmd)
	if !ok {
		return
	}
	if format == cli.FormatJSON {
		fail("The configuration is shown as TOML (text) or YAML", nil, "Use --output yaml")
		return
	}

	configPath, ok := resolveConfigPath()
	if !ok {
		return
	}

	fileExists := false
	if _, err := os.Stat(configPath); err == nil {
		fileExists = true
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fail("Failed to load configuration", err,
			fmt.Sprintf("Check that your config file is valid TOML format: %s", configPath),
			"Valid week_start_day values: monday, sunday",
			fmt.Sprintf("Supported locales: %s", strings.Join(locale.Supported(), ", ")),
			"Valid timezone examples: Local, America/New_York, Europe/London, Asia/Tokyo")
		return
	}

	if format == cli.FormatYAML {
		if err := cli.Encode(deps.Stdout, format, cfg); err != nil {
			fail("Failed to write yaml output", err)
		}
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for datepick")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	if err := config.Encode(deps.Stdout, cfg); err != nil {
		fail("Failed to write configuration", err)
		return
	}

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'datepick config init' to create a commented config file.")
	}
}

// initConfig writes the sample configuration, asking before it replaces an
// existing file.
func initConfig(cmd *cobra.Command) {
	yes, _ := cmd.Flags().GetBool("yes")

	configPath, ok := resolveConfigPath()
	if !ok {
		return
	}

	svc := service.NewConfigService(configPath, config.DefaultConfig())
	if svc.Exists() {
		if !yes && !confirm(fmt.Sprintf("Config file already exists at %s. Overwrite?", configPath)) {
			_, _ = fmt.Fprintln(deps.Stdout, "Config initialization cancelled")
			return
		}
		if err := os.Remove(configPath); err != nil {
			fail("Failed to replace the existing config file", err)
			return
		}
	}

	if err := svc.Init(); err != nil {
		fail("Failed to create config file", err,
			fmt.Sprintf("Check that the directory is writable: %s", configPath))
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created sample configuration file: %s\n", configPath)
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Next steps:")
	_, _ = fmt.Fprintln(deps.Stdout, "  1. Edit the file to set your locale, constraints and presets")
	_, _ = fmt.Fprintln(deps.Stdout, "  2. Run 'datepick config' to check the effective settings")
}
