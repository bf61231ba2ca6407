package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage plugin settings",
	Long: `View and change the settings handed to the crawler plugin and the fetcher.

Common keys:
  crawler_name               - Name used in plugin log messages
  fetch.timeout_seconds      - HTTP timeout for fallback content fetches
  fetch.requests_per_second  - Fetch rate limit (0 for unlimited)
  fetch.burst                - Fetch burst size`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("settings not configured")
	}

	settings := configStore.GeneralSettings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n\n", configStore.Path())

	if len(settings) == 0 {
		cmd.Println("No settings configured.")
		return nil
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cmd.Printf("  %s = %v\n", k, settings[k])
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("settings not configured")
	}

	key, value := args[0], parseValue(args[1])
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

// parseValue converts a command line value to the most specific TOML
// type: integer, float, boolean, then string.
func parseValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
