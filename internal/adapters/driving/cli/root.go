// Package cli provides the sercha-plugin command line, which plays the
// crawling host's part around the crawler plugin.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose    bool
	configPath string
	dataDir    string
)

// Services used by the commands. Populated by the Wiring passed to Execute.
var (
	configStore       driven.ConfigStore
	crawlerPlugin     driving.CrawlerPlugin
	documentProcessor driving.DocumentProcessor
	journalStore      driven.JournalStore
	closeServices     func() error
)

// Options are the global flag values handed to a Wiring.
type Options struct {
	ConfigPath string
	DataDir    string
	Verbose    bool
}

// Services are the components a Wiring builds for the commands.
type Services struct {
	Config    driven.ConfigStore
	Plugin    driving.CrawlerPlugin
	Processor driving.DocumentProcessor
	Journal   driven.JournalStore

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// Wiring builds the services once the global flags are parsed.
type Wiring func(opts Options) (*Services, error)

var wire Wiring

var rootCmd = &cobra.Command{
	Use:   "sercha-plugin",
	Short: "Run the sercha crawler plugin over document descriptors",
	Long: `sercha-plugin applies the crawler plugin to documents described as JSON files.

The plugin excludes confidential documents, normalises role, business group
and date fields, rewrites plain text content and fetches missing content.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.sercha/plugin.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.sercha/data)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command, building services with w.
func Execute(w Wiring) error {
	wire = w
	err := rootCmd.Execute()
	return errors.Join(err, teardown())
}

// setup applies the global flags and builds the services. Services that
// are already set are kept.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if wire == nil || cmd == versionCmd || crawlerPlugin != nil {
		return nil
	}

	svc, err := wire(Options{
		ConfigPath: configPath,
		DataDir:    dataDir,
		Verbose:    verbose,
	})
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}

	configStore = svc.Config
	crawlerPlugin = svc.Plugin
	documentProcessor = svc.Processor
	journalStore = svc.Journal
	closeServices = svc.Close
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// pluginConfiguration returns the configuration handed to the plugin's Init.
func pluginConfiguration() domain.PluginConfiguration {
	settings := map[string]any{}
	if configStore != nil {
		settings = configStore.GeneralSettings()
	}
	return domain.PluginConfiguration{GeneralSettings: settings}
}

// startPlugin initialises the plugin and returns a function that terminates it.
func startPlugin() (func(), error) {
	if crawlerPlugin == nil || documentProcessor == nil {
		return nil, errors.New("crawler plugin not configured")
	}
	if err := crawlerPlugin.Init(pluginConfiguration()); err != nil {
		return nil, fmt.Errorf("initialising plugin: %w", err)
	}
	return func() {
		if err := crawlerPlugin.Term(); err != nil {
			logger.Warn("Terminating plugin: %v", err)
		}
	}, nil
}
