package main

import (
	"os"
	"time"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/fetch/httpfetch"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/services"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/stages"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(wire); err != nil {
		os.Exit(1)
	}
}

// wire builds the services from the global flags.
func wire(opts cli.Options) (*cli.Services, error) {
	var (
		config *file.ConfigStore
		err    error
	)
	if opts.ConfigPath != "" {
		config, err = file.NewConfigStoreAt(opts.ConfigPath)
	} else {
		config, err = file.NewConfigStore("")
	}
	if err != nil {
		return nil, err
	}

	fetchOpts := []httpfetch.Option{
		httpfetch.WithRateLimit(config.GetFloat(file.KeyFetchRequestsPerSecond), config.GetInt(file.KeyFetchBurst)),
	}
	if secs := config.GetInt(file.KeyFetchTimeoutSeconds); secs > 0 {
		fetchOpts = append(fetchOpts, httpfetch.WithTimeout(time.Duration(secs)*time.Second))
	}
	fetcher := httpfetch.New(fetchOpts...)

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, err
	}
	journal := store.JournalStore()

	plugin := services.NewCrawlerPlugin(stages.Default(fetcher))

	return &cli.Services{
		Config:    config,
		Plugin:    plugin,
		Processor: services.NewDocumentProcessor(plugin, journal),
		Journal:   journal,
		Close:     store.Close,
	}, nil
}
