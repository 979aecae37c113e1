package cmd

import (
	"fmt"

	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/bastiangx/mnemo/pkg/cache"
	"github.com/bastiangx/mnemo/pkg/config"
	"github.com/bastiangx/mnemo/pkg/datamuse"
	"github.com/bastiangx/mnemo/pkg/splitter"
	"github.com/bastiangx/mnemo/pkg/syllable"
	"github.com/charmbracelet/log"
)

// app is the wired service shared by every command.
type app struct {
	cfg        *config.Config
	configPath string
	client     *datamuse.Client
	lookup     association.Lookup
	engine     *splitter.Engine
}

func newApp() (*app, error) {
	cfg, path, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return nil, err
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(path))

	counter := syllable.NewCounter()
	if dict := cfg.Search.SyllableDict; dict != "" {
		if err := counter.LoadFile(dict); err != nil {
			return nil, fmt.Errorf("failed to load syllable dictionary: %w", err)
		}
	}
	log.Debugf("Syllable exceptions loaded: %d", counter.Size())

	client := datamuse.NewClient(cfg.Lookup.DatamuseConfig())
	lookup := cache.New(client, cfg.Lookup.CacheSize)
	engine := splitter.NewEngine(association.NewFetcher(lookup), counter, cfg.Search.SplitterOptions())

	log.Debug("Init done",
		"base_url", cfg.Lookup.BaseURL,
		"cache", cfg.Lookup.CacheSize,
		"max_concurrency", cfg.Search.MaxConcurrency)

	return &app{
		cfg:        cfg,
		configPath: path,
		client:     client,
		lookup:     lookup,
		engine:     engine,
	}, nil
}

func (a *app) Close() {
	a.client.Close()
}
