// Package main is the entry point for the meow CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/meow/internal/adapters/driven/ai"
	"github.com/custodia-labs/meow/internal/adapters/driven/config/file"
	"github.com/custodia-labs/meow/internal/adapters/driven/launcher"
	"github.com/custodia-labs/meow/internal/adapters/driven/metrics"
	"github.com/custodia-labs/meow/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/meow/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/meow/internal/adapters/driven/watcher"
	"github.com/custodia-labs/meow/internal/adapters/driving/cli"
	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/services"
	"github.com/custodia-labs/meow/internal/logger"
)

// Set by the release build.
var version = "dev"

// memoryDB selects the in-memory stores instead of SQLite.
const memoryDB = ":memory:"

// store is a vector store that also records index runs.
type store interface {
	driven.VectorStore
	driven.IndexRunStore
}

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	cli.Main()
}

// bootstrap wires adapters into services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = filepath.Join(home, ".meow")
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator(), home)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.DBPath != "" {
		settings.Store.Path = opts.DBPath
	}

	vectors, closeStore, err := openStore(settings.Store.Path)
	if err != nil {
		return nil, err
	}

	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("open prompts: %w", err)
	}

	aiServices := ai.Init(settings)
	recorder := metrics.New()

	var resolver *services.AmbiguityResolver
	if aiServices.LLMService != nil {
		resolver = services.NewAmbiguityResolver(aiServices.LLMService, settings.Resolver)
		resolver.SetPromptStore(prompts)
		resolver.SetMetrics(recorder)
	}

	searchService := services.NewSearchService(aiServices.EmbeddingService, vectors, resolver, settings.Search, home)
	searchService.SetMetrics(recorder)

	indexService, err := services.NewIndexService(aiServices.IndexEmbeddingService, vectors, settings.Index)
	if err != nil {
		aiServices.Close()
		_ = closeStore()
		return nil, fmt.Errorf("configure indexer: %w", err)
	}
	indexService.SetRunStore(vectors)
	indexService.SetMetrics(recorder)
	indexService.SetProgress(func(path string, err error) {
		if err == nil {
			logger.Debug("Indexed %s", path)
		}
	})

	interpreter := services.NewInterpreterService(aiServices.LLMService)
	interpreter.SetPromptStore(prompts)

	exclude, err := services.NewExcludeMatcher(settings.Index.Exclude)
	if err != nil {
		aiServices.Close()
		_ = closeStore()
		return nil, fmt.Errorf("configure watcher: %w", err)
	}
	watchService := services.NewWatchService(watcher.New(exclude.Match), indexService)
	watchService.OnReport(func(report *domain.IndexReport) {
		shell.WriteReport(os.Stdout, report)
	})

	return &cli.Services{
		Search:      searchService,
		Interpreter: interpreter,
		Index:       indexService,
		Watch:       watchService,
		Status:      services.NewStatusService(vectors, vectors, aiServices.EmbeddingService, aiServices.LLMService),
		Settings:    settingsService,
		Actions:     services.NewResultActionService(launcher.New()),
		Metrics:     recorder.Handler(),
		Roots:       indexService.Roots(),
		Warnings:    aiServices.Warnings,
		Close: func() error {
			aiServices.Close()
			return closeStore()
		},
	}, nil
}

// openStore opens the SQLite store at path, or in-memory stores for ":memory:".
func openStore(path string) (store, func() error, error) {
	if path == memoryDB {
		logger.Debug("using in-memory vector store")
		return memory.NewVectorStore(), func() error { return nil }, nil
	}
	s, err := sqlite.NewStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return s, s.Close, nil
}
