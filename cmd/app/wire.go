//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/bootstrap"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/config"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/llm/gemini"
	httpiface "github.com/adampierre-jpg/kettlebell-vbt/internal/interface/http"
	"github.com/adampierre-jpg/kettlebell-vbt/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAnalysisConfig,
		provideGeminiClient,
		provideHistoryRepository,
		provideResultCache,
		provideVideoStore,
		analysis.NewService,
		wire.Bind(new(analysis.VideoModel), new(*gemini.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
