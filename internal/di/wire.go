//go:build wireinject
// +build wireinject

package di

import (
	"FinSight/pkg/config"
	"FinSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideCache,
		ProvideMetrics,

		// Upstream clients
		ProvideMarketData,
		ProvideNews,
		ProvideClassifier,

		// Use cases
		ProvideSummarizer,
		ProvideInsightUseCase,
		ProvideMoversUseCase,
		ProvideFundamentalsUseCase,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
