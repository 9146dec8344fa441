//go:build wireinject
// +build wireinject

package di

import (
	"WaveStage/pkg/config"
	"WaveStage/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideBarCache,
		ProvideBarSource,
		ProvideResponseCache,
		ProvideLimiter,

		// Analysis pipeline
		ProvideEngine,
		ProvideLabeler,

		// Use cases
		ProvideAnalyzeUseCase,
		ProvideReportUseCase,
		ProvideChartUseCase,

		// Transport
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
