//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/data"
	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/handler"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/metrics"
	"github.com/ncobase/calcgate/results"
	"github.com/ncobase/calcgate/schema"
	"github.com/ncobase/calcgate/service"
	"github.com/ncobase/calcgate/workspace"
)

// InitializeApp wires up the entire application with all dependencies.
func InitializeApp() (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		data.ProviderSet,

		ProvideWorkspace,
		wire.Bind(new(results.Directory), new(*workspace.Workspace)),
		wire.Bind(new(handler.Pinger), new(*data.Data)),

		repository.ProviderSet,
		schema.ProviderSet,
		results.ProviderSet,
		service.ProviderSet,
		metrics.ProviderSet,

		handler.NewHandler,
		NewApp,
	))
}
