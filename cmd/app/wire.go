//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/clockface/clockface/internal/bootstrap"
	"github.com/clockface/clockface/internal/domain/clock"
	"github.com/clockface/clockface/internal/domain/photo"
	"github.com/clockface/clockface/internal/infra/bing"
	"github.com/clockface/clockface/internal/infra/config"
	httpiface "github.com/clockface/clockface/internal/interface/http"
	"github.com/clockface/clockface/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideClockConfig,
		providePhotoConfig,
		provideBingClient,
		providePalettes,
		provideBackgroundSource,
		photo.NewService,
		clock.NewService,
		wire.Bind(new(photo.ArchiveClient), new(*bing.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
