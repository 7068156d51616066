package main

import (
	"time"

	"github.com/clockface/clockface/internal/domain/clock"
	"github.com/clockface/clockface/internal/domain/photo"
	"github.com/clockface/clockface/internal/infra/bing"
	"github.com/clockface/clockface/internal/infra/config"
)

func provideClockConfig(cfg *config.Config) (clock.Config, error) {
	loc, err := time.LoadLocation(cfg.Clock.Timezone)
	if err != nil {
		return clock.Config{}, err
	}
	return clock.Config{
		TickInterval:      cfg.Clock.TickInterval,
		BlinkInterval:     cfg.Clock.BlinkInterval,
		BackgroundRefresh: cfg.Clock.BackgroundRefresh,
		Location:          loc,
		SourceURL:         cfg.Clock.SourceURL,
	}, nil
}

func providePhotoConfig(cfg *config.Config) photo.Config {
	return photo.Config{BaseURL: cfg.Bing.BaseURL}
}

func provideBingClient(cfg *config.Config) *bing.Client {
	return bing.NewClient(cfg.Bing.BaseURL, cfg.Bing.ArchivePath, cfg.Bing.Timeout)
}

func providePalettes() []clock.Palette {
	return clock.MustLoadPalettes()
}

// The page's background fetcher asks the same service that backs GET /api.
func provideBackgroundSource(svc photo.Service) clock.BackgroundSource {
	return svc
}
