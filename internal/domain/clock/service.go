package clock

import (
	"log/slog"
	"net/url"
	"time"
)

// Service exposes the overlay clock.
type Service interface {
	// Resolve derives the page configuration from its query parameters.
	Resolve(query url.Values) Configuration
	// Snapshot renders the current time without any live state.
	Snapshot(cfg Configuration) View
	// Open prepares a session whose periodic tasks start when it is run.
	Open(cfg Configuration) *Session
}

type service struct {
	cfg      Config
	resolver *Resolver
	source   BackgroundSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the clock domain.
func NewService(cfg Config, palettes []Palette, source BackgroundSource, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		resolver: NewResolver(palettes, cfg.Location),
		source:   source,
		logger:   logger.With("component", "clock.service"),
		now:      time.Now,
	}
}

func (s *service) Resolve(query url.Values) Configuration {
	return s.resolver.Resolve(query)
}

func (s *service) Snapshot(cfg Configuration) View {
	view := Render(cfg, FormatTime(s.now(), cfg), false, "")
	view.LinkURL = s.cfg.SourceURL
	return view
}

func (s *service) Open(cfg Configuration) *Session {
	return newSession(cfg, s.cfg, s.source, s.now, s.logger)
}
