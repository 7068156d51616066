package clock

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BackgroundSource resolves the current background image URL.
type BackgroundSource interface {
	TodayURL(ctx context.Context) (string, error)
}

// Session owns the periodic tasks behind one open page: the clock tick,
// the colon blink and the background refresh. All of them live exactly as
// long as the context handed to Run.
type Session struct {
	ID string

	cfg      Configuration
	settings Config
	source   BackgroundSource
	now      func() time.Time
	logger   *slog.Logger
}

type sessionState struct {
	time       State
	blinkOff   bool
	background string
}

type update func(*sessionState)

func newSession(cfg Configuration, settings Config, source BackgroundSource, now func() time.Time, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:       id,
		cfg:      cfg,
		settings: settings,
		source:   source,
		now:      now,
		logger:   logger.With("session", id),
	}
}

// Stream runs the session in the background and returns its frames. The
// channel is closed once ctx is cancelled and every task has stopped.
func (s *Session) Stream(ctx context.Context) <-chan View {
	out := make(chan View)
	go func() {
		defer close(out)
		if err := s.Run(ctx, out); err != nil {
			s.logger.Error("clock session failed", "error", err)
		}
	}()
	return out
}

// Run blocks until ctx is done, sending a View to out after every state
// change. No frame is sent once ctx is cancelled.
func (s *Session) Run(ctx context.Context, out chan<- View) error {
	s.logger.Debug("clock session started", "blink", s.cfg.Blink, "bgImage", s.cfg.BgImage)
	defer s.logger.Debug("clock session stopped")

	updates := make(chan update)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.runClock(gctx, updates) })
	if s.cfg.Blink {
		g.Go(func() error { return s.runBlink(gctx, updates) })
	}
	if s.cfg.BgImage && s.source != nil {
		g.Go(func() error { return s.runBackground(gctx, updates) })
	}
	g.Go(func() error {
		var state sessionState
		for {
			select {
			case <-gctx.Done():
				return nil
			case apply := <-updates:
				if gctx.Err() != nil {
					return nil
				}
				apply(&state)
				view := Render(s.cfg, state.time, state.blinkOff, state.background)
				view.LinkURL = s.settings.SourceURL
				select {
				case out <- view:
				case <-gctx.Done():
					return nil
				}
			}
		}
	})
	return g.Wait()
}

func (s *Session) runClock(ctx context.Context, updates chan<- update) error {
	tick := func() bool {
		state := FormatTime(s.now(), s.cfg)
		return send(ctx, updates, func(st *sessionState) { st.time = state })
	}
	if !tick() {
		return nil
	}
	ticker := time.NewTicker(s.settings.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !tick() {
				return nil
			}
		}
	}
}

func (s *Session) runBlink(ctx context.Context, updates chan<- update) error {
	ticker := time.NewTicker(s.settings.BlinkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !send(ctx, updates, func(st *sessionState) { st.blinkOff = !st.blinkOff }) {
				return nil
			}
		}
	}
}

// runBackground fetches once immediately and then on every refresh. A failed
// fetch keeps whatever URL was shown before.
func (s *Session) runBackground(ctx context.Context, updates chan<- update) error {
	fetch := func() bool {
		url, err := s.source.TodayURL(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			s.logger.Warn("background image fetch failed", "error", err)
			return true
		}
		return send(ctx, updates, func(st *sessionState) { st.background = url })
	}
	if !fetch() {
		return nil
	}
	ticker := time.NewTicker(s.settings.BackgroundRefresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !fetch() {
				return nil
			}
		}
	}
}

func send(ctx context.Context, updates chan<- update, fn update) bool {
	select {
	case updates <- fn:
		return true
	case <-ctx.Done():
		return false
	}
}
