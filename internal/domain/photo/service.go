package photo

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/clockface/clockface/pkg/errors"
)

// Service resolves the image of the day.
type Service interface {
	Today(ctx context.Context) (Photo, error)
	TodayURL(ctx context.Context) (string, error)
}

// ArchiveClient fetches the latest archive entries from upstream.
type ArchiveClient interface {
	Latest(ctx context.Context) ([]ArchiveImage, error)
}

type service struct {
	cfg    Config
	client ArchiveClient
	logger *slog.Logger
}

// NewService wires up the photo domain. Nothing is cached: every call goes
// upstream.
func NewService(cfg Config, client ArchiveClient, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "photo.service"),
	}
}

func (s *service) Today(ctx context.Context) (Photo, error) {
	images, err := s.client.Latest(ctx)
	if err != nil {
		return Photo{}, apperrors.Wrap(apperrors.CodeUpstreamError, "fetch image archive", err)
	}
	if len(images) == 0 {
		return Photo{}, apperrors.Wrap(apperrors.CodeUpstreamError, "image archive returned no images", nil)
	}
	first := images[0]
	if strings.TrimSpace(first.URL) == "" {
		return Photo{}, apperrors.Wrap(apperrors.CodeUpstreamError, "image archive entry has no url", nil)
	}
	photo := Photo{
		URL:           strings.TrimRight(s.cfg.BaseURL, "/") + first.URL,
		Title:         first.Title,
		Copyright:     first.Copyright,
		CopyrightLink: first.CopyrightLink,
		Date:          first.StartDate,
	}
	s.logger.Debug("image of the day resolved", "url", photo.URL)
	return photo, nil
}

func (s *service) TodayURL(ctx context.Context) (string, error) {
	photo, err := s.Today(ctx)
	if err != nil {
		return "", err
	}
	return photo.URL, nil
}
