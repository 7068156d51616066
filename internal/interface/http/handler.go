package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clockface/clockface/internal/domain/clock"
	"github.com/clockface/clockface/internal/domain/photo"
	apperrors "github.com/clockface/clockface/pkg/errors"
)

const pageTitle = "Time with Bing Photo of the Day"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	clockSvc clock.Service
	photoSvc photo.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(clockSvc clock.Service, photoSvc photo.Service, logger *slog.Logger) *Handler {
	return &Handler{
		clockSvc: clockSvc,
		photoSvc: photoSvc,
		logger:   logger.With("component", "http.handler"),
	}
}

// Page renders the overlay for the configuration in the query string. The
// stream URL carries the resolved colors so the stream, and any reconnect,
// paints the same palette as the page.
func (h *Handler) Page(c *gin.Context) {
	query := c.Request.URL.Query()
	cfg := h.clockSvc.Resolve(query)
	streamURL := "/api/clock/stream"
	if pinned := clock.PinQuery(query, cfg); len(pinned) > 0 {
		streamURL += "?" + pinned.Encode()
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     pageTitle,
		"View":      h.clockSvc.Snapshot(cfg),
		"StreamURL": streamURL,
	})
}

// Config returns the resolved configuration and its initial frame.
func (h *Handler) Config(c *gin.Context) {
	cfg := h.clockSvc.Resolve(c.Request.URL.Query())
	c.JSON(http.StatusOK, gin.H{
		"config": cfg,
		"view":   h.clockSvc.Snapshot(cfg),
	})
}

// ClockStream pushes a frame for every clock, blink or background change
// using Server-Sent Events. The session ends when the client goes away.
func (h *Handler) ClockStream(c *gin.Context) {
	cfg := h.clockSvc.Resolve(c.Request.URL.Query())

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	session := h.clockSvc.Open(cfg)
	h.logger.Info("clock stream opened", "session", session.ID, "timezone", cfg.Timezone)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Session-ID", session.ID)
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	for view := range session.Stream(c.Request.Context()) {
		payload, err := json.Marshal(view)
		if err != nil {
			h.logger.Error("marshal frame failed", "error", err)
			continue
		}
		c.Writer.Write([]byte("data: "))
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
	}
	h.logger.Info("clock stream closed", "session", session.ID)
}

// ImageOfTheDay returns the absolute image URL as plain text. Upstream
// failures are not translated; they surface as the default 500 envelope.
func (h *Handler) ImageOfTheDay(c *gin.Context) {
	url, err := h.photoSvc.TodayURL(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.String(http.StatusOK, url)
}

// Photo returns the image of the day with its attribution.
func (h *Handler) Photo(c *gin.Context) {
	p, err := h.photoSvc.Today(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsCode(err, apperrors.CodeUpstreamError) {
			status = http.StatusBadGateway
		}
		abortWithError(c, NewHTTPError(status, "photo_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, p)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
