package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clockface/clockface/internal/domain/clock"
	"github.com/clockface/clockface/internal/domain/photo"
	"github.com/clockface/clockface/internal/infra/config"
)

type stubArchive struct {
	images []photo.ArchiveImage
	err    error
}

func (s *stubArchive) Latest(ctx context.Context) ([]photo.ArchiveImage, error) {
	return s.images, s.err
}

func newRouterUnderTest(t *testing.T, archive photo.ArchiveClient) *http.Server {
	t.Helper()
	logger := newTestLogger()
	photoSvc := photo.NewService(photo.Config{BaseURL: "https://www.bing.com"}, archive, logger)
	clockSvc := clock.NewService(clock.Config{
		TickInterval:      10 * time.Millisecond,
		BlinkInterval:     10 * time.Millisecond,
		BackgroundRefresh: time.Hour,
		Location:          time.UTC,
		SourceURL:         "https://example.com/source",
	}, clock.MustLoadPalettes(), photoSvc, logger)

	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:     ":0",
			ReadTimeout: time.Second,
		},
	}
	return NewRouter(cfg, NewHandler(clockSvc, photoSvc, logger))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func performRequest(server *http.Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRouter_ImageOfTheDay(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{images: []photo.ArchiveImage{{URL: "/th?id=abc"}}})

	rec := performRequest(server, http.MethodGet, "/api")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	require.Equal(t, "https://www.bing.com/th?id=abc", rec.Body.String())
}

func TestRouter_ImageOfTheDayUpstreamFailure(t *testing.T) {
	cases := map[string]*stubArchive{
		"network": {err: errors.New("connection reset")},
		"empty":   {images: nil},
	}
	for name, archive := range cases {
		t.Run(name, func(t *testing.T) {
			rec := performRequest(newRouterUnderTest(t, archive), http.MethodGet, "/api")
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeErrorBody(t, rec.Body.Bytes())
			require.Equal(t, "internal_error", body["error"]["code"])
		})
	}
}

func TestRouter_Photo(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{images: []photo.ArchiveImage{{URL: "/th?id=abc", Title: "Lighthouse"}}})

	rec := performRequest(server, http.MethodGet, "/api/photo")
	require.Equal(t, http.StatusOK, rec.Code)

	var got photo.Photo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "https://www.bing.com/th?id=abc", got.URL)
	require.Equal(t, "Lighthouse", got.Title)
}

func TestRouter_PhotoUpstreamFailure(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{err: errors.New("timeout")})

	rec := performRequest(server, http.MethodGet, "/api/photo")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "photo_failed", body["error"]["code"])
	require.Contains(t, body["error"]["message"], "timeout")
}

func TestRouter_Config(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{})

	rec := performRequest(server, http.MethodGet, "/api/config?fg=ff0000&position=top-left&format=12&seconds")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Config clock.Configuration `json:"config"`
		View   clock.View          `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "#ff0000", body.Config.FG)
	require.Equal(t, clock.Format12, body.Config.Format)
	require.True(t, body.Config.Seconds)
	require.Equal(t, "flex-start", body.View.Layout.AlignItems)
	require.Equal(t, "flex-start", body.View.Layout.JustifyContent)
	require.Len(t, body.View.Time.Seconds, 2)
}

func TestRouter_Page(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{})

	rec := performRequest(server, http.MethodGet, "/?fg=00ff00&font=monospace")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))

	page := rec.Body.String()
	require.Contains(t, page, "<title>Time with Bing Photo of the Day</title>")
	require.Contains(t, page, `"color":"#00ff00"`)
	require.Contains(t, page, `"fontFamily":"monospace"`)
	require.Contains(t, page, `href="https://example.com/source"`)
	require.Contains(t, page, "/api/clock/stream")
}

func TestRouter_Health(t *testing.T) {
	rec := performRequest(newRouterUnderTest(t, &stubArchive{}), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_CORS(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{})

	for _, path := range []string{"/api", "/api/photo", "/api/config", "/api/clock/stream"} {
		rec := performRequest(server, http.MethodOptions, path)
		require.Equal(t, http.StatusNoContent, rec.Code, path)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
	}

	rec := performRequest(server, http.MethodGet, "/api/config")
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSOnlyOnAPI(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{})

	for _, path := range []string{"/", "/healthz"} {
		rec := performRequest(server, http.MethodGet, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), path)
	}
}

func TestResolveOrigin(t *testing.T) {
	require.Equal(t, "*", resolveOrigin("https://a.example", nil))
	require.Equal(t, "https://a.example", resolveOrigin("https://a.example", []string{"https://b.example", "https://a.example"}))
	require.Equal(t, "https://b.example", resolveOrigin("https://c.example", []string{"https://b.example"}))
	require.Equal(t, "*", resolveOrigin("", []string{"*"}))
}

func TestRouter_ClockStream(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{images: []photo.ArchiveImage{{URL: "/th?id=abc"}}})
	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/clock/stream?blink&bgImage&seconds", nil)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	require.NotEmpty(t, resp.Header.Get("X-Session-ID"))

	var (
		sawBackground bool
		opacities     = map[int]bool{}
		frames        int
	)
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() && !(sawBackground && opacities[0] && opacities[1]) {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var view clock.View
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &view))
		require.Len(t, view.Time.Seconds, 2)
		opacities[view.ColonOpacity] = true
		if view.BackgroundImage == `url("https://www.bing.com/th?id=abc")` {
			sawBackground = true
		}
		frames++
		require.Less(t, frames, 1000, "stream never produced the expected frames")
	}
	require.True(t, sawBackground)
	require.True(t, opacities[0] && opacities[1])
}

var (
	streamAttr     = regexp.MustCompile(`data-stream="([^"]*)"`)
	initialColor   = regexp.MustCompile(`"color":"(#[0-9a-f]{6})"`)
	initialBgColor = regexp.MustCompile(`"backgroundColor":"(#[0-9a-f]{6})"`)
)

func firstFrame(t *testing.T, baseURL, path string) clock.View {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var view clock.View
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &view))
		return view
	}
	t.Fatal("stream ended without a frame")
	return clock.View{}
}

func TestRouter_PageAndStreamShareRandomPalette(t *testing.T) {
	server := newRouterUnderTest(t, &stubArchive{})
	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	for i := 0; i < 20; i++ {
		rec := performRequest(server, http.MethodGet, "/?randomColors&seconds")
		require.Equal(t, http.StatusOK, rec.Code)
		page := rec.Body.String()

		color := initialColor.FindStringSubmatch(page)
		bg := initialBgColor.FindStringSubmatch(page)
		stream := streamAttr.FindStringSubmatch(page)
		require.Len(t, color, 2)
		require.Len(t, bg, 2)
		require.Len(t, stream, 2)

		streamPath := html.UnescapeString(stream[1])
		require.True(t, strings.HasPrefix(streamPath, "/api/clock/stream?"))
		require.NotContains(t, streamPath, "randomColors")

		// Each frame, including those after a reconnect, must keep the page palette.
		for attempt := 0; attempt < 2; attempt++ {
			view := firstFrame(t, ts.URL, streamPath)
			require.Equal(t, color[1], view.Color)
			require.Equal(t, bg[1], view.BackgroundColor)
			require.Len(t, view.Time.Seconds, 2)
		}
	}
}

func TestRouter_PageStreamURLWithoutQuery(t *testing.T) {
	rec := performRequest(newRouterUnderTest(t, &stubArchive{}), http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `data-stream="/api/clock/stream"`)
}
