package bing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clockface/clockface/internal/domain/photo"
)

const (
	defaultBaseURL     = "https://www.bing.com"
	defaultArchivePath = "/HPImageArchive.aspx?format=js&idx=0&n=1"
)

// Client reads the Bing homepage image archive.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds an archive client. Empty arguments fall back to the
// public Bing endpoint.
func NewClient(baseURL, archivePath string, timeout time.Duration) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.TrimSpace(archivePath) == "" {
		archivePath = defaultArchivePath
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   base + archivePath,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Latest returns the archive entries, newest first.
func (c *Client) Latest(ctx context.Context) ([]photo.ArchiveImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build archive request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("archive request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode archive response: %w", err)
	}
	return toArchiveImages(raw.Images), nil
}

type archiveResponse struct {
	Images []archiveImage `json:"images"`
}

type archiveImage struct {
	StartDate     string `json:"startdate"`
	URL           string `json:"url"`
	URLBase       string `json:"urlbase"`
	Copyright     string `json:"copyright"`
	CopyrightLink string `json:"copyrightlink"`
	Title         string `json:"title"`
}

func toArchiveImages(raw []archiveImage) []photo.ArchiveImage {
	out := make([]photo.ArchiveImage, 0, len(raw))
	for _, img := range raw {
		out = append(out, photo.ArchiveImage{
			URL:           img.URL,
			Title:         img.Title,
			Copyright:     img.Copyright,
			CopyrightLink: img.CopyrightLink,
			StartDate:     img.StartDate,
		})
	}
	return out
}

var _ photo.ArchiveClient = (*Client)(nil)
