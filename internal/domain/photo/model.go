package photo

// ArchiveImage is one entry of the image-of-the-day archive as published
// upstream. URL is relative to the archive host.
type ArchiveImage struct {
	URL           string
	Title         string
	Copyright     string
	CopyrightLink string
	StartDate     string
}

// Photo is the resolved image of the day.
type Photo struct {
	URL           string `json:"url"`
	Title         string `json:"title,omitempty"`
	Copyright     string `json:"copyright,omitempty"`
	CopyrightLink string `json:"copyrightLink,omitempty"`
	Date          string `json:"date,omitempty"`
}

// Config wires runtime settings for the photo domain.
type Config struct {
	// BaseURL is prefixed to the relative image path returned upstream.
	BaseURL string
}
