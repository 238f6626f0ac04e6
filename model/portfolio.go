package model

import (
	"time"
)

// DefaultThumbnail is returned for portfolios whose rendered page has no
// og:image tag and no inline images.
const DefaultThumbnail = "/static/images/default-thumbnail.png"

// Portfolio is the metadata record describing one rendered portfolio
// page. The HTML itself lives in the blob store under Filename; URL is
// the externally reachable location of that blob.
type Portfolio struct {
	Key       string    `json:"_key,omitempty"`
	Username  string    `json:"username"`
	Filename  string    `json:"filename"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// PortfolioListItem is the list-view projection returned by
// GET /api/portfolios, including the derived thumbnail.
type PortfolioListItem struct {
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}
