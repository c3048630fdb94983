package model

// TrainingVideo is one entry in the read-only training catalog, loaded
// from markdown frontmatter under content/training.
type TrainingVideo struct {
	Title       string `json:"title"`
	StepLabel   string `json:"stepLabel"`
	VideoID     string `json:"videoId"`
	Description string `json:"description"`
	Step        int    `json:"-"` // ordering only

	EmbedURL     string `json:"embedUrl"`
	WatchURL     string `json:"watchUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
