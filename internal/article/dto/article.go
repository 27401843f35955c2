package dto

// SaveArticleRequest is the save-pipeline input: one URL.
type SaveArticleRequest struct {
	URL string `json:"url" binding:"required"`
}
