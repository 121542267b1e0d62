package dto

// ListingResponse is returned by GET /listing/{id}.
type ListingResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// ListingPatchResponse is returned by PATCH /listing/{id}. CreatedAt is unix seconds.
type ListingPatchResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"created_at"`
}
