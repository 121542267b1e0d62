package dto

// CreatedResponse is returned by POST /account and POST /listing.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// StatusResponse acknowledges a delete.
type StatusResponse struct {
	Status string `json:"status"`
}

// AccountResponse is returned by GET /account/{id}.
type AccountResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	CreationTime string `json:"creation_time"`
}

// AccountPatchResponse is returned by PATCH /account/{id}. CreationTime is unix seconds.
type AccountPatchResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	CreationTime int64  `json:"creation_time"`
}
