package types

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	Page       int `json:"page"`       // Current page (1-based)
	PerPage    int `json:"perPage"`    // Items per page
	Total      int `json:"total"`      // Total number of items
	TotalPages int `json:"totalPages"` // Total number of pages
}

// PaginatedBatchesResponse represents a page of batches
type PaginatedBatchesResponse struct {
	Data       []Batch        `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}
