package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// FieldError carries field-level validation detail back to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error   bool         `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int64 `json:"total_pages"`
}

// NewPagination computes totalPages = ceil(totalCount/limit).
func NewPagination(page, limit int, totalCount int64) Pagination {
	totalPages := totalCount / int64(limit)
	if totalCount%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{Page: page, Limit: limit, TotalCount: totalCount, TotalPages: totalPages}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"database"`
	Version   string `json:"version"`
}
