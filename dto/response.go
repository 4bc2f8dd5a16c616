package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractResponse is returned by the report extraction endpoint
type ExtractResponse struct {
	RunID       string   `json:"run_id"`
	ProcessedAt string   `json:"processed_at"`
	Columns     []string `json:"columns"`
	Records     []Record `json:"records"`
}
