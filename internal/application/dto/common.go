package dto

// ErrorResponse HTTP error body. Message stays generic for 5xx: detail is
// logged server-side, never leaked.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// SuccessResponse minimal success body for side-effect-only endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}
