package response

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// ErrorDetail carries the stable machine-readable kind alongside the reason,
// so clients can branch on kind without parsing messages.
type ErrorDetail struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}
