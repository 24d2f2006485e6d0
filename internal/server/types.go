package server

// ValidateResponse reports whether a snapshot satisfies the compliance
// preconditions for XML generation.
type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
