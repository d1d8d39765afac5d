package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
//
// Message carries the human readable description, with the underlying cause
// appended when one is available.
type ErrorResponse struct {
	Message   string    `json:"error" example:"invalid or unsupported symbol: FOO/BAR"`
	RequestID string    `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional cause.
func NewErrorResponse(message string, err error) ErrorResponse {
	if err != nil {
		message = message + ": " + err.Error()
	}
	return ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WithRequestID returns a copy of e tagged with the given request id.
func (e ErrorResponse) WithRequestID(id string) ErrorResponse {
	e.RequestID = id
	return e
}
