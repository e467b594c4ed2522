package formatter

import (
	"encoding/json"
)

type ResponseBuilder struct{}

// NewResponseBuilder creates a new response builder for departure boards
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// BuildJSON serializes a departure board to JSON
func (rb *ResponseBuilder) BuildJSON(board *DepartureBoard) []byte {
	b, _ := json.Marshal(board)
	return b
}
