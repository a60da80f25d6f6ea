package services

import (
	"context"
)

// PayloadSource serves a document already held in memory, such as a request
// body, to ImportFrom.
type PayloadSource struct {
	data     []byte
	location string
}

// NewPayloadSource wraps data; location names it in logs and errors
func NewPayloadSource(data []byte, location string) *PayloadSource {
	return &PayloadSource{data: data, location: location}
}

// Read returns the payload
func (s *PayloadSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.data, nil
}

// Location names the payload
func (s *PayloadSource) Location() string {
	return s.location
}
