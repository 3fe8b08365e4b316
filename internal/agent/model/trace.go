package model

import (
	"context"
)

type TraceRepository interface {
	// Save archives the trace of a finished request
	Save(ctx context.Context, requestID string, trace State) error

	// Load returns the archived trace for a request
	Load(ctx context.Context, requestID string) (*ArchivedTrace, error)

	// Recent returns up to limit request ids, newest first
	Recent(ctx context.Context, limit int64) ([]string, error)

	// Count returns the number of request ids in the recent index
	Count(ctx context.Context) (int, error)
}

// ArchivedTrace is a trace as stored by a TraceRepository.
type ArchivedTrace struct {
	RequestID string `json:"request_id"`
	Trace     State  `json:"trace"`
}
