package program

import "context"

// MetadataFetcher reads the raw JSON document for a program from the
// remote discovery service. Implementations report a not-found error when
// the service has no such program and a transport error for any other
// failure; neither outcome is retried or cached by callers.
type MetadataFetcher interface {
	Fetch(ctx context.Context, programUUID string) ([]byte, error)
}
