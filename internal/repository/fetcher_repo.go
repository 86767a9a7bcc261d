package repository

import "context"

// UpstreamFetcher defines the contract for retrieving raw markup from the
// upstream site.
type UpstreamFetcher interface {
	// Fetch issues a GET for resourcePath (which already carries its query
	// string) with the session token attached and returns the body.
	Fetch(ctx context.Context, resourcePath, sessionToken string) (string, error)
}
