package entity

import "time"

// UpstreamFailure mirrors the `upstream_failures` PostgreSQL table schema.
type UpstreamFailure struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`       // "boxer", "search", "ratings"
	Identifier  string    `json:"identifier"` // boxer id, query or division
	Path        string    `json:"path"`
	ErrorType   string    `json:"error_type"` // "unavailable", "rejected", "malformed"
	StatusCode  int       `json:"status_code,omitempty"`
	Reason      string    `json:"reason"`
	Occurrences int       `json:"occurrences"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}
