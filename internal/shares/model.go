package shares

import "time"

// ShareLink grants read access to one resume to anyone presenting its token.
// The token is the capability; no session is required to resolve it.
type ShareLink struct {
	Token         string
	ResumeID      string
	OwnerID       string
	ExpiresAt     *time.Time // nil = never expires
	AllowDownload bool
	Note          string
	CreatedAt     time.Time
}

// Expired reports whether the link is past its expiry at the given instant.
func (l ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
