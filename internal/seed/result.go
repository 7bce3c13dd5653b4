// Package seed orchestrates the import of players from the external stats
// feed into the repository.
package seed

import "fmt"

// SyncResult tracks counts and errors from a sync run.
type SyncResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// AddErrorf records a formatted error message.
func (r *SyncResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the sync.
func (r *SyncResult) Summary() string {
	return fmt.Sprintf("created=%d updated=%d errors=%d", r.Created, r.Updated, len(r.Errors))
}
