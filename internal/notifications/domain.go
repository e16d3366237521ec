// Package notifications keeps the shared activity feed shown in the header
// bell. Entries are global; read and cleared state is tracked per user.
package notifications

import "time"

// Feed actions. French because they are displayed verbatim.
const (
	ActionCreation     = "CRÉATION"
	ActionModification = "MODIFICATION"
	ActionSuppression  = "SUPPRESSION"
	ActionImportCSV    = "IMPORT CSV"
	ActionEcheance     = "ÉCHÉANCE"
)

// feedLimit caps how many entries the bell shows.
const feedLimit = 20

// Notification is one feed entry, with the calling user's read state.
type Notification struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Details   string    `json:"details"`
	Actor     string    `json:"actor"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
