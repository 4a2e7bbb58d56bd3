package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cohort struct {
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	ID        uuid.UUID `json:"id"`
}

// RosterEntry is one valid row of an uploaded roster. Cohort is empty when
// the file carries no cohort column or the cell is blank.
type RosterEntry struct {
	Email  string
	Cohort string
}

type Roster struct {
	Entries []RosterEntry
	Parsed  int
	Skipped int
}

// Emails returns the distinct emails of the roster in first-seen order.
func (r *Roster) Emails() []string {
	seen := make(map[string]struct{}, len(r.Entries))
	emails := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		if _, ok := seen[e.Email]; ok {
			continue
		}
		seen[e.Email] = struct{}{}
		emails = append(emails, e.Email)
	}
	return emails
}

type ImportResult struct {
	InsertedEmails   []string
	Parsed           int
	Skipped          int
	CohortsCreated   int
	MembershipsAdded int
}
