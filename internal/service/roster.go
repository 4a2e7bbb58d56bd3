package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"teabag/internal/domain"
	"teabag/internal/my_errors"
)

// emailPattern is unanchored: any value containing non-space@non-space.non-space passes.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var (
	emailHeaders  = map[string]struct{}{"email": {}, "email address": {}}
	cohortHeaders = map[string]struct{}{"cohort": {}, "cohort name": {}}
)

const utf8BOM = "\ufeff"

// ParseRoster reads a roster CSV. The header row must contain an email column;
// a cohort column is optional. Emails are trimmed and lower-cased, invalid
// rows are dropped and duplicate (email, cohort) pairs keep the first occurrence.
func ParseRoster(r io.Reader) (*domain.Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file is empty: %w", my_errors.ErrInvalidCSV)
		}
		return nil, fmt.Errorf("failed to read header: %v: %w", err, my_errors.ErrInvalidCSV)
	}

	emailIdx, cohortIdx := -1, -1
	for i, column := range header {
		if i == 0 {
			column = strings.TrimPrefix(column, utf8BOM)
		}
		name := strings.ToLower(strings.TrimSpace(column))
		if _, ok := emailHeaders[name]; ok && emailIdx < 0 {
			emailIdx = i
		}
		if _, ok := cohortHeaders[name]; ok && cohortIdx < 0 {
			cohortIdx = i
		}
	}
	if emailIdx < 0 {
		return nil, fmt.Errorf("header has no email column: %w", my_errors.ErrInvalidCSV)
	}

	roster := &domain.Roster{Entries: []domain.RosterEntry{}}
	seen := make(map[domain.RosterEntry]struct{})

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %v: %w", err, my_errors.ErrInvalidCSV)
		}
		roster.Parsed++

		entry, ok := rosterEntry(record, emailIdx, cohortIdx)
		if !ok {
			roster.Skipped++
			continue
		}
		if _, dup := seen[entry]; dup {
			roster.Skipped++
			continue
		}
		seen[entry] = struct{}{}
		roster.Entries = append(roster.Entries, entry)
	}

	return roster, nil
}

func rosterEntry(record []string, emailIdx, cohortIdx int) (domain.RosterEntry, bool) {
	if emailIdx >= len(record) {
		return domain.RosterEntry{}, false
	}

	email := strings.ToLower(strings.TrimSpace(record[emailIdx]))
	if !emailPattern.MatchString(email) {
		return domain.RosterEntry{}, false
	}

	entry := domain.RosterEntry{Email: email}
	if cohortIdx >= 0 && cohortIdx < len(record) {
		entry.Cohort = strings.TrimSpace(record[cohortIdx])
	}
	return entry, true
}
