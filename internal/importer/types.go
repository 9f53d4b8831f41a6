// Package importer implements the bulk contact import pipeline: spreadsheet
// rows are mapped to a canonical contact schema, street names are reconciled
// against the suburb's known streets, duplicates are filtered against the
// existing ledger, and the surviving rows are handed to the ledger in a
// single bulk insert.
//
// The package is store-free: the street index and existing-contact keys are
// passed in as read-only snapshots, and persistence happens through the
// Inserter interface. This keeps every stage testable with in-memory
// fixtures.
package importer

import (
	"context"
	"time"
)

// RawRow is one spreadsheet row as produced by the sheet adapter: original
// header string to cell text. Cells that were numeric in the source keep
// their decimal text; empty cells are "".
type RawRow map[string]string

// Contact is a fully normalized contact record, ready for the ledger.
// Price and LastSoldDate are nil when the source cell was empty,
// blacklisted, or unparseable.
type Contact struct {
	Owner1        string   `json:"owner_1"`
	Owner2        string   `json:"owner_2"`
	Owner1Email   string   `json:"owner_1_email"`
	Owner2Email   string   `json:"owner_2_email"`
	PhoneNumber   string   `json:"phone_number"`
	Owner1Mobile  string   `json:"owner_1_mobile"`
	Owner2Mobile  string   `json:"owner_2_mobile"`
	Outcome       string   `json:"outcome"`
	StreetName    string   `json:"street_name"`
	StreetNumber  string   `json:"street_number"`
	Suburb        string   `json:"suburb"`
	Status        string   `json:"status"`
	LastSoldDate  *string  `json:"last_sold_date"`
	Price         *float64 `json:"price"`
	MarketingPlan string   `json:"marketing_plan"`
	ActivityLog   string   `json:"activity_log"`
}

// StreetIndex is the canonical street data for one suburb, sourced from the
// property catalog. Street names keep the order they were added in; numbers
// keep order and may repeat (one entry per known property).
type StreetIndex struct {
	streets []string
	members map[string]struct{}
	numbers map[string][]string
}

// NewStreetIndex returns an empty index.
func NewStreetIndex() *StreetIndex {
	return &StreetIndex{
		members: make(map[string]struct{}),
		numbers: make(map[string][]string),
	}
}

// Add records one known (street, number) pair. The street joins the
// canonical set on first sight; the number is appended even when it repeats.
// Empty numbers are ignored.
func (x *StreetIndex) Add(street, number string) {
	if _, ok := x.members[street]; !ok {
		x.members[street] = struct{}{}
		x.streets = append(x.streets, street)
	}
	if number != "" {
		x.numbers[street] = append(x.numbers[street], number)
	}
}

// Has reports whether street is a canonical street name.
func (x *StreetIndex) Has(street string) bool {
	_, ok := x.members[street]
	return ok
}

// Streets returns the canonical street names in insertion order.
func (x *StreetIndex) Streets() []string { return x.streets }

// Numbers returns the known street numbers for a canonical street, in
// catalog order. May be empty.
func (x *StreetIndex) Numbers(street string) []string { return x.numbers[street] }

// Len returns the number of canonical streets.
func (x *StreetIndex) Len() int { return len(x.streets) }

// Input is everything one import run consumes. Streets and Existing are
// suburb-scoped snapshots loaded before the run starts.
type Input struct {
	HeaderRow []string
	Rows      []RawRow
	Suburb    string
	Streets   *StreetIndex
	Existing  KeySet
}

// Outcome is the caller-visible result of one run.
type Outcome struct {
	RunID            string        `json:"run_id"`
	Suburb           string        `json:"suburb"`
	Accepted         []Contact     `json:"-"`
	AcceptedCount    int           `json:"accepted_count"`
	DuplicateCount   int           `json:"duplicate_count"`
	UnmatchedCount   int           `json:"unmatched_count"`
	Duplicates       []string      `json:"duplicates"`
	UnmatchedStreets []string      `json:"unmatched_streets"`
	Warnings         []string      `json:"warnings,omitempty"`
	Duration         time.Duration `json:"-"`
}

// Inserter persists accepted contacts. The call must be atomic: either all
// contacts are inserted or none are.
type Inserter interface {
	InsertContacts(ctx context.Context, runID, suburb string, contacts []Contact) error
}
