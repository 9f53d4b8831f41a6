// Package store is the Postgres-backed property catalog and contact ledger.
//
// Reads return suburb-scoped snapshots: the importer never touches the
// database mid-run, so a run sees one consistent view of the ledger. Writes
// go through a single COPY inside a transaction holding a per-suburb
// advisory lock, which serializes concurrent imports for the same suburb.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/streetfarm/internal/importer"
)

// Store provides ledger and catalog access over a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// StreetIndex loads the canonical street names and numbers for a suburb
// from the property catalog. Catalog insertion order is preserved; it
// drives both substring-match precedence and round-robin number assignment.
func (s *Store) StreetIndex(ctx context.Context, suburb string) (*importer.StreetIndex, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT street_name, street_number
		   FROM properties
		  WHERE suburb = $1
		  ORDER BY id`,
		suburb)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	idx := importer.NewStreetIndex()
	for rows.Next() {
		var street string
		var number pgtype.Text
		if err := rows.Scan(&street, &number); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		idx.Add(street, number.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	return idx, nil
}

// ExistingKeys loads the identity keys of every contact already in the
// suburb's ledger.
func (s *Store) ExistingKeys(ctx context.Context, suburb string) (importer.KeySet, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT owner_1, owner_2, street_number, street_name, suburb
		   FROM contacts
		  WHERE suburb = $1`,
		suburb)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	keys := importer.NewKeySet()
	for rows.Next() {
		var c importer.Contact
		if err := rows.Scan(&c.Owner1, &c.Owner2, &c.StreetNumber, &c.StreetName, &c.Suburb); err != nil {
			return nil, fmt.Errorf("scan contact key: %w", err)
		}
		keys.Add(importer.KeyFor(c))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read contact keys: %w", err)
	}
	return keys, nil
}

// contactColumns is the COPY column list, matching copyRow's value order.
var contactColumns = []string{
	"import_run_id",
	"owner_1", "owner_2",
	"owner_1_email", "owner_2_email",
	"phone_number", "owner_1_mobile", "owner_2_mobile",
	"outcome",
	"street_name", "street_number", "suburb",
	"status", "last_sold_date", "price",
	"marketing_plan", "activity_log",
}

// InsertContacts bulk-inserts the accepted contacts of one run. The whole
// batch commits or rolls back together. A transaction-scoped advisory lock
// on the suburb prevents two concurrent imports from both passing duplicate
// detection against the same ledger snapshot.
func (s *Store) InsertContacts(ctx context.Context, runID, suburb string, contacts []importer.Contact) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		"contact_import:"+suburb); err != nil {
		return fmt.Errorf("lock suburb %s: %w", suburb, err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"contacts"},
		contactColumns,
		pgx.CopyFromSlice(len(contacts), func(i int) ([]any, error) {
			return copyRow(runID, contacts[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy contacts: %w", err)
	}
	if n != int64(len(contacts)) {
		return fmt.Errorf("copy contacts: inserted %d of %d rows", n, len(contacts))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func copyRow(runID string, c importer.Contact) []any {
	return []any{
		runID,
		c.Owner1, c.Owner2,
		c.Owner1Email, c.Owner2Email,
		c.PhoneNumber, c.Owner1Mobile, c.Owner2Mobile,
		c.Outcome,
		c.StreetName, c.StreetNumber, c.Suburb,
		c.Status, c.LastSoldDate, c.Price,
		c.MarketingPlan, c.ActivityLog,
	}
}
