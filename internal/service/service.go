// Package service wires the spreadsheet adapter, the property catalog, the
// contact ledger, and the import engine into the operations the HTTP layer
// exposes.
package service

import (
	"context"
	"fmt"
	"io"

	"github.com/propfolio/streetfarm/internal/importer"
	"github.com/propfolio/streetfarm/internal/logging"
	"github.com/propfolio/streetfarm/internal/sheet"
)

// Datastore is the persistence surface the service needs: suburb-scoped
// snapshot reads plus the atomic bulk insert. Satisfied by *store.Store and
// by in-memory fakes in tests.
type Datastore interface {
	StreetIndex(ctx context.Context, suburb string) (*importer.StreetIndex, error)
	ExistingKeys(ctx context.Context, suburb string) (importer.KeySet, error)
	InsertContacts(ctx context.Context, runID, suburb string, contacts []importer.Contact) error
}

// Service runs contact imports against a datastore.
type Service struct {
	db     Datastore
	strict bool
}

// New creates a Service. strict enables per-field parse warnings in
// outcomes.
func New(db Datastore, strict bool) *Service {
	return &Service{db: db, strict: strict}
}

// Import parses the uploaded file and runs the full pipeline, ending in one
// bulk insert into the suburb's ledger.
func (s *Service) Import(ctx context.Context, suburb, fileName string, file io.Reader) (*importer.Outcome, error) {
	in, err := s.buildInput(ctx, suburb, fileName, file)
	if err != nil {
		return nil, err
	}

	out, err := importer.New(s.db, s.strict).Run(ctx, in)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("import complete",
		"run_id", out.RunID,
		"suburb", suburb,
		"file", fileName,
		"accepted", out.AcceptedCount,
		"duplicates", out.DuplicateCount,
		"unmatched", out.UnmatchedCount,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}

// Preview runs the pipeline without writing to the ledger, so a user can
// inspect what an import would do.
func (s *Service) Preview(ctx context.Context, suburb, fileName string, file io.Reader) (*importer.Outcome, error) {
	in, err := s.buildInput(ctx, suburb, fileName, file)
	if err != nil {
		return nil, err
	}
	return importer.New(s.db, s.strict).Preview(in)
}

// buildInput parses the file and loads the suburb's snapshots.
func (s *Service) buildInput(ctx context.Context, suburb, fileName string, file io.Reader) (importer.Input, error) {
	header, rows, err := sheet.Read(fileName, file)
	if err != nil {
		return importer.Input{}, fmt.Errorf("parse %s: %w", fileName, err)
	}

	idx, err := s.db.StreetIndex(ctx, suburb)
	if err != nil {
		return importer.Input{}, fmt.Errorf("load street index for %s: %w", suburb, err)
	}
	keys, err := s.db.ExistingKeys(ctx, suburb)
	if err != nil {
		return importer.Input{}, fmt.Errorf("load existing contacts for %s: %w", suburb, err)
	}

	return importer.Input{
		HeaderRow: header,
		Rows:      rows,
		Suburb:    suburb,
		Streets:   idx,
		Existing:  keys,
	}, nil
}
