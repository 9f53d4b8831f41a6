package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoData is returned when the file contains no rows at all.
var ErrNoData = errors.New("no data found in the file")

// MaxSampleDescriptions caps how many duplicate/unmatched descriptions a
// NoneQualifyingError carries.
var MaxSampleDescriptions = 5

// NoneQualifyingError is returned when every row was dropped, duplicated,
// or unmatched and there is nothing to insert.
type NoneQualifyingError struct {
	Duplicates int
	Unmatched  int
	Dropped    int
	Samples    []string
}

func (e *NoneQualifyingError) Error() string {
	msg := fmt.Sprintf("no rows qualified for import: %d duplicates, %d unmatched streets, %d rows without owners",
		e.Duplicates, e.Unmatched, e.Dropped)
	if len(e.Samples) > 0 {
		msg += " (" + strings.Join(e.Samples, "; ") + ")"
	}
	return msg
}

// Importer drives the row-by-row pipeline and issues the final bulk insert.
type Importer struct {
	ledger Inserter
	strict bool
}

// New returns an Importer writing to ledger. When strict is set, field
// coercion failures (bad dates, bad prices) are reported in the outcome's
// warnings instead of being silently nulled.
func New(ledger Inserter, strict bool) *Importer {
	return &Importer{ledger: ledger, strict: strict}
}

// Run imports one file's rows into the suburb's ledger.
//
// Rows are processed strictly in file order: within-batch duplicate
// detection folds over the keys accepted earlier in the same pass, so
// reordering would change the result. Per-row conditions (duplicate,
// unmatched street, missing owners) accumulate into the outcome; only an
// empty file, a run with nothing to insert, or a ledger write failure
// produce an error.
func (im *Importer) Run(ctx context.Context, in Input) (*Outcome, error) {
	start := time.Now()

	out, dropped, err := im.analyze(in)
	if err != nil {
		return nil, err
	}

	if len(out.Accepted) == 0 {
		return nil, &NoneQualifyingError{
			Duplicates: out.DuplicateCount,
			Unmatched:  out.UnmatchedCount,
			Dropped:    dropped,
			Samples:    sampleDescriptions(out),
		}
	}

	if err := im.ledger.InsertContacts(ctx, out.RunID, in.Suburb, out.Accepted); err != nil {
		return nil, fmt.Errorf("insert contacts: %w", err)
	}

	out.Duration = time.Since(start)
	return out, nil
}

// Preview runs the pipeline without touching the ledger. Unlike Run, a
// none-qualifying result is an ordinary outcome here.
func (im *Importer) Preview(in Input) (*Outcome, error) {
	out, _, err := im.analyze(in)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// analyze partitions the rows into accepted/duplicate/unmatched without
// persisting anything. The second return is the count of rows dropped for
// having no owners.
func (im *Importer) analyze(in Input) (*Outcome, int, error) {
	if len(in.Rows) == 0 {
		return nil, 0, ErrNoData
	}

	headers := BuildHeaderMap(in.HeaderRow)
	streets := in.Streets
	if streets == nil {
		streets = NewStreetIndex()
	}

	out := &Outcome{
		RunID:  uuid.NewString(),
		Suburb: in.Suburb,
	}
	accepted := NewKeySet()
	dropped := 0

	for i, row := range in.Rows {
		contact, warnings := NormalizeRow(row, headers)
		// Ordinal within the data rows; the sheet adapter may have skipped
		// blank records, so physical line numbers are not recoverable here.
		if im.strict {
			for _, warn := range warnings {
				out.Warnings = append(out.Warnings, fmt.Sprintf("data row %d: %s", i+1, warn))
			}
		}

		if contact.Owner1 == "" && contact.Owner2 == "" {
			dropped++
			continue
		}

		res := ResolveStreet(contact.StreetName, contact.StreetNumber, i, streets)
		if res.Unmatched || res.Dropped {
			out.UnmatchedStreets = append(out.UnmatchedStreets, strings.TrimSpace(contact.StreetName))
		}
		if res.Dropped {
			continue
		}
		contact.StreetName = res.StreetName
		contact.StreetNumber = res.StreetNumber
		contact.Suburb = in.Suburb

		key := KeyFor(contact)
		if in.Existing.Has(key) || accepted.Has(key) {
			out.Duplicates = append(out.Duplicates, DuplicateLabel(contact))
			continue
		}

		accepted.Add(key)
		out.Accepted = append(out.Accepted, contact)
	}

	out.AcceptedCount = len(out.Accepted)
	out.DuplicateCount = len(out.Duplicates)
	out.UnmatchedCount = len(out.UnmatchedStreets)
	return out, dropped, nil
}

// sampleDescriptions picks the first few duplicate and unmatched entries for
// the none-qualifying error message.
func sampleDescriptions(out *Outcome) []string {
	var samples []string
	for _, d := range out.Duplicates {
		if len(samples) == MaxSampleDescriptions {
			return samples
		}
		samples = append(samples, "duplicate: "+d)
	}
	for _, u := range out.UnmatchedStreets {
		if len(samples) == MaxSampleDescriptions {
			return samples
		}
		samples = append(samples, "unmatched street: "+u)
	}
	return samples
}
