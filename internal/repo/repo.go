// Package repo declares the persistence contracts the batch pipeline
// consumes: zone lookup, record-set lookup, and batch-change storage.
// Concrete implementations (internal/store) and the real zone/record-set
// stores they front are external collaborators per §1 of the
// specification — this package only pins down the interface shape the
// core calls through, so zonediscovery, validation, and batchservice can
// be tested against fakes without a database in the loop.
package repo

import (
	"context"

	"github.com/hydrabatch/hydrabatch/internal/model"
)

// ZoneRepository resolves zone identity. All methods are safe for
// concurrent use and may be called from multiple goroutines within a
// single intake request.
type ZoneRepository interface {
	// GetZonesByNames returns every zone whose name exactly matches an
	// entry in names. Names with no matching zone are simply omitted
	// from the result — this is not an error.
	GetZonesByNames(ctx context.Context, names []string) ([]model.Zone, error)

	// GetZonesByFilters returns every zone whose name contains one of
	// filters as a substring. This is the only way to discover RFC 2317
	// classless reverse-zone delegations, whose names embed a "/" that an
	// exact-name lookup can never match.
	GetZonesByFilters(ctx context.Context, filters []string) ([]model.Zone, error)
}

// RecordSetRepository resolves existing record-set state within a zone.
type RecordSetRepository interface {
	// GetRecordSetsByName returns every record set (of any type) at
	// relativeName within zoneID.
	GetRecordSetsByName(ctx context.Context, zoneID, relativeName string) ([]model.RecordSet, error)
}

// BatchChangeRepository persists batch changes and answers the read
// operations the orchestrator's public API exposes.
type BatchChangeRepository interface {
	// Save durably records batch and returns the stored form (which may
	// differ only in server-assigned fields such as ID).
	Save(ctx context.Context, batch model.BatchChange) (model.BatchChange, error)

	// GetBatchChange returns the batch change with id, or (zero, false, nil)
	// if none exists.
	GetBatchChange(ctx context.Context, id string) (model.BatchChange, bool, error)

	// GetBatchChangeSummariesByUserID returns a page of the given user's
	// batch change summaries, most recent first, starting after startFrom
	// positions and returning at most maxItems.
	GetBatchChangeSummariesByUserID(ctx context.Context, userID string, startFrom, maxItems int) (model.BatchChangeSummaryList, error)
}
