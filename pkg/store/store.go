// Package store archives puzzle configurations so that a generated puzzle can
// be fetched again later by ID.
//
// Only the options are stored. Artifacts are regenerated on demand, which is
// cheap and exact because every record carries a concrete seed.
//
// Implementations:
//   - [MemoryStore]: in-process storage for tests and single-instance servers
//   - [FileStore]: one JSON file per record, used by the CLI
//   - [MongoStore]: MongoDB-backed storage for shared deployments
//
// # Usage
//
//	rec, err := store.NewRecord(opts)
//	if err != nil {
//	    return err
//	}
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//	rec, err = st.Get(ctx, rec.ID)
package store

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/random"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "puzzle not found")

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Record is one archived puzzle.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Options   pipeline.Options `json:"options" bson:"options"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// Store is the interface for archive backends.
type Store interface {
	// Save stores rec, replacing any record with the same ID.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

// NewRecord validates opts and wraps them in a record with a fresh ID.
// A zero seed is replaced by a concrete one so the archived puzzle can be
// regenerated exactly. Formats and the logger are not archived.
func NewRecord(opts pipeline.Options) (*Record, error) {
	opts.Formats = nil
	opts.Logger = nil
	if opts.Palette == "" {
		opts.Palette = pipeline.DefaultPalette
	}
	if opts.Scale == 0 {
		opts.Scale = pipeline.DefaultScale
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Seed > math.MaxInt64 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "seed %d is too large to archive", opts.Seed)
	}
	if opts.Seed == 0 {
		opts.Seed = random.NewSeed()
	}
	return &Record{
		ID:        uuid.NewString(),
		Options:   opts,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
