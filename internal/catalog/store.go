package catalog

import "context"

// Record is a single document in one of the four collections. Fields are an
// open map; the schema is enforced only by Entity.Validate and the unique
// indexes on the natural keys.
type Record = map[string]any

// Store is the persistence capability the catalog service runs against. The
// Mongo implementation backs the server; tests use an in-memory fake.
type Store interface {
	// List returns records ordered by creation time descending.
	List(ctx context.Context, entity Entity, skip, limit int64) ([]Record, error)
	Count(ctx context.Context, entity Entity) (int64, error)
	// Insert stamps createdAt/updatedAt and writes a new record. A duplicate
	// natural key surfaces as a *ValidationError.
	Insert(ctx context.Context, entity Entity, rec Record) (Record, error)
	// Update replaces the supplied fields of the record at id and refreshes
	// updatedAt. ErrNotFound if the identifier has no record.
	Update(ctx context.Context, entity Entity, id string, rec Record) (Record, error)
	// Delete removes the record at id. ErrNotFound if absent.
	Delete(ctx context.Context, entity Entity, id string) error
	// FindByNaturalKeys returns the first record matching any of the entity's
	// natural keys present in rec, or nil when no record matches.
	FindByNaturalKeys(ctx context.Context, entity Entity, rec Record) (Record, error)
}
