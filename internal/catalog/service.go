package catalog

import (
	"context"
	"math"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Page is a listing result: the records plus pagination metadata.
type Page struct {
	Data       []Record   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CatalogService translates CRUD operations on the four entity kinds into
// store calls. No business logic beyond dispatch, validation and paging.
type CatalogService struct {
	store Store
}

func NewCatalogService(store Store) *CatalogService {
	return &CatalogService{store: store}
}

// List returns one page of records of the given kind, newest first.
func (s *CatalogService) List(ctx context.Context, typ string, page, limit int) (*Page, error) {
	entity, err := Lookup(typ)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	skip := int64(page-1) * int64(limit)

	records, err := s.store.List(ctx, entity, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	total, err := s.store.Count(ctx, entity)
	if err != nil {
		return nil, err
	}

	return &Page{
		Data: records,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// Create inserts a single record of the given kind. Field validation and
// natural-key uniqueness are enforced by the store.
func (s *CatalogService) Create(ctx context.Context, typ string, rec Record) (Record, error) {
	entity, err := Lookup(typ)
	if err != nil {
		return nil, err
	}
	return s.store.Insert(ctx, entity, rec)
}

// Update replaces the supplied fields of the record at id and refreshes its
// updatedAt timestamp.
func (s *CatalogService) Update(ctx context.Context, typ, id string, rec Record) (Record, error) {
	entity, err := Lookup(typ)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, entity, id, rec)
}

// Delete removes the record at id.
func (s *CatalogService) Delete(ctx context.Context, typ, id string) error {
	entity, err := Lookup(typ)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, entity, id)
}
