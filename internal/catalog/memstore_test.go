package catalog

import (
	"context"
	"fmt"
	"time"
)

// memStore is an in-memory Store used by the package tests. It mirrors the
// Mongo store's observable behavior: validation and duplicate-key rejection
// on insert, $set merge semantics on update, newest-first listing.
type memStore struct {
	collections map[string][]Record
	seq         int
}

func newMemStore() *memStore {
	return &memStore{collections: make(map[string][]Record)}
}

func (s *memStore) List(_ context.Context, entity Entity, skip, limit int64) ([]Record, error) {
	records := s.collections[entity.Collection]
	out := []Record{}
	// Insertion order stands in for createdAt; newest first.
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
	}
	if skip >= int64(len(out)) {
		return []Record{}, nil
	}
	out = out[skip:]
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) Count(_ context.Context, entity Entity) (int64, error) {
	return int64(len(s.collections[entity.Collection])), nil
}

func (s *memStore) Insert(_ context.Context, entity Entity, rec Record) (Record, error) {
	if err := entity.Validate(rec); err != nil {
		return nil, err
	}
	if s.conflicts(entity, rec, "") {
		return nil, validationErrorf("duplicate value for a unique field (%s)", entity.RecordKey(rec))
	}

	s.seq++
	now := time.Now()
	doc := Record{}
	for k, v := range rec {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	doc["_id"] = fmt.Sprintf("mem-%d", s.seq)
	doc["createdAt"] = now
	doc["updatedAt"] = now
	s.collections[entity.Collection] = append(s.collections[entity.Collection], doc)
	return doc, nil
}

func (s *memStore) Update(_ context.Context, entity Entity, id string, rec Record) (Record, error) {
	for _, doc := range s.collections[entity.Collection] {
		if doc["_id"] != id {
			continue
		}
		if s.conflicts(entity, rec, id) {
			return nil, validationErrorf("duplicate value for a unique field (%s)", entity.RecordKey(rec))
		}
		for k, v := range rec {
			if k == "_id" || k == "createdAt" {
				continue
			}
			doc[k] = v
		}
		doc["updatedAt"] = time.Now()
		return doc, nil
	}
	return nil, ErrNotFound
}

func (s *memStore) Delete(_ context.Context, entity Entity, id string) error {
	records := s.collections[entity.Collection]
	for i, doc := range records {
		if doc["_id"] == id {
			s.collections[entity.Collection] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memStore) FindByNaturalKeys(_ context.Context, entity Entity, rec Record) (Record, error) {
	for _, doc := range s.collections[entity.Collection] {
		for _, key := range entity.NaturalKeys {
			v, ok := rec[key]
			if !ok || v == nil || v == "" {
				continue
			}
			if doc[key] == v {
				return doc, nil
			}
		}
	}
	return nil, nil
}

// conflicts reports whether rec's natural keys collide with a stored record
// other than excludeID.
func (s *memStore) conflicts(entity Entity, rec Record, excludeID string) bool {
	for _, doc := range s.collections[entity.Collection] {
		if excludeID != "" && doc["_id"] == excludeID {
			continue
		}
		for _, key := range entity.NaturalKeys {
			v, ok := rec[key]
			if !ok || v == nil || v == "" {
				continue
			}
			if doc[key] == v {
				return true
			}
		}
	}
	return false
}
