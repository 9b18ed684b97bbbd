package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImportResult summarizes one bulk upload: how many records were applied and
// the ordered per-record failures. Errors alongside a non-zero count means the
// batch partially succeeded; the caller still gets a 200.
type ImportResult struct {
	Count  int
	Errors []string
}

// ImportService applies uploaded batches to an entity collection, upserting
// each record by natural-key lookup and tolerating per-record failure.
type ImportService struct {
	store Store
}

func NewImportService(store Store) *ImportService {
	return &ImportService{store: store}
}

type payloadError struct {
	message string
}

func (e *payloadError) Error() string { return e.message }

func (e *payloadError) Is(target error) bool { return target == ErrInvalidPayload }

// DecodeJSON interprets an uploaded JSON document as a batch of records. A
// bare object becomes a one-element batch; every array element must itself be
// an object or the whole batch is rejected.
func DecodeJSON(data []byte) ([]Record, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &payloadError{message: "Invalid JSON format"}
	}

	var items []any
	switch v := parsed.(type) {
	case map[string]any:
		items = []any{v}
	case []any:
		items = v
	default:
		return nil, &payloadError{message: "JSON data must be an object or array of objects"}
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok || rec == nil {
			return nil, &payloadError{message: "All items in the JSON array must be objects"}
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeCSV interprets an uploaded CSV file as a batch of records. The first
// row names the fields; cells are coerced to numbers and booleans where they
// parse as such, and semicolon-separated cells become string lists.
func DecodeCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &payloadError{message: "Invalid CSV format"}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &payloadError{message: "Invalid CSV format"}
		}
		rec := Record{}
		for i, field := range header {
			if i >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			rec[strings.TrimSpace(field)] = coerceCell(cell)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &payloadError{message: "CSV file has no data rows"}
	}
	return records, nil
}

func coerceCell(cell string) any {
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(cell); err == nil {
		return b
	}
	if strings.Contains(cell, ";") {
		parts := strings.Split(cell, ";")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		return list
	}
	return cell
}

// Import applies the batch to the target collection in input order. Each
// record is matched against any of the entity's natural keys: a match
// replaces the existing record's fields (identifier preserved, updatedAt
// refreshed), no match inserts a new record. A failing record is reported as
// "<Label> <key>: <message>" and never aborts the rest of the batch.
func (s *ImportService) Import(ctx context.Context, typ string, records []Record) (*ImportResult, error) {
	entity, err := Lookup(typ)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, rec := range records {
		if err := s.applyRecord(ctx, entity, rec); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", entity.Label, entity.RecordKey(rec), err))
			continue
		}
		result.Count++
	}
	return result, nil
}

func (s *ImportService) applyRecord(ctx context.Context, entity Entity, rec Record) error {
	existing, err := s.store.FindByNaturalKeys(ctx, entity, rec)
	if err != nil {
		return err
	}
	if existing != nil {
		_, err = s.store.Update(ctx, entity, idHex(existing["_id"]), rec)
		return err
	}
	_, err = s.store.Insert(ctx, entity, rec)
	return err
}

func idHex(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
