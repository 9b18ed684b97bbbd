package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func facultyRecord(i int) Record {
	return Record{
		"facultyId":   fmt.Sprintf("F%03d", i),
		"name":        fmt.Sprintf("Faculty %d", i),
		"email":       fmt.Sprintf("faculty%d@planora.local", i),
		"department":  "CSE",
		"designation": "Professor",
		"subjects":    []any{"Algorithms", "Databases"},
	}
}

func TestImportCreatesNewRecords(t *testing.T) {
	store := newMemStore()
	importer := NewImportService(store)
	ctx := context.Background()

	batch := []Record{facultyRecord(1), facultyRecord(2), facultyRecord(3)}
	result, err := importer.Import(ctx, "faculty", batch)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Empty(t, result.Errors)

	entity, _ := Lookup("faculty")
	total, _ := store.Count(ctx, entity)
	assert.EqualValues(t, 3, total)
}

func TestImportUpsertsByNaturalKey(t *testing.T) {
	store := newMemStore()
	importer := NewImportService(store)
	ctx := context.Background()

	batch := []Record{facultyRecord(1), facultyRecord(2)}
	_, err := importer.Import(ctx, "faculty", batch)
	assert.NoError(t, err)

	entity, _ := Lookup("faculty")
	before, _ := store.FindByNaturalKeys(ctx, entity, facultyRecord(1))
	assert.NotNil(t, before)

	// Same natural keys, changed payload: must update in place.
	updated := facultyRecord(1)
	updated["designation"] = "Associate Professor"
	result, err := importer.Import(ctx, "faculty", []Record{updated, facultyRecord(2)})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Empty(t, result.Errors)

	total, _ := store.Count(ctx, entity)
	assert.EqualValues(t, 2, total, "re-upload must not create duplicates")

	after, _ := store.FindByNaturalKeys(ctx, entity, facultyRecord(1))
	assert.Equal(t, before["_id"], after["_id"], "identifier must be preserved")
	assert.Equal(t, "Associate Professor", after["designation"])
}

func TestImportPartialFailure(t *testing.T) {
	store := newMemStore()
	importer := NewImportService(store)
	ctx := context.Background()

	bad := facultyRecord(2)
	delete(bad, "email") // violates a required-field constraint

	result, err := importer.Import(ctx, "faculty", []Record{facultyRecord(1), bad, facultyRecord(3)})

	assert.NoError(t, err, "per-record failures must not abort the batch")
	assert.Equal(t, 2, result.Count)
	assert.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "Faculty F002:"), result.Errors[0])

	entity, _ := Lookup("faculty")
	total, _ := store.Count(ctx, entity)
	assert.EqualValues(t, 2, total)
}

func TestImportUnknownType(t *testing.T) {
	importer := NewImportService(newMemStore())
	_, err := importer.Import(context.Background(), "bogus", []Record{facultyRecord(1)})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDecodeJSONArray(t *testing.T) {
	records, err := DecodeJSON([]byte(`[{"roomId":"R1"},{"roomId":"R2"}]`))
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "R2", records[1]["roomId"])
}

func TestDecodeJSONBareObject(t *testing.T) {
	records, err := DecodeJSON([]byte(`{"roomId":"R1","capacity":40}`))
	assert.NoError(t, err)
	assert.Len(t, records, 1, "a bare object becomes a one-element batch")
	assert.Equal(t, "R1", records[0]["roomId"])
}

func TestDecodeJSONRejectsMalformedPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"roomId":`},
		{"scalar payload", `42`},
		{"non-object element", `[{"roomId":"R1"}, 7]`},
		{"null element", `[null]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tc.body))
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	body := "roomId,roomNumber,building,floor,capacity,roomType,isAvailable,facilities\n" +
		"R1,101,Main,1,60,lecture,true,projector; whiteboard\n" +
		"R2,102,Main,2,30,lab,false,computers\n"

	records, err := DecodeCSV(strings.NewReader(body))
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, "R1", records[0]["roomId"])
	assert.Equal(t, 60, records[0]["capacity"])
	assert.Equal(t, true, records[0]["isAvailable"])
	assert.Equal(t, []string{"projector", "whiteboard"}, records[0]["facilities"])
	assert.Equal(t, "lab", records[1]["roomType"])
}

func TestDecodeCSVNoRows(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("roomId,roomNumber\n"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
