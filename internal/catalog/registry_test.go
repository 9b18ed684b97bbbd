package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownTypes(t *testing.T) {
	for _, typ := range []string{"faculty", "students", "courses", "rooms"} {
		entity, err := Lookup(typ)
		assert.NoError(t, err)
		assert.Equal(t, typ, entity.Type)
		assert.NotEmpty(t, entity.NaturalKeys)
		assert.NotEmpty(t, entity.Required)
	}
}

func TestLookupUnknownType(t *testing.T) {
	for _, typ := range []string{"", "bogus", "Faculty", "timetable", "users"} {
		_, err := Lookup(typ)
		assert.ErrorIs(t, err, ErrInvalidType, "type %q must be rejected", typ)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	entity, _ := Lookup("students")

	rec := Record{
		"studentId":  "S001",
		"name":       "Asha",
		"email":      "asha@planora.local",
		"rollNumber": "21CS001",
		"batch":      "2021",
		"department": "CSE",
		"year":       3,
	}
	assert.NoError(t, entity.Validate(rec))

	rec["rollNumber"] = ""
	err := entity.Validate(rec)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "rollNumber")
}

func TestRecordKeyFallsBackToName(t *testing.T) {
	entity, _ := Lookup("faculty")

	assert.Equal(t, "F001", entity.RecordKey(Record{"facultyId": "F001", "name": "Ravi"}))
	assert.Equal(t, "ravi@planora.local", entity.RecordKey(Record{"email": "ravi@planora.local"}))
	assert.Equal(t, "Ravi", entity.RecordKey(Record{"name": "Ravi"}))
	assert.Equal(t, "(unknown)", entity.RecordKey(Record{}))
}
