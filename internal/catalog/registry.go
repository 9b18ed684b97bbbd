package catalog

import "fmt"

// Entity describes one of the four managed collections. All handlers dispatch
// through this table instead of switching on the type token in every route.
type Entity struct {
	Type        string   // token used in URLs ("faculty", "students", ...)
	Label       string   // singular display name used in import error messages
	Collection  string   // Mongo collection name
	NaturalKeys []string // alternate lookup keys; each carries a unique index
	Required    []string // fields that must be present and non-empty
	NameField   string   // fallback field used to label a record in errors
	Enums       map[string][]string
}

var entities = map[string]Entity{
	"faculty": {
		Type:        "faculty",
		Label:       "Faculty",
		Collection:  "faculty",
		NaturalKeys: []string{"facultyId", "email"},
		Required:    []string{"facultyId", "name", "email", "department", "designation"},
		NameField:   "name",
	},
	"students": {
		Type:        "students",
		Label:       "Student",
		Collection:  "students",
		NaturalKeys: []string{"studentId", "email", "rollNumber"},
		Required:    []string{"studentId", "name", "email", "rollNumber", "batch", "department", "year"},
		NameField:   "name",
	},
	"courses": {
		Type:        "courses",
		Label:       "Course",
		Collection:  "courses",
		NaturalKeys: []string{"courseId", "courseCode"},
		Required:    []string{"courseId", "courseCode", "courseName", "department", "credits", "weeklyLectures", "semester", "year"},
		NameField:   "courseName",
	},
	"rooms": {
		Type:        "rooms",
		Label:       "Room",
		Collection:  "rooms",
		NaturalKeys: []string{"roomId", "roomNumber"},
		Required:    []string{"roomId", "roomNumber", "building", "floor", "capacity", "roomType"},
		NameField:   "roomNumber",
		Enums: map[string][]string{
			"roomType": {"lecture", "lab", "seminar", "conference", "other"},
		},
	},
}

// Lookup resolves an entity-kind token. ErrInvalidType is returned for any
// token outside the four known kinds.
func Lookup(typ string) (Entity, error) {
	e, ok := entities[typ]
	if !ok {
		return Entity{}, ErrInvalidType
	}
	return e, nil
}

// Entities returns the full registry, used for index creation at startup.
func Entities() []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, e)
	}
	return out
}

// Validate applies the store-level field constraints for this entity: every
// required field present and non-empty, enum fields within their value set.
// Uniqueness is left to the collection indexes.
func (e Entity) Validate(rec Record) error {
	for _, field := range e.Required {
		v, ok := rec[field]
		if !ok || v == nil {
			return validationErrorf("missing required field %q", field)
		}
		if s, isStr := v.(string); isStr && s == "" {
			return validationErrorf("missing required field %q", field)
		}
	}
	for field, allowed := range e.Enums {
		v, ok := rec[field].(string)
		if !ok {
			continue
		}
		valid := false
		for _, a := range allowed {
			if v == a {
				valid = true
				break
			}
		}
		if !valid {
			return validationErrorf("invalid value %q for field %q", v, field)
		}
	}
	return nil
}

// RecordKey labels a record in import error messages: the first natural key
// that is set, then the name field, then a placeholder.
func (e Entity) RecordKey(rec Record) string {
	for _, key := range e.NaturalKeys {
		if v, ok := rec[key]; ok && v != nil && v != "" {
			return fmt.Sprint(v)
		}
	}
	if v, ok := rec[e.NameField]; ok && v != nil && v != "" {
		return fmt.Sprint(v)
	}
	return "(unknown)"
}
