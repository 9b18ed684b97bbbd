package timetable

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Slot is one scheduled session in a room on a day.
type Slot struct {
	Time      string `bson:"time" json:"time"`           // Time-slot label, e.g. "09:00-10:00"
	CourseID  string `bson:"courseId" json:"courseId"`   // Course natural key
	FacultyID string `bson:"faculties" json:"faculties"` // Faculty natural key (field name kept from the generator)
}

// Schedule maps room identifier -> day -> ordered slots.
type Schedule map[string]map[string][]Slot

// Validation carries the generator's own conflict report. This service never
// checks or amends it, only passes it through.
type Validation struct {
	Errors   []string `bson:"errors" json:"errors"`
	Warnings []string `bson:"warnings" json:"warnings"`
}

// Timetable is the single externally generated schedule document. This
// repository only ever reads it.
type Timetable struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Schedule   Schedule           `bson:"schedule" json:"schedule"`
	Validation Validation         `bson:"validation" json:"validation"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnrichedSlot is a Slot with the matching course and faculty records
// attached for display. Either may be absent when the referenced record does
// not exist.
type EnrichedSlot struct {
	Slot    `bson:",inline"`
	Course  map[string]any `json:"course,omitempty"`
	Faculty map[string]any `json:"faculty,omitempty"`
}

// EnrichedSchedule mirrors Schedule with display-ready slots.
type EnrichedSchedule map[string]map[string][]EnrichedSlot

// EnrichedTimetable is the display-ready view returned by the API.
type EnrichedTimetable struct {
	ID         primitive.ObjectID `json:"_id"`
	Schedule   EnrichedSchedule   `json:"schedule"`
	Validation Validation         `json:"validation"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
