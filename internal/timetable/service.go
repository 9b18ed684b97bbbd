package timetable

import "context"

// TimetableService produces the display-ready view of the stored schedule: a
// pure read-side join, no generation and no conflict checking.
type TimetableService struct {
	repo Repository
}

func NewTimetableService(repo Repository) *TimetableService {
	return &TimetableService{repo: repo}
}

// Enriched reads the schedule document and attaches the referenced course and
// faculty records to every slot. Returns nil when no timetable is stored. A
// slot referencing an unknown course or faculty keeps its identifiers and
// simply carries no attached record.
func (s *TimetableService) Enriched(ctx context.Context) (*EnrichedTimetable, error) {
	tt, err := s.repo.FindTimetable(ctx)
	if err != nil {
		return nil, err
	}
	if tt == nil {
		return nil, nil
	}

	// First walk: collect the distinct referenced keys.
	courseSet := make(map[string]struct{})
	facultySet := make(map[string]struct{})
	for _, days := range tt.Schedule {
		for _, slots := range days {
			for _, slot := range slots {
				if slot.CourseID != "" {
					courseSet[slot.CourseID] = struct{}{}
				}
				if slot.FacultyID != "" {
					facultySet[slot.FacultyID] = struct{}{}
				}
			}
		}
	}

	courses, err := s.repo.FindCoursesByIDs(ctx, keys(courseSet))
	if err != nil {
		return nil, err
	}
	faculty, err := s.repo.FindFacultyByIDs(ctx, keys(facultySet))
	if err != nil {
		return nil, err
	}

	// Second walk: attach the matched records slot by slot.
	enriched := make(EnrichedSchedule, len(tt.Schedule))
	for roomID, days := range tt.Schedule {
		enriched[roomID] = make(map[string][]EnrichedSlot, len(days))
		for day, slots := range days {
			out := make([]EnrichedSlot, len(slots))
			for i, slot := range slots {
				out[i] = EnrichedSlot{
					Slot:    slot,
					Course:  courses[slot.CourseID],
					Faculty: faculty[slot.FacultyID],
				}
			}
			enriched[roomID][day] = out
		}
	}

	return &EnrichedTimetable{
		ID:         tt.ID,
		Schedule:   enriched,
		Validation: tt.Validation,
		CreatedAt:  tt.CreatedAt,
		UpdatedAt:  tt.UpdatedAt,
	}, nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
