package timetable

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the read-side capability the enrichment runs against: the one
// timetable document plus batch lookups into the course and faculty
// collections.
type Repository interface {
	// FindTimetable returns the stored schedule document, or nil when the
	// collection is empty.
	FindTimetable(ctx context.Context) (*Timetable, error)
	// FindCoursesByIDs returns courseId -> course record for the given keys.
	FindCoursesByIDs(ctx context.Context, ids []string) (map[string]map[string]any, error)
	// FindFacultyByIDs returns facultyId -> faculty record for the given keys.
	FindFacultyByIDs(ctx context.Context, ids []string) (map[string]map[string]any, error)
}

// MongoRepository implements Repository over the timetable, courses and
// faculty collections.
type MongoRepository struct {
	timetableCollection *mongo.Collection
	coursesCollection   *mongo.Collection
	facultyCollection   *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		timetableCollection: db.Collection("timetable"),
		coursesCollection:   db.Collection("courses"),
		facultyCollection:   db.Collection("faculty"),
	}
}

// NewRepository provides MongoRepository behind the interface for fx wiring.
func NewRepository(db *mongo.Database) Repository {
	return NewMongoRepository(db)
}

func (r *MongoRepository) FindTimetable(ctx context.Context) (*Timetable, error) {
	var tt Timetable
	err := r.timetableCollection.FindOne(ctx, bson.M{}).Decode(&tt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &tt, nil
}

func (r *MongoRepository) FindCoursesByIDs(ctx context.Context, ids []string) (map[string]map[string]any, error) {
	return r.findByKey(ctx, r.coursesCollection, "courseId", ids)
}

func (r *MongoRepository) FindFacultyByIDs(ctx context.Context, ids []string) (map[string]map[string]any, error) {
	return r.findByKey(ctx, r.facultyCollection, "facultyId", ids)
}

func (r *MongoRepository) findByKey(ctx context.Context, collection *mongo.Collection, key string, ids []string) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any)
	if len(ids) == 0 {
		return result, nil
	}
	cursor, err := collection.Find(ctx, bson.M{key: bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if id, ok := rec[key].(string); ok {
			result[id] = rec
		}
	}
	return result, nil
}
