package catalog

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of the four entity collections.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// NewStore provides MongoStore behind the Store interface for fx wiring.
func NewStore(db *mongo.Database) Store {
	return NewMongoStore(db)
}

func (s *MongoStore) collection(entity Entity) *mongo.Collection {
	return s.db.Collection(entity.Collection)
}

func (s *MongoStore) List(ctx context.Context, entity Entity, skip, limit int64) ([]Record, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"createdAt": -1})
	cursor, err := s.collection(entity).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *MongoStore) Count(ctx context.Context, entity Entity) (int64, error) {
	return s.collection(entity).CountDocuments(ctx, bson.M{})
}

func (s *MongoStore) Insert(ctx context.Context, entity Entity, rec Record) (Record, error) {
	if err := entity.Validate(rec); err != nil {
		return nil, err
	}

	now := time.Now()
	doc := bson.M{}
	for k, v := range rec {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	doc["createdAt"] = now
	doc["updatedAt"] = now

	res, err := s.collection(entity).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, validationErrorf("duplicate value for a unique field (%s)", entity.RecordKey(rec))
		}
		return nil, err
	}
	doc["_id"] = res.InsertedID
	return Record(doc), nil
}

func (s *MongoStore) Update(ctx context.Context, entity Entity, id string, rec Record) (Record, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{}
	for k, v := range rec {
		if k == "_id" || k == "createdAt" {
			continue
		}
		set[k] = v
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Record
	err = s.collection(entity).
		FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, validationErrorf("duplicate value for a unique field (%s)", entity.RecordKey(rec))
		}
		return nil, err
	}
	return updated, nil
}

func (s *MongoStore) Delete(ctx context.Context, entity Entity, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection(entity).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) FindByNaturalKeys(ctx context.Context, entity Entity, rec Record) (Record, error) {
	var or []bson.M
	for _, key := range entity.NaturalKeys {
		if v, ok := rec[key]; ok && v != nil && v != "" {
			or = append(or, bson.M{key: v})
		}
	}
	if len(or) == 0 {
		return nil, nil
	}

	var existing Record
	err := s.collection(entity).FindOne(ctx, bson.M{"$or": or}).Decode(&existing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// EnsureIndexes creates the unique natural-key indexes for every entity.
// Invoked once at startup.
func EnsureIndexes(db *mongo.Database) {
	for _, entity := range Entities() {
		collection := db.Collection(entity.Collection)
		for _, key := range entity.NaturalKeys {
			indexmodel := mongo.IndexModel{
				Keys:    bson.M{key: 1},
				Options: options.Index().SetUnique(true),
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_, err := collection.Indexes().CreateOne(ctx, indexmodel)
			cancel()
			if err != nil {
				// Existing data may already violate the key; keep serving,
				// duplicates just stop being rejected for that field.
				log.Printf("Failed to create unique index on %s.%s: %v", entity.Collection, key, err)
			}
		}
	}
}
