package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Planora/internal/auth"
	"Planora/internal/bootstrap"
)

// UserSeed is one default account. These replace the hard-coded logins the
// dashboards used to carry client-side.
type UserSeed struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var defaultUsers = []UserSeed{
	{Name: "Administrator", Email: "admin@planora.local", Password: "admin123", Role: "admin"},
	{Name: "Default Teacher", Email: "teacher@planora.local", Password: "teacher123", Role: "teacher"},
	{Name: "Default Student", Email: "student@planora.local", Password: "student123", Role: "student"},
}

func main() {
	log.Println("Starting Planora user seeder ...")

	bootstrap.Loadenv()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("DB uri not set")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "planora"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	users := client.Database(dbName).Collection("users")

	for _, seed := range defaultUsers {
		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.Email, err)
		}
		user := auth.User{
			ID:           primitive.NewObjectID(),
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: hash,
			Role:         seed.Role,
			Verified:     true,
		}

		res, err := users.UpdateOne(ctx,
			bson.M{"email": seed.Email},
			bson.M{"$setOnInsert": user},
			options.Update().SetUpsert(true))
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", seed.Email, err)
		}
		if res.UpsertedCount > 0 {
			log.Printf("Created %s account: %s", seed.Role, seed.Email)
		} else {
			log.Printf("Account already exists, skipped: %s", seed.Email)
		}
	}

	log.Println("Seeding complete")
}
