package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func ConnectDB() *mongo.Database {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "catalog_admin"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connection Pooling Setup (Penting untuk Production)
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(100).
		SetMaxConnIdleTime(time.Hour))
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	// Fail fast when the server is unreachable instead of on the first query
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("Failed to reach database. \n", err)
	}

	log.Println("Database connection established")
	return client.Database(name)
}

// Disconnect closes the underlying client during graceful shutdown.
func Disconnect(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Client().Disconnect(ctx); err != nil {
		log.Println("Warning: failed to close database connection:", err)
	}
}
