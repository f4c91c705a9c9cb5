package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Connect establishes a connection to MongoDB and bootstraps indexes.
func Connect(mongoURI string) (*mongo.Database, error) {
	// Parse the URI to extract database name
	cs, err := connstring.ParseAndValidate(mongoURI)
	if err != nil {
		return nil, fmt.Errorf("invalid MongoDB URI: %v", err)
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB")

	dbName := cs.Database
	if dbName == "" {
		dbName = "transport_management"
	}

	db := client.Database(dbName)

	if err := createIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	return db, nil
}

// createIndexes creates necessary indexes for all collections
func createIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Missions: the unique email index is what makes "one active mission per
	// driver" hold under concurrent creates.
	missionsCollection := db.Collection("missions")
	missionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "acknowledged", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	if _, err := missionsCollection.Indexes().CreateMany(ctx, missionIndexes); err != nil {
		log.Printf("Failed to create mission indexes: %v", err)
	}

	fuelCollection := db.Collection("fuel_requests")
	fuelIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "vehicle_no", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	if _, err := fuelCollection.Indexes().CreateMany(ctx, fuelIndexes); err != nil {
		log.Printf("Failed to create fuel request indexes: %v", err)
	}

	reportsCollection := db.Collection("reports")
	reportIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "vehicle_no", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	if _, err := reportsCollection.Indexes().CreateMany(ctx, reportIndexes); err != nil {
		log.Printf("Failed to create report indexes: %v", err)
	}

	// Notifications: compound index backing the feed query
	// (role + optional email + unread count, newest first).
	notificationsCollection := db.Collection("notifications")
	notificationIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "recipient_role", Value: 1},
				{Key: "recipient_email", Value: 1},
				{Key: "read", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	if _, err := notificationsCollection.Indexes().CreateMany(ctx, notificationIndexes); err != nil {
		log.Printf("Failed to create notification indexes: %v", err)
	}

	usersCollection := db.Collection("users")
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "vehicle_no", Value: 1},
				{Key: "role", Value: 1},
			},
		},
	}

	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		log.Printf("Failed to create user indexes: %v", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}

// Disconnect closes the MongoDB connection
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %v", err)
	}

	log.Println("Disconnected from MongoDB")
	return nil
}

// Health checks the database connection health
func Health(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.Client().Ping(ctx, nil)
}
