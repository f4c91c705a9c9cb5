package repository

import (
	"context"
	"time"

	"transport-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MissionRepository persists deployment assignments keyed by driver email.
type MissionRepository interface {
	Create(mission *models.Mission) (*models.Mission, error)
	FindByID(id string) (*models.Mission, error)
	FindByEmail(email string) (*models.Mission, error)
	FindAll() ([]*models.Mission, error)
	SetAcknowledged(id string, at time.Time) (*models.Mission, error)
	DeleteByEmail(email string) error
}

type MongoMissionRepository struct {
	collection *mongo.Collection
}

func NewMissionRepository(db *mongo.Database) *MongoMissionRepository {
	return &MongoMissionRepository{
		collection: db.Collection("missions"),
	}
}

func (r *MongoMissionRepository) Create(mission *models.Mission) (*models.Mission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	mission.CreatedAt = now
	mission.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, mission)
	if err != nil {
		// The unique index on email backstops the pre-read check against
		// concurrent creates for the same driver.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateMission
		}
		return nil, err
	}

	mission.ID = result.InsertedID.(primitive.ObjectID)
	return mission, nil
}

func (r *MongoMissionRepository) FindByID(id string) (*models.Mission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var mission models.Mission
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}

	return &mission, nil
}

func (r *MongoMissionRepository) FindByEmail(email string) (*models.Mission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var mission models.Mission
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}

	return &mission, nil
}

func (r *MongoMissionRepository) FindAll() ([]*models.Mission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var missions []*models.Mission
	for cursor.Next(ctx) {
		var mission models.Mission
		if err := cursor.Decode(&mission); err != nil {
			return nil, err
		}
		missions = append(missions, &mission)
	}

	return missions, nil
}

func (r *MongoMissionRepository) SetAcknowledged(id string, at time.Time) (*models.Mission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{
		"$set": bson.M{
			"acknowledged":    true,
			"acknowledged_at": at,
			"updated_at":      at,
		},
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var mission models.Mission
	if err := result.Decode(&mission); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}

	return &mission, nil
}

func (r *MongoMissionRepository) DeleteByEmail(email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrMissionNotFound
	}

	return nil
}
