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

// FuelRequestRepository persists fuel requests keyed by vehicle number.
type FuelRequestRepository interface {
	Create(fuel *models.FuelRequest) (*models.FuelRequest, error)
	FindByID(id string) (*models.FuelRequest, error)
	FindAll() ([]*models.FuelRequest, error)
	FindByStatus(status models.FuelStatus) ([]*models.FuelRequest, error)
	FindByVehicleNo(vehicleNo string) ([]*models.FuelRequest, error)
	UpdateStatus(id string, status models.FuelStatus, litre *float64) (*models.FuelRequest, error)
	Delete(id string) error
}

type MongoFuelRequestRepository struct {
	collection *mongo.Collection
}

func NewFuelRequestRepository(db *mongo.Database) *MongoFuelRequestRepository {
	return &MongoFuelRequestRepository{
		collection: db.Collection("fuel_requests"),
	}
}

func (r *MongoFuelRequestRepository) Create(fuel *models.FuelRequest) (*models.FuelRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	fuel.CreatedAt = now
	fuel.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, fuel)
	if err != nil {
		return nil, err
	}

	fuel.ID = result.InsertedID.(primitive.ObjectID)
	return fuel, nil
}

func (r *MongoFuelRequestRepository) FindByID(id string) (*models.FuelRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var fuel models.FuelRequest
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&fuel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFuelRequestNotFound
		}
		return nil, err
	}

	return &fuel, nil
}

func (r *MongoFuelRequestRepository) FindAll() ([]*models.FuelRequest, error) {
	return r.find(bson.M{})
}

func (r *MongoFuelRequestRepository) FindByStatus(status models.FuelStatus) ([]*models.FuelRequest, error) {
	return r.find(bson.M{"status": status})
}

func (r *MongoFuelRequestRepository) FindByVehicleNo(vehicleNo string) ([]*models.FuelRequest, error) {
	return r.find(bson.M{"vehicle_no": vehicleNo})
}

func (r *MongoFuelRequestRepository) find(filter bson.M) ([]*models.FuelRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var fuels []*models.FuelRequest
	for cursor.Next(ctx) {
		var fuel models.FuelRequest
		if err := cursor.Decode(&fuel); err != nil {
			return nil, err
		}
		fuels = append(fuels, &fuel)
	}

	return fuels, nil
}

func (r *MongoFuelRequestRepository) UpdateStatus(id string, status models.FuelStatus, litre *float64) (*models.FuelRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if litre != nil {
		set["litre"] = *litre
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var fuel models.FuelRequest
	if err := result.Decode(&fuel); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFuelRequestNotFound
		}
		return nil, err
	}

	return &fuel, nil
}

func (r *MongoFuelRequestRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrFuelRequestNotFound
	}

	return nil
}
