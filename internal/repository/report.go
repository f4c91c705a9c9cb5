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

// ReportRepository persists mission completion records. Reports are append
// only; the single mutation allowed is the destination status field.
type ReportRepository interface {
	Create(report *models.Report) (*models.Report, error)
	FindByID(id string) (*models.Report, error)
	FindAll() ([]*models.Report, error)
	FindByVehicleNo(vehicleNo string) ([]*models.Report, error)
	UpdateDestStatus(id string, destStatus string) (*models.Report, error)
}

type MongoReportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{
		collection: db.Collection("reports"),
	}
}

func (r *MongoReportRepository) Create(report *models.Report) (*models.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return nil, err
	}

	report.ID = result.InsertedID.(primitive.ObjectID)
	return report, nil
}

func (r *MongoReportRepository) FindByID(id string) (*models.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var report models.Report
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

func (r *MongoReportRepository) FindAll() ([]*models.Report, error) {
	return r.find(bson.M{})
}

func (r *MongoReportRepository) FindByVehicleNo(vehicleNo string) ([]*models.Report, error) {
	return r.find(bson.M{"vehicle_no": vehicleNo})
}

func (r *MongoReportRepository) find(filter bson.M) ([]*models.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []*models.Report
	for cursor.Next(ctx) {
		var report models.Report
		if err := cursor.Decode(&report); err != nil {
			return nil, err
		}
		reports = append(reports, &report)
	}

	return reports, nil
}

func (r *MongoReportRepository) UpdateDestStatus(id string, destStatus string) (*models.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"dest_status": destStatus}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var report models.Report
	if err := result.Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}
