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

// feedLimit caps how many notifications a single feed fetch returns.
const feedLimit = 50

// NotificationRepository persists the per-role notification feed. A document
// without a recipient email is a role-wide broadcast.
type NotificationRepository interface {
	Create(notification *models.Notification) (*models.Notification, error)
	FindVisible(role models.Role, email string) ([]*models.Notification, error)
	CountUnread(role models.Role, email string) (int64, error)
	MarkAsRead(id string, at time.Time) (*models.Notification, error)
	MarkAllAsRead(role models.Role, email string, at time.Time) error
	Delete(id string) error
}

type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// visibilityFilter matches broadcasts for the role plus, when an email is
// given, notifications scoped to that user.
func visibilityFilter(role models.Role, email string) bson.M {
	or := []bson.M{
		{"recipient_email": nil},
		{"recipient_email": bson.M{"$exists": false}},
	}
	if email != "" {
		or = append(or, bson.M{"recipient_email": email})
	}
	return bson.M{
		"recipient_role": role,
		"$or":            or,
	}
}

func (r *MongoNotificationRepository) Create(notification *models.Notification) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notification.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return nil, err
	}

	notification.ID = result.InsertedID.(primitive.ObjectID)
	return notification, nil
}

func (r *MongoNotificationRepository) FindVisible(role models.Role, email string) ([]*models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(feedLimit)
	cursor, err := r.collection.Find(ctx, visibilityFilter(role, email), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	for cursor.Next(ctx) {
		var notification models.Notification
		if err := cursor.Decode(&notification); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *MongoNotificationRepository) CountUnread(role models.Role, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := visibilityFilter(role, email)
	filter["read"] = false
	return r.collection.CountDocuments(ctx, filter)
}

func (r *MongoNotificationRepository) MarkAsRead(id string, at time.Time) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{
		"$set": bson.M{
			"read":    true,
			"read_at": at,
		},
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var notification models.Notification
	if err := result.Decode(&notification); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	return &notification, nil
}

// MarkAllAsRead flips every unread notification visible to the (role, email)
// pair: broadcasts plus the user's scoped entries, nothing belonging to other
// users or roles.
func (r *MongoNotificationRepository) MarkAllAsRead(role models.Role, email string, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := visibilityFilter(role, email)
	filter["read"] = false

	update := bson.M{
		"$set": bson.M{
			"read":    true,
			"read_at": at,
		},
	}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

func (r *MongoNotificationRepository) Delete(id string) error {
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
		return ErrNotificationNotFound
	}

	return nil
}
