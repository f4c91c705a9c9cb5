package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mission is a transport deployment assigned to a driver. The driver email is
// the owner key; only one active mission may exist per email at a time.
type Mission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slat           string             `bson:"slat" json:"slat" validate:"required"`
	Slong          string             `bson:"slong" json:"slong" validate:"required"`
	Dlat           string             `bson:"dlat" json:"dlat" validate:"required"`
	Dlong          string             `bson:"dlong" json:"dlong" validate:"required"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	FirstName      string             `bson:"first_name" json:"firstName" validate:"required"`
	LastName       string             `bson:"last_name" json:"lastName" validate:"required"`
	Splace         string             `bson:"splace" json:"splace" validate:"required"`
	Dplace         string             `bson:"dplace" json:"dplace" validate:"required"`
	Km             float64            `bson:"km" json:"km" validate:"required"`
	DeployedBy     string             `bson:"deployed_by,omitempty" json:"deployedBy,omitempty"`
	Acknowledged   bool               `bson:"acknowledged" json:"acknowledged"`
	AcknowledgedAt *time.Time         `bson:"acknowledged_at,omitempty" json:"acknowledgedAt,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}
