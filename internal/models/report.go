package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is the append-only record of a completed mission. Only DestStatus is
// ever updated after creation; reports are never deleted.
type Report struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"first_name" json:"firstName" validate:"required"`
	LastName   string             `bson:"last_name,omitempty" json:"lastName,omitempty"`
	VehicleNo  string             `bson:"vehicle_no" json:"vehicleNo" validate:"required"`
	Km         float64            `bson:"km" json:"km" validate:"required"`
	Litre      float64            `bson:"litre" json:"litre" validate:"required"`
	DestStatus string             `bson:"dest_status,omitempty" json:"destStatus,omitempty"`
	Splace     string             `bson:"splace,omitempty" json:"splace,omitempty"`
	Dplace     string             `bson:"dplace,omitempty" json:"dplace,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
