package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelStatus is the lifecycle state of a fuel request.
type FuelStatus string

const (
	FuelStatusReviewing FuelStatus = "reviewing"
	FuelStatusApproved  FuelStatus = "approved"
	FuelStatusDeclined  FuelStatus = "declined"
)

// NormalizeFuelStatus maps legacy status synonyms onto the canonical enum.
// Older clients send "successed" for approvals and "rejected" for declines;
// stored documents only ever carry the canonical values. The second return
// reports whether the input named a known state.
func NormalizeFuelStatus(status string) (FuelStatus, bool) {
	switch status {
	case "reviewing":
		return FuelStatusReviewing, true
	case "approved", "successed":
		return FuelStatusApproved, true
	case "declined", "rejected":
		return FuelStatusDeclined, true
	default:
		return FuelStatus(status), false
	}
}

// FuelRequest is a driver's request for fuel on an active mission, keyed by
// vehicle number. Litre is unset until the fuel manager allocates an amount.
type FuelRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DName     string             `bson:"d_name" json:"dName" validate:"required"`
	DLastName string             `bson:"d_last_name,omitempty" json:"dlastName,omitempty"`
	VehicleNo string             `bson:"vehicle_no" json:"vehicleNo" validate:"required"`
	Status    FuelStatus         `bson:"status" json:"status" validate:"required"`
	Km        float64            `bson:"km" json:"km" validate:"required"`
	Litre     *float64           `bson:"litre,omitempty" json:"litre,omitempty"`
	Splace    string             `bson:"splace,omitempty" json:"splace,omitempty"`
	Dplace    string             `bson:"dplace,omitempty" json:"dplace,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
