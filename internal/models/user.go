package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a directory record for an account holder. The workflow engine only
// consumes the directory for recipient resolution (vehicle number + role) and
// for the login that issues role/email claims.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"first_name" json:"firstName" validate:"required"`
	LastName   string             `bson:"last_name" json:"lastName" validate:"required"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Password   string             `bson:"password" json:"-"`
	Role       Role               `bson:"role" json:"role" validate:"required"`
	DriverType string             `bson:"driver_type,omitempty" json:"drivertype,omitempty"`
	VehicleNo  string             `bson:"vehicle_no,omitempty" json:"vehicleNo,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AuthUser is the sanitized user shape returned with a login token.
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	VehicleNo string `json:"vehicleNo,omitempty"`
}
