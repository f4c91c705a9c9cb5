package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies a notification audience.
type Role string

const (
	RoleAdministrator   Role = "administrator"
	RoleDriver          Role = "driver"
	RoleVehicleDeployer Role = "vehicle deployer"
	RoleFuelManager     Role = "fuel manager"
	RoleDean            Role = "dean"
	RoleVehicleManager  Role = "vehicle manager"
)

// NotificationType enumerates the workflow events that produce notifications.
type NotificationType string

const (
	NotificationMissionAssigned     NotificationType = "mission_assigned"
	NotificationMissionAcknowledged NotificationType = "mission_acknowledged"
	NotificationMissionCompleted    NotificationType = "mission_completed"
	NotificationFuelRequest         NotificationType = "fuel_request"
	NotificationFuelApproved        NotificationType = "fuel_approved"
	NotificationFuelDeclined        NotificationType = "fuel_declined"
	NotificationUserApproved        NotificationType = "user_approved"
	NotificationUserDeclined        NotificationType = "user_declined"
)

// Notification is a feed entry for a role, optionally scoped to one user.
// A nil RecipientEmail broadcasts to every user holding RecipientRole.
type Notification struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	RecipientRole  Role                   `bson:"recipient_role" json:"recipientRole" validate:"required"`
	RecipientEmail *string                `bson:"recipient_email,omitempty" json:"recipientEmail,omitempty"`
	Type           NotificationType       `bson:"type" json:"type" validate:"required"`
	Title          string                 `bson:"title" json:"title" validate:"required"`
	Message        string                 `bson:"message" json:"message" validate:"required"`
	RelatedData    map[string]interface{} `bson:"related_data,omitempty" json:"relatedData,omitempty"`
	Read           bool                   `bson:"read" json:"read"`
	ReadAt         *time.Time             `bson:"read_at,omitempty" json:"readAt,omitempty"`
	CreatedAt      time.Time              `bson:"created_at" json:"createdAt"`
}
