// Package testsupport provides in-memory implementations of the repository
// interfaces so service and handler behavior can be tested without MongoDB.
package testsupport

import (
	"errors"
	"sync"
	"time"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissionRepo is an in-memory repository.MissionRepository.
type MissionRepo struct {
	mu       sync.Mutex
	missions []*models.Mission
}

func NewMissionRepo() *MissionRepo {
	return &MissionRepo{}
}

func (r *MissionRepo) Create(mission *models.Mission) (*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.missions {
		if m.Email == mission.Email {
			return nil, repository.ErrDuplicateMission
		}
	}

	mission.ID = primitive.NewObjectID()
	now := time.Now()
	mission.CreatedAt = now
	mission.UpdatedAt = now
	stored := *mission
	r.missions = append(r.missions, &stored)
	return mission, nil
}

func (r *MissionRepo) FindByID(id string) (*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.missions {
		if m.ID.Hex() == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repository.ErrMissionNotFound
}

func (r *MissionRepo) FindByEmail(email string) (*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.missions {
		if m.Email == email {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repository.ErrMissionNotFound
}

func (r *MissionRepo) FindAll() ([]*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Mission, 0, len(r.missions))
	for i := len(r.missions) - 1; i >= 0; i-- {
		copied := *r.missions[i]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *MissionRepo) SetAcknowledged(id string, at time.Time) (*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.missions {
		if m.ID.Hex() == id {
			m.Acknowledged = true
			ackAt := at
			m.AcknowledgedAt = &ackAt
			m.UpdatedAt = at
			copied := *m
			return &copied, nil
		}
	}
	return nil, repository.ErrMissionNotFound
}

func (r *MissionRepo) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.missions {
		if m.Email == email {
			r.missions = append(r.missions[:i], r.missions[i+1:]...)
			return nil
		}
	}
	return repository.ErrMissionNotFound
}

// FuelRepo is an in-memory repository.FuelRequestRepository.
type FuelRepo struct {
	mu    sync.Mutex
	fuels []*models.FuelRequest
}

func NewFuelRepo() *FuelRepo {
	return &FuelRepo{}
}

func (r *FuelRepo) Create(fuel *models.FuelRequest) (*models.FuelRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fuel.ID = primitive.NewObjectID()
	now := time.Now()
	fuel.CreatedAt = now
	fuel.UpdatedAt = now
	stored := *fuel
	r.fuels = append(r.fuels, &stored)
	return fuel, nil
}

func (r *FuelRepo) FindByID(id string) (*models.FuelRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.fuels {
		if f.ID.Hex() == id {
			copied := *f
			return &copied, nil
		}
	}
	return nil, repository.ErrFuelRequestNotFound
}

func (r *FuelRepo) FindAll() ([]*models.FuelRequest, error) {
	return r.filter(func(*models.FuelRequest) bool { return true }), nil
}

func (r *FuelRepo) FindByStatus(status models.FuelStatus) ([]*models.FuelRequest, error) {
	return r.filter(func(f *models.FuelRequest) bool { return f.Status == status }), nil
}

func (r *FuelRepo) FindByVehicleNo(vehicleNo string) ([]*models.FuelRequest, error) {
	return r.filter(func(f *models.FuelRequest) bool { return f.VehicleNo == vehicleNo }), nil
}

func (r *FuelRepo) filter(keep func(*models.FuelRequest) bool) []*models.FuelRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.FuelRequest
	for i := len(r.fuels) - 1; i >= 0; i-- {
		if keep(r.fuels[i]) {
			copied := *r.fuels[i]
			out = append(out, &copied)
		}
	}
	return out
}

func (r *FuelRepo) UpdateStatus(id string, status models.FuelStatus, litre *float64) (*models.FuelRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.fuels {
		if f.ID.Hex() == id {
			f.Status = status
			if litre != nil {
				allocated := *litre
				f.Litre = &allocated
			}
			f.UpdatedAt = time.Now()
			copied := *f
			return &copied, nil
		}
	}
	return nil, repository.ErrFuelRequestNotFound
}

func (r *FuelRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.fuels {
		if f.ID.Hex() == id {
			r.fuels = append(r.fuels[:i], r.fuels[i+1:]...)
			return nil
		}
	}
	return repository.ErrFuelRequestNotFound
}

// ReportRepo is an in-memory repository.ReportRepository.
type ReportRepo struct {
	mu      sync.Mutex
	reports []*models.Report
}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

func (r *ReportRepo) Create(report *models.Report) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	stored := *report
	r.reports = append(r.reports, &stored)
	return report, nil
}

func (r *ReportRepo) FindByID(id string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rep := range r.reports {
		if rep.ID.Hex() == id {
			copied := *rep
			return &copied, nil
		}
	}
	return nil, repository.ErrReportNotFound
}

func (r *ReportRepo) FindAll() ([]*models.Report, error) {
	return r.filter(func(*models.Report) bool { return true }), nil
}

func (r *ReportRepo) FindByVehicleNo(vehicleNo string) ([]*models.Report, error) {
	return r.filter(func(rep *models.Report) bool { return rep.VehicleNo == vehicleNo }), nil
}

func (r *ReportRepo) filter(keep func(*models.Report) bool) []*models.Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Report
	for i := len(r.reports) - 1; i >= 0; i-- {
		if keep(r.reports[i]) {
			copied := *r.reports[i]
			out = append(out, &copied)
		}
	}
	return out
}

func (r *ReportRepo) UpdateDestStatus(id string, destStatus string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rep := range r.reports {
		if rep.ID.Hex() == id {
			rep.DestStatus = destStatus
			copied := *rep
			return &copied, nil
		}
	}
	return nil, repository.ErrReportNotFound
}

// NotificationRepo is an in-memory repository.NotificationRepository.
// Setting FailCreates makes Create return an error, exercising the
// dead-letter path of the dispatch side channel.
type NotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	FailCreates   bool
}

func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{}
}

func (r *NotificationRepo) Create(notification *models.Notification) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreates {
		return nil, errors.New("notification store unavailable")
	}

	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	stored := *notification
	r.notifications = append(r.notifications, &stored)
	return notification, nil
}

func (r *NotificationRepo) visible(n *models.Notification, role models.Role, email string) bool {
	if n.RecipientRole != role {
		return false
	}
	if n.RecipientEmail == nil {
		return true
	}
	return email != "" && *n.RecipientEmail == email
}

func (r *NotificationRepo) FindVisible(role models.Role, email string) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(out) < 50; i-- {
		if r.visible(r.notifications[i], role, email) {
			copied := *r.notifications[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *NotificationRepo) CountUnread(role models.Role, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.notifications {
		if r.visible(n, role, email) && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) MarkAsRead(id string, at time.Time) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if n.ID.Hex() == id {
			n.Read = true
			readAt := at
			n.ReadAt = &readAt
			copied := *n
			return &copied, nil
		}
	}
	return nil, repository.ErrNotificationNotFound
}

func (r *NotificationRepo) MarkAllAsRead(role models.Role, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if r.visible(n, role, email) && !n.Read {
			n.Read = true
			readAt := at
			n.ReadAt = &readAt
		}
	}
	return nil
}

func (r *NotificationRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.notifications {
		if n.ID.Hex() == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

// All returns every stored notification in insertion order.
func (r *NotificationRepo) All() []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		copied := *n
		out = append(out, &copied)
	}
	return out
}

// OfType returns stored notifications matching the type, insertion order.
func (r *NotificationRepo) OfType(notificationType models.NotificationType) []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Notification
	for _, n := range r.notifications {
		if n.Type == notificationType {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out
}

// UserRepo is an in-memory repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

func (r *UserRepo) Create(user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = primitive.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users = append(r.users, &stored)
	return user, nil
}

func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepo) FindDriverByVehicleNo(vehicleNo string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Role == models.RoleDriver && u.VehicleNo == vehicleNo {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepo) FindUnassignedDrivers() ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.User
	for _, u := range r.users {
		if u.Role == models.RoleDriver && u.VehicleNo == "" {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}
