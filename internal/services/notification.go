package services

import (
	"sync"
	"time"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
	"transport-backend/pkg/cache"

	log "github.com/sirupsen/logrus"
)

// deadLetterLimit bounds the in-memory buffer of failed dispatches.
const deadLetterLimit = 100

// DeadLetter records one failed notification dispatch for observability.
// Dispatch never propagates failures to the calling workflow operation.
type DeadLetter struct {
	RecipientRole  models.Role             `json:"recipientRole"`
	RecipientEmail *string                 `json:"recipientEmail,omitempty"`
	Type           models.NotificationType `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Error          string                  `json:"error"`
	FailedAt       time.Time               `json:"failedAt"`
}

// NotificationService serves the polling feed and carries the fire-and-forget
// dispatch side channel used by every workflow transition.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	countCache       *cache.UnreadCountCache

	mu          sync.Mutex
	deadLetters []DeadLetter
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// SetCountCache attaches the Redis unread-count cache. Without it every feed
// fetch counts against MongoDB directly.
func (s *NotificationService) SetCountCache(countCache *cache.UnreadCountCache) {
	s.countCache = countCache
}

// Dispatch persists a notification as a side effect of a workflow transition.
// A nil email broadcasts to every holder of the role. Failures are logged and
// dead-lettered; the caller's primary mutation is never rolled back or failed
// because a notification could not be written.
func (s *NotificationService) Dispatch(role models.Role, email *string, notificationType models.NotificationType, title, message string, relatedData map[string]interface{}) {
	notification := &models.Notification{
		RecipientRole:  role,
		RecipientEmail: email,
		Type:           notificationType,
		Title:          title,
		Message:        message,
		RelatedData:    relatedData,
	}

	created, err := s.notificationRepo.Create(notification)
	if err != nil {
		log.WithFields(log.Fields{
			"type": notificationType,
			"role": role,
		}).WithError(err).Error("Failed to create notification")
		s.addDeadLetter(notification, err)
		return
	}

	log.WithFields(log.Fields{
		"id":   created.ID.Hex(),
		"type": notificationType,
		"role": role,
	}).Debug("Notification created")

	s.invalidateCounts(role, email)
}

func (s *NotificationService) addDeadLetter(notification *models.Notification, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deadLetters = append(s.deadLetters, DeadLetter{
		RecipientRole:  notification.RecipientRole,
		RecipientEmail: notification.RecipientEmail,
		Type:           notification.Type,
		Title:          notification.Title,
		Message:        notification.Message,
		Error:          err.Error(),
		FailedAt:       time.Now(),
	})
	if len(s.deadLetters) > deadLetterLimit {
		s.deadLetters = s.deadLetters[len(s.deadLetters)-deadLetterLimit:]
	}
}

// DeadLetters returns the recent failed dispatches, newest last.
func (s *NotificationService) DeadLetters() []DeadLetter {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DeadLetter, len(s.deadLetters))
	copy(out, s.deadLetters)
	return out
}

func (s *NotificationService) invalidateCounts(role models.Role, email *string) {
	if s.countCache == nil {
		return
	}

	var err error
	if email == nil {
		// A broadcast changes the count of every user holding the role.
		err = s.countCache.InvalidateRole(role)
	} else {
		err = s.countCache.InvalidateUser(role, *email)
	}
	if err != nil {
		log.WithError(err).Debug("Failed to invalidate unread count cache")
	}
}

// Feed is the response shape of a feed fetch.
type Feed struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// GetFeed returns the newest notifications visible to the (role, email)
// pair, capped at 50, together with the unread count under the same filter.
func (s *NotificationService) GetFeed(role models.Role, email string) (*Feed, error) {
	notifications, err := s.notificationRepo.FindVisible(role, email)
	if err != nil {
		return nil, err
	}

	unread, err := s.unreadCount(role, email)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []*models.Notification{}
	}

	return &Feed{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) unreadCount(role models.Role, email string) (int64, error) {
	if s.countCache != nil {
		if count, ok := s.countCache.Get(role, email); ok {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(role, email)
	if err != nil {
		return 0, err
	}

	if s.countCache != nil {
		if err := s.countCache.Set(role, email, count); err != nil {
			log.WithError(err).Debug("Failed to cache unread count")
		}
	}

	return count, nil
}

func (s *NotificationService) MarkAsRead(id string) (*models.Notification, error) {
	notification, err := s.notificationRepo.MarkAsRead(id, time.Now())
	if err != nil {
		return nil, err
	}

	// A broadcast read flips the document for everyone who sees it.
	s.invalidateCounts(notification.RecipientRole, notification.RecipientEmail)
	return notification, nil
}

func (s *NotificationService) MarkAllAsRead(role models.Role, email string) error {
	if err := s.notificationRepo.MarkAllAsRead(role, email, time.Now()); err != nil {
		return err
	}

	// Broadcasts flipped here were visible to other users of the role too.
	s.invalidateCounts(role, nil)
	return nil
}

func (s *NotificationService) Delete(id string) error {
	if err := s.notificationRepo.Delete(id); err != nil {
		return err
	}

	if s.countCache != nil {
		// Recipient details are gone with the document; drop all role caches
		// the cheap way by letting the short TTL expire stale entries.
		log.Debug("Notification deleted, relying on cache TTL for count refresh")
	}
	return nil
}
