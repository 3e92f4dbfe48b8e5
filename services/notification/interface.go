package notification

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "slotwise/database/repository/catalog"
	"slotwise/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoPushTarget is returned when the employee has no registered device.
var ErrNoPushTarget = errors.New("employee has no FCM token")

// Sender is the subset of the FCM client the service uses.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendEmployeePushNotification(ctx context.Context, employeeID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation. Without a
// sender it only logs what it would have sent.
type DefaultNotificationService struct {
	catalog catalogRepo.CatalogRepository
	sender  Sender
}

func NewDefaultNotificationService(catalog catalogRepo.CatalogRepository, sender Sender) (*DefaultNotificationService, error) {
	if catalog == nil {
		return nil, fmt.Errorf("notification service initialization error: catalog repository is nil")
	}
	return &DefaultNotificationService{catalog: catalog, sender: sender}, nil
}

// SendEmployeePushNotification looks up an employee's FCM token and sends a push.
func (s *DefaultNotificationService) SendEmployeePushNotification(
	ctx context.Context,
	employeeID, title, body string,
	data map[string]string,
) error {
	emp, err := s.catalog.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("SendEmployeePushNotification: could not find employee %s: %w", employeeID, err)
	}
	if emp.FCMToken == "" {
		return ErrNoPushTarget
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "employee"
	}

	if s.sender == nil {
		utils.GetLogger().Info("push disabled, dropping notification",
			zap.String("employeeID", employeeID),
			zap.String("title", title))
		return nil
	}

	msg := &messaging.Message{
		Token: emp.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendEmployeePushNotification: failed to send FCM message: %w", err)
	}
	return nil
}
