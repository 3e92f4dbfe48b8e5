package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	schedulerRepo "slotwise/database/repository/scheduler"
	"slotwise/models"
	"slotwise/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	sent []string
}

func (r *recordingNotifier) SendEmployeePushNotification(_ context.Context, employeeID, _, _ string, _ map[string]string) error {
	r.sent = append(r.sent, employeeID)
	return nil
}

func TestHandleReminderTask(t *testing.T) {
	ctx := context.Background()
	repo := schedulerRepo.NewMemorySchedulerRepo()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	seed := func(id, employeeID string, status models.BookingStatus) {
		err := repo.WithEmployeeDays(ctx, employeeID, []string{"2025-03-10"}, func(ctx context.Context, tx schedulerRepo.SlotTx) error {
			return tx.Insert(ctx, &models.Booking{ID: id, EmployeeID: employeeID, BookingDate: "2025-03-10", StartAt: start, EndAt: start.Add(time.Hour), Status: status})
		})
		require.NoError(t, err)
	}
	seed("live", "e1", models.BookingConfirmed)
	seed("gone", "e1", models.BookingCancelled)
	seed("reassigned", "e2", models.BookingConfirmed)

	tests := []struct {
		name       string
		bookingID  string
		employeeID string
		startAt    string
		wantSent   []string
	}{
		{"active booking", "live", "e1", "2025-03-10T10:00:00Z", []string{"e1"}},
		{"cancelled booking", "gone", "e1", "2025-03-10T10:00:00Z", nil},
		{"moved booking", "live", "e1", "2025-03-10T09:00:00Z", nil},
		{"moved to another employee", "reassigned", "e1", "2025-03-10T10:00:00Z", nil},
		{"reminder of the new employee", "reassigned", "e2", "2025-03-10T10:00:00Z", []string{"e2"}},
		{"deleted booking", "missing", "e1", "2025-03-10T10:00:00Z", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			body, err := json.Marshal(models.ReminderPayload{BookingID: tt.bookingID, EmployeeID: tt.employeeID, StartAt: tt.startAt})
			require.NoError(t, err)

			err = HandleReminderTask(notifier, repo)(ctx, asynq.NewTask(tasks.TypeSendReminder, body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSent, notifier.sent)
		})
	}
}

func TestHandleReminderTaskRejectsBadPayload(t *testing.T) {
	err := HandleReminderTask(&recordingNotifier{}, schedulerRepo.NewMemorySchedulerRepo())(
		context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
