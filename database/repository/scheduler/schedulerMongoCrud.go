package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
)

// insertBooking inserts a new booking document.
func (repo *MongoSchedulerRepo) insertBooking(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctxWithTimeout, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// replaceBooking overwrites a booking document if its status is still expected.
func (repo *MongoSchedulerRepo) replaceBooking(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID, "status": expected}
	res, err := repo.bookingColl.ReplaceOne(ctxWithTimeout, filter, booking)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}
