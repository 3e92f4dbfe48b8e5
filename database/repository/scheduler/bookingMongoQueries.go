package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// activeFilter matches the non-cancelled bookings of an employee on any of dates.
func activeFilter(employeeID string, dates []string) bson.M {
	return bson.M{
		"employee_id":  employeeID,
		"booking_date": bson.M{"$in": dates},
		"status":       bson.M{"$ne": models.BookingCancelled},
	}
}

func (repo *MongoSchedulerRepo) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	bookings := []models.Booking{}
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoSchedulerRepo) findBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// GetBookingByID retrieves a booking by its ID.
func (repo *MongoSchedulerRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return repo.findBooking(ctx, bookingID)
}

// ListForEmployeeOnDate returns all bookings of the employee on date, ordered by start.
func (repo *MongoSchedulerRepo) ListForEmployeeOnDate(ctx context.Context, employeeID, date string) ([]models.Booking, error) {
	return repo.findBookings(ctx, bson.M{"employee_id": employeeID, "booking_date": date})
}
