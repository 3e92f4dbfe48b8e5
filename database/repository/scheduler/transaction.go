package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"slotwise/models"
)

// WithEmployeeDays runs fn in a multi-document transaction whose first writes
// bump the (employee, date) guard documents. Two transactions touching the
// same guard write-conflict; the loser is aborted and WithTransaction re-runs
// it, so its overlap read observes the winner's committed booking.
func (repo *MongoSchedulerRepo) WithEmployeeDays(
	ctx context.Context,
	employeeID string,
	dates []string,
	fn func(ctx context.Context, tx SlotTx) error,
) error {
	sess, err := repo.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, key := range guardKeys(employeeID, dates) {
			bump := bson.M{
				"$inc": bson.M{"writes": 1},
				"$set": bson.M{"employee_id": employeeID, "updated_at": time.Now().UTC()},
			}
			if _, err := repo.guardColl.UpdateOne(sc, bson.M{"_id": key}, bump, options.Update().SetUpsert(true)); err != nil {
				return nil, err
			}
		}
		return nil, fn(sc, &mongoSlotTx{repo: repo})
	}, txnOpts)
	if err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// mongoSlotTx routes every call through the session context it is given.
type mongoSlotTx struct {
	repo *MongoSchedulerRepo
}

func (tx *mongoSlotTx) ActiveBookings(ctx context.Context, employeeID string, dates ...string) ([]models.Booking, error) {
	return tx.repo.findBookings(ctx, activeFilter(employeeID, dates))
}

func (tx *mongoSlotTx) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return tx.repo.findBooking(ctx, bookingID)
}

func (tx *mongoSlotTx) Insert(ctx context.Context, booking *models.Booking) error {
	return tx.repo.insertBooking(ctx, booking)
}

func (tx *mongoSlotTx) Replace(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error {
	return tx.repo.replaceBooking(ctx, booking, expected)
}
