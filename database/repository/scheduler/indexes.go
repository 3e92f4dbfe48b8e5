package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the bookings indexes and the guard collection.
// The guard collection must exist up front: collections cannot be created
// implicitly inside a transaction on older servers.
func (repo *MongoSchedulerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: an employee's bookings on a date.
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "booking_date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("employee_date_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "start_at", Value: 1}, {Key: "end_at", Value: 1}},
			Options: options.Index().SetName("employee_start_end_idx"),
		},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	err := repo.guardColl.Database().CreateCollection(ctx, repo.guardColl.Name())
	var cmdErr mongo.CommandError
	if err != nil && !(errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists") {
		return fmt.Errorf("failed to create guard collection: %w", err)
	}
	return nil
}
