package schedulerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSchedulerRepo implements SchedulerRepository using MongoDB.
type MongoSchedulerRepo struct {
	client      *mongo.Client
	bookingColl *mongo.Collection
	guardColl   *mongo.Collection
}

// NewMongoSchedulerRepo constructs a new instance of MongoSchedulerRepo.
func NewMongoSchedulerRepo(db *mongo.Database) *MongoSchedulerRepo {
	return &MongoSchedulerRepo{
		client:      db.Client(),
		bookingColl: db.Collection("bookings"),
		guardColl:   db.Collection("booking_guards"),
	}
}

func (repo *MongoSchedulerRepo) Ping(ctx context.Context) error {
	return repo.client.Ping(ctx, nil)
}
