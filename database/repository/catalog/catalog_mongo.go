package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	serviceColl  *mongo.Collection
	employeeColl *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo(db *mongo.Database) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		serviceColl:  db.Collection("services"),
		employeeColl: db.Collection("employees"),
	}
}

// EnsureIndexes creates unique id indexes on both collections.
func (r *MongoCatalogRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	}
	for _, coll := range []*mongo.Collection{r.serviceColl, r.employeeColl} {
		if _, err := coll.Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out T
	err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", coll.Name(), id, err)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, sortKey string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func replaceOne(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := coll.ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", coll.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	return findOne[models.Service](ctx, r.serviceColl, id)
}

func (r *MongoCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	return findAll[models.Service](ctx, r.serviceColl, "name")
}

func (r *MongoCatalogRepo) CreateService(ctx context.Context, service *models.Service) error {
	return insertOne(ctx, r.serviceColl, service)
}

func (r *MongoCatalogRepo) UpdateService(ctx context.Context, service *models.Service) error {
	return replaceOne(ctx, r.serviceColl, service.ID, service)
}

func (r *MongoCatalogRepo) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	return findOne[models.Employee](ctx, r.employeeColl, id)
}

func (r *MongoCatalogRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return findAll[models.Employee](ctx, r.employeeColl, "display_name")
}

func (r *MongoCatalogRepo) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	return insertOne(ctx, r.employeeColl, employee)
}

func (r *MongoCatalogRepo) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	return replaceOne(ctx, r.employeeColl, employee.ID, employee)
}
