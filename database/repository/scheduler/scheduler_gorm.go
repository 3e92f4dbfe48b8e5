package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgExclusionViolation is the SQLSTATE raised by the bookings_no_overlap constraint.
const pgExclusionViolation = "23P01"

// GormSchedulerRepo implements SchedulerRepository on PostgreSQL.
type GormSchedulerRepo struct {
	db *gorm.DB
}

// NewGormSchedulerRepo constructs a new instance of GormSchedulerRepo.
func NewGormSchedulerRepo(db *gorm.DB) *GormSchedulerRepo {
	return &GormSchedulerRepo{db: db}
}

func (repo *GormSchedulerRepo) Ping(ctx context.Context) error {
	sqlDB, err := repo.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// EnsureIndexes migrates the bookings table and installs the exclusion
// constraint that keeps active intervals of one employee disjoint.
func (repo *GormSchedulerRepo) EnsureIndexes(ctx context.Context) error {
	db := repo.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		return fmt.Errorf("failed to migrate bookings: %w", err)
	}
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_interval_check CHECK (end_at > start_at);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING gist (employee_id WITH =, tstzrange(start_at, end_at, '[)') WITH &&)
				WHERE (status <> 'cancelled');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply booking constraint: %w", err)
		}
	}
	return nil
}

// WithEmployeeDays runs fn in a transaction holding the advisory locks of the
// (employee, date) pairs until commit.
func (repo *GormSchedulerRepo) WithEmployeeDays(
	ctx context.Context,
	employeeID string,
	dates []string,
	fn func(ctx context.Context, tx SlotTx) error,
) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range guardKeys(employeeID, dates) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return fmt.Errorf("failed to acquire booking lock: %w", err)
			}
		}
		return fn(ctx, &gormSlotTx{db: tx})
	})
}

// GetBookingByID retrieves a booking by its ID.
func (repo *GormSchedulerRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return getGormBooking(repo.db.WithContext(ctx), bookingID)
}

// ListForEmployeeOnDate returns all bookings of the employee on date, ordered by start.
func (repo *GormSchedulerRepo) ListForEmployeeOnDate(ctx context.Context, employeeID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bookings []models.Booking
	err := repo.db.WithContext(ctx).
		Where("employee_id = ? AND booking_date = ?", employeeID, date).
		Order("start_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	return bookings, nil
}

func getGormBooking(db *gorm.DB, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Where("id = ?", bookingID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

type gormSlotTx struct {
	db *gorm.DB
}

func (tx *gormSlotTx) ActiveBookings(ctx context.Context, employeeID string, dates ...string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := tx.db.WithContext(ctx).
		Where("employee_id = ? AND booking_date IN ? AND status <> ?", employeeID, dates, models.BookingCancelled).
		Order("start_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query active bookings: %w", err)
	}
	return bookings, nil
}

// GetBooking locks the row so a concurrent edit of the same booking waits.
func (tx *gormSlotTx) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return getGormBooking(tx.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), bookingID)
}

func (tx *gormSlotTx) Insert(ctx context.Context, booking *models.Booking) error {
	if err := tx.db.WithContext(ctx).Create(booking).Error; err != nil {
		return translatePgError(err)
	}
	return nil
}

func (tx *gormSlotTx) Replace(ctx context.Context, booking *models.Booking, expected models.BookingStatus) error {
	res := tx.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, expected).
		Select("*").
		Updates(booking)
	if res.Error != nil {
		return translatePgError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return ErrOverlap
	}
	return fmt.Errorf("booking write failed: %w", err)
}
