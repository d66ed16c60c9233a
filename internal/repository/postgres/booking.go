package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"rentwheels/internal/domain"
	"rentwheels/internal/repository"
)

// blockingStatuses are the statuses that reserve a car's calendar.
// Cancelled, Rejected and Completed bookings free the slot.
const blockingStatuses = `('Pending', 'Approved', 'Confirmed', 'Active')`

// overlapClause matches bookings whose inclusive date range touches the
// candidate range: existing start inside it, existing end inside it, or
// existing range containing it.
const overlapClause = `(
		(start_date <= $2 AND end_date >= $2) OR
		(start_date <= $3 AND end_date >= $3) OR
		(start_date >= $2 AND end_date <= $3)
	)`

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q  Querier
	db *sql.DB // nil when transaction-scoped
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db, db: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
// CreateIfAvailable then runs on the caller's transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// CreateIfAvailable persists the booking unless the range is already taken.
// Create attempts for the same car are serialized with a transaction-scoped
// advisory lock keyed on the car ID, so the overlap check and the insert
// commit as one unit and two concurrent overlapping creates cannot both win.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, booking *domain.Booking) error {
	if r.db == nil {
		// Already inside a caller-owned transaction.
		return r.createIfAvailable(ctx, r.q, booking)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}

	if err := r.createIfAvailable(ctx, tx, booking); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *BookingRepository) createIfAvailable(ctx context.Context, q Querier, booking *domain.Booking) error {
	if _, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, booking.CarID); err != nil {
		return fmt.Errorf("acquire car lock: %w", err)
	}

	var existingID string
	err := q.QueryRowContext(ctx, `
		SELECT id FROM bookings
		WHERE car_id = $1
		  AND status IN `+blockingStatuses+`
		  AND `+overlapClause+`
		LIMIT 1
	`, booking.CarID, booking.StartDate, booking.EndDate).Scan(&existingID)
	if err == nil {
		return repository.ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO bookings (id, renter_id, car_id, start_date, end_date, total_price, status, payment_status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		booking.ID,
		booking.RenterID,
		booking.CarID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalPrice,
		booking.Status,
		booking.PaymentStatus,
		booking.Version,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id, renter_id, car_id, start_date, end_date, total_price, status, payment_status, version, created_at, updated_at
		FROM bookings WHERE id = $1
	`

	var b domain.Booking
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.RenterID,
		&b.CarID,
		&b.StartDate,
		&b.EndDate,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &b, nil
}

// FindOverlapping returns a calendar-blocking booking for the car that
// overlaps the inclusive date range, or nil if the range is free.
func (r *BookingRepository) FindOverlapping(ctx context.Context, carID string, start, end time.Time) (*domain.Booking, error) {
	query := `
		SELECT id, renter_id, car_id, start_date, end_date, total_price, status, payment_status, version, created_at, updated_at
		FROM bookings
		WHERE car_id = $1
		  AND status IN ` + blockingStatuses + `
		  AND ` + overlapClause + `
		LIMIT 1
	`

	var b domain.Booking
	err := r.q.QueryRowContext(ctx, query, carID, start, end).Scan(
		&b.ID,
		&b.RenterID,
		&b.CarID,
		&b.StartDate,
		&b.EndDate,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &b, nil
}

// ListByRenter retrieves the renter's bookings joined with the reduced car
// projection, newest first.
func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string) ([]repository.RenterBooking, error) {
	query := `
		SELECT b.id, b.renter_id, b.car_id, b.start_date, b.end_date, b.total_price, b.status, b.payment_status, b.version, b.created_at, b.updated_at,
		       c.make, c.model, c.images, c.location, c.price_per_day
		FROM bookings b
		JOIN cars c ON c.id = b.car_id
		WHERE b.renter_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []repository.RenterBooking
	for rows.Next() {
		var rb repository.RenterBooking
		if err := rows.Scan(
			&rb.Booking.ID,
			&rb.Booking.RenterID,
			&rb.Booking.CarID,
			&rb.Booking.StartDate,
			&rb.Booking.EndDate,
			&rb.Booking.TotalPrice,
			&rb.Booking.Status,
			&rb.Booking.PaymentStatus,
			&rb.Booking.Version,
			&rb.Booking.CreatedAt,
			&rb.Booking.UpdatedAt,
			&rb.CarMake,
			&rb.CarModel,
			pq.Array(&rb.CarImages),
			&rb.CarLocation,
			&rb.CarPricePerDay,
		); err != nil {
			return nil, err
		}
		result = append(result, rb)
	}
	return result, rows.Err()
}

// ListByCarIDs retrieves all bookings for the given cars joined with full
// renter and car data, newest first.
func (r *BookingRepository) ListByCarIDs(ctx context.Context, carIDs []string) ([]repository.HostBooking, error) {
	query := `
		SELECT b.id, b.renter_id, b.car_id, b.start_date, b.end_date, b.total_price, b.status, b.payment_status, b.version, b.created_at, b.updated_at,
		       u.id, u.name, u.email, u.role, u.created_at,
		       c.id, c.owner_id, c.make, c.model, c.year, c.plate_number, c.price_per_day, c.fuel_type, c.transmission, c.seats, c.images, c.location, c.description, c.created_at, c.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.renter_id
		JOIN cars c ON c.id = b.car_id
		WHERE b.car_id = ANY($1)
		ORDER BY b.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, pq.Array(carIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []repository.HostBooking
	for rows.Next() {
		var hb repository.HostBooking
		if err := rows.Scan(
			&hb.Booking.ID,
			&hb.Booking.RenterID,
			&hb.Booking.CarID,
			&hb.Booking.StartDate,
			&hb.Booking.EndDate,
			&hb.Booking.TotalPrice,
			&hb.Booking.Status,
			&hb.Booking.PaymentStatus,
			&hb.Booking.Version,
			&hb.Booking.CreatedAt,
			&hb.Booking.UpdatedAt,
			&hb.Renter.ID,
			&hb.Renter.Name,
			&hb.Renter.Email,
			&hb.Renter.Role,
			&hb.Renter.CreatedAt,
			&hb.Car.ID,
			&hb.Car.OwnerID,
			&hb.Car.Make,
			&hb.Car.Model,
			&hb.Car.Year,
			&hb.Car.PlateNumber,
			&hb.Car.PricePerDay,
			&hb.Car.FuelType,
			&hb.Car.Transmission,
			&hb.Car.Seats,
			pq.Array(&hb.Car.Images),
			&hb.Car.Location,
			&hb.Car.Description,
			&hb.Car.CreatedAt,
			&hb.Car.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, hb)
	}
	return result, rows.Err()
}

// UpdateStatus writes the new status and payment status guarded by the
// version the caller read. A concurrent update bumps the version and makes
// this write a no-op, surfaced as ErrStaleVersion.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, payment domain.PaymentStatus, version int64) error {
	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, version = version + 1, updated_at = $3
		WHERE id = $4 AND version = $5
	`

	res, err := r.q.ExecContext(ctx, query, status, payment, time.Now(), id, version)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStaleVersion
	}
	return nil
}
