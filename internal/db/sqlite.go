// Package db provides SQLite and Postgres storage for bookings and resources.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// SQLite implements booking.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite repository and runs migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateBooking adds a new booking. Legacy records with an empty type, source
// or status are stored with the defaults.
func (s *SQLite) CreateBooking(ctx context.Context, b *booking.Booking) error {
	b.Normalize()
	if _, err := s.db.ExecContext(ctx, insertBooking, insertArgs(b, b.CreatedAt.Format(time.RFC3339))...); err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by ID.
func (s *SQLite) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := scanSQLiteBooking(s.db.QueryRowContext(ctx, selectBookingByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying booking: %w", err)
	}
	return b, nil
}

// UpdateBooking replaces the stored fields of an existing booking.
func (s *SQLite) UpdateBooking(ctx context.Context, b *booking.Booking) error {
	b.Normalize()
	result, err := s.db.ExecContext(ctx, updateBooking, updateArgs(b)...)
	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}
	return checkAffected(result, b.ID)
}

// SetBookingStatus validates and applies a status transition.
func (s *SQLite) SetBookingStatus(ctx context.Context, id string, status booking.Status) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current booking.Status
	err = tx.QueryRowContext(ctx, selectBookingStatus, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("querying booking status: %w", err)
	}

	if err := transition(id, current, status); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, updateBookingStatus, string(status), id); err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListBookingsByDateRange returns bookings whose primary date is within the
// range (inclusive).
func (s *SQLite) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*booking.Booking, error) {
	return s.queryBookings(ctx, selectBookingsByDateRange,
		start.Format(dateutil.DateLayout),
		end.Format(dateutil.DateLayout),
	)
}

// ListAllBookings returns every booking ordered by primary date.
func (s *SQLite) ListAllBookings(ctx context.Context) ([]*booking.Booking, error) {
	return s.queryBookings(ctx, selectAllBookings)
}

func (s *SQLite) queryBookings(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanSQLiteBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return out, nil
}

// CreateDriver adds a driver.
func (s *SQLite) CreateDriver(ctx context.Context, d *booking.Driver) error {
	_, err := s.db.ExecContext(ctx, upsertDriver, d.ID, d.Name, d.Phone, d.Status, formatCreated(d.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting driver: %w", err)
	}
	return nil
}

// ListDrivers returns all drivers ordered by name.
func (s *SQLite) ListDrivers(ctx context.Context) ([]*booking.Driver, error) {
	rows, err := s.db.QueryContext(ctx, selectDrivers)
	if err != nil {
		return nil, fmt.Errorf("querying drivers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*booking.Driver
	for rows.Next() {
		var (
			d       booking.Driver
			created string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Status, &created); err != nil {
			return nil, fmt.Errorf("scanning driver: %w", err)
		}
		d.CreatedAt = parseCreated(created)
		out = append(out, &d)
	}
	return out, rows.Err()
}

// CreateVehicle adds a vehicle.
func (s *SQLite) CreateVehicle(ctx context.Context, v *booking.Vehicle) error {
	_, err := s.db.ExecContext(ctx, upsertVehicle, v.ID, v.Name, v.Plate, v.Seats, v.Status, formatCreated(v.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting vehicle: %w", err)
	}
	return nil
}

// ListVehicles returns all vehicles ordered by name.
func (s *SQLite) ListVehicles(ctx context.Context) ([]*booking.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, selectVehicles)
	if err != nil {
		return nil, fmt.Errorf("querying vehicles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*booking.Vehicle
	for rows.Next() {
		var (
			v       booking.Vehicle
			created string
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.Plate, &v.Seats, &v.Status, &created); err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		v.CreatedAt = parseCreated(created)
		out = append(out, &v)
	}
	return out, rows.Err()
}

// CreatePartner adds a partner.
func (s *SQLite) CreatePartner(ctx context.Context, p *booking.Partner) error {
	_, err := s.db.ExecContext(ctx, upsertPartner, p.ID, p.Name, p.Contact, p.Status, formatCreated(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting partner: %w", err)
	}
	return nil
}

// ListPartners returns all partners ordered by name.
func (s *SQLite) ListPartners(ctx context.Context) ([]*booking.Partner, error) {
	rows, err := s.db.QueryContext(ctx, selectPartners)
	if err != nil {
		return nil, fmt.Errorf("querying partners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*booking.Partner
	for rows.Next() {
		var (
			p       booking.Partner
			created string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Contact, &p.Status, &created); err != nil {
			return nil, fmt.Errorf("scanning partner: %w", err)
		}
		p.CreatedAt = parseCreated(created)
		out = append(out, &p)
	}
	return out, rows.Err()
}

// SetResourceStatus updates the management status of a resource by name.
func (s *SQLite) SetResourceStatus(ctx context.Context, kind booking.Kind, name, status string) error {
	if !booking.ValidStatus(kind, status) {
		return fmt.Errorf("%w: %q for %s", booking.ErrInvalidStatus, status, kind)
	}
	query, err := updateResourceStatus(kind)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, query, status, name)
	if err != nil {
		return fmt.Errorf("updating %s status: %w", kind, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %q", booking.ErrResourceNotFound, kind, name)
	}
	return nil
}

// ImportSnapshot upserts every record of the snapshot in one transaction.
func (s *SQLite) ImportSnapshot(ctx context.Context, snap *booking.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range snap.Drivers {
		if _, err := tx.ExecContext(ctx, upsertDriver, d.ID, d.Name, d.Phone, d.Status, formatCreated(d.CreatedAt)); err != nil {
			return fmt.Errorf("importing driver %q: %w", d.Name, err)
		}
	}
	for _, v := range snap.Vehicles {
		if _, err := tx.ExecContext(ctx, upsertVehicle, v.ID, v.Name, v.Plate, v.Seats, v.Status, formatCreated(v.CreatedAt)); err != nil {
			return fmt.Errorf("importing vehicle %q: %w", v.Name, err)
		}
	}
	for _, p := range snap.Partners {
		if _, err := tx.ExecContext(ctx, upsertPartner, p.ID, p.Name, p.Contact, p.Status, formatCreated(p.CreatedAt)); err != nil {
			return fmt.Errorf("importing partner %q: %w", p.Name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, upsertBooking)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, b := range snap.Bookings {
		if _, err := stmt.ExecContext(ctx, insertArgs(b, formatCreated(b.CreatedAt))...); err != nil {
			return fmt.Errorf("importing booking %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBooking(row rowScanner) (*booking.Booking, error) {
	var (
		b       booking.Booking
		created string
	)
	if err := row.Scan(append(bookingDest(&b), &created)...); err != nil {
		return nil, err
	}
	b.CreatedAt = parseCreated(created)
	return &b, nil
}

func checkAffected(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
	}
	return nil
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(time.RFC3339)
}

// parseCreated parses a stored timestamp. SQLite may hand back either RFC3339
// or its own "YYYY-MM-DD HH:MM:SS" form; unknown values become zero.
func parseCreated(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
