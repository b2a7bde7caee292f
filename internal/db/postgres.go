package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// Postgres implements booking.Repository on the hosted Postgres database the
// web dashboard writes to.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to Postgres and verifies the connection.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	poolCfg, err := buildPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// buildPoolConfig parses the DSN for use behind a transaction pooler, which
// does not support prepared statements.
func buildPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.StatementCacheCapacity = 0
	poolCfg.ConnConfig.DescriptionCacheCapacity = 0
	poolCfg.MaxConns = 10
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	return poolCfg, nil
}

// CreateBooking adds a new booking.
func (p *Postgres) CreateBooking(ctx context.Context, b *booking.Booking) error {
	b.Normalize()
	if _, err := p.pool.Exec(ctx, rebind(insertBooking), insertArgs(b, b.CreatedAt)...); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by ID.
func (p *Postgres) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := scanPostgresBooking(p.pool.QueryRow(ctx, rebind(selectBookingByID), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query booking: %w", err)
	}
	return b, nil
}

// UpdateBooking replaces the stored fields of an existing booking.
func (p *Postgres) UpdateBooking(ctx context.Context, b *booking.Booking) error {
	b.Normalize()
	tag, err := p.pool.Exec(ctx, rebind(updateBooking), updateArgs(b)...)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", booking.ErrBookingNotFound, b.ID)
	}
	return nil
}

// SetBookingStatus validates and applies a status transition.
func (p *Postgres) SetBookingStatus(ctx context.Context, id string, status booking.Status) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current string
	err = tx.QueryRow(ctx, rebind(selectBookingStatus+" FOR UPDATE"), id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("query booking status: %w", err)
	}

	if err := transition(id, booking.Status(current), status); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, rebind(updateBookingStatus), string(status), id); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListBookingsByDateRange returns bookings whose primary date is within the
// range (inclusive).
func (p *Postgres) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*booking.Booking, error) {
	return p.queryBookings(ctx, selectBookingsByDateRange,
		start.Format(dateutil.DateLayout),
		end.Format(dateutil.DateLayout),
	)
}

// ListAllBookings returns every booking ordered by primary date.
func (p *Postgres) ListAllBookings(ctx context.Context) ([]*booking.Booking, error) {
	return p.queryBookings(ctx, selectAllBookings)
}

func (p *Postgres) queryBookings(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := p.pool.Query(ctx, rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanPostgresBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// CreateDriver adds a driver.
func (p *Postgres) CreateDriver(ctx context.Context, d *booking.Driver) error {
	if _, err := p.pool.Exec(ctx, rebind(upsertDriver), d.ID, d.Name, d.Phone, d.Status, createdOrNow(d.CreatedAt)); err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// ListDrivers returns all drivers ordered by name.
func (p *Postgres) ListDrivers(ctx context.Context) ([]*booking.Driver, error) {
	rows, err := p.pool.Query(ctx, selectDrivers)
	if err != nil {
		return nil, fmt.Errorf("query drivers: %w", err)
	}
	defer rows.Close()

	var out []*booking.Driver
	for rows.Next() {
		var d booking.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Status, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// CreateVehicle adds a vehicle.
func (p *Postgres) CreateVehicle(ctx context.Context, v *booking.Vehicle) error {
	if _, err := p.pool.Exec(ctx, rebind(upsertVehicle), v.ID, v.Name, v.Plate, v.Seats, v.Status, createdOrNow(v.CreatedAt)); err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// ListVehicles returns all vehicles ordered by name.
func (p *Postgres) ListVehicles(ctx context.Context) ([]*booking.Vehicle, error) {
	rows, err := p.pool.Query(ctx, selectVehicles)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	var out []*booking.Vehicle
	for rows.Next() {
		var v booking.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Plate, &v.Seats, &v.Status, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// CreatePartner adds a partner.
func (p *Postgres) CreatePartner(ctx context.Context, pt *booking.Partner) error {
	if _, err := p.pool.Exec(ctx, rebind(upsertPartner), pt.ID, pt.Name, pt.Contact, pt.Status, createdOrNow(pt.CreatedAt)); err != nil {
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// ListPartners returns all partners ordered by name.
func (p *Postgres) ListPartners(ctx context.Context) ([]*booking.Partner, error) {
	rows, err := p.pool.Query(ctx, selectPartners)
	if err != nil {
		return nil, fmt.Errorf("query partners: %w", err)
	}
	defer rows.Close()

	var out []*booking.Partner
	for rows.Next() {
		var pt booking.Partner
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Contact, &pt.Status, &pt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		out = append(out, &pt)
	}
	return out, rows.Err()
}

// SetResourceStatus updates the management status of a resource by name.
func (p *Postgres) SetResourceStatus(ctx context.Context, kind booking.Kind, name, status string) error {
	if !booking.ValidStatus(kind, status) {
		return fmt.Errorf("%w: %q for %s", booking.ErrInvalidStatus, status, kind)
	}
	query, err := updateResourceStatus(kind)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, rebind(query), status, name)
	if err != nil {
		return fmt.Errorf("update %s status: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %q", booking.ErrResourceNotFound, kind, name)
	}
	return nil
}

// ImportSnapshot upserts every record of the snapshot in one transaction.
func (p *Postgres) ImportSnapshot(ctx context.Context, snap *booking.Snapshot) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, d := range snap.Drivers {
		batch.Queue(rebind(upsertDriver), d.ID, d.Name, d.Phone, d.Status, createdOrNow(d.CreatedAt))
	}
	for _, v := range snap.Vehicles {
		batch.Queue(rebind(upsertVehicle), v.ID, v.Name, v.Plate, v.Seats, v.Status, createdOrNow(v.CreatedAt))
	}
	for _, pt := range snap.Partners {
		batch.Queue(rebind(upsertPartner), pt.ID, pt.Name, pt.Contact, pt.Status, createdOrNow(pt.CreatedAt))
	}
	for _, b := range snap.Bookings {
		batch.Queue(rebind(upsertBooking), insertArgs(b, createdOrNow(b.CreatedAt))...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func scanPostgresBooking(row pgx.Row) (*booking.Booking, error) {
	var b booking.Booking
	if err := row.Scan(append(bookingDest(&b), &b.CreatedAt)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func createdOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
