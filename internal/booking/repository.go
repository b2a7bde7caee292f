package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a consistent read-only view of bookings and resources that a
// single computation runs over.
type Snapshot struct {
	Bookings []*Booking `json:"bookings"`
	Drivers  []*Driver  `json:"drivers"`
	Vehicles []*Vehicle `json:"vehicles"`
	Partners []*Partner `json:"partners"`
}

// FindBooking returns the booking with the given id, or nil.
func (s *Snapshot) FindBooking(id string) *Booking {
	for _, b := range s.Bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ResolveIDs fills the missing resource ids of b from the snapshot's
// resources, matching by name.
func (s *Snapshot) ResolveIDs(b *Booking) {
	if b.DriverID == "" && b.Driver != "" {
		for _, d := range s.Drivers {
			if d.Name == b.Driver {
				b.DriverID = d.ID
				break
			}
		}
	}
	if b.VehicleID == "" && b.Vehicle != "" {
		for _, v := range s.Vehicles {
			if v.Name == b.Vehicle {
				b.VehicleID = v.ID
				break
			}
		}
	}
	if b.PartnerID == "" && b.Partner != "" {
		for _, p := range s.Partners {
			if p.Name == b.Partner {
				b.PartnerID = p.ID
				break
			}
		}
	}
}

// Normalize fills the defaults of every record in an imported snapshot:
// missing ids, statuses and creation times, and booking resource ids that
// can be resolved by name.
func (s *Snapshot) Normalize() {
	now := time.Now()
	fill := func(id *string, status *string, def string, created *time.Time) {
		if *id == "" {
			*id = uuid.NewString()
		}
		if *status == "" {
			*status = def
		}
		if created.IsZero() {
			*created = now
		}
	}
	for _, d := range s.Drivers {
		fill(&d.ID, &d.Status, DriverAvailable, &d.CreatedAt)
	}
	for _, v := range s.Vehicles {
		fill(&v.ID, &v.Status, VehicleActive, &v.CreatedAt)
	}
	for _, p := range s.Partners {
		fill(&p.ID, &p.Status, PartnerActive, &p.CreatedAt)
	}
	for _, b := range s.Bookings {
		b.Normalize()
		s.ResolveIDs(b)
	}
}

// Repository defines the storage interface for bookings and resources.
type Repository interface {
	// CreateBooking adds a new booking.
	CreateBooking(ctx context.Context, b *Booking) error

	// GetBooking retrieves a booking by ID. Returns ErrBookingNotFound if missing.
	GetBooking(ctx context.Context, id string) (*Booking, error)

	// UpdateBooking replaces the stored fields of an existing booking.
	UpdateBooking(ctx context.Context, b *Booking) error

	// SetBookingStatus validates and applies a status transition.
	SetBookingStatus(ctx context.Context, id string, status Status) error

	// ListBookingsByDateRange returns bookings whose primary date falls within
	// the range (inclusive).
	ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*Booking, error)

	// ListAllBookings returns every booking ordered by primary date.
	ListAllBookings(ctx context.Context) ([]*Booking, error)

	CreateDriver(ctx context.Context, d *Driver) error
	ListDrivers(ctx context.Context) ([]*Driver, error)
	CreateVehicle(ctx context.Context, v *Vehicle) error
	ListVehicles(ctx context.Context) ([]*Vehicle, error)
	CreatePartner(ctx context.Context, p *Partner) error
	ListPartners(ctx context.Context) ([]*Partner, error)

	// SetResourceStatus updates the management status of a resource by name.
	// Returns ErrResourceNotFound if no resource has that name.
	SetResourceStatus(ctx context.Context, kind Kind, name, status string) error

	// ImportSnapshot upserts every record of the snapshot in one transaction.
	ImportSnapshot(ctx context.Context, s *Snapshot) error

	// Close releases any resources held by the repository.
	Close() error
}

// LoadSnapshot reads every booking and resource from the repository.
func LoadSnapshot(ctx context.Context, repo Repository) (*Snapshot, error) {
	bookings, err := repo.ListAllBookings(ctx)
	if err != nil {
		return nil, err
	}
	drivers, err := repo.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := repo.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	partners, err := repo.ListPartners(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Bookings: bookings,
		Drivers:  drivers,
		Vehicles: vehicles,
		Partners: partners,
	}, nil
}
