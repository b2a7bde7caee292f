// Package booking defines the core domain types for fleetdesk.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// Validation errors.
var (
	ErrMissingDate        = errors.New("booking needs a pickup date or tour dates")
	ErrInvalidType        = errors.New("type must be 'single' or 'tour'")
	ErrInvalidSource      = errors.New("source must be 'internal' or 'outsourced'")
	ErrInvalidTimeFormat  = errors.New("time must be in HH:MM format")
	ErrTourEndBeforeStart = errors.New("tour end date must be on or after start date")
	ErrMissingReturnDate  = errors.New("return leg needs a return date")
)

// Domain errors.
var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Type is the booking kind.
type Type string

const (
	TypeSingle Type = "single"
	TypeTour   Type = "tour"
	// TypeOutsourced is a legacy value; new records use Source instead.
	TypeOutsourced Type = "outsourced"
)

// Source tells whether the booking is served by the own fleet or a partner.
type Source string

const (
	SourceInternal   Source = "internal"
	SourceOutsourced Source = "outsourced"
)

// Status represents the state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking is a customer transfer or tour.
//
// Dates are "YYYY-MM-DD" and times "HH:MM". A tour uses the Tour* fields, any
// other booking uses Date/Time and the optional return leg.
type Booking struct {
	ID     string `json:"id"`
	Type   Type   `json:"type"`
	Source Source `json:"source,omitempty"`
	Status Status `json:"status"`

	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	HasReturn  bool   `json:"hasReturn,omitempty"`
	ReturnDate string `json:"returnDate,omitempty"`
	ReturnTime string `json:"returnTime,omitempty"`

	TourStartDate        string `json:"tourStartDate,omitempty"`
	TourEndDate          string `json:"tourEndDate,omitempty"`
	TourPickupTime       string `json:"tourPickupTime,omitempty"`
	TourReturnPickupTime string `json:"tourReturnPickupTime,omitempty"`

	// Resources are referenced by display name. The optional ids take
	// precedence when both sides of a comparison carry one.
	Driver    string `json:"driver,omitempty"`
	DriverID  string `json:"driverId,omitempty"`
	Vehicle   string `json:"vehicle,omitempty"`
	VehicleID string `json:"vehicleId,omitempty"`
	Partner   string `json:"partner,omitempty"`
	PartnerID string `json:"partnerId,omitempty"`

	CustomerName string  `json:"customerName,omitempty"`
	Pickup       string  `json:"pickup,omitempty"`
	Dropoff      string  `json:"dropoff,omitempty"`
	Price        float64 `json:"price,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Leg describes the scheduling input of a non-tour booking.
type Leg struct {
	Date string
	Time string
}

// Params holds the fields accepted when creating a booking.
type Params struct {
	Type         string
	Source       string
	Pickup       Leg
	Return       *Leg
	TourStart    string
	TourEnd      string
	TourPickup   string
	TourDropoff  string
	Driver       string
	Vehicle      string
	Partner      string
	CustomerName string
	From         string
	To           string
	Price        float64
}

// New creates a pending booking with validation.
func New(p Params) (*Booking, error) {
	typ, err := parseType(p.Type)
	if err != nil {
		return nil, err
	}
	src, err := parseSource(p.Source)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:           uuid.NewString(),
		Type:         typ,
		Source:       src,
		Status:       StatusPending,
		Driver:       strings.TrimSpace(p.Driver),
		Vehicle:      strings.TrimSpace(p.Vehicle),
		Partner:      strings.TrimSpace(p.Partner),
		CustomerName: strings.TrimSpace(p.CustomerName),
		Pickup:       p.From,
		Dropoff:      p.To,
		Price:        p.Price,
		CreatedAt:    time.Now(),
	}

	if typ == TypeTour {
		b.TourStartDate = p.TourStart
		b.TourEndDate = p.TourEnd
		b.TourPickupTime = p.TourPickup
		b.TourReturnPickupTime = p.TourDropoff
	} else {
		b.Date = p.Pickup.Date
		b.Time = p.Pickup.Time
		if p.Return != nil {
			b.HasReturn = true
			b.ReturnDate = p.Return.Date
			b.ReturnTime = p.Return.Time
		}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the type, source and schedule fields of a booking. An empty
// type or source counts as the default.
func (b *Booking) Validate() error {
	switch b.Type {
	case "", TypeSingle, TypeTour, TypeOutsourced:
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidType, b.Type)
	}
	switch b.Source {
	case "", SourceInternal, SourceOutsourced:
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidSource, b.Source)
	}

	if b.IsTour() {
		return b.validateTour()
	}

	if b.Date == "" {
		return ErrMissingDate
	}
	if _, err := dateutil.ParseDate(b.Date); err != nil {
		return err
	}
	if err := validateOptionalTime(b.Time); err != nil {
		return fmt.Errorf("pickup time: %w", err)
	}

	if !b.HasReturn {
		return nil
	}
	if b.ReturnDate == "" {
		return ErrMissingReturnDate
	}
	if _, err := dateutil.ParseDate(b.ReturnDate); err != nil {
		return err
	}
	if err := validateOptionalTime(b.ReturnTime); err != nil {
		return fmt.Errorf("return time: %w", err)
	}
	return nil
}

func (b *Booking) validateTour() error {
	if b.TourStartDate == "" || b.TourEndDate == "" {
		return ErrMissingDate
	}
	start, err := dateutil.ParseDate(b.TourStartDate)
	if err != nil {
		return err
	}
	end, err := dateutil.ParseDate(b.TourEndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return ErrTourEndBeforeStart
	}
	if err := validateOptionalTime(b.TourPickupTime); err != nil {
		return fmt.Errorf("tour pickup time: %w", err)
	}
	if err := validateOptionalTime(b.TourReturnPickupTime); err != nil {
		return fmt.Errorf("tour return pickup time: %w", err)
	}
	return nil
}

func parseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeSingle:
		return TypeSingle, nil
	case TypeTour:
		return TypeTour, nil
	default:
		return "", ErrInvalidType
	}
}

func parseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case "", SourceInternal:
		return SourceInternal, nil
	case SourceOutsourced:
		return SourceOutsourced, nil
	default:
		return "", ErrInvalidSource
	}
}

func validateOptionalTime(s string) error {
	if s == "" {
		return nil
	}
	if !ValidClock(s) {
		return ErrInvalidTimeFormat
	}
	return nil
}

// Normalize fills the defaults of a record that did not go through New, such
// as one read from an export: a missing id, type, source or status.
func (b *Booking) Normalize() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Type == "" {
		b.Type = TypeSingle
	}
	if b.Source == "" {
		b.Source = b.NormalizedSource()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
}

// IsTour returns true if the booking is a multi-day tour.
func (b *Booking) IsTour() bool {
	return b.Type == TypeTour
}

// IsCancelled returns true if the booking has cancelled status.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsConfirmed returns true if the booking has confirmed status.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsOutsourced reports whether a partner serves the booking, honouring the
// legacy type value.
func (b *Booking) IsOutsourced() bool {
	return b.Type == TypeOutsourced || b.Source == SourceOutsourced
}

// NormalizedSource returns the source with legacy records mapped.
func (b *Booking) NormalizedSource() Source {
	if b.IsOutsourced() {
		return SourceOutsourced
	}
	return SourceInternal
}

// PrimaryDate returns the date a booking is filed under: the tour start for
// tours, the pickup date otherwise.
func (b *Booking) PrimaryDate() string {
	if b.IsTour() {
		return b.TourStartDate
	}
	return b.Date
}

// Confirm moves a pending booking to confirmed.
func (b *Booking) Confirm() error {
	return b.transition(StatusConfirmed)
}

// Complete moves a confirmed booking to completed.
func (b *Booking) Complete() error {
	return b.transition(StatusCompleted)
}

// Cancel cancels a booking that has not been completed.
func (b *Booking) Cancel() error {
	return b.transition(StatusCancelled)
}

// CanTransition reports whether the booking may move from one status to another.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusConfirmed:
		return from == StatusPending
	case StatusCompleted:
		return from == StatusConfirmed
	case StatusCancelled:
		return from == StatusPending || from == StatusConfirmed
	default:
		return false
	}
}

func (b *Booking) transition(to Status) error {
	if !CanTransition(b.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	b.Status = to
	return nil
}

// AssignedDriver reports whether the booking references the driver.
func (b *Booking) AssignedDriver(id, name string) bool {
	return SameResource(b.DriverID, b.Driver, id, name)
}

// AssignedVehicle reports whether the booking references the vehicle. The
// vehicle field may hold either the vehicle name or its id.
func (b *Booking) AssignedVehicle(id, name string) bool {
	if SameResource(b.VehicleID, b.Vehicle, id, name) {
		return true
	}
	return id != "" && b.Vehicle == id
}

// AssignedPartner reports whether the booking references the partner.
func (b *Booking) AssignedPartner(id, name string) bool {
	return SameResource(b.PartnerID, b.Partner, id, name)
}

// SameResource compares two resource references. Ids decide when both are
// present; otherwise non-empty names must be equal.
func SameResource(idA, nameA, idB, nameB string) bool {
	if idA != "" && idB != "" {
		return idA == idB
	}
	return nameA != "" && nameA == nameB
}
