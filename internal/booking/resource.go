package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resource errors.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidStatus    = errors.New("invalid resource status")
	ErrResourceNotFound = errors.New("resource not found")
	ErrUnknownKind      = errors.New("kind must be 'driver', 'vehicle' or 'partner'")
)

// Kind identifies a resource pool.
type Kind string

const (
	KindDriver  Kind = "driver"
	KindVehicle Kind = "vehicle"
	KindPartner Kind = "partner"
)

// ParseKind parses a resource kind, accepting plurals.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "driver":
		return KindDriver, nil
	case "vehicle":
		return KindVehicle, nil
	case "partner":
		return KindPartner, nil
	default:
		return "", ErrUnknownKind
	}
}

// Management statuses set by the dispatcher.
const (
	DriverAvailable = "available"
	DriverBusy      = "busy"
	DriverOffline   = "offline"

	VehicleActive      = "active"
	VehicleInactive    = "inactive"
	VehicleMaintenance = "maintenance"

	PartnerActive   = "active"
	PartnerInactive = "inactive"
)

var validStatuses = map[Kind]map[string]bool{
	KindDriver:  {DriverAvailable: true, DriverBusy: true, DriverOffline: true},
	KindVehicle: {VehicleActive: true, VehicleInactive: true, VehicleMaintenance: true},
	KindPartner: {PartnerActive: true, PartnerInactive: true},
}

// ValidStatus reports whether status is a management status for the kind.
func ValidStatus(kind Kind, status string) bool {
	return validStatuses[kind][status]
}

// Driver is a chauffeur on the internal roster.
type Driver struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vehicle is a car or van in the internal fleet.
type Vehicle struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Plate     string    `json:"plate,omitempty"`
	Seats     int       `json:"seats,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Partner is an outsourcing company that serves overflow bookings.
type Partner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewDriver creates an available driver.
func NewDriver(name, phone string) (*Driver, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Driver{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Status:    DriverAvailable,
		CreatedAt: time.Now(),
	}, nil
}

// NewVehicle creates an active vehicle.
func NewVehicle(name, plate string, seats int) (*Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Vehicle{
		ID:        uuid.NewString(),
		Name:      name,
		Plate:     plate,
		Seats:     seats,
		Status:    VehicleActive,
		CreatedAt: time.Now(),
	}, nil
}

// NewPartner creates an active partner.
func NewPartner(name, contact string) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Partner{
		ID:        uuid.NewString(),
		Name:      name,
		Contact:   contact,
		Status:    PartnerActive,
		CreatedAt: time.Now(),
	}, nil
}
