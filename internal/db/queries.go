package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/javiermolinar/fleetdesk/internal/booking"
)

// Queries are written with ? placeholders and rebound for Postgres.

const bookingColumns = `
	id, type, source, status, date, time, has_return, return_date, return_time,
	tour_start_date, tour_end_date, tour_pickup_time, tour_return_pickup_time,
	driver, driver_id, vehicle, vehicle_id, partner, partner_id,
	customer_name, pickup, dropoff, price, created_at`

const (
	insertBooking = `
		INSERT INTO bookings (` + bookingColumns + `, primary_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	upsertBooking = insertBooking + `
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type, source = excluded.source, status = excluded.status,
			date = excluded.date, time = excluded.time, has_return = excluded.has_return,
			return_date = excluded.return_date, return_time = excluded.return_time,
			tour_start_date = excluded.tour_start_date, tour_end_date = excluded.tour_end_date,
			tour_pickup_time = excluded.tour_pickup_time,
			tour_return_pickup_time = excluded.tour_return_pickup_time,
			driver = excluded.driver, driver_id = excluded.driver_id,
			vehicle = excluded.vehicle, vehicle_id = excluded.vehicle_id,
			partner = excluded.partner, partner_id = excluded.partner_id,
			customer_name = excluded.customer_name, pickup = excluded.pickup,
			dropoff = excluded.dropoff, price = excluded.price,
			primary_date = excluded.primary_date`

	updateBooking = `
		UPDATE bookings SET
			type = ?, source = ?, status = ?, date = ?, time = ?, has_return = ?,
			return_date = ?, return_time = ?, tour_start_date = ?, tour_end_date = ?,
			tour_pickup_time = ?, tour_return_pickup_time = ?, driver = ?, driver_id = ?,
			vehicle = ?, vehicle_id = ?, partner = ?, partner_id = ?, customer_name = ?,
			pickup = ?, dropoff = ?, price = ?, primary_date = ?
		WHERE id = ?`

	selectBookingByID = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	selectBookingsByDateRange = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE primary_date >= ? AND primary_date <= ?
		ORDER BY primary_date, time, tour_pickup_time, id`

	selectAllBookings = `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY primary_date, time, tour_pickup_time, id`

	selectBookingStatus = `SELECT status FROM bookings WHERE id = ?`

	updateBookingStatus = `UPDATE bookings SET status = ? WHERE id = ?`

	upsertDriver = `
		INSERT INTO drivers (id, name, phone, status, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, phone = excluded.phone, status = excluded.status`

	upsertVehicle = `
		INSERT INTO vehicles (id, name, plate, seats, status, created_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, plate = excluded.plate,
			seats = excluded.seats, status = excluded.status`

	upsertPartner = `
		INSERT INTO partners (id, name, contact, status, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, contact = excluded.contact, status = excluded.status`

	selectDrivers  = `SELECT id, name, phone, status, created_at FROM drivers ORDER BY name`
	selectVehicles = `SELECT id, name, plate, seats, status, created_at FROM vehicles ORDER BY name`
	selectPartners = `SELECT id, name, contact, status, created_at FROM partners ORDER BY name`
)

// resourceTables maps a kind to its table.
var resourceTables = map[booking.Kind]string{
	booking.KindDriver:  "drivers",
	booking.KindVehicle: "vehicles",
	booking.KindPartner: "partners",
}

func updateResourceStatus(kind booking.Kind) (string, error) {
	table, ok := resourceTables[kind]
	if !ok {
		return "", booking.ErrUnknownKind
	}
	return "UPDATE " + table + " SET status = ? WHERE name = ?", nil
}

// rebind rewrites ? placeholders as $1, $2, ...
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// bookingValues returns the column values of a booking in bookingColumns
// order, without created_at.
func bookingValues(b *booking.Booking) []any {
	return []any{
		b.ID, string(b.Type), string(b.Source), string(b.Status),
		b.Date, b.Time, b.HasReturn, b.ReturnDate, b.ReturnTime,
		b.TourStartDate, b.TourEndDate, b.TourPickupTime, b.TourReturnPickupTime,
		b.Driver, b.DriverID, b.Vehicle, b.VehicleID, b.Partner, b.PartnerID,
		b.CustomerName, b.Pickup, b.Dropoff, b.Price,
	}
}

// insertArgs appends created_at and primary_date to the column values.
func insertArgs(b *booking.Booking, createdAt any) []any {
	return append(bookingValues(b), createdAt, b.PrimaryDate())
}

// updateArgs returns the arguments of updateBooking.
func updateArgs(b *booking.Booking) []any {
	vals := bookingValues(b)[1:]
	return append(vals, b.PrimaryDate(), b.ID)
}

// bookingDest returns scan destinations in bookingColumns order, without
// created_at.
func bookingDest(b *booking.Booking) []any {
	return []any{
		&b.ID, &b.Type, &b.Source, &b.Status,
		&b.Date, &b.Time, &b.HasReturn, &b.ReturnDate, &b.ReturnTime,
		&b.TourStartDate, &b.TourEndDate, &b.TourPickupTime, &b.TourReturnPickupTime,
		&b.Driver, &b.DriverID, &b.Vehicle, &b.VehicleID, &b.Partner, &b.PartnerID,
		&b.CustomerName, &b.Pickup, &b.Dropoff, &b.Price,
	}
}

// transition validates a status change read from storage.
func transition(id string, from, to booking.Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", booking.ErrInvalidTransition, to)
	}
	if !booking.CanTransition(from, to) {
		return fmt.Errorf("%w: booking %s is %s, cannot become %s", booking.ErrInvalidTransition, id, from, to)
	}
	return nil
}
