package api

import (
	"time"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/dispatch"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/scheduler"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

// CheckPayload is a candidate booking as submitted by the booking form. It
// takes the same camelCase fields as a stored booking record.
type CheckPayload struct {
	ID                   string `json:"id" validate:"omitempty,max=64"`
	Type                 string `json:"type" validate:"omitempty,oneof=single tour outsourced"`
	Source               string `json:"source" validate:"omitempty,oneof=internal outsourced"`
	Status               string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Date                 string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time                 string `json:"time" validate:"omitempty,datetime=15:04"`
	HasReturn            bool   `json:"hasReturn"`
	ReturnDate           string `json:"returnDate" validate:"required_if=HasReturn true,omitempty,datetime=2006-01-02"`
	ReturnTime           string `json:"returnTime" validate:"omitempty,datetime=15:04"`
	TourStartDate        string `json:"tourStartDate" validate:"required_if=Type tour,omitempty,datetime=2006-01-02"`
	TourEndDate          string `json:"tourEndDate" validate:"required_if=Type tour,omitempty,datetime=2006-01-02"`
	TourPickupTime       string `json:"tourPickupTime" validate:"omitempty,datetime=15:04"`
	TourReturnPickupTime string `json:"tourReturnPickupTime" validate:"omitempty,datetime=15:04"`
	Driver               string `json:"driver" validate:"max=100"`
	DriverID             string `json:"driverId" validate:"max=64"`
	Vehicle              string `json:"vehicle" validate:"max=100"`
	VehicleID            string `json:"vehicleId" validate:"max=64"`
	Partner              string `json:"partner" validate:"max=100"`
	PartnerID            string `json:"partnerId" validate:"max=64"`

	CustomerName string  `json:"customerName" validate:"max=200"`
	Pickup       string  `json:"pickup" validate:"max=500"`
	Dropoff      string  `json:"dropoff" validate:"max=500"`
	Price        float64 `json:"price" validate:"gte=0"`

	// CreatedAt is accepted and ignored.
	CreatedAt string `json:"createdAt"`
}

// Booking converts the payload into a candidate booking.
func (p CheckPayload) Booking() *booking.Booking {
	b := &booking.Booking{
		ID:                   p.ID,
		Type:                 booking.Type(p.Type),
		Source:               booking.Source(p.Source),
		Status:               booking.Status(p.Status),
		Date:                 p.Date,
		Time:                 p.Time,
		HasReturn:            p.HasReturn,
		ReturnDate:           p.ReturnDate,
		ReturnTime:           p.ReturnTime,
		TourStartDate:        p.TourStartDate,
		TourEndDate:          p.TourEndDate,
		TourPickupTime:       p.TourPickupTime,
		TourReturnPickupTime: p.TourReturnPickupTime,
		Driver:               p.Driver,
		DriverID:             p.DriverID,
		Vehicle:              p.Vehicle,
		VehicleID:            p.VehicleID,
		Partner:              p.Partner,
		PartnerID:            p.PartnerID,
		CustomerName:         p.CustomerName,
		Pickup:               p.Pickup,
		Dropoff:              p.Dropoff,
		Price:                p.Price,
	}
	if b.Type == "" {
		b.Type = booking.TypeSingle
	}
	if b.Status == "" {
		b.Status = booking.StatusPending
	}
	return b
}

type hitResponse struct {
	BookingID      string `json:"bookingId"`
	CustomerName   string `json:"customerName,omitempty"`
	ConflictDate   string `json:"conflictDate"`
	ConflictTime   string `json:"conflictTime"`
	OverlapMinutes int    `json:"overlapMinutes"`
}

type checkResponse struct {
	HasConflicts bool          `json:"hasConflicts"`
	Count        int           `json:"count"`
	Driver       []hitResponse `json:"driver"`
	Vehicle      []hitResponse `json:"vehicle"`
}

func toCheckResponse(res conflict.Result) checkResponse {
	conv := func(hits []conflict.Hit) []hitResponse {
		out := make([]hitResponse, 0, len(hits))
		for _, h := range hits {
			out = append(out, hitResponse{
				BookingID:      h.Booking.ID,
				CustomerName:   h.Booking.CustomerName,
				ConflictDate:   h.ConflictDate,
				ConflictTime:   h.ConflictTime,
				OverlapMinutes: h.OverlapMinutes,
			})
		}
		return out
	}
	return checkResponse{
		HasConflicts: res.HasConflicts(),
		Count:        res.Count(),
		Driver:       conv(res.Driver),
		Vehicle:      conv(res.Vehicle),
	}
}

type conflictResponse struct {
	Resource       string `json:"resource"`
	Field          string `json:"field"`
	FirstID        string `json:"firstId"`
	SecondID       string `json:"secondId"`
	OverlapMinutes int    `json:"overlapMinutes"`
	Description    string `json:"description"`
}

func toConflictResponses(cs []conflict.Conflict) []conflictResponse {
	out := make([]conflictResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, conflictResponse{
			Resource:       c.Resource,
			Field:          string(c.Field),
			FirstID:        c.First.ID,
			SecondID:       c.Second.ID,
			OverlapMinutes: c.OverlapMinutes,
			Description:    report.ConflictLine(c),
		})
	}
	return out
}

type labelResponse struct {
	Text     string `json:"text"`
	Severity string `json:"severity"`
	Color    string `json:"color"`
}

type entryResponse struct {
	Kind         string        `json:"kind"`
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	Bookings     int           `json:"bookings"`
	TotalHours   float64       `json:"totalHours"`
	Utilization  float64       `json:"utilization"`
	Availability string        `json:"availability"`
	Label        labelResponse `json:"label"`
}

type summaryResponse struct {
	TotalResources int     `json:"totalResources"`
	Available      int     `json:"available"`
	Busy           int     `json:"busy"`
	Unavailable    int     `json:"unavailable"`
	AvgUtilization float64 `json:"avgUtilization"`
}

type utilizationResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Drivers  []entryResponse `json:"drivers"`
	Vehicles []entryResponse `json:"vehicles"`
	Partners []entryResponse `json:"partners"`
	Summary  summaryResponse `json:"summary"`
}

func toUtilizationResponse(r *utilization.Report) utilizationResponse {
	conv := func(entries []utilization.Entry) []entryResponse {
		out := make([]entryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryResponse{
				Kind:         string(e.Kind),
				ID:           e.ID,
				Name:         e.Name,
				Status:       e.Status,
				Bookings:     len(e.Bookings),
				TotalHours:   e.TotalHours,
				Utilization:  e.Utilization,
				Availability: string(e.Availability),
				Label: labelResponse{
					Text:     e.Label.Text,
					Severity: string(e.Label.Severity),
					Color:    e.Label.Color,
				},
			})
		}
		return out
	}
	return utilizationResponse{
		From:     r.From.Format("2006-01-02"),
		To:       r.To.Format("2006-01-02"),
		Drivers:  conv(r.Drivers),
		Vehicles: conv(r.Vehicles),
		Partners: conv(r.Partners),
		Summary: summaryResponse{
			TotalResources: r.Summary.TotalResources,
			Available:      r.Summary.Available,
			Busy:           r.Summary.Busy,
			Unavailable:    r.Summary.Unavailable,
			AvgUtilization: r.Summary.AvgUtilization,
		},
	}
}

type gapResponse struct {
	AfterID  string    `json:"afterId"`
	BeforeID string    `json:"beforeId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Minutes  int       `json:"minutes"`
}

type resourceGapsResponse struct {
	Kind string        `json:"kind"`
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Gaps []gapResponse `json:"gaps"`
}

func toGapsResponse(all []report.ResourceGaps) []resourceGapsResponse {
	out := make([]resourceGapsResponse, 0, len(all))
	for _, rg := range all {
		gaps := make([]gapResponse, 0, len(rg.Gaps))
		for _, g := range rg.Gaps {
			gaps = append(gaps, gapResponse{
				AfterID:  g.After.ID,
				BeforeID: g.Before.ID,
				Start:    g.Start,
				End:      g.End,
				Minutes:  int(g.Duration().Minutes()),
			})
		}
		out = append(out, resourceGapsResponse{Kind: string(rg.Kind), ID: rg.ID, Name: rg.Name, Gaps: gaps})
	}
	return out
}

type statusResponse struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	CurrentID string `json:"currentId,omitempty"`
	NextID    string `json:"nextId,omitempty"`
}

func toStatusResponses(all []utilization.Status) []statusResponse {
	out := make([]statusResponse, 0, len(all))
	for _, st := range all {
		resp := statusResponse{Kind: string(st.Kind), ID: st.ID, Name: st.Name, State: string(st.State)}
		if st.Current != nil {
			resp.CurrentID = st.Current.ID
		}
		if st.Next != nil {
			resp.NextID = st.Next.ID
		}
		out = append(out, resp)
	}
	return out
}

type windowResponse struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Minutes int       `json:"minutes"`
}

func toWindowResponses(ws []scheduler.Window) []windowResponse {
	out := make([]windowResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, windowResponse{Start: w.Start, End: w.End, Minutes: int(w.Duration().Minutes())})
	}
	return out
}

type candidateResponse struct {
	Kind        string  `json:"kind"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Utilization float64 `json:"utilization"`
	Label       string  `json:"label"`
	State       string  `json:"state"`
}

type suggestionResponse struct {
	BookingID string              `json:"bookingId"`
	Drivers   []candidateResponse `json:"drivers"`
	Vehicles  []candidateResponse `json:"vehicles"`
	Partners  []candidateResponse `json:"partners"`
}

func toSuggestionResponse(id string, s dispatch.Suggestion) suggestionResponse {
	conv := func(cs []dispatch.Candidate) []candidateResponse {
		out := make([]candidateResponse, 0, len(cs))
		for _, c := range cs {
			out = append(out, candidateResponse{
				Kind:        string(c.Kind),
				ID:          c.ID,
				Name:        c.Name,
				Utilization: c.Utilization,
				Label:       c.Label.Text,
				State:       string(c.State),
			})
		}
		return out
	}
	return suggestionResponse{
		BookingID: id,
		Drivers:   conv(s.Drivers),
		Vehicles:  conv(s.Vehicles),
		Partners:  conv(s.Partners),
	}
}
