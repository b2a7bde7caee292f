package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
	"github.com/javiermolinar/fleetdesk/internal/dispatch"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/scheduler"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"storage": s.config.Storage.Driver,
	}
	if err := s.jsonResponse(w, http.StatusOK, data); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) checkConflictsHandler(w http.ResponseWriter, r *http.Request) {
	var payload CheckPayload
	if err := readJSON(w, r, &payload); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	existing, err := s.repo.ListAllBookings(r.Context())
	if err != nil {
		s.internalServerError(w, r, err)
		return
	}

	res := conflict.Check(payload.Booking(), existing)
	s.metrics.ConflictChecks.Inc()
	s.metrics.ConflictsFound.Add(float64(res.Count()))

	if err := s.jsonResponse(w, http.StatusOK, toCheckResponse(res)); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) listConflictsHandler(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}
	if err := s.jsonResponse(w, http.StatusOK, toConflictResponses(rep.Conflicts)); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) utilizationHandler(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}

	for _, e := range rep.Utilization.All() {
		s.metrics.UtilizationGauges.WithLabelValues(string(e.Kind), e.Name).Set(e.Utilization)
	}

	if err := s.jsonResponse(w, http.StatusOK, toUtilizationResponse(rep.Utilization)); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) gapsHandler(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.buildReport(w, r)
	if !ok {
		return
	}
	if err := s.jsonResponse(w, http.StatusOK, toGapsResponse(rep.Gaps)); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := booking.LoadSnapshot(r.Context(), s.repo)
	if err != nil {
		s.internalServerError(w, r, err)
		return
	}
	statuses := utilization.FleetStatus(snap, s.now())
	if err := s.jsonResponse(w, http.StatusOK, toStatusResponses(statuses)); err != nil {
		s.internalServerError(w, r, err)
	}
}

// freeWindowsHandler serves GET /v1/free?kind=driver&name=Alice&date=2025-03-10.
func (s *Server) freeWindowsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := booking.ParseKind(q.Get("kind"))
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	name := q.Get("name")
	if name == "" {
		s.badRequestResponse(w, r, errors.New("name is required"))
		return
	}
	date := dateutil.Today(s.now())
	if raw := q.Get("date"); raw != "" {
		if date, err = dateutil.ParseDate(raw); err != nil {
			s.badRequestResponse(w, r, err)
			return
		}
	}

	bookings, err := s.repo.ListAllBookings(r.Context())
	if err != nil {
		s.internalServerError(w, r, err)
		return
	}

	sched := scheduler.New(s.config.Dispatch.Workdays, s.config.Dispatch.DayStart, s.config.Dispatch.DayEnd)
	mine := utilization.BookingsFor(kind, "", name, bookings)
	windows := sched.FreeWindows(date, mine)

	if err := s.jsonResponse(w, http.StatusOK, toWindowResponses(windows)); err != nil {
		s.internalServerError(w, r, err)
	}
}

func (s *Server) suggestHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookingID")

	snap, err := booking.LoadSnapshot(r.Context(), s.repo)
	if err != nil {
		s.internalServerError(w, r, err)
		return
	}

	candidate := snap.FindBooking(id)
	if candidate == nil {
		s.notFoundResponse(w, r, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id))
		return
	}

	opts := report.OptionsFromConfig(s.config, s.now())
	suggestion := dispatch.Suggest(candidate, snap, opts)

	if err := s.jsonResponse(w, http.StatusOK, toSuggestionResponse(id, suggestion)); err != nil {
		s.internalServerError(w, r, err)
	}
}

// buildReport computes the report for the request's query options. It
// writes the error response itself and returns false on failure.
func (s *Server) buildReport(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	opts, err := s.reportOptions(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return nil, false
	}

	start := time.Now()
	rep, err := report.Build(r.Context(), s.repo, report.Options{Utilization: opts})
	if err != nil {
		s.internalServerError(w, r, err)
		return nil, false
	}
	s.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	return rep, true
}

// reportOptions applies the days, min_gap_hours and include_* query
// parameters over the configured defaults.
func (s *Server) reportOptions(r *http.Request) (utilization.Options, error) {
	opts := report.OptionsFromConfig(s.config, s.now())
	q := r.URL.Query()

	if raw := q.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 || days > 366 {
			return opts, fmt.Errorf("days must be between 1 and 366")
		}
		opts.DateRange = days
	}
	if raw := q.Get("min_gap_hours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil || hours < 0 {
			return opts, fmt.Errorf("min_gap_hours must be a non-negative number")
		}
		opts.MinGapHours = hours
	}

	flags := map[string]*bool{
		"include_completed": &opts.IncludeCompleted,
		"include_confirmed": &opts.IncludeConfirmed,
		"include_pending":   &opts.IncludePending,
	}
	for key, dst := range flags {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("%s must be a boolean", key)
		}
		*dst = v
	}

	return opts, nil
}
