// Package report assembles the dispatch dashboard report: utilization,
// double-bookings, idle gaps and an optional LLM insight.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
	"github.com/javiermolinar/fleetdesk/internal/llm"
	"github.com/javiermolinar/fleetdesk/internal/scheduler"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

// ResourceGaps holds the idle gaps of one driver or vehicle.
type ResourceGaps struct {
	Kind booking.Kind
	ID   string
	Name string
	Gaps []scheduler.Gap
}

// Report is the dashboard view over a date window.
type Report struct {
	From        time.Time
	To          time.Time
	Utilization *utilization.Report
	Conflicts   []conflict.Conflict
	Gaps        []ResourceGaps
	Insight     *llm.Insight
}

// Options configures Build.
type Options struct {
	Utilization    utilization.Options
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
	// Client overrides the provider settings when set.
	Client llm.Client
}

// Summarize computes the report for a snapshot without touching storage.
func Summarize(s *booking.Snapshot, opts utilization.Options) *Report {
	util := utilization.Calculate(s, opts)
	r := &Report{From: util.From, To: util.To, Utilization: util}
	if s == nil {
		return r
	}

	window := dateutil.DateRange{Start: util.From, End: util.To}
	for _, c := range conflict.Scan(s.Bookings) {
		if inWindow(c.First, window) || inWindow(c.Second, window) {
			r.Conflicts = append(r.Conflicts, c)
		}
	}

	minGap := time.Duration(opts.MinGapHours * float64(time.Hour))
	counted := utilization.Filter(s.Bookings, window, opts)
	gapsFor := func(kind booking.Kind, id, name string) {
		gaps := scheduler.Gaps(utilization.BookingsFor(kind, id, name, counted), minGap)
		if len(gaps) > 0 {
			r.Gaps = append(r.Gaps, ResourceGaps{Kind: kind, ID: id, Name: name, Gaps: gaps})
		}
	}
	for _, d := range s.Drivers {
		gapsFor(booking.KindDriver, d.ID, d.Name)
	}
	for _, v := range s.Vehicles {
		gapsFor(booking.KindVehicle, v.ID, v.Name)
	}

	return r
}

// Build loads a snapshot from repo and computes the report, asking the
// configured LLM for an insight when requested.
func Build(ctx context.Context, repo booking.Repository, opts Options) (*Report, error) {
	snap, err := booking.LoadSnapshot(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	r := Summarize(snap, opts.Utilization)

	if opts.IncludeInsight && len(r.Utilization.All()) > 0 {
		client := opts.Client
		if client == nil {
			if opts.Model == "" {
				return nil, errors.New("model is required for insight")
			}
			client, err = llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
			if err != nil {
				return nil, fmt.Errorf("creating LLM client: %w", err)
			}
		}

		insight, err := llm.NewAdvisor(client).Advise(ctx, Digest(r))
		if err != nil {
			return nil, fmt.Errorf("evaluating fleet: %w", err)
		}
		r.Insight = insight
	}

	return r, nil
}

// Digest converts a report into the advisor's input.
func Digest(r *Report) llm.Digest {
	d := llm.Digest{From: r.From, To: r.To}
	for _, e := range r.Utilization.All() {
		d.Resources = append(d.Resources, llm.Usage{
			Kind:    string(e.Kind),
			Name:    e.Name,
			Hours:   e.TotalHours,
			Percent: e.Utilization,
			Label:   e.Label.Text,
			State:   string(e.Availability),
		})
	}
	for _, c := range r.Conflicts {
		d.Conflicts = append(d.Conflicts, ConflictLine(c))
	}
	for _, rg := range r.Gaps {
		for _, g := range rg.Gaps {
			d.Gaps = append(d.Gaps, fmt.Sprintf("%s %s: %s", rg.Kind, rg.Name, GapLine(g)))
		}
	}
	return d
}

func inWindow(b *booking.Booking, w dateutil.DateRange) bool {
	d, err := time.Parse(dateutil.DateLayout, b.PrimaryDate())
	if err != nil {
		return false
	}
	return !d.Before(w.Start) && !d.After(w.End)
}
