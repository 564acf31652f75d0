package trip

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/haulroute/haulroute/internal/geo"
	"github.com/haulroute/haulroute/internal/routing"
)

// SimulatorConfig holds configuration for the trip simulator. All duty-cycle
// constants come in through Limits so the simulator performs no hidden
// environment reads.
type SimulatorConfig struct {
	// Geocoder resolves addresses to coordinates.
	Geocoder geo.Provider

	// Router computes driving routes between coordinates.
	Router routing.Provider

	// Limits are the duty-cycle constants (default: DefaultLimits).
	Limits Limits

	// Now supplies the timeline reference time (default: time.Now).
	// Injectable for deterministic tests.
	Now func() time.Time

	// Logger for simulation progress.
	Logger zerolog.Logger
}

// Simulator runs trip feasibility simulations. Each call is stateless: all
// data is request-local, so a single Simulator is safe for concurrent use.
type Simulator struct {
	geocoder geo.Provider
	router   routing.Provider
	limits   Limits
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSimulator creates a new trip simulator.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	limits := cfg.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Simulator{
		geocoder: cfg.Geocoder,
		router:   cfg.Router,
		limits:   limits,
		now:      now,
		logger:   cfg.Logger,
	}
}

// Simulate runs a full trip simulation: validates the remaining cycle,
// geocodes the three addresses, routes both legs, plans fuel stops, builds
// the timeline, and assembles the result.
//
// The cycle check happens before any provider call. Geocoding and routing
// failures come back as *Error values wrapping the provider error; they are
// recoverable validation failures from the caller's perspective.
func (s *Simulator) Simulate(ctx context.Context, req Request) (*Result, error) {
	remaining := s.limits.CycleHours - req.CycleUsedHours
	if remaining < s.limits.MinCycleHours {
		return nil, ErrInsufficientCycleHours
	}

	s.logger.Info().
		Str("current", req.CurrentLocation).
		Str("pickup", req.PickupLocation).
		Str("dropoff", req.DropoffLocation).
		Float64("remaining_cycle_hours", remaining).
		Msg("starting trip simulation")

	// The three lookups are independent, so they run concurrently; result
	// order is fixed by position.
	addresses := []string{req.CurrentLocation, req.PickupLocation, req.DropoffLocation}
	coords := make([]geo.Coordinate, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			c, err := s.geocoder.Geocode(gctx, addr)
			if err != nil {
				return &Error{
					Stage:   StageGeocoding,
					Message: "geocoding failed for " + addr,
					Err:     err,
				}
			}
			coords[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currentCoord, pickupCoord, dropoffCoord := coords[0], coords[1], coords[2]

	s.logger.Debug().
		Float64("current_lat", currentCoord.Lat).
		Float64("current_lon", currentCoord.Lon).
		Float64("pickup_lat", pickupCoord.Lat).
		Float64("pickup_lon", pickupCoord.Lon).
		Float64("dropoff_lat", dropoffCoord.Lat).
		Float64("dropoff_lon", dropoffCoord.Lon).
		Msg("geocoded all addresses")

	legToPickup, err := s.route(ctx, currentCoord, pickupCoord)
	if err != nil {
		return nil, err
	}
	mainLeg, err := s.route(ctx, pickupCoord, dropoffCoord)
	if err != nil {
		return nil, err
	}

	totalDistance := legToPickup.DistanceMiles + mainLeg.DistanceMiles
	totalDriving := legToPickup.DurationHours + mainLeg.DurationHours

	s.logger.Info().
		Float64("total_distance_miles", totalDistance).
		Float64("total_driving_hours", totalDriving).
		Msg("routed both legs")

	fuelStops := PlanFuelStops(totalDistance, pickupCoord, dropoffCoord)
	if fuelStops == nil {
		// Serialize as an empty list, not null.
		fuelStops = []FuelStop{}
	}
	events, dailyLogs := BuildTimeline(totalDriving, totalDistance, len(fuelStops), s.now(), s.limits)

	remainingAfter := remaining -
		totalDriving -
		s.limits.PickupHours -
		s.limits.DropoffHours -
		float64(len(fuelStops))*s.limits.FuelStopHours

	return &Result{
		Events:              events,
		DailyLogs:           dailyLogs,
		TotalDistanceMiles:  round(totalDistance, 1),
		TotalDrivingHours:   round(totalDriving, 1),
		RouteGeometry:       mainLeg.Geometry,
		FuelStopCount:       len(fuelStops),
		FuelStops:           fuelStops,
		RemainingCycleHours: round(remainingAfter, 1),
		Status:              "success",
		Message:             "Trip simulation completed successfully",
	}, nil
}

// route fetches a single driving leg between two coordinates.
func (s *Simulator) route(ctx context.Context, from, to geo.Coordinate) (*routing.Route, error) {
	leg, err := s.router.GetRoute(ctx, routing.RouteRequest{
		Waypoints: []geo.Coordinate{from, to},
		Mode:      routing.ModeDrive,
	})
	if err != nil {
		return nil, &Error{
			Stage:   StageRouting,
			Message: "route calculation failed",
			Err:     err,
		}
	}
	return leg, nil
}
