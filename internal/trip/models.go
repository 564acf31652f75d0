// Package trip implements the duty-cycle trip feasibility simulation.
//
// Given geocoded addresses and routed legs it derives a timeline of dutyable
// events (driving, loading, unloading), plans refueling stops, produces
// ELD-style daily logs, and tracks remaining duty-cycle hours. The model is a
// simplified single-day approximation of Hours-of-Service rules.
package trip

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInsufficientCycleHours is returned when the driver does not have enough
// duty-cycle hours left to start a trip.
var ErrInsufficientCycleHours = errors.New("insufficient cycle hours remaining (minimum 10 required)")

// Stage identifies which phase of a simulation failed.
type Stage string

const (
	// StageGeocoding covers address resolution failures.
	StageGeocoding Stage = "geocoding"
	// StageRouting covers route computation failures.
	StageRouting Stage = "routing"
)

// Error wraps a provider failure with the simulation stage it occurred in.
// All provider failures surface to the caller as recoverable validation-style
// errors carrying the underlying message.
type Error struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// EventKind classifies a duty event.
type EventKind string

const (
	// EventDrive is time spent driving.
	EventDrive EventKind = "drive"
	// EventPickup is on-duty loading time at the pickup location.
	EventPickup EventKind = "pickup"
	// EventDropoff is on-duty unloading time at the destination.
	EventDropoff EventKind = "dropoff"
)

// DutyStatus is an ELD duty status code.
type DutyStatus string

const (
	// StatusDriving marks time behind the wheel.
	StatusDriving DutyStatus = "D"
	// StatusOnDuty marks on-duty, not-driving time.
	StatusOnDuty DutyStatus = "ON"
	// StatusOffDuty marks off-duty time.
	StatusOffDuty DutyStatus = "OFF"
	// StatusSleeperBerth marks time in the sleeper berth.
	StatusSleeperBerth DutyStatus = "SB"
)

// DutyEvent is a single entry in the trip timeline. Events are strictly
// time-ordered and contiguous: each event starts where the previous ended.
type DutyEvent struct {
	Kind  EventKind `json:"type"`
	Hours float64   `json:"hours"`
	Note  string    `json:"note"`
	Start time.Time `json:"start"`
}

// LogEntry is the ELD view of a duty event within a 24-hour window.
type LogEntry struct {
	Status      DutyStatus `json:"status"`
	Hours       float64    `json:"hours"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	// ElapsedHours is the offset from the day start in hours, wrapped
	// modulo 24 so trips spanning midnight still report a coherent offset.
	ElapsedHours float64 `json:"elapsed_hours"`
}

// DailyLog is one calendar day of duty records.
type DailyLog struct {
	Date    string     `json:"date"`
	Entries []LogEntry `json:"entries"`
	// TotalDrivingHours is the driving-hours input, not recomputed from
	// entries.
	TotalDrivingHours float64 `json:"total_driving"`
	// TotalOnDutyHours is driving plus the fixed pickup and dropoff costs.
	// Fuel time is excluded here but still deducted from the cycle.
	TotalOnDutyHours float64 `json:"total_on_duty"`
}

// FuelStop is a planned refueling point along the pickup-to-dropoff line.
type FuelStop struct {
	Lat                    float64 `json:"lat"`
	Lon                    float64 `json:"lng"`
	Name                   string  `json:"name"`
	DistanceFromStartMiles float64 `json:"distance_from_start"`
}

// Request is the input to a trip simulation.
type Request struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	// CycleUsedHours is how much of the duty cycle the driver has already
	// consumed.
	CycleUsedHours float64
}

// Result is the outcome of a trip simulation.
type Result struct {
	Events             []DutyEvent     `json:"events"`
	DailyLogs          []DailyLog      `json:"daily_logs"`
	TotalDistanceMiles float64         `json:"total_distance"`
	TotalDrivingHours  float64         `json:"total_driving_hours"`
	RouteGeometry      json.RawMessage `json:"route_geojson"`
	FuelStopCount      int             `json:"fuel_stops"`
	FuelStops          []FuelStop      `json:"fuel_locations"`
	// RemainingCycleHours may go negative; a negative value is the
	// over-cycle warning signal for the caller, never clamped.
	RemainingCycleHours float64 `json:"remaining_cycle_hours"`
	Status              string  `json:"status"`
	Message             string  `json:"message"`
}

// Limits holds the duty-cycle constants used by the simulation. The drive,
// on-duty, rest, and break limits are carried for callers but not enforced by
// the single-day timeline model.
type Limits struct {
	// CycleHours is the total duty-cycle allowance.
	CycleHours float64
	// MinCycleHours is the minimum remaining cycle required to start a trip.
	MinCycleHours float64
	// DriveLimitHours is the daily driving limit.
	DriveLimitHours float64
	// OnDutyLimitHours is the daily on-duty limit.
	OnDutyLimitHours float64
	// RestHours is the mandated rest period length.
	RestHours float64
	// BreakHours is the mandated mid-shift break length.
	BreakHours float64
	// AvgSpeedMPH is the assumed average highway speed.
	AvgSpeedMPH float64
	// PickupHours is the fixed on-duty loading time.
	PickupHours float64
	// DropoffHours is the fixed on-duty unloading time.
	DropoffHours float64
	// FuelStopHours is the cycle cost of each refueling stop.
	FuelStopHours float64
}

// DefaultLimits returns the standard duty-cycle constants.
func DefaultLimits() Limits {
	return Limits{
		CycleHours:       70,
		MinCycleHours:    10,
		DriveLimitHours:  11,
		OnDutyLimitHours: 14,
		RestHours:        10,
		BreakHours:       0.5,
		AvgSpeedMPH:      55,
		PickupHours:      1,
		DropoffHours:     1,
		FuelStopHours:    0.5,
	}
}
