package trip

import "time"

// initialDriveHours caps the first driving segment, from the current
// position to the pickup location.
const initialDriveHours = 2.0

// BuildTimeline produces the ordered duty events and daily logs for a trip
// with the given total driving time. It is a pure function of its arguments:
// identical inputs yield identical timelines.
//
// The model is a deliberate single-day simplification. The drive, on-duty,
// rest, and break limits in Limits are carried but not applied here, so long
// trips are never split across days and no mandatory breaks are inserted.
func BuildTimeline(totalDrivingHours, totalDistanceMiles float64, fuelStopCount int, ref time.Time, limits Limits) ([]DutyEvent, []DailyLog) {
	var events []DutyEvent

	clock := ref
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	log := DailyLog{
		Date: dayStart.Format("2006-01-02"),
	}

	// Drive to the pickup location, capped at two hours.
	drivingRemaining := totalDrivingHours
	segment := min(drivingRemaining, initialDriveHours)
	events = append(events, DutyEvent{
		Kind:  EventDrive,
		Hours: segment,
		Note:  "Driving to pickup location",
		Start: clock,
	})
	log.Entries = append(log.Entries, newLogEntry(StatusDriving, segment, "Driving to pickup", clock, dayStart))
	drivingRemaining -= segment
	clock = clock.Add(hours(segment))

	// Load at the pickup location.
	events = append(events, DutyEvent{
		Kind:  EventPickup,
		Hours: limits.PickupHours,
		Note:  "Loading at pickup location",
		Start: clock,
	})
	log.Entries = append(log.Entries, newLogEntry(StatusOnDuty, limits.PickupHours, "Loading", clock, dayStart))
	clock = clock.Add(hours(limits.PickupHours))

	// Main route to the destination. Omitted entirely when the trip fits in
	// the initial segment.
	if drivingRemaining > 0 {
		events = append(events, DutyEvent{
			Kind:  EventDrive,
			Hours: drivingRemaining,
			Note:  "Main route to destination",
			Start: clock,
		})
		log.Entries = append(log.Entries, newLogEntry(StatusDriving, drivingRemaining, "Route driving", clock, dayStart))
		clock = clock.Add(hours(drivingRemaining))
	}

	// Unload at the destination.
	events = append(events, DutyEvent{
		Kind:  EventDropoff,
		Hours: limits.DropoffHours,
		Note:  "Unloading at destination",
		Start: clock,
	})
	log.Entries = append(log.Entries, newLogEntry(StatusOnDuty, limits.DropoffHours, "Unloading", clock, dayStart))

	log.TotalDrivingHours = totalDrivingHours
	log.TotalOnDutyHours = totalDrivingHours + limits.PickupHours + limits.DropoffHours

	return events, []DailyLog{log}
}

// newLogEntry builds an ELD entry for an event, with the elapsed offset from
// the day start wrapped modulo 24.
func newLogEntry(status DutyStatus, eventHours float64, description string, start, dayStart time.Time) LogEntry {
	elapsed := start.Sub(dayStart).Hours()
	return LogEntry{
		Status:       status,
		Hours:        eventHours,
		Description:  description,
		StartTime:    start,
		ElapsedHours: round(mod24(elapsed), 2),
	}
}

// mod24 wraps h into [0, 24).
func mod24(h float64) float64 {
	wrapped := h - 24*float64(int(h/24))
	if wrapped < 0 {
		wrapped += 24
	}
	return wrapped
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
