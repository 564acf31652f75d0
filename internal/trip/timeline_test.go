package trip

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var timelineRef = time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

func TestBuildTimeline_ShortTrip(t *testing.T) {
	// One hour of driving fits entirely in the initial segment, so there is
	// no main-drive event.
	events, logs := BuildTimeline(1.0, 500, 0, timelineRef, DefaultLimits())

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	if events[0].Kind != EventDrive || events[0].Hours != 1.0 {
		t.Errorf("event 0: expected drive 1.0h, got %s %vh", events[0].Kind, events[0].Hours)
	}
	if events[1].Kind != EventPickup || events[1].Hours != 1.0 {
		t.Errorf("event 1: expected pickup 1.0h, got %s %vh", events[1].Kind, events[1].Hours)
	}
	if events[2].Kind != EventDropoff || events[2].Hours != 1.0 {
		t.Errorf("event 2: expected dropoff 1.0h, got %s %vh", events[2].Kind, events[2].Hours)
	}

	if len(logs) != 1 {
		t.Fatalf("expected 1 daily log, got %d", len(logs))
	}
	if logs[0].TotalOnDutyHours != 3.0 {
		t.Errorf("expected total on-duty 3.0, got %v", logs[0].TotalOnDutyHours)
	}
}

func TestBuildTimeline_LongTrip(t *testing.T) {
	events, logs := BuildTimeline(15.0, 2500, 2, timelineRef, DefaultLimits())

	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	want := []struct {
		kind  EventKind
		hours float64
	}{
		{EventDrive, 2.0},
		{EventPickup, 1.0},
		{EventDrive, 13.0},
		{EventDropoff, 1.0},
	}
	for i, w := range want {
		if events[i].Kind != w.kind || events[i].Hours != w.hours {
			t.Errorf("event %d: expected %s %vh, got %s %vh",
				i, w.kind, w.hours, events[i].Kind, events[i].Hours)
		}
	}

	if events[2].Note != "Main route to destination" {
		t.Errorf("unexpected main-drive note %q", events[2].Note)
	}
	if logs[0].Entries[2].Description != "Route driving" {
		t.Errorf("unexpected main-drive log description %q", logs[0].Entries[2].Description)
	}

	// The single-day model never splits across days, even past the driving
	// limit.
	if len(logs) != 1 {
		t.Fatalf("expected 1 daily log, got %d", len(logs))
	}
	if logs[0].TotalDrivingHours != 15.0 {
		t.Errorf("expected total driving 15.0, got %v", logs[0].TotalDrivingHours)
	}
	if logs[0].TotalOnDutyHours != 17.0 {
		t.Errorf("expected total on-duty 17.0, got %v", logs[0].TotalOnDutyHours)
	}
}

func TestBuildTimeline_DriveHoursSumToInput(t *testing.T) {
	for _, total := range []float64{0.5, 1.0, 2.0, 3.7, 11.0, 26.25} {
		events, _ := BuildTimeline(total, 1000, 0, timelineRef, DefaultLimits())

		var sum float64
		for _, e := range events {
			if e.Kind == EventDrive {
				sum += e.Hours
			}
		}
		if math.Abs(sum-total) > 1e-9 {
			t.Errorf("total %v: drive hours sum to %v", total, sum)
		}
	}
}

func TestBuildTimeline_EventsContiguous(t *testing.T) {
	events, _ := BuildTimeline(9.5, 600, 0, timelineRef, DefaultLimits())

	for i := 1; i < len(events); i++ {
		wantStart := events[i-1].Start.Add(time.Duration(events[i-1].Hours * float64(time.Hour)))
		if !events[i].Start.Equal(wantStart) {
			t.Errorf("event %d starts at %v, want %v", i, events[i].Start, wantStart)
		}
	}

	if !events[0].Start.Equal(timelineRef) {
		t.Errorf("first event starts at %v, want reference time %v", events[0].Start, timelineRef)
	}
}

func TestBuildTimeline_TotalOnDutyAlwaysDrivingPlusTwo(t *testing.T) {
	for _, total := range []float64{0.5, 2.0, 8.0, 15.0} {
		_, logs := BuildTimeline(total, 2000, 1, timelineRef, DefaultLimits())
		if got := logs[0].TotalOnDutyHours; got != total+2.0 {
			t.Errorf("total %v: on-duty %v, want %v", total, got, total+2.0)
		}
	}
}

func TestBuildTimeline_ElapsedHoursWrapAtMidnight(t *testing.T) {
	// Start at 22:00; the main drive begins after 2h drive + 1h pickup,
	// at 01:00 the next day, which wraps to an elapsed offset of 25 mod 24.
	ref := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	_, logs := BuildTimeline(10.0, 600, 0, ref, DefaultLimits())

	entries := logs[0].Entries
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	if entries[0].ElapsedHours != 22.0 {
		t.Errorf("entry 0: elapsed %v, want 22.0", entries[0].ElapsedHours)
	}
	if entries[2].ElapsedHours != 1.0 {
		t.Errorf("entry 2: elapsed %v, want 1.0 (wrapped)", entries[2].ElapsedHours)
	}
}

func TestBuildTimeline_Idempotent(t *testing.T) {
	events1, logs1 := BuildTimeline(7.3, 1800, 1, timelineRef, DefaultLimits())
	events2, logs2 := BuildTimeline(7.3, 1800, 1, timelineRef, DefaultLimits())

	if !reflect.DeepEqual(events1, events2) {
		t.Error("events differ across identical invocations")
	}
	if !reflect.DeepEqual(logs1, logs2) {
		t.Error("daily logs differ across identical invocations")
	}
}

func TestBuildTimeline_LogDateIsRefDate(t *testing.T) {
	_, logs := BuildTimeline(4.0, 300, 0, timelineRef, DefaultLimits())
	if logs[0].Date != "2025-03-14" {
		t.Errorf("expected date 2025-03-14, got %s", logs[0].Date)
	}
}

func TestBuildTimeline_StatusCodes(t *testing.T) {
	_, logs := BuildTimeline(5.0, 400, 0, timelineRef, DefaultLimits())

	want := []DutyStatus{StatusDriving, StatusOnDuty, StatusDriving, StatusOnDuty}
	entries := logs[0].Entries
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].Status != w {
			t.Errorf("entry %d: status %s, want %s", i, entries[i].Status, w)
		}
	}
}
