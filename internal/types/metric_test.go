package types

import "testing"

func TestWeightedMetricAccumulate(t *testing.T) {
	var m WeightedMetric
	m.Accumulate(10, 5)
	m.Accumulate(20, 8)

	if m.Volume != 30 {
		t.Errorf("expected volume 30, got %d", m.Volume)
	}
	if m.WeightedTime != 210 {
		t.Errorf("expected weighted time 210, got %f", m.WeightedTime)
	}

	// (10*5 + 20*8) / 30 = 7.0
	if m.AHT() != 7 {
		t.Errorf("expected AHT 7, got %f", m.AHT())
	}
}

func TestWeightedMetricZeroVolume(t *testing.T) {
	var m WeightedMetric
	if m.AHT() != 0 {
		t.Errorf("expected AHT 0 for empty accumulator, got %f", m.AHT())
	}
	if m.RoundedAHT() != 0 {
		t.Errorf("expected RoundedAHT 0 for empty accumulator, got %f", m.RoundedAHT())
	}
}

func TestWeightedMetricMerge(t *testing.T) {
	a := WeightedMetric{Volume: 10, WeightedTime: 50}
	b := WeightedMetric{Volume: 20, WeightedTime: 160}
	a.Merge(b)

	if a.Volume != 30 {
		t.Errorf("expected merged volume 30, got %d", a.Volume)
	}
	if a.AHT() != 7 {
		t.Errorf("expected merged AHT 7, got %f", a.AHT())
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{7.004, 7.0},
		{7.006, 7.01},
		{7.0, 7.0},
		{0, 0},
		{123.456, 123.46},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestRecordHelpers(t *testing.T) {
	rec := Record{
		NotificationCount: 10,
		RoomStatusCount:   20,
		ZoneEventsCount:   5,
		NotificationAHT:   2,
		RoomStatusAHT:     3,
		ZoneEventsAHT:     4,
	}

	if rec.Count(TaskNotification) != 10 || rec.Count(TaskRoomStatus) != 20 || rec.Count(TaskZoneEvents) != 5 {
		t.Error("Count returned wrong values")
	}
	if rec.AHT(TaskNotification) != 2 || rec.AHT(TaskRoomStatus) != 3 || rec.AHT(TaskZoneEvents) != 4 {
		t.Error("AHT returned wrong values")
	}
	if rec.DayVolume() != 35 {
		t.Errorf("expected day volume 35, got %d", rec.DayVolume())
	}
	// 10*2 + 20*3 + 5*4 = 100
	if rec.DayWeightedTime() != 100 {
		t.Errorf("expected weighted time 100, got %f", rec.DayWeightedTime())
	}
}

func TestRecordUnassigned(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"", true},
		{"  ", true},
		{"N/A", true},
		{"n/a", true},
		{"#N/A", true},
		{"#n/a", true},
		{"E001", false},
		{" E001 ", false},
	}

	for _, tt := range tests {
		rec := Record{EmployeeID: tt.id}
		if got := rec.Unassigned(); got != tt.want {
			t.Errorf("Unassigned(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
