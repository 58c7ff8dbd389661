package event

import (
	"testing"
	"time"
)

// TestPartition tests that the three buckets are exhaustive and
// non-overlapping.
func TestPartition(t *testing.T) {
	events := []Event{
		{ID: "e1", Category: CategoryHackathon},
		{ID: "e2", Category: CategoryTechEvent},
		{ID: "e3", Category: CategoryExhibition},
		{ID: "e4", Category: CategoryWorkshop},
		{ID: "e5", Category: "Seminar"},
		{ID: "e6", Category: CategoryWebinar},
		{ID: "e7", Category: CategoryHackathon},
	}

	b := Partition(events)

	if len(b.Hackathons) != 2 {
		t.Fatalf("expected 2 hackathons, got %d", len(b.Hackathons))
	}
	if len(b.Tech) != 3 {
		t.Fatalf("expected 3 tech events, got %d", len(b.Tech))
	}
	if len(b.Other) != 2 {
		t.Fatalf("expected 2 other events, got %d", len(b.Other))
	}
	if total := len(b.Hackathons) + len(b.Tech) + len(b.Other); total != len(events) {
		t.Fatalf("partition not exhaustive: %d of %d", total, len(events))
	}

	// "Seminar" must be in the other bucket only.
	for _, e := range b.Hackathons {
		if e.ID == "e5" {
			t.Fatal("seminar leaked into hackathons")
		}
	}
	for _, e := range b.Tech {
		if e.ID == "e5" {
			t.Fatal("seminar leaked into tech events")
		}
	}
}

// TestDaysUntil tests the ceiling-rounded day difference.
func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	threeDays := Event{Date: now.AddDate(0, 0, 3)}
	if got := threeDays.DaysUntil(now); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
	if !threeDays.ShowDaysLeft(now) {
		t.Fatal("future event should show days left")
	}

	// A fractional remainder still rounds up to the next day.
	partial := Event{Date: now.Add(25 * time.Hour)}
	if got := partial.DaysUntil(now); got != 2 {
		t.Fatalf("expected ceiling to 2 days, got %d", got)
	}

	past := Event{Date: now.AddDate(0, 0, -2)}
	if got := past.DaysUntil(now); got > 0 {
		t.Fatalf("past event should be non-positive, got %d", got)
	}
	if past.ShowDaysLeft(now) {
		t.Fatal("past event must not show days left")
	}

	today := Event{Date: now}
	if today.ShowDaysLeft(now) {
		t.Fatal("same-instant event must not show days left")
	}
}

// TestFilterSearch tests free-text matching over title and category.
func TestFilterSearch(t *testing.T) {
	events := []Event{
		{ID: "e1", Title: "Smart India Hackathon", Category: CategoryHackathon},
		{ID: "e2", Title: "Cloud Summit", Category: CategoryTechEvent},
		{ID: "e3", Title: "Robotics Expo", Category: CategoryExhibition},
	}
	if got := FilterSearch(events, "hack"); len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("expected only e1, got %+v", got)
	}
	if got := FilterSearch(events, "EXHIBITION"); len(got) != 1 || got[0].ID != "e3" {
		t.Fatalf("category match should be case-insensitive, got %+v", got)
	}
	if got := FilterSearch(events, ""); len(got) != 3 {
		t.Fatalf("empty query should match all, got %d", len(got))
	}
}

// TestValidateUpload tests the admin-upload required fields.
func TestValidateUpload(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := ValidateUpload("Hack2026", CategoryHackathon, "https://x", date); err != nil {
		t.Fatalf("expected valid upload, got: %v", err)
	}

	tests := []struct {
		name     string
		title    string
		category string
		link     string
		date     time.Time
		want     error
	}{
		{"empty title", "", CategoryHackathon, "https://x", date, ErrEmptyTitle},
		{"zero date", "Hack", CategoryHackathon, "https://x", time.Time{}, ErrMissingDate},
		{"bad category", "Hack", "Party", "https://x", date, ErrInvalidCategory},
		{"no link", "Hack", CategoryHackathon, "", date, ErrMissingLink},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateUpload(tc.title, tc.category, tc.link, tc.date); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
