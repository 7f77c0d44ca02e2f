package repository

import (
	"context"
	"testing"
)

func TestSettingsGetOrCreateInsertsDefaults(t *testing.T) {
	db, log := testDB(t)
	userID := seedUser(t, db, log)
	repo := NewSettingsRepository(db.DB(), log)

	got, err := repo.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetOrCreate() error: %v", err)
	}
	if got.Language != "en" || got.WeekStart != "sunday" || !got.ShowWeekends {
		t.Errorf("GetOrCreate() = %+v, want the defaults", got)
	}
	if !got.Notifications.Email || !got.Notifications.Desktop {
		t.Errorf("Notifications = %+v, want both channels on by default", got.Notifications)
	}

	// A second read returns the same row, not a fresh insert.
	again, err := repo.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("second GetOrCreate() error: %v", err)
	}
	if again.ID != got.ID {
		t.Errorf("second GetOrCreate() returned a different row: %s vs %s", again.ID, got.ID)
	}
}

func TestSettingsUpdatePersists(t *testing.T) {
	db, log := testDB(t)
	userID := seedUser(t, db, log)
	repo := NewSettingsRepository(db.DB(), log)

	settings, err := repo.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetOrCreate() error: %v", err)
	}

	settings.TimeZone = "Asia/Kolkata"
	settings.WeekStart = "monday"
	settings.Notifications.Desktop = false
	settings.DefaultEventDuration = 30
	if err := repo.Update(context.Background(), settings); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := repo.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetOrCreate() after update error: %v", err)
	}
	if got.TimeZone != "Asia/Kolkata" || got.WeekStart != "monday" || got.Notifications.Desktop || got.DefaultEventDuration != 30 {
		t.Errorf("GetOrCreate() after update = %+v, want the patched values", got)
	}
}
