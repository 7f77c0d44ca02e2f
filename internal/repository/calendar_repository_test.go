package repository

import (
	"context"
	"testing"
)

func TestCalendarDeleteCascadesToEvents(t *testing.T) {
	db, log := testDB(t)
	userID := seedUser(t, db, log)
	keepID := seedCalendar(t, db, log, userID)
	dropID := seedCalendar(t, db, log, userID)

	calendars := NewCalendarRepository(db.DB(), log)
	events := NewEventRepository(db.DB(), log)

	kept := seedEvent(t, events, userID, keepID, "kept", at(t, "2024-06-10T09:00:00Z"), at(t, "2024-06-10T10:00:00Z"))
	seedEvent(t, events, userID, dropID, "doomed", at(t, "2024-06-11T09:00:00Z"), at(t, "2024-06-11T10:00:00Z"))

	tx, err := db.DB().BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("BeginTx() error: %v", err)
	}
	if err := events.DeleteByCalendar(context.Background(), tx, userID, dropID); err != nil {
		tx.Rollback()
		t.Fatalf("DeleteByCalendar() error: %v", err)
	}
	if err := calendars.Delete(context.Background(), tx, userID, dropID); err != nil {
		tx.Rollback()
		t.Fatalf("Delete() error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	if _, err := calendars.GetByID(context.Background(), userID, dropID); err != ErrCalendarNotFound {
		t.Errorf("GetByID() on deleted calendar = %v, want ErrCalendarNotFound", err)
	}
	remaining, err := events.ListByUser(context.Background(), userID, EventFilter{})
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != kept.ID {
		t.Errorf("remaining events = %v, want only the one in the surviving calendar", titles(remaining))
	}
}

func TestCalendarUpdateAndListScopedToUser(t *testing.T) {
	db, log := testDB(t)
	owner := seedUser(t, db, log)
	stranger := seedUser(t, db, log)
	calendarID := seedCalendar(t, db, log, owner)

	calendars := NewCalendarRepository(db.DB(), log)

	cal, err := calendars.GetByID(context.Background(), owner, calendarID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	cal.Name = "Work"
	cal.Color = "#d50000"
	cal.Visible = false
	if err := calendars.Update(context.Background(), cal); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := calendars.GetByID(context.Background(), owner, calendarID)
	if err != nil {
		t.Fatalf("GetByID() after update error: %v", err)
	}
	if got.Name != "Work" || got.Color != "#d50000" || got.Visible {
		t.Errorf("GetByID() = %+v, want the updated calendar", got)
	}

	mine, err := calendars.ListByUser(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("ListByUser(owner) = %d calendars, want 1", len(mine))
	}
	theirs, err := calendars.ListByUser(context.Background(), stranger)
	if err != nil {
		t.Fatalf("ListByUser(stranger) error: %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("ListByUser(stranger) = %d calendars, want 0", len(theirs))
	}
}
