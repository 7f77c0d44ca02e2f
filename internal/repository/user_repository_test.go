package repository

import (
	"context"
	"testing"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/google/uuid"
)

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	db, log := testDB(t)
	repo := NewUserRepository(db.DB(), log)

	first := &models.User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "x",
	}
	if err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	dup := &models.User{
		ID:             uuid.New(),
		Username:       "alice2",
		Email:          "alice@example.com",
		HashedPassword: "y",
	}
	if err := repo.Create(context.Background(), dup); err != ErrEmailAlreadyExists {
		t.Fatalf("Create() with duplicate email = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestUserLookup(t *testing.T) {
	db, log := testDB(t)
	repo := NewUserRepository(db.DB(), log)

	user := &models.User{
		ID:             uuid.New(),
		Username:       "bob",
		Email:          "bob@example.com",
		HashedPassword: "x",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	byID, err := repo.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("GetByID().Email = %q, want %q", byID.Email, user.Email)
	}

	byEmail, err := repo.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("GetByEmail().ID = %s, want %s", byEmail.ID, user.ID)
	}

	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); err != ErrUserNotFound {
		t.Errorf("GetByEmail() for unknown address = %v, want ErrUserNotFound", err)
	}
}
