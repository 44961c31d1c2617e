package service

import (
	"context"
	"errors"
	"testing"

	"vibecheck/internal/models"
)

func TestStarServiceToggleSelf(t *testing.T) {
	svc := NewStarService(noopStarRepo(), noopUserRepo(), nilNotifier())

	_, err := svc.ToggleStar(context.Background(), 4, 4)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error for self-star, got %v", err)
	}
}

func TestStarServiceToggleMissingTarget(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User not found")
	}
	starRepo := noopStarRepo()
	toggled := false
	starRepo.toggleFn = func(context.Context, uint, uint) (bool, error) {
		toggled = true
		return true, nil
	}
	svc := NewStarService(starRepo, userRepo, nilNotifier())

	_, err := svc.ToggleStar(context.Background(), 1, 99)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found, got %v", err)
	}
	if toggled {
		t.Fatal("toggle must not run for a missing target")
	}
}

func TestStarServiceToggleReportsState(t *testing.T) {
	starRepo := noopStarRepo()
	state := false
	starRepo.toggleFn = func(context.Context, uint, uint) (bool, error) {
		state = !state
		return state, nil
	}
	svc := NewStarService(starRepo, noopUserRepo(), nilNotifier())

	starred, err := svc.ToggleStar(context.Background(), 1, 2)
	if err != nil || !starred {
		t.Fatalf("first toggle: starred=%v err=%v", starred, err)
	}
	starred, err = svc.ToggleStar(context.Background(), 1, 2)
	if err != nil || starred {
		t.Fatalf("second toggle: starred=%v err=%v", starred, err)
	}
}

func TestStarServiceStarredUsersPassthrough(t *testing.T) {
	starRepo := noopStarRepo()
	starRepo.listStarredFn = func(_ context.Context, userID uint) ([]models.StarredUser, error) {
		if userID != 8 {
			t.Fatalf("unexpected userID %d", userID)
		}
		return []models.StarredUser{{StarredUserID: 2, CurrentVibes: []models.CurrentVibe{}}}, nil
	}
	svc := NewStarService(starRepo, noopUserRepo(), nilNotifier())

	rows, err := svc.StarredUsers(context.Background(), 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].StarredUserID != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
