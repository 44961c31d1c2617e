package service

import (
	"context"

	"vibecheck/internal/models"
	"vibecheck/internal/notifications"
	"vibecheck/internal/repository"
)

type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByCredentialsFn func(context.Context, string, string) (*models.User, error)
	updateProfileFn    func(context.Context, uint, repository.ProfileUpdates) (*models.User, error)
	listWithVibesFn    func(context.Context) ([]models.UserWithVibe, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	return s.getByCredentialsFn(ctx, username, password)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, id uint, updates repository.ProfileUpdates) (*models.User, error) {
	return s.updateProfileFn(ctx, id, updates)
}
func (s *userRepoStub) ListWithVibes(ctx context.Context) ([]models.UserWithVibe, error) {
	return s.listWithVibesFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:           func(context.Context, *models.User) error { return nil },
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByCredentialsFn: func(context.Context, string, string) (*models.User, error) { return nil, nil },
		updateProfileFn: func(context.Context, uint, repository.ProfileUpdates) (*models.User, error) {
			return &models.User{}, nil
		},
		listWithVibesFn: func(context.Context) ([]models.UserWithVibe, error) { return nil, nil },
	}
}

type vibeRepoStub struct {
	submitResultFn func(context.Context, uint, string, int) error
	getCurrentFn   func(context.Context, uint) (*models.CurrentVibe, error)
	getHistoryFn   func(context.Context, uint, int) ([]models.VibeHistoryEntry, error)
}

func (s *vibeRepoStub) SubmitResult(ctx context.Context, userID uint, vibe string, score int) error {
	return s.submitResultFn(ctx, userID, vibe, score)
}
func (s *vibeRepoStub) GetCurrent(ctx context.Context, userID uint) (*models.CurrentVibe, error) {
	return s.getCurrentFn(ctx, userID)
}
func (s *vibeRepoStub) GetHistory(ctx context.Context, userID uint, limit int) ([]models.VibeHistoryEntry, error) {
	return s.getHistoryFn(ctx, userID, limit)
}

func noopVibeRepo() *vibeRepoStub {
	return &vibeRepoStub{
		submitResultFn: func(context.Context, uint, string, int) error { return nil },
		getCurrentFn:   func(context.Context, uint) (*models.CurrentVibe, error) { return &models.CurrentVibe{}, nil },
		getHistoryFn:   func(context.Context, uint, int) ([]models.VibeHistoryEntry, error) { return nil, nil },
	}
}

type starRepoStub struct {
	toggleFn      func(context.Context, uint, uint) (bool, error)
	isStarredFn   func(context.Context, uint, uint) (bool, error)
	listStarredFn func(context.Context, uint) ([]models.StarredUser, error)
}

func (s *starRepoStub) Toggle(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.toggleFn(ctx, userID, targetID)
}
func (s *starRepoStub) IsStarred(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.isStarredFn(ctx, userID, targetID)
}
func (s *starRepoStub) ListStarred(ctx context.Context, userID uint) ([]models.StarredUser, error) {
	return s.listStarredFn(ctx, userID)
}

func noopStarRepo() *starRepoStub {
	return &starRepoStub{
		toggleFn:      func(context.Context, uint, uint) (bool, error) { return true, nil },
		isStarredFn:   func(context.Context, uint, uint) (bool, error) { return false, nil },
		listStarredFn: func(context.Context, uint) ([]models.StarredUser, error) { return nil, nil },
	}
}

type playlistRepoStub struct {
	loveFn      func(context.Context, *models.LovedPlaylist) (bool, error)
	unloveFn    func(context.Context, uint, string) error
	isLovedFn   func(context.Context, uint, string) (bool, error)
	listLovedFn func(context.Context, uint) ([]models.LovedPlaylist, error)
}

func (s *playlistRepoStub) Love(ctx context.Context, p *models.LovedPlaylist) (bool, error) {
	return s.loveFn(ctx, p)
}
func (s *playlistRepoStub) Unlove(ctx context.Context, userID uint, playlistID string) error {
	return s.unloveFn(ctx, userID, playlistID)
}
func (s *playlistRepoStub) IsLoved(ctx context.Context, userID uint, playlistID string) (bool, error) {
	return s.isLovedFn(ctx, userID, playlistID)
}
func (s *playlistRepoStub) ListLoved(ctx context.Context, userID uint) ([]models.LovedPlaylist, error) {
	return s.listLovedFn(ctx, userID)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		loveFn:      func(context.Context, *models.LovedPlaylist) (bool, error) { return true, nil },
		unloveFn:    func(context.Context, uint, string) error { return nil },
		isLovedFn:   func(context.Context, uint, string) (bool, error) { return false, nil },
		listLovedFn: func(context.Context, uint) ([]models.LovedPlaylist, error) { return nil, nil },
	}
}

// nilNotifier publishes nowhere; service code treats it as fire-and-forget.
func nilNotifier() *notifications.Notifier {
	return notifications.NewNotifier(nil)
}
