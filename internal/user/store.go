package user

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/inventory-tracker/internal"
	userDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/google/uuid"
)

// RepositoryAPI persists user rows. The single-row lookups return nil, nil
// when nothing matches. GetAll is ordered by insertion.
type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, userID string) (*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	Create(ctx context.Context, row *userDatamodel.User) error
	Update(ctx context.Context, row *userDatamodel.User) error
	Delete(ctx context.Context, userID string) error
}

// Store owns the user collection. Commands and reads share one mutex.
type Store struct {
	mu     sync.Mutex
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewStore(repo RepositoryAPI, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateUser registers a new user. Only administrators manage users. A user
// created without permissions gets view only, and one without a department
// is placed in IT.
func (s *Store) CreateUser(ctx context.Context, dto CreateUserDTO, requester *coreUser.User) (*coreUser.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if requester == nil || !requester.IsAdmin {
		s.logger.WarnContext(ctx, "create user rejected", "user_id", requesterID(requester))
		return nil, internal.ErrAdminRequired
	}

	username := strings.TrimSpace(dto.Username)
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up username", err)
	}
	if existing != nil {
		return nil, internal.ErrUsernameTaken
	}

	u := &coreUser.User{
		ID:          uuid.NewString(),
		Username:    username,
		Name:        strings.TrimSpace(dto.Name),
		Email:       strings.TrimSpace(dto.Email),
		Department:  dto.Department,
		IsAdmin:     dto.IsAdmin,
		Permissions: dto.Permissions,
		Credential:  dto.Password,
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}
	if u.Department == "" {
		u.Department = coreUser.DepartmentIT
	}
	if len(u.Permissions) == 0 {
		u.Permissions = []coreUser.Permission{coreUser.PermissionView}
	}

	if err := s.repo.Create(ctx, ToDataModel(u)); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.InfoContext(ctx, "user created", "target_user_id", u.ID, "username", u.Username, "department", u.Department, "user_id", requester.ID)
	return u.Clone(), nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch UpdateUserDTO, requester *coreUser.User) (*coreUser.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if requester == nil || !requester.IsAdmin {
		s.logger.WarnContext(ctx, "update user rejected", "target_user_id", id, "user_id", requesterID(requester))
		return nil, internal.ErrAdminRequired
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	u := FromDataModel(row)

	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username != u.Username {
			taken, err := s.repo.GetByUsername(ctx, username)
			if err != nil {
				return nil, internal.NewInternalError("failed to look up username", err)
			}
			if taken != nil {
				return nil, internal.ErrUsernameTaken
			}
			u.Username = username
		}
	}
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		u.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Department != nil {
		u.Department = *patch.Department
	}
	if patch.IsAdmin != nil {
		u.IsAdmin = *patch.IsAdmin
	}
	if patch.Permissions != nil {
		u.Permissions = patch.Permissions
	}
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		u.Credential = *patch.Password
	}

	updated := ToDataModel(u)
	updated.Seq = row.Seq
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.InfoContext(ctx, "user updated", "target_user_id", id, "user_id", requester.ID)
	return u, nil
}

// DeleteUser removes a user. The built-in administrator is refused before
// anything else is looked at, whoever asks.
func (s *Store) DeleteUser(ctx context.Context, id string, requester *coreUser.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == coreUser.SeedAdminID {
		s.logger.WarnContext(ctx, "delete user rejected: protected administrator", "user_id", requesterID(requester))
		return internal.ErrProtectedAdmin
	}
	if requester == nil || !requester.IsAdmin {
		s.logger.WarnContext(ctx, "delete user rejected", "target_user_id", id, "user_id", requesterID(requester))
		return internal.ErrAdminRequired
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.InfoContext(ctx, "user deleted", "target_user_id", id, "user_id", requester.ID)
	return nil
}

// UserByID returns internal.ErrUserNotFound when no user has id.
func (s *Store) UserByID(ctx context.Context, id string) (*coreUser.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*coreUser.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

// ListUsers returns every user matching search in insertion order.
func (s *Store) ListUsers(ctx context.Context, search string) ([]*coreUser.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}

	users := make([]*coreUser.User, 0, len(rows))
	for _, row := range rows {
		u := FromDataModel(row)
		if Matches(u, search) {
			users = append(users, u)
		}
	}
	return users, nil
}

func requesterID(u *coreUser.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
