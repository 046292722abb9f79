// Package session keeps the signed-in identity of the command line client
// between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sessionDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/session"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// CurrentUserKey is the only key the identity is ever stored under.
const CurrentUserKey = "currentUser"

var ErrNoIdentity = errors.New("not signed in")

// Identity is the persisted result of a login.
type Identity struct {
	User        *coreUser.User `json:"user"`
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
}

type Store struct {
	repo  Repository
	close func() error
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, close: func() error { return nil }}
}

// Open opens, creating when needed, the session database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", path, err)
	}
	if err := db.AutoMigrate(&sessionDatamodel.Entry{}); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	s := NewStore(NewSQLiteRepository(db))
	s.close = sqlDB.Close
	return s, nil
}

func (s *Store) Close() error {
	return s.close()
}

func (s *Store) SaveIdentity(ctx context.Context, identity Identity) error {
	if identity.User == nil {
		return errors.New("identity has no user")
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return s.repo.Set(ctx, CurrentUserKey, raw)
}

// LoadIdentity returns ErrNoIdentity when nobody is signed in.
func (s *Store) LoadIdentity(ctx context.Context) (*Identity, error) {
	raw, err := s.repo.Get(ctx, CurrentUserKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNoIdentity
	}

	var identity Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if identity.User == nil {
		return nil, ErrNoIdentity
	}
	return &identity, nil
}

func (s *Store) ClearIdentity(ctx context.Context) error {
	return s.repo.Delete(ctx, CurrentUserKey)
}
