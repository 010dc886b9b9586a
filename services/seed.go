package services

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fintrack/storage"
)

// Seeder provisions the default user and the per-user master defaults.
type Seeder struct {
	users      *storage.UserStore
	categories *storage.CategoryStore
	accounts   *storage.MasterStore
	statuses   *storage.MasterStore
	modes      *storage.MasterStore
	platforms  *storage.MasterStore
	log        *logrus.Logger
}

func NewSeeder(db *sql.DB, log *logrus.Logger) *Seeder {
	return &Seeder{
		users:      storage.NewUserStore(db),
		categories: storage.NewCategoryStore(db),
		accounts:   storage.NewAccountStore(db),
		statuses:   storage.NewStatusStore(db),
		modes:      storage.NewModeStore(db),
		platforms:  storage.NewPlatformStore(db),
		log:        log,
	}
}

// EnsureDefaultUser creates the initial user when the users table is empty
// and seeds their master defaults. Does nothing once any user exists.
func (s *Seeder) EnsureDefaultUser(username, password string) error {
	count, err := s.users.Count()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(username, string(hash))
	if err != nil {
		return fmt.Errorf("create default user: %w", err)
	}

	s.log.WithField("username", username).Info("default user created")
	return s.InitializeUserDefaults(user.ID)
}

// InitializeUserDefaults seeds the starter masters for a user. Each
// registry is idempotent on its own, so calling this on every login is
// safe and never overwrites customization.
func (s *Seeder) InitializeUserDefaults(userID int64) error {
	if err := s.categories.InitializeDefaults(userID); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	for _, store := range []*storage.MasterStore{s.accounts, s.statuses, s.modes, s.platforms} {
		if err := store.InitializeDefaults(userID); err != nil {
			return fmt.Errorf("seed masters: %w", err)
		}
	}
	return nil
}
