// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, session lookup and the
// administrative user operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Sessions attaches, clears and resolves the caller's session.
type Sessions interface {
	Attach(w http.ResponseWriter, u *models.User) error
	Clear(w http.ResponseWriter)
	SubjectIDOf(r *http.Request) (int64, bool)
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	sessions    Sessions
	log         logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, s Sessions, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      h,
		sessions:    s,
		log:         log,
	}
}

// Register creates a user and starts a session for it on w.
// A taken username yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, w http.ResponseWriter, username, password string) (*models.User, error) {
	user, err := s.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Attach(w, user); err != nil {
		return nil, fmt.Errorf("error attaching session: %w", err)
	}
	return user, nil
}

// CreateUser stores a new active user without starting a session.
//
// The existence check and the insert share a transaction, but the UNIQUE
// constraint on username is what settles concurrent registrations; the
// repository reports its violation as common.ErrorConflict too.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorConflict
		}

		created, err = repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash, IsActive: true})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user created", "user_id", created.ID)
	return created, nil
}

// Login verifies credentials and starts a session on w. An unknown username
// yields common.ErrorNotFound, a wrong password common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, w http.ResponseWriter, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn(ctx, "login rejected", "user_id", user.ID)
		return nil, common.ErrorUnauthorized
	}

	if err := s.sessions.Attach(w, user); err != nil {
		return nil, fmt.Errorf("error attaching session: %w", err)
	}
	return user, nil
}

// Logout clears the session cookie. It always succeeds.
func (s *UserService) Logout(w http.ResponseWriter) {
	s.sessions.Clear(w)
}

// CurrentUser resolves the user behind r's session. A missing or invalid
// session and a user deleted after the token was issued both yield
// common.ErrorNotFound.
func (s *UserService) CurrentUser(ctx context.Context, r *http.Request) (*models.User, error) {
	id, ok := s.sessions.SubjectIDOf(r)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s.GetUserByID(ctx, id)
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// ListUsers returns one page of users in id order. A page past the end is
// empty, not an error.
func (s *UserService) ListUsers(ctx context.Context, p models.PageParams) (models.Page[models.User], error) {
	if p.Page < 1 {
		return models.Page[models.User]{}, fmt.Errorf("%w: page must be greater than or equal to 1", common.ErrorValidation)
	}
	if p.Limit < 1 || p.Limit > models.MaxLimit {
		return models.Page[models.User]{}, fmt.Errorf("%w: limit must be between 1 and %d", common.ErrorValidation, models.MaxLimit)
	}

	repo := s.repomanager.Users(s.db)

	total, err := repo.Count(ctx)
	if err != nil {
		return models.Page[models.User]{}, fmt.Errorf("error counting users: %w", err)
	}

	var list []models.User
	if !p.Beyond(total) {
		list, err = repo.List(ctx, p.Offset(), p.Limit)
		if err != nil {
			return models.Page[models.User]{}, fmt.Errorf("error listing users: %w", err)
		}
	}

	return models.NewPage(list, p, total), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// DeleteAll removes every user and reports how many were removed.
func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Users(s.db).DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error deleting users: %w", err)
	}
	s.log.Warn(ctx, "all users deleted", "count", n)
	return n, nil
}
