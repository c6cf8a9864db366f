package users

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// Repository is the credential store. Implementations report a missing row as
// common.ErrorNotFound and a duplicate username as common.ErrorConflict.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	Exists(ctx context.Context, login string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
