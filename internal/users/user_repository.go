package users

import (
	"context"
	"fmt"

	"tracker/internal/repository"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type UserRepository interface {
	PersistUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

var userColumns = []interface{}{"id", "username", "fullname", "email", "password_hash", "created_at"}

// PersistUser inserts the user and fills in the generated id and creation time.
func (r *userRepositoryImpl) PersistUser(ctx context.Context, user *models.User) error {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      user.Username,
			"fullname":      user.Fullname,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
		}).
		Returning("id", "created_at")

	var inserted repository.Inserted
	if _, err := query.Executor().ScanStructContext(ctx, &inserted); err != nil {
		return custom_error.FromDB("failed to insert user", err)
	}
	user.ID = inserted.ID
	user.CreatedAt = inserted.CreatedAt

	return nil
}

func (r *userRepositoryImpl) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := r.repository.GoquDBWrapper.Select(userColumns...).
		From("users").
		Order(goqu.I("username").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

// GetUser returns nil when no user has the id.
func (r *userRepositoryImpl) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUserBy(ctx, goqu.Ex{"id": id})
}

// GetUserByUsername returns nil when no user has the username.
func (r *userRepositoryImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUserBy(ctx, goqu.Ex{"username": username})
}

func (r *userRepositoryImpl) getUserBy(ctx context.Context, condition goqu.Ex) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.Select(userColumns...).
		From("users").
		Where(condition)

	found, err := query.Executor().ScanStructContext(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}
