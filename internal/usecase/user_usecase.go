package usecase

import (
	"context"

	"campus-prep/internal/datastore"
	"campus-prep/internal/domain/user"
)

// UserUsecase is the admin view over registered students.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	GetUserByID(ctx context.Context, id string) (user.User, bool, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	Summarize(ctx context.Context) (datastore.Summary, error)
}

var _ UserUsecase = (*datastore.Service)(nil)
