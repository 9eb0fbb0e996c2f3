package user

import "context"

type Repository interface {
	// CreateOwner inserts the user and their gym in one transaction and
	// returns the user with the new gym ID.
	CreateOwner(ctx context.Context, email, passwordHash, gymName string) (*User, int, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GymIDForUser(ctx context.Context, userID int) (int, error)
}
