package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// Role is a dashboard access role.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleKasir         Role = "kasir"
	RoleWaiter        Role = "waiter"
	RoleOwner         Role = "owner"
	RolePelanggan     Role = "pelanggan"
)

// User is a staff member or registered customer.
type User struct {
	ID        int64
	Username  string
	Name      string
	Role      Role
	CreatedAt time.Time
}

// Repository defines read operations over user accounts. Account lifecycle
// management lives outside this service.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role Role) (int, error)
	CountCreatedOn(ctx context.Context, day time.Time) (int, error)
}
