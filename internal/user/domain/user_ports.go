package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrAddressNotFound   = errors.New("user address not found")
)

// ---------- Interfaces (Ports) ----------

// UserRepository define las operaciones persistentes para User.
type UserRepository interface {
	// Debe devolver ErrUserAlreadyExists si el usuario ya existe.
	Create(ctx context.Context, u *User) error

	// Debe devolver ErrUserNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindAddress localiza al usuario propietario de la dirección y proyecta
	// solo esa dirección (con el id del propietario), no el perfil entero.
	// Debe devolver ErrAddressNotFound si ningún usuario posee tal dirección.
	FindAddress(ctx context.Context, addressID uuid.UUID) (uuid.UUID, *UserAddress, error)

	// AddAddress añade la dirección al usuario propietario. Repetir la misma
	// dirección es idempotente. Debe devolver ErrUserNotFound si el usuario
	// no existe.
	AddAddress(ctx context.Context, addr UserAddress) error

	// RemoveAddress elimina la dirección del usuario; eliminar un id ausente
	// es un no-op. Debe devolver ErrUserNotFound si el usuario no existe.
	RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error
}
