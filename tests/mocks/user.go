package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

// InMemoryUserRepo simula UserRepository con un mapa en memoria.
type InMemoryUserRepo struct {
	Users map[uuid.UUID]*userDomain.User
	mu    sync.Mutex
}

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		Users: make(map[uuid.UUID]*userDomain.User),
	}
}

func (r *InMemoryUserRepo) Create(ctx context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[u.ID]; ok {
		return userDomain.ErrUserAlreadyExists
	}
	cp := *u
	if cp.Addresses == nil {
		cp.Addresses = make(map[uuid.UUID]userDomain.UserAddress)
	}
	r.Users[u.ID] = &cp
	return nil
}

func (r *InMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return nil, userDomain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryUserRepo) FindAddress(ctx context.Context, addressID uuid.UUID) (uuid.UUID, *userDomain.UserAddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if addr, ok := u.Addresses[addressID]; ok {
			cp := addr
			return u.ID, &cp, nil
		}
	}
	return uuid.Nil, nil, userDomain.ErrAddressNotFound
}

func (r *InMemoryUserRepo) AddAddress(ctx context.Context, addr userDomain.UserAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[addr.UserID]
	if !ok {
		return userDomain.ErrUserNotFound
	}
	u.PutAddress(addr)
	return nil
}

func (r *InMemoryUserRepo) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[userID]
	if !ok {
		return userDomain.ErrUserNotFound
	}
	u.RemoveAddress(addressID)
	return nil
}

// Verificación estática
var _ userDomain.UserRepository = (*InMemoryUserRepo)(nil)
