package mocks

import (
	"context"
	"sync"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
)

// InMemoryVendorRepo simula el slot único de la dirección del vendedor.
type InMemoryVendorRepo struct {
	Current_ *addressDomain.VendorAddress
	mu       sync.Mutex
}

func NewInMemoryVendorRepo() *InMemoryVendorRepo {
	return &InMemoryVendorRepo{}
}

func (r *InMemoryVendorRepo) Replace(ctx context.Context, addr addressDomain.VendorAddress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := addr
	r.Current_ = &cp
	return nil
}

func (r *InMemoryVendorRepo) Current(ctx context.Context) (*addressDomain.VendorAddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Current_ == nil {
		return nil, addressDomain.ErrVendorAddressNotSet
	}
	cp := *r.Current_
	return &cp, nil
}

// Verificación estática
var _ addressDomain.VendorAddressRepository = (*InMemoryVendorRepo)(nil)
