package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
)

// InMemoryInvoiceRepo simula InvoiceRepository con deduplicación por pedido.
type InMemoryInvoiceRepo struct {
	Invoices map[uuid.UUID]*invoiceDomain.Invoice
	byOrder  map[uuid.UUID]uuid.UUID
	mu       sync.Mutex

	// FailWith fuerza el error devuelto por Create (para probar fallos de persistencia).
	FailWith error
}

func NewInMemoryInvoiceRepo() *InMemoryInvoiceRepo {
	return &InMemoryInvoiceRepo{
		Invoices: make(map[uuid.UUID]*invoiceDomain.Invoice),
		byOrder:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *InMemoryInvoiceRepo) Create(ctx context.Context, inv *invoiceDomain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	if _, ok := r.byOrder[inv.OrderID]; ok {
		return invoiceDomain.ErrInvoiceAlreadyExists
	}
	cp := *inv
	r.Invoices[inv.ID] = &cp
	r.byOrder[inv.OrderID] = inv.ID
	return nil
}

func (r *InMemoryInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*invoiceDomain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.Invoices[id]
	if !ok {
		return nil, invoiceDomain.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *InMemoryInvoiceRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*invoiceDomain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, invoiceDomain.ErrInvoiceNotFound
	}
	cp := *r.Invoices[id]
	return &cp, nil
}

// Verificación estática
var _ invoiceDomain.InvoiceRepository = (*InMemoryInvoiceRepo)(nil)
