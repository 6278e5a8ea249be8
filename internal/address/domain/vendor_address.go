package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// VendorAddress representa la dirección actual del vendedor. Es un singleton
// lógico: como mucho existe un documento y cada evento de creación lo
// reemplaza por completo.
type VendorAddress struct {
	ID          uuid.UUID `json:"id"`
	Street1     string    `json:"street1"`
	Street2     string    `json:"street2"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	CompanyName string    `json:"company_name"`
}

// ---------- Errores de dominio ----------
var ErrVendorAddressNotSet = errors.New("vendor address is not set")

// ---------- Interfaces (Ports) ----------

// VendorAddressRepository mantiene el slot único de la dirección del vendedor.
type VendorAddressRepository interface {
	// Replace sobreescribe el slot completo. Cualquier número de entregas
	// converge al mismo documento (idempotente).
	Replace(ctx context.Context, addr VendorAddress) error

	// Current devuelve la dirección vigente.
	// Debe devolver ErrVendorAddressNotSet si nunca se creó ninguna.
	Current(ctx context.Context) (*VendorAddress, error)
}
