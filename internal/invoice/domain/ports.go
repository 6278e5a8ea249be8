package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyExists = errors.New("invoice already exists for order")
)

// ---------- Interfaces (Ports) ----------

// InvoiceRepository define las operaciones persistentes para Invoice.
type InvoiceRepository interface {
	// Debe devolver ErrInvoiceAlreadyExists si ya existe una factura para el
	// mismo pedido: una factura por pedido es un invariante estructural.
	Create(ctx context.Context, inv *Invoice) error

	// Debe devolver ErrInvoiceNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// Debe devolver ErrInvoiceNotFound si no existe.
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
}

// InvoiceIssuedLog es el registro plano que se envía al sink analítico.
type InvoiceIssuedLog struct {
	InvoiceID   uuid.UUID
	OrderID     uuid.UUID
	UserID      uuid.UUID
	ItemCount   int
	TotalAmount uint64
	IssuedAt    time.Time
}

// AnalyticsRecorder registra facturas emitidas para reporting.
// Es best-effort: un fallo no debe abortar el pipeline.
type AnalyticsRecorder interface {
	LogIssued(ctx context.Context, entry InvoiceIssuedLog) error
}
