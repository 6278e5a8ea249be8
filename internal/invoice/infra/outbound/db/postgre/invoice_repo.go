package postgre

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

// InvoiceRepoPostgres implementa la interfaz InvoiceRepository para
// PostgreSQL. Las instantáneas de dirección se guardan como JSONB; el
// UNIQUE sobre order_id sostiene el invariante de una factura por pedido.
type InvoiceRepoPostgres struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepoPostgres(pool *pgxpool.Pool) *InvoiceRepoPostgres {
	return &InvoiceRepoPostgres{pool: pool}
}

// InitPostgres crea la tabla de facturas si no existe.
func InitPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS invoices (
			id             UUID PRIMARY KEY,
			order_id       UUID NOT NULL UNIQUE,
			issued_at      TIMESTAMPTZ NOT NULL,
			content        TEXT NOT NULL,
			user_address   JSONB NOT NULL,
			vendor_address JSONB NOT NULL,
			vat_number     TEXT
		)`)
	if err != nil {
		return fmt.Errorf("failed to initialize invoices table: %w", err)
	}
	return nil
}

func (r *InvoiceRepoPostgres) Create(ctx context.Context, inv *invoiceDomain.Invoice) error {
	userAddr, err := json.Marshal(inv.UserAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal user address: %w", err)
	}
	vendorAddr, err := json.Marshal(inv.VendorAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal vendor address: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (id, order_id, issued_at, content, user_address, vendor_address, vat_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO NOTHING`,
		inv.ID, inv.OrderID, inv.IssuedAt, inv.Content, userAddr, vendorAddr, inv.VatNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoiceDomain.ErrInvoiceAlreadyExists
	}
	return nil
}

func (r *InvoiceRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*invoiceDomain.Invoice, error) {
	return r.queryOne(ctx, `SELECT id, order_id, issued_at, content, user_address, vendor_address, vat_number
		FROM invoices WHERE id = $1`, id)
}

func (r *InvoiceRepoPostgres) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*invoiceDomain.Invoice, error) {
	return r.queryOne(ctx, `SELECT id, order_id, issued_at, content, user_address, vendor_address, vat_number
		FROM invoices WHERE order_id = $1`, orderID)
}

func (r *InvoiceRepoPostgres) queryOne(ctx context.Context, query string, arg interface{}) (*invoiceDomain.Invoice, error) {
	var (
		inv        invoiceDomain.Invoice
		issuedAt   time.Time
		userAddr   []byte
		vendorAddr []byte
	)

	row := r.pool.QueryRow(ctx, query, arg)
	err := row.Scan(&inv.ID, &inv.OrderID, &issuedAt, &inv.Content, &userAddr, &vendorAddr, &inv.VatNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoiceDomain.ErrInvoiceNotFound
		}
		return nil, err
	}
	inv.IssuedAt = issuedAt.UTC()

	var ua userDomain.UserAddress
	if err := json.Unmarshal(userAddr, &ua); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user address: %w", err)
	}
	var va addressDomain.VendorAddress
	if err := json.Unmarshal(vendorAddr, &va); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vendor address: %w", err)
	}
	inv.UserAddress = ua
	inv.VendorAddress = va
	return &inv, nil
}

// Verificación estática de la interfaz.
var _ invoiceDomain.InvoiceRepository = (*InvoiceRepoPostgres)(nil)
