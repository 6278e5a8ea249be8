package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

// InvoiceRepoSQLite implementa la interfaz InvoiceRepository sobre SQLite,
// pensado para despliegues locales sin MongoDB ni PostgreSQL.
type InvoiceRepoSQLite struct {
	db *sql.DB
}

func NewInvoiceRepoSQLite(db *sql.DB) *InvoiceRepoSQLite {
	return &InvoiceRepoSQLite{db: db}
}

// InitSQLite crea la tabla de facturas si no existe.
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS invoices (
			id             TEXT PRIMARY KEY,
			order_id       TEXT NOT NULL UNIQUE,
			issued_at      TIMESTAMP NOT NULL,
			content        TEXT NOT NULL,
			user_address   TEXT NOT NULL,
			vendor_address TEXT NOT NULL,
			vat_number     TEXT
		)`)
	if err != nil {
		return fmt.Errorf("failed to initialize invoices table: %w", err)
	}
	return nil
}

func (r *InvoiceRepoSQLite) Create(ctx context.Context, inv *invoiceDomain.Invoice) error {
	userAddr, err := json.Marshal(inv.UserAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal user address: %w", err)
	}
	vendorAddr, err := json.Marshal(inv.VendorAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal vendor address: %w", err)
	}

	var vat sql.NullString
	if inv.VatNumber != nil {
		vat = sql.NullString{String: *inv.VatNumber, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO invoices (id, order_id, issued_at, content, user_address, vendor_address, vat_number)
		 VALUES (?,?,?,?,?,?,?)`,
		inv.ID.String(), inv.OrderID.String(), inv.IssuedAt, inv.Content,
		string(userAddr), string(vendorAddr), vat,
	)
	if err != nil {
		// modernc.org/sqlite no exporta un tipo de error de constraint estable.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return invoiceDomain.ErrInvoiceAlreadyExists
		}
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*invoiceDomain.Invoice, error) {
	return r.queryOne(ctx, `SELECT id, order_id, issued_at, content, user_address, vendor_address, vat_number
		FROM invoices WHERE id = ?`, id.String())
}

func (r *InvoiceRepoSQLite) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*invoiceDomain.Invoice, error) {
	return r.queryOne(ctx, `SELECT id, order_id, issued_at, content, user_address, vendor_address, vat_number
		FROM invoices WHERE order_id = ?`, orderID.String())
}

func (r *InvoiceRepoSQLite) queryOne(ctx context.Context, query string, arg interface{}) (*invoiceDomain.Invoice, error) {
	var (
		idStr      string
		orderIDStr string
		issuedAt   time.Time
		content    string
		userAddr   string
		vendorAddr string
		vat        sql.NullString
	)

	row := r.db.QueryRowContext(ctx, query, arg)
	err := row.Scan(&idStr, &orderIDStr, &issuedAt, &content, &userAddr, &vendorAddr, &vat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoiceDomain.ErrInvoiceNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice id in store: %w", err)
	}
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid order id in store: %w", err)
	}

	var ua userDomain.UserAddress
	if err := json.Unmarshal([]byte(userAddr), &ua); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user address: %w", err)
	}
	var va addressDomain.VendorAddress
	if err := json.Unmarshal([]byte(vendorAddr), &va); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vendor address: %w", err)
	}

	inv := &invoiceDomain.Invoice{
		ID:            id,
		OrderID:       orderID,
		IssuedAt:      issuedAt.UTC(),
		Content:       content,
		UserAddress:   ua,
		VendorAddress: va,
	}
	if vat.Valid {
		inv.VatNumber = &vat.String
	}
	return inv, nil
}

// Verificación estática de la interfaz.
var _ invoiceDomain.InvoiceRepository = (*InvoiceRepoSQLite)(nil)
