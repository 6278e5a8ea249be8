package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	assert.NoError(t, err)
	assert.NoError(t, InitSQLite(db))
	return db
}

func fixtureInvoice() *invoiceDomain.Invoice {
	company := "ACME Corp"
	vat := "DE123456789"
	return &invoiceDomain.Invoice{
		ID:       uuid.New(),
		OrderID:  uuid.New(),
		IssuedAt: time.Date(2024, 3, 1, 10, 30, 45, 0, time.UTC),
		Content:  "# Invoice",
		UserAddress: userDomain.UserAddress{
			ID: uuid.New(), Street1: "Calle Mayor 5", Street2: "Piso 3",
			City: "Madrid", PostalCode: "28013", Country: "Spain",
			CompanyName: &company, UserID: uuid.New(),
		},
		VendorAddress: addressDomain.VendorAddress{
			ID: uuid.New(), Street1: "Gralstraße 1", Street2: "Etage 2",
			City: "Berlin", PostalCode: "10115", Country: "Germany",
			CompanyName: "Online Store GmbH",
		},
		VatNumber: &vat,
	}
}

func TestInvoiceSQLite_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewInvoiceRepoSQLite(db)
	ctx := context.Background()

	inv := fixtureInvoice()
	assert.NoError(t, repo.Create(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	assert.NoError(t, err)
	assert.Equal(t, inv.OrderID, got.OrderID)
	assert.Equal(t, inv.Content, got.Content)
	assert.Equal(t, inv.UserAddress, got.UserAddress)
	assert.Equal(t, inv.VendorAddress, got.VendorAddress)
	assert.Equal(t, *inv.VatNumber, *got.VatNumber)

	byOrder, err := repo.GetByOrderID(ctx, inv.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, inv.ID, byOrder.ID)
}

func TestInvoiceSQLite_DuplicateOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewInvoiceRepoSQLite(db)
	ctx := context.Background()

	inv := fixtureInvoice()
	assert.NoError(t, repo.Create(ctx, inv))

	// Misma order_id con otro id de factura viola la restricción de unicidad
	dup := fixtureInvoice()
	dup.OrderID = inv.OrderID
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, invoiceDomain.ErrInvoiceAlreadyExists)
}

func TestInvoiceSQLite_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewInvoiceRepoSQLite(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, invoiceDomain.ErrInvoiceNotFound)

	_, err = repo.GetByOrderID(ctx, uuid.New())
	assert.ErrorIs(t, err, invoiceDomain.ErrInvoiceNotFound)
}

func TestInvoiceSQLite_NullVatNumber(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	repo := NewInvoiceRepoSQLite(db)
	ctx := context.Background()

	inv := fixtureInvoice()
	inv.VatNumber = nil
	assert.NoError(t, repo.Create(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	assert.NoError(t, err)
	assert.Nil(t, got.VatNumber)
}
