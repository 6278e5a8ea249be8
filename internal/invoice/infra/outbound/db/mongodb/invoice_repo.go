package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

// InvoiceRepoMongoDB implementa la interfaz InvoiceRepository para MongoDB.
type InvoiceRepoMongoDB struct {
	coll *mongo.Collection
}

// NewInvoiceRepoMongoDB es el constructor del repositorio. Crea el índice
// único por orderId que sostiene el invariante de una factura por pedido.
func NewInvoiceRepoMongoDB(ctx context.Context, db *mongo.Database) (*InvoiceRepoMongoDB, error) {
	coll := db.Collection("invoices")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create invoice order index: %w", err)
	}

	return &InvoiceRepoMongoDB{coll: coll}, nil
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoAddress struct {
	ID          uuid.UUID `bson:"_id"`
	Street1     string    `bson:"street1"`
	Street2     string    `bson:"street2"`
	City        string    `bson:"city"`
	PostalCode  string    `bson:"postalCode"`
	Country     string    `bson:"country"`
	CompanyName *string   `bson:"companyName,omitempty"`
	UserID      uuid.UUID `bson:"userId,omitempty"`
}

type mongoInvoice struct {
	ID            uuid.UUID    `bson:"_id"`
	OrderID       uuid.UUID    `bson:"orderId"`
	IssuedAt      time.Time    `bson:"issuedAt"`
	Content       string       `bson:"content"`
	UserAddress   mongoAddress `bson:"userAddress"`
	VendorAddress mongoAddress `bson:"vendorAddress"`
	VatNumber     *string      `bson:"vatNumber,omitempty"`
}

func (r *InvoiceRepoMongoDB) Create(ctx context.Context, inv *invoiceDomain.Invoice) error {
	if _, err := r.coll.InsertOne(ctx, toMongoInvoice(inv)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return invoiceDomain.ErrInvoiceAlreadyExists
		}
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*invoiceDomain.Invoice, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *InvoiceRepoMongoDB) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*invoiceDomain.Invoice, error) {
	return r.findOne(ctx, bson.M{"orderId": orderID})
}

func (r *InvoiceRepoMongoDB) findOne(ctx context.Context, filter bson.M) (*invoiceDomain.Invoice, error) {
	var mi mongoInvoice
	err := r.coll.FindOne(ctx, filter).Decode(&mi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, invoiceDomain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return fromMongoInvoice(&mi), nil
}

// --- Helpers de Mapeo y Conversión ---

func toMongoInvoice(inv *invoiceDomain.Invoice) *mongoInvoice {
	return &mongoInvoice{
		ID:       inv.ID,
		OrderID:  inv.OrderID,
		IssuedAt: inv.IssuedAt,
		Content:  inv.Content,
		UserAddress: mongoAddress{
			ID: inv.UserAddress.ID, Street1: inv.UserAddress.Street1, Street2: inv.UserAddress.Street2,
			City: inv.UserAddress.City, PostalCode: inv.UserAddress.PostalCode,
			Country: inv.UserAddress.Country, CompanyName: inv.UserAddress.CompanyName,
			UserID: inv.UserAddress.UserID,
		},
		VendorAddress: mongoAddress{
			ID: inv.VendorAddress.ID, Street1: inv.VendorAddress.Street1, Street2: inv.VendorAddress.Street2,
			City: inv.VendorAddress.City, PostalCode: inv.VendorAddress.PostalCode,
			Country: inv.VendorAddress.Country,
			CompanyName: &inv.VendorAddress.CompanyName,
		},
		VatNumber: inv.VatNumber,
	}
}

func fromMongoInvoice(mi *mongoInvoice) *invoiceDomain.Invoice {
	vendorCompany := ""
	if mi.VendorAddress.CompanyName != nil {
		vendorCompany = *mi.VendorAddress.CompanyName
	}
	return &invoiceDomain.Invoice{
		ID:       mi.ID,
		OrderID:  mi.OrderID,
		IssuedAt: mi.IssuedAt,
		Content:  mi.Content,
		UserAddress: userDomain.UserAddress{
			ID: mi.UserAddress.ID, Street1: mi.UserAddress.Street1, Street2: mi.UserAddress.Street2,
			City: mi.UserAddress.City, PostalCode: mi.UserAddress.PostalCode,
			Country: mi.UserAddress.Country, CompanyName: mi.UserAddress.CompanyName,
			UserID: mi.UserAddress.UserID,
		},
		VendorAddress: addressDomain.VendorAddress{
			ID: mi.VendorAddress.ID, Street1: mi.VendorAddress.Street1, Street2: mi.VendorAddress.Street2,
			City: mi.VendorAddress.City, PostalCode: mi.VendorAddress.PostalCode,
			Country: mi.VendorAddress.Country, CompanyName: vendorCompany,
		},
		VatNumber: mi.VatNumber,
	}
}

// Verificación estática de la interfaz.
var _ invoiceDomain.InvoiceRepository = (*InvoiceRepoMongoDB)(nil)
