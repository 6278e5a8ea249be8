package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	addressDomain "github.com/davicafu/facturalab/internal/address/domain"
)

// Clave fija del slot: la colección contiene como mucho este documento,
// lo que hace el invariante de singleton estructural y no convencional.
const vendorSlotKey = "current"

// VendorAddressRepoMongoDB implementa VendorAddressRepository sobre un
// slot único en la colección vendor_address.
type VendorAddressRepoMongoDB struct {
	coll *mongo.Collection
}

func NewVendorAddressRepoMongoDB(db *mongo.Database) *VendorAddressRepoMongoDB {
	return &VendorAddressRepoMongoDB{coll: db.Collection("vendor_address")}
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoVendorAddress struct {
	Slot        string    `bson:"_id"`
	AddressID   uuid.UUID `bson:"addressId"`
	Street1     string    `bson:"street1"`
	Street2     string    `bson:"street2"`
	City        string    `bson:"city"`
	PostalCode  string    `bson:"postalCode"`
	Country     string    `bson:"country"`
	CompanyName string    `bson:"companyName"`
}

func (r *VendorAddressRepoMongoDB) Replace(ctx context.Context, addr addressDomain.VendorAddress) error {
	doc := mongoVendorAddress{
		Slot:        vendorSlotKey,
		AddressID:   addr.ID,
		Street1:     addr.Street1,
		Street2:     addr.Street2,
		City:        addr.City,
		PostalCode:  addr.PostalCode,
		Country:     addr.Country,
		CompanyName: addr.CompanyName,
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": vendorSlotKey},
		bson.M{"$set": doc},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vendor address: %w", err)
	}
	return nil
}

func (r *VendorAddressRepoMongoDB) Current(ctx context.Context) (*addressDomain.VendorAddress, error) {
	var doc mongoVendorAddress
	err := r.coll.FindOne(ctx, bson.M{"_id": vendorSlotKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, addressDomain.ErrVendorAddressNotSet
		}
		return nil, err
	}
	return &addressDomain.VendorAddress{
		ID:          doc.AddressID,
		Street1:     doc.Street1,
		Street2:     doc.Street2,
		City:        doc.City,
		PostalCode:  doc.PostalCode,
		Country:     doc.Country,
		CompanyName: doc.CompanyName,
	}, nil
}

// Verificación estática de la interfaz.
var _ addressDomain.VendorAddressRepository = (*VendorAddressRepoMongoDB)(nil)
