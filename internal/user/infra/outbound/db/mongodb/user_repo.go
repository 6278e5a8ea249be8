package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userDomain "github.com/davicafu/facturalab/internal/user/domain"
)

// UserRepoMongoDB implementa la interfaz UserRepository para MongoDB.
// Las direcciones se guardan como subdocumento-mapa por id de dirección:
// el alta es $set (idempotente) y el archivado $unset (no-op si falta).
type UserRepoMongoDB struct {
	coll *mongo.Collection
}

func NewUserRepoMongoDB(db *mongo.Database) *UserRepoMongoDB {
	return &UserRepoMongoDB{coll: db.Collection("users")}
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoUserAddress struct {
	ID          uuid.UUID `bson:"_id"`
	Street1     string    `bson:"street1"`
	Street2     string    `bson:"street2"`
	City        string    `bson:"city"`
	PostalCode  string    `bson:"postalCode"`
	Country     string    `bson:"country"`
	CompanyName *string   `bson:"companyName,omitempty"`
	UserID      uuid.UUID `bson:"userId"`
}

type mongoUser struct {
	ID        uuid.UUID                   `bson:"_id"`
	FirstName string                      `bson:"firstName"`
	LastName  string                      `bson:"lastName"`
	Addresses map[string]mongoUserAddress `bson:"addresses"`
}

func addressField(id uuid.UUID) string {
	return "addresses." + id.String()
}

func (r *UserRepoMongoDB) Create(ctx context.Context, u *userDomain.User) error {
	if _, err := r.coll.InsertOne(ctx, toMongoUser(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return userDomain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var mu mongoUser
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, err
	}
	return fromMongoUser(&mu), nil
}

func (r *UserRepoMongoDB) FindAddress(ctx context.Context, addressID uuid.UUID) (uuid.UUID, *userDomain.UserAddress, error) {
	// Proyecta únicamente la dirección buscada y el id del propietario.
	opts := options.FindOne().SetProjection(bson.M{
		"_id":                    1,
		addressField(addressID): 1,
	})

	var mu mongoUser
	err := r.coll.FindOne(ctx,
		bson.M{addressField(addressID): bson.M{"$exists": true}},
		opts,
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return uuid.Nil, nil, userDomain.ErrAddressNotFound
		}
		return uuid.Nil, nil, err
	}

	ma, ok := mu.Addresses[addressID.String()]
	if !ok {
		return uuid.Nil, nil, userDomain.ErrAddressNotFound
	}
	addr := fromMongoUserAddress(ma)
	return mu.ID, &addr, nil
}

func (r *UserRepoMongoDB) AddAddress(ctx context.Context, addr userDomain.UserAddress) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": addr.UserID},
		bson.M{"$set": bson.M{addressField(addr.ID): toMongoUserAddress(addr)}},
	)
	if err != nil {
		return fmt.Errorf("failed to add user address: %w", err)
	}
	if res.MatchedCount == 0 {
		return userDomain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepoMongoDB) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$unset": bson.M{addressField(addressID): ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove user address: %w", err)
	}
	if res.MatchedCount == 0 {
		return userDomain.ErrUserNotFound
	}
	return nil
}

// --- Helpers de Mapeo y Conversión ---

func toMongoUser(u *userDomain.User) *mongoUser {
	addresses := make(map[string]mongoUserAddress, len(u.Addresses))
	for id, addr := range u.Addresses {
		addresses[id.String()] = toMongoUserAddress(addr)
	}
	return &mongoUser{
		ID: u.ID, FirstName: u.FirstName, LastName: u.LastName,
		Addresses: addresses,
	}
}

func fromMongoUser(mu *mongoUser) *userDomain.User {
	addresses := make(map[uuid.UUID]userDomain.UserAddress, len(mu.Addresses))
	for _, ma := range mu.Addresses {
		addresses[ma.ID] = fromMongoUserAddress(ma)
	}
	return &userDomain.User{
		ID: mu.ID, FirstName: mu.FirstName, LastName: mu.LastName,
		Addresses: addresses,
	}
}

func toMongoUserAddress(a userDomain.UserAddress) mongoUserAddress {
	return mongoUserAddress{
		ID: a.ID, Street1: a.Street1, Street2: a.Street2, City: a.City,
		PostalCode: a.PostalCode, Country: a.Country, CompanyName: a.CompanyName,
		UserID: a.UserID,
	}
}

func fromMongoUserAddress(ma mongoUserAddress) userDomain.UserAddress {
	return userDomain.UserAddress{
		ID: ma.ID, Street1: ma.Street1, Street2: ma.Street2, City: ma.City,
		PostalCode: ma.PostalCode, Country: ma.Country, CompanyName: ma.CompanyName,
		UserID: ma.UserID,
	}
}

// Verificación estática de la interfaz.
var _ userDomain.UserRepository = (*UserRepoMongoDB)(nil)
