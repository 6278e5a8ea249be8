package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/davicafu/facturalab/internal/user/domain"
	"github.com/google/uuid"
)

// UserService define los casos de uso relacionados con User.
type UserService struct {
	repo domain.UserRepository
	log  *zap.Logger
}

func NewUserService(repo domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// CreateUser da de alta un usuario. La redistribución del mismo evento de
// creación se trata como duplicado y no produce efecto.
func (s *UserService) CreateUser(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	user := &domain.User{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Addresses: make(map[uuid.UUID]domain.UserAddress),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			s.log.Info("Duplicate user creation event ignored", zap.String("user_id", id.String()))
			return nil
		}
		return err
	}
	return nil
}

// AddAddress añade una dirección al usuario propietario. Repetir el alta de
// la misma dirección converge al mismo estado.
func (s *UserService) AddAddress(ctx context.Context, addr domain.UserAddress) error {
	return s.repo.AddAddress(ctx, addr)
}

// ArchiveAddress elimina la dirección del usuario; archivar un id ausente
// es un no-op.
func (s *UserService) ArchiveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.repo.RemoveAddress(ctx, userID, addressID)
}

// GetUser obtiene el perfil completo de un usuario.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}
