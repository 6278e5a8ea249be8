package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/davicafu/facturalab/internal/address/domain"
)

// VendorAddressService define los casos de uso sobre la dirección del vendedor.
type VendorAddressService struct {
	repo domain.VendorAddressRepository
	log  *zap.Logger
}

func NewVendorAddressService(repo domain.VendorAddressRepository, log *zap.Logger) *VendorAddressService {
	return &VendorAddressService{repo: repo, log: log}
}

// Replace sobreescribe la dirección del vendedor con la recibida en el evento.
func (s *VendorAddressService) Replace(ctx context.Context, addr domain.VendorAddress) error {
	if err := s.repo.Replace(ctx, addr); err != nil {
		return err
	}
	s.log.Info("Vendor address replaced", zap.String("address_id", addr.ID.String()))
	return nil
}

// Current devuelve la dirección vigente del vendedor.
func (s *VendorAddressService) Current(ctx context.Context) (*domain.VendorAddress, error) {
	return s.repo.Current(ctx)
}
